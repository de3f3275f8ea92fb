package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kryptocritics/kryptocritics/internal/logging"
	"github.com/kryptocritics/kryptocritics/internal/models"
)

const (
	requestTimeout = 30 * time.Second

	// refresh the access token when it is this close to expiry.
	tokenRefreshLeeway = 30 * time.Second

	reviewSelect = "*,profiles(username,first_name,last_name,avatar_url)"
)

// Supabase talks to a hosted Supabase project: GoTrue under /auth/v1 and
// PostgREST under /rest/v1. It holds the current session and attaches the
// right bearer token per request, refreshing it shortly before expiry.
type Supabase struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	log     logging.Logger

	mu      sync.Mutex
	session *models.Session
}

var _ Client = (*Supabase)(nil)

func NewSupabase(baseURL, apiKey string, log logging.Logger) *Supabase {
	return &Supabase{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

// tokenExpiry reads the exp claim without verifying the signature; the
// client only needs it to schedule refreshes, verification is the backend's
// job.
func tokenExpiry(accessToken string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// SetSession installs tokens restored from local storage.
func (s *Supabase) SetSession(accessToken, refreshToken string) {
	s.storeSession(&models.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    tokenExpiry(accessToken),
	})
}

func (s *Supabase) ClearSession() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
}

// Session returns a copy of the current session, or nil.
func (s *Supabase) Session() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

func (s *Supabase) storeSession(sess *models.Session) {
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
}

// bearer picks the token for a request: the user's access token when signed
// in (refreshed if it is about to expire), else the anon key.
func (s *Supabase) bearer(ctx context.Context) string {
	sess := s.Session()
	if sess == nil {
		return s.apiKey
	}
	if !sess.ExpiresAt.IsZero() && time.Until(sess.ExpiresAt) < tokenRefreshLeeway && sess.RefreshToken != "" {
		res, err := s.RefreshSession(ctx, sess.RefreshToken)
		if err == nil && res.Session != nil {
			return res.Session.AccessToken
		}
		s.log.Warn(ctx, "session refresh failed, using stale token", "error", err)
	}
	return sess.AccessToken
}

// apiErrorBody covers the error payload shapes of both GoTrue and PostgREST.
type apiErrorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Code             string `json:"code"`
}

func (e apiErrorBody) text() string {
	for _, s := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

var errConflict = fmt.Errorf("conflict")

func mapError(status int, data []byte) error {
	var body apiErrorBody
	_ = json.Unmarshal(data, &body)
	msg := body.text()
	lower := strings.ToLower(msg)

	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, msg)
	case strings.Contains(lower, "invalid login credentials"):
		return ErrInvalidCredentials
	case strings.Contains(lower, "email not confirmed"):
		return ErrEmailNotConfirmed
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case status == http.StatusConflict:
		return fmt.Errorf("%w: %s", errConflict, msg)
	case status >= 500:
		return fmt.Errorf("%w: backend returned %d", ErrUnavailable, status)
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("backend error (%d): %s", status, msg)
}

// doJSON issues one request. token selects the Authorization bearer; prefer
// is the PostgREST Prefer header; out, when non-nil, receives the decoded
// response body.
func (s *Supabase) doJSON(ctx context.Context, method, path string, query url.Values, token, prefer string, body, out any) error {
	u := s.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode >= 400 {
		return mapError(resp.StatusCode, data)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// ---- auth endpoint ----

func (s *Supabase) SignUp(ctx context.Context, in models.SignUpInput) (*AuthResult, error) {
	body := map[string]any{
		"email":    in.Email,
		"password": in.Password,
		"data": map[string]any{
			"username":   in.Username,
			"first_name": in.FirstName,
			"last_name":  in.LastName,
		},
	}
	var resp authResponse
	if err := s.doJSON(ctx, http.MethodPost, "/auth/v1/signup", nil, s.apiKey, "", body, &resp); err != nil {
		return nil, err
	}
	res := resp.result()
	// never report success without at least a user
	if res.User == nil {
		return nil, fmt.Errorf("sign up response missing user")
	}
	if res.Session != nil {
		s.storeSession(res.Session)
	}
	return res, nil
}

func (s *Supabase) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	query := url.Values{"grant_type": {"password"}}
	body := map[string]any{"email": email, "password": password}

	var resp authResponse
	if err := s.doJSON(ctx, http.MethodPost, "/auth/v1/token", query, s.apiKey, "", body, &resp); err != nil {
		return nil, err
	}
	res := resp.result()
	// never report success without both a user and a session
	if res.User == nil || res.Session == nil {
		return nil, fmt.Errorf("sign in response missing user or session")
	}
	s.storeSession(res.Session)
	return res, nil
}

// SignOut drops the local session unconditionally, then tells the backend.
// The revocation error, if any, is returned but the session is already gone.
func (s *Supabase) SignOut(ctx context.Context) error {
	sess := s.Session()
	s.ClearSession()
	if sess == nil {
		return nil
	}
	return s.doJSON(ctx, http.MethodPost, "/auth/v1/logout", nil, sess.AccessToken, "", nil, nil)
}

func (s *Supabase) CurrentUser(ctx context.Context) (*models.User, error) {
	sess := s.Session()
	if sess == nil {
		return nil, ErrUnauthorized
	}
	var payload userPayload
	if err := s.doJSON(ctx, http.MethodGet, "/auth/v1/user", nil, s.bearer(ctx), "", nil, &payload); err != nil {
		return nil, err
	}
	return &models.User{ID: payload.ID, Email: payload.Email}, nil
}

func (s *Supabase) RefreshSession(ctx context.Context, refreshToken string) (*AuthResult, error) {
	query := url.Values{"grant_type": {"refresh_token"}}
	body := map[string]any{"refresh_token": refreshToken}

	var resp authResponse
	if err := s.doJSON(ctx, http.MethodPost, "/auth/v1/token", query, s.apiKey, "", body, &resp); err != nil {
		return nil, err
	}
	res := resp.result()
	if res.Session == nil {
		return nil, fmt.Errorf("refresh response missing session")
	}
	s.storeSession(res.Session)
	return res, nil
}

// Ping probes the auth endpoint's health route. Used by the startup
// connectivity check and the periodic offline watcher.
func (s *Supabase) Ping(ctx context.Context) error {
	return s.doJSON(ctx, http.MethodGet, "/auth/v1/health", nil, s.apiKey, "", nil, nil)
}

// ---- reviews table ----

func (s *Supabase) MovieReviews(ctx context.Context, movieID string) ([]models.Review, error) {
	query := url.Values{}
	query.Set("select", reviewSelect)
	query.Set("movie_id", "eq."+movieID)
	query.Set("order", "created_at.desc")
	return s.selectReviews(ctx, query)
}

func (s *Supabase) UserReviews(ctx context.Context, userID string) ([]models.Review, error) {
	query := url.Values{}
	query.Set("select", reviewSelect)
	query.Set("user_id", "eq."+userID)
	query.Set("order", "created_at.desc")
	return s.selectReviews(ctx, query)
}

// UserMovieReview returns (nil, nil) when the user has not reviewed the
// movie; absence is a normal answer, not an error.
func (s *Supabase) UserMovieReview(ctx context.Context, userID, movieID string) (*models.Review, error) {
	query := url.Values{}
	query.Set("select", reviewSelect)
	query.Set("user_id", "eq."+userID)
	query.Set("movie_id", "eq."+movieID)
	query.Set("limit", "1")

	reviews, err := s.selectReviews(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, nil
	}
	return &reviews[0], nil
}

func (s *Supabase) selectReviews(ctx context.Context, query url.Values) ([]models.Review, error) {
	var rows []reviewRow
	if err := s.doJSON(ctx, http.MethodGet, "/rest/v1/reviews", query, s.bearer(ctx), "", nil, &rows); err != nil {
		return nil, err
	}
	reviews := make([]models.Review, len(rows))
	for i, r := range rows {
		reviews[i] = r.toReview()
	}
	return reviews, nil
}

func (s *Supabase) UpsertReview(ctx context.Context, up ReviewUpsert) (*models.Review, error) {
	query := url.Values{}
	query.Set("on_conflict", "user_id,movie_id")
	query.Set("select", reviewSelect)

	title := up.MovieTitle
	if title == "" {
		title = "Unknown Movie"
	}
	body := map[string]any{
		"user_id":      up.UserID,
		"movie_id":     up.MovieID,
		"movie_title":  title,
		"movie_poster": nullable(up.MoviePoster),
		"rating":       up.Rating,
		"review_text":  nullable(up.Comment),
		"updated_at":   time.Now().UTC().Format(time.RFC3339),
	}

	var rows []reviewRow
	err := s.doJSON(ctx, http.MethodPost, "/rest/v1/reviews", query, s.bearer(ctx),
		"resolution=merge-duplicates,return=representation", body, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("upsert returned no row")
	}
	review := rows[0].toReview()
	return &review, nil
}

func (s *Supabase) DeleteReview(ctx context.Context, userID, movieID string) error {
	query := url.Values{}
	query.Set("user_id", "eq."+userID)
	query.Set("movie_id", "eq."+movieID)
	return s.doJSON(ctx, http.MethodDelete, "/rest/v1/reviews", query, s.bearer(ctx), "", nil, nil)
}

// ---- profiles table ----

// Profile returns (nil, nil) when no profile row exists yet; the backend
// creates it asynchronously after sign-up.
func (s *Supabase) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", "eq."+userID)
	query.Set("limit", "1")

	var rows []profileRow
	if err := s.doJSON(ctx, http.MethodGet, "/rest/v1/profiles", query, s.bearer(ctx), "", nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	profile := rows[0].toProfile()
	return &profile, nil
}

func (s *Supabase) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) error {
	query := url.Values{}
	query.Set("id", "eq."+userID)

	body := map[string]any{"updated_at": time.Now().UTC().Format(time.RFC3339)}
	if patch.Username != nil {
		body["username"] = *patch.Username
	}
	if patch.FirstName != nil {
		body["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		body["last_name"] = *patch.LastName
	}
	if patch.AvatarURL != nil {
		body["avatar_url"] = *patch.AvatarURL
	}

	return s.doJSON(ctx, http.MethodPatch, "/rest/v1/profiles", query, s.bearer(ctx), "return=minimal", body, nil)
}

// ---- wishlist table ----

// AddToWishlist has set semantics: adding an already-present pair succeeds.
func (s *Supabase) AddToWishlist(ctx context.Context, userID, movieID string) error {
	body := map[string]any{"user_id": userID, "movie_id": movieID}
	err := s.doJSON(ctx, http.MethodPost, "/rest/v1/wishlist", nil, s.bearer(ctx), "return=minimal", body, nil)
	if errors.Is(err, errConflict) {
		return nil
	}
	return err
}

// RemoveFromWishlist is idempotent: deleting an absent pair is a no-op.
func (s *Supabase) RemoveFromWishlist(ctx context.Context, userID, movieID string) error {
	query := url.Values{}
	query.Set("user_id", "eq."+userID)
	query.Set("movie_id", "eq."+movieID)
	return s.doJSON(ctx, http.MethodDelete, "/rest/v1/wishlist", query, s.bearer(ctx), "", nil, nil)
}

func (s *Supabase) Wishlist(ctx context.Context, userID string) ([]string, error) {
	query := url.Values{}
	query.Set("select", "movie_id")
	query.Set("user_id", "eq."+userID)

	var rows []struct {
		MovieID string `json:"movie_id"`
	}
	if err := s.doJSON(ctx, http.MethodGet, "/rest/v1/wishlist", query, s.bearer(ctx), "", nil, &rows); err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.MovieID
	}
	return ids, nil
}

func (s *Supabase) InWishlist(ctx context.Context, userID, movieID string) (bool, error) {
	query := url.Values{}
	query.Set("select", "movie_id")
	query.Set("user_id", "eq."+userID)
	query.Set("movie_id", "eq."+movieID)
	query.Set("limit", "1")

	var rows []struct {
		MovieID string `json:"movie_id"`
	}
	if err := s.doJSON(ctx, http.MethodGet, "/rest/v1/wishlist", query, s.bearer(ctx), "", nil, &rows); err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
