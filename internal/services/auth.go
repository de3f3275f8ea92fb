package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kryptocritics/kryptocritics/internal/logging"
	"github.com/kryptocritics/kryptocritics/internal/models"
	"github.com/kryptocritics/kryptocritics/internal/offline"
	"github.com/kryptocritics/kryptocritics/internal/remote"
)

// User-facing sign-in failures. The CLI matches on these to pick a message;
// everything else surfaces as a wrapped ErrSignInFailed.
var (
	ErrSignInTimeout     = errors.New("sign in timed out, check your connection and try again")
	ErrBadCredentials    = errors.New("invalid email or password")
	ErrEmailNotConfirmed = errors.New("please confirm your email address before signing in")
	ErrTooManyAttempts   = errors.New("too many attempts, wait a moment and try again")
	ErrSignInFailed      = errors.New("sign in failed")
	ErrSignUpFailed      = errors.New("sign up failed")
	ErrNoProfile         = errors.New("your profile is not ready yet, try again in a moment")
	ErrNotAuthenticated  = errors.New("not signed in")
	ErrAuthDisabled      = errors.New("account features need a configured backend")
)

type AuthState string

const (
	StateUnauthenticated AuthState = "unauthenticated"
	StateAuthenticating  AuthState = "authenticating"
	StateAuthenticated   AuthState = "authenticated"
)

// Metadata keys for the persisted session.
const (
	metaUsername     = "username"
	metaAccessToken  = "access_token"
	metaRefreshToken = "refresh_token"
)

// MetadataStore is the key/value slice of the local store the auth service
// persists session data into.
type MetadataStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	DeleteMeta(ctx context.Context, key string) error
}

// SignUpResult tells the caller whether a session was issued immediately or
// the account is waiting for email confirmation.
type SignUpResult struct {
	ConfirmationPending bool
}

// AuthService drives the session lifecycle: restore on startup, sign-up,
// sign-in with a bounded wait, sign-out, and profile access. Local sign-out
// always succeeds even when the backend cannot be told.
type AuthService struct {
	remote        remote.Client
	meta          MetadataStore
	status        *offline.Status
	log           logging.Logger
	signInTimeout time.Duration

	mu      sync.Mutex
	state   AuthState
	user    *models.User
	profile *models.Profile
}

func NewAuthService(client remote.Client, meta MetadataStore, status *offline.Status, log logging.Logger, signInTimeout time.Duration) *AuthService {
	return &AuthService{
		remote:        client,
		meta:          meta,
		status:        status,
		log:           log,
		signInTimeout: signInTimeout,
		state:         StateUnauthenticated,
	}
}

func (a *AuthService) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// CurrentUser returns the signed-in user, or nil.
func (a *AuthService) CurrentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

// Username returns the best display name available: the cached profile
// username, falling back to the locally persisted one.
func (a *AuthService) Username(ctx context.Context) string {
	a.mu.Lock()
	if a.profile != nil && a.profile.Username != "" {
		name := a.profile.Username
		a.mu.Unlock()
		return name
	}
	a.mu.Unlock()

	if v, err := a.meta.Get(ctx, metaUsername); err == nil && len(v) > 0 {
		return string(v)
	}
	return ""
}

// Restore picks up a persisted session on startup. It is best-effort: any
// failure (no tokens, expired refresh, backend unreachable) leaves the app
// signed out without surfacing an error.
func (a *AuthService) Restore(ctx context.Context, timeout time.Duration) {
	if a.remote == nil {
		return
	}

	access, err := a.meta.Get(ctx, metaAccessToken)
	if err != nil || len(access) == 0 {
		return
	}
	refresh, err := a.meta.Get(ctx, metaRefreshToken)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	a.remote.SetSession(string(access), string(refresh))

	user, err := a.remote.CurrentUser(ctx)
	if err != nil && errors.Is(err, remote.ErrUnauthorized) && len(refresh) > 0 {
		res, rerr := a.remote.RefreshSession(ctx, string(refresh))
		if rerr == nil && res.Session != nil {
			a.persistSession(ctx, res.Session)
			user, err = res.User, nil
		}
	}
	if err != nil || user == nil {
		if err != nil && remote.IsConnectivity(err) {
			a.status.SetOffline("backend unreachable")
		} else {
			// the stored session is no longer good, drop it
			a.clearLocal(ctx)
		}
		a.log.Debug(ctx, "session restore failed", "error", err)
		return
	}

	a.mu.Lock()
	a.state = StateAuthenticated
	a.user = user
	a.mu.Unlock()

	a.status.SetOnline()
	a.loadProfile(ctx, user.ID)
	a.log.Info(ctx, "session restored", "user_id", user.ID)
}

// SignUp registers a new account. When the backend requires email
// confirmation no session is issued and ConfirmationPending is set.
func (a *AuthService) SignUp(ctx context.Context, in models.SignUpInput) (*SignUpResult, error) {
	if a.remote == nil {
		return nil, ErrAuthDisabled
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	res, err := a.remote.SignUp(ctx, in)
	if err != nil {
		if remote.IsConnectivity(err) {
			a.status.SetOffline("backend unreachable")
		}
		return nil, err
	}
	a.status.SetOnline()

	if res.ConfirmationPending {
		return &SignUpResult{ConfirmationPending: true}, nil
	}
	// never report success without a user
	if res.User == nil {
		return nil, ErrSignUpFailed
	}

	a.mu.Lock()
	a.state = StateAuthenticated
	a.user = res.User
	a.mu.Unlock()

	a.persistSession(ctx, res.Session)
	a.meta.Set(ctx, metaUsername, []byte(in.Username))
	a.loadProfile(ctx, res.User.ID)
	return &SignUpResult{}, nil
}

// SignIn authenticates with email and password, waiting at most the
// configured sign-in timeout.
func (a *AuthService) SignIn(ctx context.Context, email, password string) error {
	if a.remote == nil {
		return ErrAuthDisabled
	}

	a.setState(StateAuthenticating)

	ctx, cancel := context.WithTimeout(ctx, a.signInTimeout)
	defer cancel()

	res, err := a.remote.SignIn(ctx, email, password)
	if err != nil {
		a.setState(StateUnauthenticated)
		return a.mapSignInError(err)
	}

	a.mu.Lock()
	a.state = StateAuthenticated
	a.user = res.User
	a.mu.Unlock()

	a.status.SetOnline()
	a.persistSession(ctx, res.Session)
	a.loadProfile(ctx, res.User.ID)
	a.log.Info(ctx, "signed in", "user_id", res.User.ID)
	return nil
}

func (a *AuthService) mapSignInError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		a.status.SetOffline("backend unreachable")
		return ErrSignInTimeout
	case errors.Is(err, remote.ErrInvalidCredentials):
		return ErrBadCredentials
	case errors.Is(err, remote.ErrEmailNotConfirmed):
		return ErrEmailNotConfirmed
	case errors.Is(err, remote.ErrRateLimited):
		return ErrTooManyAttempts
	case remote.IsConnectivity(err):
		a.status.SetOffline("backend unreachable")
		return ErrSignInTimeout
	default:
		return errors.Join(ErrSignInFailed, err)
	}
}

// SignOut drops the local session first, so the user is signed out even when
// the backend cannot be reached. A backend revocation failure is still
// reported.
func (a *AuthService) SignOut(ctx context.Context) error {
	a.mu.Lock()
	a.state = StateUnauthenticated
	a.user = nil
	a.profile = nil
	a.mu.Unlock()

	a.clearLocal(ctx)

	if a.remote == nil {
		return nil
	}
	if err := a.remote.SignOut(ctx); err != nil {
		if remote.IsConnectivity(err) {
			a.status.SetOffline("backend unreachable")
			return nil
		}
		return err
	}
	return nil
}

// Profile returns the cached profile, fetching it if needed.
func (a *AuthService) Profile(ctx context.Context) (*models.Profile, error) {
	a.mu.Lock()
	user, profile := a.user, a.profile
	a.mu.Unlock()

	if user == nil {
		return nil, ErrNotAuthenticated
	}
	if profile != nil {
		return profile, nil
	}
	if a.remote == nil {
		return nil, ErrAuthDisabled
	}

	p, err := a.remote.Profile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	// the backend creates the profile row after sign-up; it may not exist yet
	if p == nil {
		return nil, ErrNoProfile
	}
	a.mu.Lock()
	a.profile = p
	a.mu.Unlock()
	return p, nil
}

// UpdateProfile applies a partial profile update and refreshes the cached
// copy.
func (a *AuthService) UpdateProfile(ctx context.Context, patch remote.ProfilePatch) error {
	a.mu.Lock()
	user := a.user
	a.mu.Unlock()

	if user == nil {
		return ErrNotAuthenticated
	}
	if a.remote == nil {
		return ErrAuthDisabled
	}

	if err := a.remote.UpdateProfile(ctx, user.ID, patch); err != nil {
		return err
	}
	if patch.Username != nil {
		a.meta.Set(ctx, metaUsername, []byte(*patch.Username))
	}
	a.loadProfile(ctx, user.ID)
	return nil
}

func (a *AuthService) setState(s AuthState) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

func (a *AuthService) persistSession(ctx context.Context, sess *models.Session) {
	if sess == nil {
		return
	}
	if err := a.meta.Set(ctx, metaAccessToken, []byte(sess.AccessToken)); err != nil {
		a.log.Warn(ctx, "failed to persist access token", "error", err)
	}
	if err := a.meta.Set(ctx, metaRefreshToken, []byte(sess.RefreshToken)); err != nil {
		a.log.Warn(ctx, "failed to persist refresh token", "error", err)
	}
}

func (a *AuthService) clearLocal(ctx context.Context) {
	if a.remote != nil {
		a.remote.ClearSession()
	}
	a.meta.DeleteMeta(ctx, metaAccessToken)
	a.meta.DeleteMeta(ctx, metaRefreshToken)
	a.meta.DeleteMeta(ctx, metaUsername)
}

func (a *AuthService) loadProfile(ctx context.Context, userID string) {
	p, err := a.remote.Profile(ctx, userID)
	if err != nil {
		a.log.Debug(ctx, "profile fetch failed", "user_id", userID, "error", err)
		return
	}
	a.mu.Lock()
	a.profile = p
	a.mu.Unlock()
	if p != nil && p.Username != "" {
		a.meta.Set(ctx, metaUsername, []byte(p.Username))
	}
}
