package remote

import (
	"time"

	"github.com/kryptocritics/kryptocritics/internal/models"
)

// profileColumns are the reviewer columns embedded into review selects.
type profileColumns struct {
	Username  string  `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	AvatarURL *string `json:"avatar_url"`
}

// reviewRow is the wire shape of a reviews-table row, optionally carrying
// the embedded reviewer profile.
type reviewRow struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	MovieID     string          `json:"movie_id"`
	MovieTitle  string          `json:"movie_title"`
	MoviePoster *string         `json:"movie_poster"`
	Rating      int             `json:"rating"`
	ReviewText  *string         `json:"review_text"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Profiles    *profileColumns `json:"profiles"`
}

// toReview is the one place backend review rows become the Review record the
// rest of the app sees. All shape differences are absorbed here.
func (r reviewRow) toReview() models.Review {
	review := models.Review{
		ID:         r.ID,
		UserID:     r.UserID,
		MovieID:    r.MovieID,
		MovieTitle: r.MovieTitle,
		Rating:     r.Rating,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		Username:   "Anonymous",
	}
	if r.MoviePoster != nil {
		review.MoviePoster = *r.MoviePoster
	}
	if r.ReviewText != nil {
		review.Comment = *r.ReviewText
	}
	if r.Profiles != nil {
		if r.Profiles.Username != "" {
			review.Username = r.Profiles.Username
		}
		if r.Profiles.AvatarURL != nil {
			review.AvatarURL = *r.Profiles.AvatarURL
		}
	}
	return review
}

type profileRow struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p profileRow) toProfile() models.Profile {
	profile := models.Profile{
		ID:        p.ID,
		Email:     p.Email,
		Username:  p.Username,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.FirstName != nil {
		profile.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		profile.LastName = *p.LastName
	}
	if p.AvatarURL != nil {
		profile.AvatarURL = *p.AvatarURL
	}
	return profile
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// authResponse covers both shapes the auth endpoint answers with: a token
// grant (access_token + user) or, for sign-ups pending email confirmation,
// the bare user object at the top level.
type authResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         *userPayload `json:"user"`

	ID    string `json:"id"`
	Email string `json:"email"`
}

func (a authResponse) result() *AuthResult {
	res := &AuthResult{}
	switch {
	case a.AccessToken != "" && a.User != nil:
		res.User = &models.User{ID: a.User.ID, Email: a.User.Email}
		expiresAt := tokenExpiry(a.AccessToken)
		if expiresAt.IsZero() && a.ExpiresIn > 0 {
			expiresAt = time.Now().Add(time.Duration(a.ExpiresIn) * time.Second)
		}
		res.Session = &models.Session{
			AccessToken:  a.AccessToken,
			RefreshToken: a.RefreshToken,
			ExpiresAt:    expiresAt,
		}
	case a.User != nil:
		res.User = &models.User{ID: a.User.ID, Email: a.User.Email}
		res.ConfirmationPending = true
	case a.ID != "":
		res.User = &models.User{ID: a.ID, Email: a.Email}
		res.ConfirmationPending = true
	}
	return res
}
