// Package remote is the thin client for the hosted backend: the auth
// endpoint plus the profiles/reviews/wishlist tables. Everything behind it
// (schema, row-level security, network behavior) is an opaque dependency;
// this package only issues calls and normalizes row shapes and errors.
package remote

import (
	"context"

	"github.com/kryptocritics/kryptocritics/internal/models"
)

// AuthResult is the outcome of a sign-up, sign-in, or token refresh.
// Sign-up has two valid terminal shapes: a session issued immediately, or a
// user created pending email confirmation (User set, Session nil,
// ConfirmationPending true). Neither is an error.
type AuthResult struct {
	User                *models.User
	Session             *models.Session
	ConfirmationPending bool
}

// ReviewUpsert carries one review write. The backend enforces the
// (user, movie) uniqueness constraint; resubmitting merges into the
// existing row.
type ReviewUpsert struct {
	UserID      string
	MovieID     string
	MovieTitle  string
	MoviePoster string
	Rating      int
	Comment     string
}

// ProfilePatch is a partial profile update; nil fields are left untouched.
type ProfilePatch struct {
	Username  *string
	FirstName *string
	LastName  *string
	AvatarURL *string
}

// Client is the call surface the façades depend on. The concrete
// implementation talks to Supabase; tests substitute fakes.
type Client interface {
	// Auth endpoint.
	SignUp(ctx context.Context, in models.SignUpInput) (*AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	RefreshSession(ctx context.Context, refreshToken string) (*AuthResult, error)
	SetSession(accessToken, refreshToken string)
	ClearSession()
	Session() *models.Session
	Ping(ctx context.Context) error

	// reviews table.
	MovieReviews(ctx context.Context, movieID string) ([]models.Review, error)
	UserReviews(ctx context.Context, userID string) ([]models.Review, error)
	UserMovieReview(ctx context.Context, userID, movieID string) (*models.Review, error)
	UpsertReview(ctx context.Context, up ReviewUpsert) (*models.Review, error)
	DeleteReview(ctx context.Context, userID, movieID string) error

	// profiles table.
	Profile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) error

	// wishlist table.
	AddToWishlist(ctx context.Context, userID, movieID string) error
	RemoveFromWishlist(ctx context.Context, userID, movieID string) error
	Wishlist(ctx context.Context, userID string) ([]string, error)
	InWishlist(ctx context.Context, userID, movieID string) (bool, error)
}
