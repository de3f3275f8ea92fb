// Package store holds the client-side persistence used when the remote
// backend is unreachable: an in-memory review fallback and an SQLite-backed
// local store for the wishlist and small metadata values (session tokens,
// cached username).
package store

import (
	"context"

	"github.com/kryptocritics/kryptocritics/internal/models"
)

// ReviewStore is the review fallback surface. It mirrors the remote review
// operations so the façade can retry a failed call against it unchanged.
type ReviewStore interface {
	MovieReviews(ctx context.Context, movieID string) ([]models.Review, error)
	UserReviews(ctx context.Context, userID string) ([]models.Review, error)
	UserMovieReview(ctx context.Context, userID, movieID string) (*models.Review, error)
	Upsert(ctx context.Context, userID, movieID, movieTitle, moviePoster string, rating int, comment string) (*models.Review, error)
	Delete(ctx context.Context, userID, movieID string) error
}

// WishlistStore is the wishlist fallback surface.
type WishlistStore interface {
	AddWishlist(ctx context.Context, userID, movieID string) error
	RemoveWishlist(ctx context.Context, userID, movieID string) error
	Wishlist(ctx context.Context, userID string) ([]string, error)
	InWishlist(ctx context.Context, userID, movieID string) (bool, error)
}
