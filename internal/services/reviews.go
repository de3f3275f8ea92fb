// Package services contains the application services for the client: the
// review and wishlist façades with their offline fallback behavior, the
// per-movie stats aggregator, and the authentication service.
package services

import (
	"context"

	"github.com/kryptocritics/kryptocritics/internal/logging"
	"github.com/kryptocritics/kryptocritics/internal/models"
	"github.com/kryptocritics/kryptocritics/internal/offline"
	"github.com/kryptocritics/kryptocritics/internal/remote"
	"github.com/kryptocritics/kryptocritics/internal/store"
)

// ReviewService is the review façade. Every operation goes to the backend
// first; a connectivity failure flips the shared offline status and the
// operation is retried once against the in-memory fallback. Non-connectivity
// errors (bad input, auth) surface unchanged. With no backend configured the
// fallback serves directly.
type ReviewService struct {
	remote   remote.Client
	fallback store.ReviewStore
	status   *offline.Status
	log      logging.Logger
	onChange func(ctx context.Context, movieID string)
}

func NewReviewService(client remote.Client, fallback store.ReviewStore, status *offline.Status, log logging.Logger) *ReviewService {
	return &ReviewService{remote: client, fallback: fallback, status: status, log: log}
}

// OnChange registers a hook invoked after a successful write, with the movie
// whose reviews changed. Used to keep the stats cache current.
func (s *ReviewService) OnChange(fn func(ctx context.Context, movieID string)) {
	s.onChange = fn
}

func (s *ReviewService) MovieReviews(ctx context.Context, movieID string) ([]models.Review, error) {
	if s.remote == nil {
		return s.fallback.MovieReviews(ctx, movieID)
	}
	reviews, err := s.remote.MovieReviews(ctx, movieID)
	if err != nil {
		if !remote.IsConnectivity(err) {
			return nil, err
		}
		s.goOffline(ctx, err)
		return s.fallback.MovieReviews(ctx, movieID)
	}
	s.status.SetOnline()
	return reviews, nil
}

func (s *ReviewService) UserReviews(ctx context.Context, userID string) ([]models.Review, error) {
	if s.remote == nil {
		return s.fallback.UserReviews(ctx, userID)
	}
	reviews, err := s.remote.UserReviews(ctx, userID)
	if err != nil {
		if !remote.IsConnectivity(err) {
			return nil, err
		}
		s.goOffline(ctx, err)
		return s.fallback.UserReviews(ctx, userID)
	}
	s.status.SetOnline()
	return reviews, nil
}

func (s *ReviewService) UserMovieReview(ctx context.Context, userID, movieID string) (*models.Review, error) {
	if s.remote == nil {
		return s.fallback.UserMovieReview(ctx, userID, movieID)
	}
	review, err := s.remote.UserMovieReview(ctx, userID, movieID)
	if err != nil {
		if !remote.IsConnectivity(err) {
			return nil, err
		}
		s.goOffline(ctx, err)
		return s.fallback.UserMovieReview(ctx, userID, movieID)
	}
	s.status.SetOnline()
	return review, nil
}

// Submit validates and writes a review. Resubmitting for the same movie
// updates the existing review rather than adding a second one.
func (s *ReviewService) Submit(ctx context.Context, userID, movieID, movieTitle, moviePoster string, in models.ReviewInput) (*models.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	review, err := s.submit(ctx, userID, movieID, movieTitle, moviePoster, in)
	if err != nil {
		return nil, err
	}
	s.notifyChange(ctx, movieID)
	return review, nil
}

func (s *ReviewService) submit(ctx context.Context, userID, movieID, movieTitle, moviePoster string, in models.ReviewInput) (*models.Review, error) {
	if s.remote == nil {
		return s.fallback.Upsert(ctx, userID, movieID, movieTitle, moviePoster, in.Rating, in.Comment)
	}

	review, err := s.remote.UpsertReview(ctx, remote.ReviewUpsert{
		UserID:      userID,
		MovieID:     movieID,
		MovieTitle:  movieTitle,
		MoviePoster: moviePoster,
		Rating:      in.Rating,
		Comment:     in.Comment,
	})
	if err != nil {
		if !remote.IsConnectivity(err) {
			return nil, err
		}
		s.goOffline(ctx, err)
		return s.fallback.Upsert(ctx, userID, movieID, movieTitle, moviePoster, in.Rating, in.Comment)
	}
	s.status.SetOnline()
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, userID, movieID string) error {
	if s.remote == nil {
		if err := s.fallback.Delete(ctx, userID, movieID); err != nil {
			return err
		}
		s.notifyChange(ctx, movieID)
		return nil
	}

	if err := s.remote.DeleteReview(ctx, userID, movieID); err != nil {
		if !remote.IsConnectivity(err) {
			return err
		}
		s.goOffline(ctx, err)
		if err := s.fallback.Delete(ctx, userID, movieID); err != nil {
			return err
		}
	} else {
		s.status.SetOnline()
	}
	s.notifyChange(ctx, movieID)
	return nil
}

func (s *ReviewService) goOffline(ctx context.Context, err error) {
	s.log.Debug(ctx, "review operation failed with connectivity error", "error", err)
	s.status.SetOffline("backend unreachable")
}

func (s *ReviewService) notifyChange(ctx context.Context, movieID string) {
	if s.onChange != nil {
		s.onChange(ctx, movieID)
	}
}
