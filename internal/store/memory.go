package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kryptocritics/kryptocritics/internal/models"
)

// OfflineUsername is the display name stamped on reviews written while the
// backend is unreachable.
const OfflineUsername = "You (Offline)"

// Memory keeps reviews written while offline for the lifetime of the
// process. Entries are keyed by (user, movie) the same way the backend keys
// its rows, so an offline edit of an existing offline review updates in
// place.
type Memory struct {
	mu      sync.Mutex
	reviews []models.Review
}

var _ ReviewStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) MovieReviews(_ context.Context, movieID string) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Review
	for _, r := range m.reviews {
		if r.MovieID == movieID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) UserReviews(_ context.Context, userID string) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Review
	for _, r := range m.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) UserMovieReview(_ context.Context, userID, movieID string) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.index(userID, movieID); i >= 0 {
		r := m.reviews[i]
		return &r, nil
	}
	return nil, nil
}

func (m *Memory) Upsert(_ context.Context, userID, movieID, movieTitle, moviePoster string, rating int, comment string) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if i := m.index(userID, movieID); i >= 0 {
		// resubmitting keeps the original id and creation time
		m.reviews[i].Rating = rating
		m.reviews[i].Comment = comment
		m.reviews[i].MovieTitle = movieTitle
		m.reviews[i].MoviePoster = moviePoster
		m.reviews[i].UpdatedAt = now
		r := m.reviews[i]
		return &r, nil
	}

	review := models.Review{
		ID:          "offline-" + uuid.NewString(),
		UserID:      userID,
		MovieID:     movieID,
		MovieTitle:  movieTitle,
		MoviePoster: moviePoster,
		Rating:      rating,
		Comment:     comment,
		CreatedAt:   now,
		UpdatedAt:   now,
		Username:    OfflineUsername,
	}
	m.reviews = append(m.reviews, review)
	r := review
	return &r, nil
}

func (m *Memory) Delete(_ context.Context, userID, movieID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.index(userID, movieID); i >= 0 {
		m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
	}
	return nil
}

// index returns the position of the (user, movie) review or -1.
// Callers must hold mu.
func (m *Memory) index(userID, movieID string) int {
	for i, r := range m.reviews {
		if r.UserID == userID && r.MovieID == movieID {
			return i
		}
	}
	return -1
}
