package services

import (
	"context"
	"math"

	"github.com/kryptocritics/kryptocritics/internal/catalog"
	"github.com/kryptocritics/kryptocritics/internal/logging"
	"github.com/kryptocritics/kryptocritics/internal/models"
	"github.com/patrickmn/go-cache"
)

// MovieReviewLister is the slice of the review façade the aggregator needs.
type MovieReviewLister interface {
	MovieReviews(ctx context.Context, movieID string) ([]models.Review, error)
}

// StatsService keeps per-movie rating aggregates in a cache seeded from the
// catalog's bundled numbers. Once Update runs for a movie the computed
// aggregate replaces the seed, including the zero aggregate when the last
// review is deleted.
type StatsService struct {
	reviews MovieReviewLister
	cache   *cache.Cache
	log     logging.Logger
}

func NewStatsService(reviews MovieReviewLister, cat *catalog.Catalog, log logging.Logger) *StatsService {
	c := cache.New(cache.NoExpiration, 0)
	for _, m := range cat.All() {
		c.Set(m.ID, models.MovieStats{Rating: m.Rating, ReviewCount: m.ReviewCount}, cache.NoExpiration)
	}
	return &StatsService{reviews: reviews, cache: c, log: log}
}

// Movie returns the current aggregate for a movie. Unknown ids get the zero
// aggregate.
func (s *StatsService) Movie(movieID string) models.MovieStats {
	if v, ok := s.cache.Get(movieID); ok {
		return v.(models.MovieStats)
	}
	return models.MovieStats{}
}

// Update recomputes a movie's aggregate from its current reviews. The mean
// is rounded to one decimal. A listing failure leaves the cached value
// untouched.
func (s *StatsService) Update(ctx context.Context, movieID string) {
	reviews, err := s.reviews.MovieReviews(ctx, movieID)
	if err != nil {
		s.log.Warn(ctx, "stats update skipped", "movie_id", movieID, "error", err)
		return
	}

	stats := models.MovieStats{}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		avg := float64(sum) / float64(len(reviews))
		stats = models.MovieStats{
			Rating:      math.Round(avg*10) / 10,
			ReviewCount: len(reviews),
		}
	}
	s.cache.Set(movieID, stats, cache.NoExpiration)
}
