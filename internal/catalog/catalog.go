// Package catalog serves the fixed movie catalog bundled with the binary.
// The catalog is immutable reference data; live rating/review counts are
// maintained separately by the stats service.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/kryptocritics/kryptocritics/internal/models"
)

//go:embed movies.json
var moviesJSON []byte

type Catalog struct {
	movies []models.Movie
	byID   map[string]models.Movie
}

// Load parses the embedded catalog. Called once at startup.
func Load() (*Catalog, error) {
	var movies []models.Movie
	if err := json.Unmarshal(moviesJSON, &movies); err != nil {
		return nil, fmt.Errorf("failed to parse movie catalog: %w", err)
	}

	byID := make(map[string]models.Movie, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}
	return &Catalog{movies: movies, byID: byID}, nil
}

// All returns the catalog in bundled order. The slice is a copy; callers may
// not mutate catalog entries through it.
func (c *Catalog) All() []models.Movie {
	out := make([]models.Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// ByID looks up a single movie.
func (c *Catalog) ByID(id string) (models.Movie, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// Len reports the catalog size.
func (c *Catalog) Len() int {
	return len(c.movies)
}
