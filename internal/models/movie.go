// Package models defines the domain types shared across the client:
// catalog movies, reviews, wishlist entries, and auth identities.
package models

// Movie is a static catalog entry. The catalog is reference data bundled with
// the binary; movies are never created or destroyed at runtime. Rating and
// ReviewCount are the baked-in seed values used before the stats aggregator
// recomputes them from live reviews.
type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	Director    string   `json:"director"`
	Genre       []string `json:"genre"`
	Poster      string   `json:"poster"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
}

// MovieStats is the aggregate the stats service maintains per movie.
type MovieStats struct {
	Rating      float64
	ReviewCount int
}
