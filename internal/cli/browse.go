package cli

import (
	"context"
	"fmt"
	"strings"
)

// Movies prints the catalog with the current rating aggregates.
func (a *App) Movies(ctx context.Context) error {
	for _, m := range a.catalog.All() {
		stats := a.stats.Movie(m.ID)
		line := fmt.Sprintf("%3s  %s (%d)", m.ID, m.Title, m.Year)
		if stats.ReviewCount > 0 {
			line += fmt.Sprintf("  %.1f/5 (%d reviews)", stats.Rating, stats.ReviewCount)
		} else {
			line += "  no reviews yet"
		}
		printlnFn(line)
	}
	return nil
}

// Movie prints one movie's details followed by its reviews.
func (a *App) Movie(ctx context.Context, id string) error {
	m, ok := a.catalog.ByID(id)
	if !ok {
		printlnFn("No such movie:", id)
		return nil
	}

	printlnFn(fmt.Sprintf("%s (%d), directed by %s", m.Title, m.Year, m.Director))
	printlnFn(strings.Join(m.Genre, ", ") + fmt.Sprintf(" · %d min", m.Duration))
	printlnFn(m.Description)

	stats := a.stats.Movie(m.ID)
	if stats.ReviewCount > 0 {
		printlnFn(fmt.Sprintf("Rating: %.1f/5 from %d reviews", stats.Rating, stats.ReviewCount))
	}

	reviews, err := a.reviews.MovieReviews(ctx, id)
	if err != nil {
		printlnFn("Could not load reviews:", err.Error())
		return err
	}
	if len(reviews) == 0 {
		printlnFn("No reviews yet.")
		return nil
	}

	printlnFn("Reviews:")
	for _, r := range reviews {
		line := fmt.Sprintf("  %s - %d/5", r.Username, r.Rating)
		if r.Comment != "" {
			line += ": " + r.Comment
		}
		printlnFn(line)
	}
	return nil
}

// Status prints the connectivity and session state.
func (a *App) Status(ctx context.Context) error {
	state, reason := a.status.State()
	line := "Connectivity: " + string(state)
	if reason != "" {
		line += " (" + reason + ")"
	}
	printlnFn(line)

	if a.isLoggedIn() {
		printlnFn("Signed in as", a.auth.Username(ctx))
	} else {
		printlnFn("Not signed in")
	}
	return nil
}
