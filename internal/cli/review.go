package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kryptocritics/kryptocritics/internal/models"
)

// AddReview prompts for a rating and comment and submits a review for the
// given movie. Submitting again for the same movie updates the earlier
// review.
func (a *App) AddReview(ctx context.Context, movieID string) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first to write a review.")
		return nil
	}

	m, ok := a.catalog.ByID(movieID)
	if !ok {
		printlnFn("No such movie:", movieID)
		return nil
	}

	ratingText, err := getSimpleText(a.reader, fmt.Sprintf("Your rating for %q (1-5)", m.Title), os.Stdout)
	if err != nil {
		return err
	}
	rating, err := strconv.Atoi(strings.TrimSpace(ratingText))
	if err != nil {
		printlnFn("Rating must be a number from 1 to 5.")
		return nil
	}

	comment, err := GetMultiline(a.reader, "Your review (optional)", os.Stdout)
	if err != nil {
		return err
	}

	user := a.auth.CurrentUser()
	if _, err := a.reviews.Submit(ctx, user.ID, m.ID, m.Title, m.Poster, models.ReviewInput{
		Rating:  rating,
		Comment: comment,
	}); err != nil {
		printlnFn("Could not save review:", err.Error())
		return err
	}

	if a.status.Offline() {
		printlnFn("Saved locally. You are offline, the review will not reach the server.")
	} else {
		printlnFn("Review saved.")
	}
	return nil
}

// DeleteReview removes the signed-in user's review of a movie.
func (a *App) DeleteReview(ctx context.Context, movieID string) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first.")
		return nil
	}

	user := a.auth.CurrentUser()
	if err := a.reviews.Delete(ctx, user.ID, movieID); err != nil {
		printlnFn("Could not delete review:", err.Error())
		return err
	}
	printlnFn("Review deleted.")
	return nil
}

// MyReviews lists the signed-in user's reviews.
func (a *App) MyReviews(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first.")
		return nil
	}

	user := a.auth.CurrentUser()
	reviews, err := a.reviews.UserReviews(ctx, user.ID)
	if err != nil {
		printlnFn("Could not load your reviews:", err.Error())
		return err
	}
	if len(reviews) == 0 {
		printlnFn("You have not reviewed anything yet.")
		return nil
	}

	for _, r := range reviews {
		line := fmt.Sprintf("  %s - %d/5", r.MovieTitle, r.Rating)
		if r.Comment != "" {
			line += ": " + r.Comment
		}
		printlnFn(line)
	}
	return nil
}
