package models

import "time"

// Review is one user's rating of one movie. At most one review exists per
// (UserID, MovieID) pair; resubmitting updates the row in place, preserving
// CreatedAt and advancing UpdatedAt. MovieTitle and MoviePoster are
// denormalized for display. Username and AvatarURL come from the reviewer's
// profile when the backend supplies it.
type Review struct {
	ID          string
	UserID      string
	MovieID     string
	MovieTitle  string
	MoviePoster string
	Rating      int
	Comment     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Username    string
	AvatarURL   string
}

// ReviewInput carries the user-supplied part of a review submission.
type ReviewInput struct {
	Rating  int    `validate:"required,min=1,max=5"`
	Comment string `validate:"max=500"`
}
