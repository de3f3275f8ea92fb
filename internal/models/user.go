package models

import "time"

// User is the auth identity issued by the backend.
type User struct {
	ID    string
	Email string
}

// Profile is the 1:1 display record keyed by user id.
type Profile struct {
	ID        string
	Email     string
	Username  string
	FirstName string
	LastName  string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session is the ephemeral credential bound to a user. ExpiresAt is derived
// from the access token and drives refresh decisions.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// SignUpInput carries the fields collected at registration.
type SignUpInput struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6"`
	Username  string `validate:"required"`
	FirstName string
	LastName  string
}
