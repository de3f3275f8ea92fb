package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks rating bounds (1-5) and the 500-character comment cap.
func (i ReviewInput) Validate() error {
	return validate.Struct(i)
}

// Validate checks the registration fields before any network call is made.
func (i SignUpInput) Validate() error {
	return validate.Struct(i)
}
