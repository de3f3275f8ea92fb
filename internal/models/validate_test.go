package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReviewInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   ReviewInput
		wantErr bool
	}{
		{"valid", ReviewInput{Rating: 4, Comment: "great"}, false},
		{"valid without comment", ReviewInput{Rating: 1}, false},
		{"missing rating", ReviewInput{Comment: "x"}, true},
		{"rating too high", ReviewInput{Rating: 6}, true},
		{"rating negative", ReviewInput{Rating: -1}, true},
		{"comment at cap", ReviewInput{Rating: 3, Comment: strings.Repeat("a", 500)}, false},
		{"comment over cap", ReviewInput{Rating: 3, Comment: strings.Repeat("a", 501)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSignUpInput_Validate(t *testing.T) {
	valid := SignUpInput{Email: "a@example.com", Password: "secret1", Username: "critic"}
	require.NoError(t, valid.Validate())

	badEmail := valid
	badEmail.Email = "not-an-email"
	require.Error(t, badEmail.Validate())

	shortPassword := valid
	shortPassword.Password = "abc"
	require.Error(t, shortPassword.Validate())

	noUsername := valid
	noUsername.Username = ""
	require.Error(t, noUsername.Validate())
}
