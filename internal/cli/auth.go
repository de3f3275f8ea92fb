package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/kryptocritics/kryptocritics/internal/models"
	"github.com/kryptocritics/kryptocritics/internal/remote"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and creates a new account. Depending
// on the backend's settings the account is either usable immediately or
// waits for email confirmation.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Pick a username", os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "First name (optional)", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name (optional)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	res, err := a.auth.SignUp(ctx, models.SignUpInput{
		Email:     email,
		Password:  string(password),
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	if res.ConfirmationPending {
		printlnFn("Account created. Check your email to confirm it, then sign in.")
	} else {
		printlnFn("Account created, you are signed in.")
	}
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.SignIn(ctx, email, string(password)); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome back, %s!", a.auth.Username(ctx)))
	return nil
}

// Logout signs the user out. The local session is always dropped; a failure
// to tell the backend is reported but does not keep the user signed in.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.SignOut(ctx); err != nil {
		printlnFn("Signed out locally, but the server could not be notified:", err.Error())
		return err
	}
	printlnFn("Signed out.")
	return nil
}

// Profile prints the signed-in user's profile.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first.")
		return nil
	}

	p, err := a.auth.Profile(ctx)
	if err != nil {
		printlnFn("Could not load profile:", err.Error())
		return err
	}

	printlnFn("Username: " + p.Username)
	printlnFn("Email:    " + p.Email)
	if p.FirstName != "" || p.LastName != "" {
		printlnFn("Name:     " + p.FirstName + " " + p.LastName)
	}
	return nil
}

// EditProfile prompts for new profile values; empty answers leave a field
// unchanged.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first.")
		return nil
	}

	patch := remote.ProfilePatch{}

	if v, err := getSimpleText(a.reader, "New username (empty to keep)", os.Stdout); err != nil {
		return err
	} else if v != "" {
		patch.Username = &v
	}
	if v, err := getSimpleText(a.reader, "New first name (empty to keep)", os.Stdout); err != nil {
		return err
	} else if v != "" {
		patch.FirstName = &v
	}
	if v, err := getSimpleText(a.reader, "New last name (empty to keep)", os.Stdout); err != nil {
		return err
	} else if v != "" {
		patch.LastName = &v
	}

	if patch.Username == nil && patch.FirstName == nil && patch.LastName == nil {
		printlnFn("Nothing to change.")
		return nil
	}

	if err := a.auth.UpdateProfile(ctx, patch); err != nil {
		printlnFn("Could not update profile:", err.Error())
		return err
	}
	printlnFn("Profile updated.")
	return nil
}
