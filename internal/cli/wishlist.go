package cli

import (
	"context"
	"fmt"
)

// Wish handles the wishlist command group:
//
//	wish            list wishlisted movies
//	wish add <id>   add a movie
//	wish rm <id>    remove a movie
func (a *App) Wish(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first to use the wishlist.")
		return nil
	}
	user := a.auth.CurrentUser()

	if len(args) == 0 {
		ids := a.wishlist.MovieIDs(ctx, user.ID)
		if len(ids) == 0 {
			printlnFn("Your wishlist is empty.")
			return nil
		}
		for _, id := range ids {
			if m, ok := a.catalog.ByID(id); ok {
				printlnFn(fmt.Sprintf("  %s  %s (%d)", m.ID, m.Title, m.Year))
			} else {
				printlnFn("  " + id)
			}
		}
		return nil
	}

	if len(args) < 2 {
		printlnFn("Usage: wish [add|rm <movie id>]")
		return nil
	}

	movieID := args[1]
	if _, ok := a.catalog.ByID(movieID); !ok {
		printlnFn("No such movie:", movieID)
		return nil
	}

	switch args[0] {
	case "add":
		if err := a.wishlist.Add(ctx, user.ID, movieID); err != nil {
			printlnFn("Could not update wishlist:", err.Error())
			return err
		}
		printlnFn("Added to wishlist.")
	case "rm", "remove":
		if err := a.wishlist.Remove(ctx, user.ID, movieID); err != nil {
			printlnFn("Could not update wishlist:", err.Error())
			return err
		}
		printlnFn("Removed from wishlist.")
	default:
		printlnFn("Usage: wish [add|rm <movie id>]")
	}
	return nil
}
