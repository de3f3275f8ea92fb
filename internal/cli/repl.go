package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Movies(ctx context.Context) error
	Movie(ctx context.Context, id string) error
	AddReview(ctx context.Context, movieID string) error
	DeleteReview(ctx context.Context, movieID string) error
	MyReviews(ctx context.Context) error
	Wish(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the KryptoCritics CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	printlnFn("Welcome to KryptoCritics (type 'help' for commands)")

	for {
		printlnFn(fmt.Sprintf("kc %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: (m)ovies, movie <id>, review <id>, delreview <id>, myreviews, wish [add|rm <id>], status, exit")
			if a.isLoggedIn() {
				printlnFn("Account: profile, editprofile, logout")
			} else {
				printlnFn("Account: register, login")
			}

		case "m", "movies", "list":
			_ = a.Movies(ctx)

		case "movie":
			if len(args) == 0 {
				printlnFn("Usage: movie <id>")
				continue
			}
			_ = a.Movie(ctx, args[0])

		case "review":
			if len(args) == 0 {
				printlnFn("Usage: review <movie id>")
				continue
			}
			_ = a.AddReview(ctx, args[0])

		case "delreview":
			if len(args) == 0 {
				printlnFn("Usage: delreview <movie id>")
				continue
			}
			_ = a.DeleteReview(ctx, args[0])

		case "myreviews":
			_ = a.MyReviews(ctx)

		case "wish":
			_ = a.Wish(ctx, args)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "editprofile":
			_ = a.EditProfile(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
