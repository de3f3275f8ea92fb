package remote

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
)

var (
	// ErrUnavailable marks transport-level failures: the backend could not
	// be reached at all. Façades treat it as a connectivity error and fall
	// back to local storage.
	ErrUnavailable = errors.New("remote backend unavailable")

	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrRateLimited        = errors.New("rate limited")
)

// connectivitySubstrings mirrors the error-message classification the web
// client used: anything mentioning these is treated as a network problem
// rather than a real backend answer.
var connectivitySubstrings = []string{"connection", "network", "timeout", "fetch"}

// IsConnectivity reports whether err should flip the app into offline mode.
// Transport errors, deadline expiry, and messages matching the known
// connectivity substrings qualify; auth and validation failures do not.
func IsConnectivity(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, s := range connectivitySubstrings {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
