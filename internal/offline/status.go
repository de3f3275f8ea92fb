// Package offline tracks whether the remote backend is currently reachable.
// The flag is flipped by the façades on connectivity failures and by the
// periodic probe, and read anywhere the UI needs to show the offline banner.
package offline

import (
	"context"
	"sync"

	"github.com/kryptocritics/kryptocritics/internal/logging"
)

type State string

const (
	StateOnline  State = "online"
	StateOffline State = "offline"
)

// Status is the shared connectivity flag. Transitions are logged once per
// state change, not on every probe.
type Status struct {
	mu     sync.Mutex
	state  State
	reason string
	log    logging.Logger
}

func NewStatus(log logging.Logger) *Status {
	return &Status{state: StateOnline, log: log}
}

func (s *Status) SetOffline(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateOffline {
		return
	}
	s.state = StateOffline
	s.reason = reason
	s.log.Warn(context.Background(), "switched to offline mode", "reason", reason)
}

func (s *Status) SetOnline() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateOnline {
		return
	}
	s.state = StateOnline
	s.reason = ""
	s.log.Info(context.Background(), "switched to online mode")
}

func (s *Status) Offline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateOffline
}

func (s *Status) State() (State, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.reason
}
