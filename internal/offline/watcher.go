package offline

import (
	"context"
	"time"
)

// Pinger is the probe the watcher uses, satisfied by the remote client.
type Pinger interface {
	Ping(ctx context.Context) error
}

const probeTimeout = 3 * time.Second

// Watch probes the backend every interval and flips the shared status
// accordingly. It blocks until ctx is cancelled, so run it on its own
// goroutine.
func Watch(ctx context.Context, st *Status, p Pinger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
			err := p.Ping(probeCtx)
			cancel()

			if err != nil {
				st.SetOffline("backend unreachable")
			} else {
				st.SetOnline()
			}

		case <-ctx.Done():
			return
		}
	}
}
