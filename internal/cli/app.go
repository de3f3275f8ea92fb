// Package cli implements the interactive KryptoCritics shell: browsing the
// bundled catalog, reviewing and wishlisting movies, and account handling,
// with the online/offline switching done by the underlying services.
package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/kryptocritics/kryptocritics/internal/catalog"
	"github.com/kryptocritics/kryptocritics/internal/config"
	"github.com/kryptocritics/kryptocritics/internal/logging"
	"github.com/kryptocritics/kryptocritics/internal/offline"
	"github.com/kryptocritics/kryptocritics/internal/remote"
	"github.com/kryptocritics/kryptocritics/internal/services"
	"github.com/kryptocritics/kryptocritics/internal/store"
)

const (
	startupPingTimeout = 3 * time.Second
	restoreTimeout     = 5 * time.Second
)

type App struct {
	config   *config.Config
	catalog  *catalog.Catalog
	local    *store.Local
	client   remote.Client
	status   *offline.Status
	auth     *services.AuthService
	reviews  *services.ReviewService
	stats    *services.StatsService
	wishlist *services.WishlistService
	log      logging.Logger
	reader   *bufio.Reader
}

// NewApp wires the application together: catalog, local database, remote
// client (when configured) and the services on top of them.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}

	local, err := store.OpenLocal(ctx, cfg.LocalDBPath)
	if err != nil {
		return nil, err
	}

	status := offline.NewStatus(log)

	var client remote.Client
	if cfg.SupabaseURL != "" && cfg.SupabaseAnonKey != "" {
		sb := remote.NewSupabase(cfg.SupabaseURL, cfg.SupabaseAnonKey, log)
		client = sb

		pingCtx, cancel := context.WithTimeout(ctx, startupPingTimeout)
		if err := sb.Ping(pingCtx); err != nil {
			status.SetOffline("backend unreachable")
		}
		cancel()
	} else {
		status.SetOffline("remote backend not configured")
	}

	rs := services.NewReviewService(client, store.NewMemory(), status, log)
	stats := services.NewStatsService(rs, cat, log)
	rs.OnChange(func(ctx context.Context, movieID string) {
		stats.Update(ctx, movieID)
	})

	return &App{
		config:   cfg,
		catalog:  cat,
		local:    local,
		client:   client,
		status:   status,
		auth:     services.NewAuthService(client, local, status, log, cfg.SignInTimeout),
		reviews:  rs,
		stats:    stats,
		wishlist: services.NewWishlistService(client, local, status, log),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores a persisted session, starts the connectivity watcher, and
// hands control to the REPL. It returns when the user exits or ctx is
// cancelled.
func (a *App) Run(ctx context.Context) {
	a.auth.Restore(ctx, restoreTimeout)

	if a.client != nil {
		go offline.Watch(ctx, a.status, a.client, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.statusLine, bufio.NewScanner(os.Stdin))
}

func (a *App) Close() error {
	return a.local.Close()
}

func (a *App) isLoggedIn() bool {
	return a.auth.State() == services.StateAuthenticated
}

// statusLine is the short prompt annotation: display name plus connectivity.
func (a *App) statusLine() string {
	s := ""
	if name := a.auth.Username(context.Background()); name != "" && a.isLoggedIn() {
		s = name + " "
	}
	state, _ := a.status.State()
	return "(" + s + string(state) + ")"
}
