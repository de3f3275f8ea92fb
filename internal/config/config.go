// Package config assembles runtime settings for the CLI from defaults,
// environment variables, an optional JSON file, and command-line flags, in
// that order of precedence.
package config

import "time"

// Config holds runtime settings for the KryptoCritics CLI.
//
// SupabaseURL and SupabaseAnonKey identify the hosted backend project; when
// either is empty the app runs in local-only mode. LocalDBPath is the SQLite
// file used for the offline wishlist and session persistence.
type Config struct {
	SupabaseURL         string
	SupabaseAnonKey     string
	LocalDBPath         string
	OnlineCheckInterval time.Duration
	SignInTimeout       time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.LocalDBPath = "kryptocritics.db"
	c.OnlineCheckInterval = 5 * time.Second
	c.SignInTimeout = 10 * time.Second
}

// Load constructs a Config, applies defaults, then overlays values from the
// environment, JSON (if present), and command-line flags (if present). Later
// sources take precedence over earlier ones.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
