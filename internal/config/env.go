package config

import "os"

// parseEnv overlays Config with environment variables. The backend
// credentials normally arrive this way, via a .env file loaded at startup.
func parseEnv(cfg *Config) {
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		cfg.SupabaseURL = v
	}
	if v := os.Getenv("SUPABASE_ANON_KEY"); v != "" {
		cfg.SupabaseAnonKey = v
	}
	if v := os.Getenv("KRYPTO_DB_PATH"); v != "" {
		cfg.LocalDBPath = v
	}
}
