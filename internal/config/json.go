package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/kryptocritics/kryptocritics/internal/flagx"
	"github.com/kryptocritics/kryptocritics/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "5s"
// or as integer nanoseconds.
type JsonConfig struct {
	SupabaseURL         string         `json:"supabase_url"`
	SupabaseAnonKey     string         `json:"supabase_anon_key"`
	LocalDBPath         string         `json:"local_db_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	SignInTimeout       timex.Duration `json:"sign_in_timeout"`
}

// parseJson overlays Config with values from the JSON file named by the
// -c/-config flag. Absent flag means no JSON is loaded. Read or unmarshal
// errors panic; config is resolved once at startup and a bad file should
// stop the program.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.SupabaseURL != "" {
		cfg.SupabaseURL = jc.SupabaseURL
	}
	if jc.SupabaseAnonKey != "" {
		cfg.SupabaseAnonKey = jc.SupabaseAnonKey
	}
	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.SignInTimeout.Duration > 0 {
		cfg.SignInTimeout = time.Duration(jc.SignInTimeout.Duration)
	}
}
