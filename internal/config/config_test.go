package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "kryptocritics.db", c.LocalDBPath)
	assert.Equal(t, 5*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 10*time.Second, c.SignInTimeout)
	assert.Empty(t, c.SupabaseURL)
	assert.Empty(t, c.SupabaseAnonKey)
}

func TestLoad_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := Load()

	require.NotNil(t, cfg, "Load must not return nil")
	assert.Equal(t, "kryptocritics.db", cfg.LocalDBPath)
	assert.Equal(t, 5*time.Second, cfg.OnlineCheckInterval)
}

func Test_parseEnv(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("KRYPTO_DB_PATH", "/tmp/other.db")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://proj.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "anon-key", cfg.SupabaseAnonKey)
	assert.Equal(t, "/tmp/other.db", cfg.LocalDBPath)
}

func Test_parseEnv_EmptyValuesLeaveDefaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("KRYPTO_DB_PATH", "")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Empty(t, cfg.SupabaseURL)
	assert.Equal(t, "kryptocritics.db", cfg.LocalDBPath)
}
