package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name:        "all flags",
			args:        []string{"cmd", "-u", "https://proj.supabase.co", "-k", "flag-key", "-d", "/tmp/app.db", "-i", "10", "-t", "20"},
			expectPanic: false,
			expected: &Config{
				SupabaseURL:         "https://proj.supabase.co",
				SupabaseAnonKey:     "flag-key",
				LocalDBPath:         "/tmp/app.db",
				OnlineCheckInterval: 10 * time.Second,
				SignInTimeout:       20 * time.Second,
			},
		},
		{
			name:        "incorrect check interval",
			args:        []string{"cmd", "-i", "abc"},
			expectPanic: true,
			expected:    &Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
