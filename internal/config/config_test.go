package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "shabd-relay", cfg.AppName)
	assert.Equal(t, DefaultLookupBaseURL, cfg.LookupBaseURL)
	assert.Equal(t, 10*time.Second, cfg.LookupTimeout)
	assert.Equal(t, 15*time.Minute, cfg.RelayInterval)
	assert.Equal(t, "bbolt", cfg.StorageType)
	assert.Equal(t, 5*24*time.Hour, cfg.StorageTTL)
	assert.Equal(t, 12*time.Hour, cfg.StorageCleanupInterval)
}

func TestLoadReadsEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LOOKUP_BASE_URL", "http://localhost:9999/v0/")
	t.Setenv("LOOKUP_TIMEOUT_SECONDS", "3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/v0", cfg.LookupBaseURL)
	assert.Equal(t, 3*time.Second, cfg.LookupTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsNonPositiveDurations(t *testing.T) {
	cases := map[string]string{
		"LOOKUP_TIMEOUT_SECONDS":           "0",
		"RELAY_INTERVAL":                   "-5",
		"STORAGE_TTL_SECONDS":              "0",
		"STORAGE_CLEANUP_INTERVAL_SECONDS": "0",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(key, val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestStorageLocationFollowsType(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_TYPE", "redis")
	t.Setenv("REDIS_ADDR", "cache:6380")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", cfg.StorageLocation())

	cfg.StorageType = "bbolt"
	assert.Equal(t, "./data/relay.db", cfg.StorageLocation())
}

// chdir mirrors testing.T.Chdir (Go 1.24+): it changes the working directory
// and restores the previous one when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}
