package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faraid-engine/internal/faraid"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	policy, err := cfg.RaddPolicy()
	require.NoError(t, err)
	assert.Equal(t, faraid.RaddExcludeSpouse, policy)
	assert.Equal(t, 2*time.Second, cfg.PriceFeed.Timeout)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faraid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
faraid:
  radd_policy: fail-closed
price_feed:
  url: http://prices.internal
  cache_ttl: 1m
  gold_price_per_gram: "80.5"
`), 0o600))

	t.Setenv("PORT", "7070")
	t.Setenv("PRICE_FEED_TIMEOUT", "500ms")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "fail-closed", cfg.Faraid.RaddPolicy)
	assert.Equal(t, "http://prices.internal", cfg.PriceFeed.URL)
	assert.Equal(t, time.Minute, cfg.PriceFeed.CacheTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.PriceFeed.Timeout)

	gold, silver, err := cfg.FallbackPrices()
	require.NoError(t, err)
	assert.Equal(t, "80.5", gold.String())
	assert.Equal(t, "0.9", silver.String())
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Run("radd policy", func(t *testing.T) {
		t.Setenv("FARAID_RADD_POLICY", "give-it-all-to-the-spouse")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("duration", func(t *testing.T) {
		t.Setenv("PRICE_CACHE_TTL", "soon")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("price", func(t *testing.T) {
		t.Setenv("GOLD_PRICE_PER_GRAM", "seventy")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [port"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
