package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/core/config"
)

type testConfig struct {
	BaseURL  string        `env:"TEST_CFG_BASE_URL" envDefault:"https://api.example.com"`
	Interval time.Duration `env:"TEST_CFG_INTERVAL" envDefault:"30s"`
	Required string        `env:"TEST_CFG_REQUIRED,required"`
}

type otherConfig struct {
	Name string `env:"TEST_CFG_NAME" envDefault:"storefront"`
}

func TestLoad(t *testing.T) {
	config.SetEnvFiles()
	t.Cleanup(config.Reset)

	t.Run("defaults and overrides", func(t *testing.T) {
		config.Reset()
		t.Setenv("TEST_CFG_REQUIRED", "yes")
		t.Setenv("TEST_CFG_INTERVAL", "5s")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "https://api.example.com", cfg.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Interval)
		assert.Equal(t, "yes", cfg.Required)
	})

	t.Run("cached per type", func(t *testing.T) {
		config.Reset()
		t.Setenv("TEST_CFG_REQUIRED", "first")

		var first testConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("TEST_CFG_REQUIRED", "second")
		var second testConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Required)

		var other otherConfig
		require.NoError(t, config.Load(&other))
		assert.Equal(t, "storefront", other.Name)
	})

	t.Run("missing required", func(t *testing.T) {
		config.Reset()
		require.NoError(t, os.Unsetenv("TEST_CFG_REQUIRED"))

		var cfg testConfig
		assert.Error(t, config.Load(&cfg))
	})

	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[testConfig](nil), config.ErrNilConfig)
	})

	t.Run("must load panics", func(t *testing.T) {
		config.Reset()
		require.NoError(t, os.Unsetenv("TEST_CFG_REQUIRED"))

		assert.Panics(t, func() {
			var cfg testConfig
			config.MustLoad(&cfg)
		})
	})
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(file, []byte("TEST_CFG_NAME=from-file\n"), 0o600))

	config.Reset()
	config.SetEnvFiles(file, filepath.Join(dir, "missing.env"))
	t.Cleanup(func() {
		_ = os.Unsetenv("TEST_CFG_NAME")
		config.SetEnvFiles()
		config.Reset()
	})

	var cfg otherConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Name)
}
