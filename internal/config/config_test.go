package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.Server.URL)
	assert.True(t, cfg.UI.ShowFeaturedRail)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Logging.File)
}

func TestIsConfigured(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.IsConfigured())

	cfg.Server.URL = "http://localhost:8000"
	assert.True(t, cfg.IsConfigured())
}

func TestEnvOverridesServerURL(t *testing.T) {
	t.Setenv("VERSO_SERVER_URL", "http://env.example.com:8000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://env.example.com:8000", cfg.Server.URL)
}
