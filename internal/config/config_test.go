package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "public", cfg.Output.Dir)
	assert.False(t, cfg.Output.Gzip)
	assert.Equal(t, "https://opensky-network.org/api", cfg.OpenSky.BaseURL)
	assert.Equal(t, "credentials.json", cfg.OpenSky.CredentialsFile)
	assert.Empty(t, cfg.Airport.APIKey)
	assert.Equal(t, "https://api.api-ninjas.com/v1/airports", cfg.Airport.MetadataURL)
	assert.Equal(t, "8080", cfg.Serve.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "dist")
	t.Setenv("OUTPUT_GZIP", "true")
	t.Setenv("OPENSKY_CLIENT_ID", "client-1")
	t.Setenv("OPENSKY_CLIENT_SECRET", "hunter2")
	t.Setenv("AIRPORT_API_KEY", "key-123")
	t.Setenv("SERVE_PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "dist", cfg.Output.Dir)
	assert.True(t, cfg.Output.Gzip)
	assert.Equal(t, "client-1", cfg.OpenSky.ClientID)
	assert.Equal(t, "hunter2", cfg.OpenSky.ClientSecret)
	assert.Equal(t, "key-123", cfg.Airport.APIKey)
	assert.Equal(t, "9999", cfg.Serve.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadPartialEnvKeepsOtherDefaults(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "site")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "site", cfg.Output.Dir)
	assert.Equal(t, "https://opensky-network.org/api", cfg.OpenSky.BaseURL)
}
