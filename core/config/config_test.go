package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "ABJ", cfg.Server.Airport)
	assert.Equal(t, "generic", cfg.Server.DefaultFamily)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "baggage.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "manifests", cfg.Storage.Bucket)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_AIRPORT", "LFW")
	t.Setenv("DATABASE_DRIVER", "mysql")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "LFW", cfg.Server.Airport)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}
