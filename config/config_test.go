package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, "storefront.db", cfg.SQLitePath)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.False(t, cfg.StrictStorage)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "mongo")
	t.Setenv("POLL_INTERVAL", "500ms")
	t.Setenv("STRICT_STORAGE", "true")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "mongo", cfg.StorageDriver)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	assert.True(t, cfg.StrictStorage)
}

func TestParseRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Parse()
	assert.Error(t, err)
}

func TestParseRejectsBadDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("POLL_INTERVAL", "soon")
	_, err := Parse()
	assert.Error(t, err)
}
