package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_UpstreamConfig(t *testing.T) {
	t.Setenv("FACILITY_API_URL", "http://preschool-app:8081/")
	t.Setenv("AUTH_API_URL", "http://auth-app:8083")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://preschool-app:8081", cfg.Upstream.FacilityURL)
	assert.Equal(t, "http://auth-app:8083", cfg.Upstream.AuthURL)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FACILITY_API_URL", "")
	t.Setenv("AUTH_API_URL", "")
	t.Setenv("SESSION_IDLE_TIMEOUT", "")
	t.Setenv("DISPLAY_LOCALE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8081", cfg.Upstream.FacilityURL)
	assert.Equal(t, "http://localhost:8081", cfg.Upstream.AuthURL)
	assert.Equal(t, "vrtic_session", cfg.Session.CookieName)
	assert.Equal(t, 2*time.Hour, cfg.Session.IdleTimeout)
	assert.Equal(t, "sr-Latn", cfg.Display.Locale)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("REDIS_ENABLED", "maybe")
	t.Setenv("SESSION_SWEEP_INTERVAL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Session.SweepInterval)
}
