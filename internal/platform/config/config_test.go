package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("PGSQL_URL", "postgres://localhost/ledger")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/ledger", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.False(t, cfg.TaxLookupEnabled)
	assert.Equal(t, 5*time.Second, cfg.TaxLookupTimeout)
	assert.Equal(t, "0.4", cfg.ReservationFallbackRatio.String())
	assert.Equal(t, int64(100), cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Period)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	viper.Reset()
	t.Setenv("TAX_LOOKUP_TIMEOUT", "soon")
	t.Setenv("RESERVATION_FALLBACK_RATIO", "-1")
	t.Setenv("RATE_LIMIT", "lots")
	t.Setenv("TAX_LOOKUP_ENABLED", "true")
	t.Setenv("TAX_LOOKUP_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.TaxLookupTimeout)
	assert.Equal(t, "0.4", cfg.ReservationFallbackRatio.String())
	assert.Equal(t, int64(100), cfg.RateLimit.Limit)
	assert.False(t, cfg.TaxLookupEnabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Setenv("TAX_LOOKUP_ENABLED", "true")
	t.Setenv("TAX_LOOKUP_URL", "https://rates.example.test")
	t.Setenv("TAX_LOOKUP_TIMEOUT", "2s")
	t.Setenv("RESERVATION_FALLBACK_RATIO", "0.35")
	t.Setenv("RATE_LIMIT", "10-S")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.TaxLookupEnabled)
	assert.Equal(t, 2*time.Second, cfg.TaxLookupTimeout)
	assert.Equal(t, "0.35", cfg.ReservationFallbackRatio.String())
	assert.Equal(t, int64(10), cfg.RateLimit.Limit)
	assert.Equal(t, time.Second, cfg.RateLimit.Period)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSAllowedOrigins)
}
