package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(25), cfg.Server.MaxUploadMB)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.InDelta(t, 0.01, cfg.Validation.AmountTolerance, 1e-9)
	assert.Empty(t, cfg.Validation.Currencies)
	assert.Equal(t, 4, cfg.Extract.Concurrency)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("INVOICEQC_SERVER_PORT", ":9090")
	t.Setenv("INVOICEQC_LOG_LEVEL", "debug")
	t.Setenv("INVOICEQC_VALIDATION_AMOUNT_TOLERANCE", "0.5")
	t.Setenv("INVOICEQC_VALIDATION_CURRENCIES", "USD, EUR,")
	t.Setenv("INVOICEQC_EXTRACT_CONCURRENCY", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.InDelta(t, 0.5, cfg.Validation.AmountTolerance, 1e-9)
	assert.Equal(t, []string{"USD", "EUR"}, cfg.Validation.Currencies)
	assert.Equal(t, 8, cfg.Extract.Concurrency)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Server.Port)
}
