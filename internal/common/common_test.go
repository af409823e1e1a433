package common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:8000", cfg.Server.BaseURL)
	assert.Equal(t, 180*time.Second, cfg.Server.ExtractTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.LookupTimeout)
	assert.Equal(t, "auto", cfg.Options.OutputCurrency)
	assert.True(t, cfg.Options.SyncHSCodes)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SHIPDOCS_SERVER", "https://extract.example.com")
	t.Setenv("SHIPDOCS_EXTRACT_TIMEOUT", "2m")
	t.Setenv("SHIPDOCS_SYNC_HS_CODES", "false")
	t.Setenv("SHIPDOCS_CURRENCY", "USD")

	cfg := LoadConfig()
	assert.Equal(t, "https://extract.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 2*time.Minute, cfg.Server.ExtractTimeout)
	assert.False(t, cfg.Options.SyncHSCodes)
	assert.Equal(t, "USD", cfg.Options.OutputCurrency)
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SHIPDOCS_EXTRACT_TIMEOUT", "soon")
	t.Setenv("SHIPDOCS_SYNC_HS_CODES", "yep")

	cfg := LoadConfig()
	assert.Equal(t, 180*time.Second, cfg.Server.ExtractTimeout)
	assert.True(t, cfg.Options.SyncHSCodes)
}

func TestConfigValidate(t *testing.T) {
	cfg := LoadConfig()
	cfg.Server.BaseURL = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewAppError("CONFIG_ERROR", "server unreachable", cause)

	assert.Contains(t, err.Error(), "CONFIG_ERROR")
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, cause))

	assert.NoError(t, WrapError(nil, "context"))
	wrapped := WrapError(cause, "probe failed")
	assert.True(t, errors.Is(wrapped, cause))
}
