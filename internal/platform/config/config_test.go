package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eligo/internal/extraction"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("ELIGO_ADDR", "")
	t.Setenv("ELIGO_LLM_PROVIDER", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, int64(16<<20), cfg.MaxUpload)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.Extraction.Backend.Enabled())
	assert.Equal(t, extraction.DefaultChunkSize, cfg.Extraction.ChunkSize)
	assert.Equal(t, 4, cfg.Extraction.Concurrency)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("ELIGO_ADDR", ":9000")
	t.Setenv("ELIGO_LOG_LEVEL", "debug")
	t.Setenv("ELIGO_SEED_FILE", "/etc/eligo/schemes.yaml")
	t.Setenv("ELIGO_LLM_PROVIDER", "Gemini")
	t.Setenv("ELIGO_LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("ELIGO_LLM_TIMEOUT", "15s")
	t.Setenv("ELIGO_EXTRACT_RATE_PER_SEC", "0.5")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "/etc/eligo/schemes.yaml", cfg.SeedFile)
	assert.Equal(t, extraction.ProviderGemini, cfg.Extraction.Backend.Provider)
	assert.Equal(t, "g-key", cfg.Extraction.Backend.APIKey)
	assert.True(t, cfg.Extraction.Backend.Enabled())
	assert.Equal(t, 15*time.Second, cfg.Extraction.Backend.Timeout)
	assert.InDelta(t, 0.5, cfg.Extraction.RatePerSecond, 1e-9)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"bad duration", "ELIGO_LLM_TIMEOUT", "soon", "ELIGO_LLM_TIMEOUT"},
		{"bad int", "ELIGO_EXTRACT_CONCURRENCY", "many", "ELIGO_EXTRACT_CONCURRENCY"},
		{"zero concurrency", "ELIGO_EXTRACT_CONCURRENCY", "0", "must be positive"},
		{"unknown provider", "ELIGO_LLM_PROVIDER", "cohere", "unknown provider"},
		{"bad level", "ELIGO_LOG_LEVEL", "loud", "ELIGO_LOG_LEVEL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
