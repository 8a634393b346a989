package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"eligo/internal/extraction"
)

// Server captures process level configuration.
type Server struct {
	Addr      string
	LogLevel  slog.Level
	MaxUpload int64
	// SeedFile, when set, is loaded as the first scheme snapshot at startup.
	SeedFile        string
	ShutdownTimeout time.Duration

	Extraction Extraction
}

// Extraction configures the LLM-backed scheme extractor.
type Extraction struct {
	Backend     extraction.Config
	ChunkSize   int
	Concurrency int
	// RatePerSecond <= 0 disables client-side rate limiting.
	RatePerSecond float64
	RateBurst     int
	// BreakerFailures consecutive failures open the circuit breaker.
	BreakerFailures int
	BreakerCooldown time.Duration
}

const (
	defaultAddr            = ":8080"
	defaultMaxUpload       = 16 << 20
	defaultShutdownTimeout = 10 * time.Second
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	e := &env{lookup: os.LookupEnv}
	cfg := Server{
		Addr:            e.str("ELIGO_ADDR", defaultAddr),
		LogLevel:        e.level("ELIGO_LOG_LEVEL", slog.LevelInfo),
		MaxUpload:       int64(e.int("ELIGO_MAX_UPLOAD_BYTES", defaultMaxUpload)),
		SeedFile:        e.str("ELIGO_SEED_FILE", ""),
		ShutdownTimeout: e.duration("ELIGO_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		Extraction: Extraction{
			Backend: extraction.Config{
				Provider:  extraction.Provider(strings.ToLower(e.str("ELIGO_LLM_PROVIDER", ""))),
				APIKey:    e.str("ELIGO_LLM_API_KEY", ""),
				Model:     e.str("ELIGO_LLM_MODEL", ""),
				BaseURL:   e.str("ELIGO_LLM_BASE_URL", ""),
				MaxTokens: e.int("ELIGO_LLM_MAX_TOKENS", 0),
				Timeout:   e.duration("ELIGO_LLM_TIMEOUT", 60*time.Second),
			},
			ChunkSize:       e.int("ELIGO_EXTRACT_CHUNK_RUNES", extraction.DefaultChunkSize),
			Concurrency:     e.int("ELIGO_EXTRACT_CONCURRENCY", 4),
			RatePerSecond:   e.float("ELIGO_EXTRACT_RATE_PER_SEC", 2),
			RateBurst:       e.int("ELIGO_EXTRACT_RATE_BURST", 4),
			BreakerFailures: e.int("ELIGO_EXTRACT_BREAKER_FAILURES", 5),
			BreakerCooldown: e.duration("ELIGO_EXTRACT_BREAKER_COOLDOWN", 30*time.Second),
		},
	}
	if cfg.Extraction.Backend.APIKey == "" {
		// provider specific keys, as the SDKs name them
		switch cfg.Extraction.Backend.Provider {
		case extraction.ProviderAnthropic:
			cfg.Extraction.Backend.APIKey = e.str("ANTHROPIC_API_KEY", "")
		case extraction.ProviderGemini:
			cfg.Extraction.Backend.APIKey = e.str("GEMINI_API_KEY", "")
		case extraction.ProviderOpenAI:
			cfg.Extraction.Backend.APIKey = e.str("OPENAI_API_KEY", "")
		}
	}
	if err := e.err(); err != nil {
		return Server{}, err
	}
	if err := cfg.validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (s Server) validate() error {
	switch s.Extraction.Backend.Provider {
	case extraction.ProviderNone, extraction.ProviderAnthropic, extraction.ProviderGemini, extraction.ProviderOpenAI:
	default:
		return fmt.Errorf("ELIGO_LLM_PROVIDER: unknown provider %q", s.Extraction.Backend.Provider)
	}
	if s.MaxUpload <= 0 {
		return fmt.Errorf("ELIGO_MAX_UPLOAD_BYTES must be positive")
	}
	if s.Extraction.Concurrency <= 0 {
		return fmt.Errorf("ELIGO_EXTRACT_CONCURRENCY must be positive")
	}
	return nil
}

// env reads typed values and remembers the first parse failure.
type env struct {
	lookup func(string) (string, bool)
	first  error
}

func (e *env) raw(key string) (string, bool) {
	v, ok := e.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *env) fail(key, value string, err error) {
	if e.first == nil {
		e.first = fmt.Errorf("%s=%q: %w", key, value, err)
	}
}

func (e *env) err() error { return e.first }

func (e *env) str(key, def string) string {
	if v, ok := e.raw(key); ok {
		return v
	}
	return def
}

func (e *env) int(key string, def int) int {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return n
}

func (e *env) float(key string, def float64) float64 {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return f
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return d
}

func (e *env) level(key string, def slog.Level) slog.Level {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		e.fail(key, v, err)
		return def
	}
	return lvl
}
