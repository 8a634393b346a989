package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eligo/internal/audit"
	"eligo/internal/document"
	"eligo/internal/eligibility/handler"
	eligibilitymetrics "eligo/internal/eligibility/metrics"
	"eligo/internal/eligibility/service"
	"eligo/internal/eligibility/store"
	"eligo/internal/extraction"
	"eligo/internal/platform/config"
	"eligo/internal/platform/httpserver"
	"eligo/internal/platform/logger"
	httpmetrics "eligo/internal/platform/metrics"
	"eligo/pkg/platform/circuit"
	"eligo/pkg/platform/middleware/metadata"
	"eligo/pkg/platform/middleware/requestid"
	"eligo/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	extractor, err := buildExtractor(ctx, cfg.Extraction, log)
	if err != nil {
		return err
	}

	svc, err := service.New(store.New(),
		service.WithLogger(log),
		service.WithMetrics(eligibilitymetrics.New()),
		service.WithExtractor(extractor),
		service.WithAuditPublisher(audit.NewPublisher(audit.NewInMemoryStore(audit.DefaultCapacity))),
	)
	if err != nil {
		return fmt.Errorf("build eligibility service: %w", err)
	}

	if cfg.SeedFile != "" {
		if err := loadSeed(ctx, svc, cfg.SeedFile); err != nil {
			return err
		}
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(httpmetrics.New().Middleware)
	r.Use(chimw.Recoverer)
	handler.New(svc, log, cfg.MaxUpload).Register(r)
	r.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, r)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting eligo", "addr", cfg.Addr, "extraction_enabled", extractor.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// buildExtractor returns a disabled extractor when no backend is configured.
func buildExtractor(ctx context.Context, cfg config.Extraction, log *slog.Logger) (*extraction.Extractor, error) {
	if !cfg.Backend.Enabled() {
		log.Info("scheme extraction disabled: no LLM provider configured")
		return extraction.NewExtractor(nil), nil
	}
	completer, err := extraction.NewCompleter(ctx, cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("build %s completer: %w", cfg.Backend.Provider, err)
	}
	opts := []extraction.Option{
		extraction.WithLogger(log),
		extraction.WithBreaker(circuit.New("extraction",
			circuit.WithFailureThreshold(cfg.BreakerFailures),
			circuit.WithCooldown(cfg.BreakerCooldown),
		)),
		extraction.WithChunkSize(cfg.ChunkSize),
		extraction.WithConcurrency(cfg.Concurrency),
		extraction.WithCallTimeout(cfg.Backend.Timeout),
	}
	if cfg.RatePerSecond > 0 {
		opts = append(opts, extraction.WithRateLimit(cfg.RatePerSecond, cfg.RateBurst))
	}
	return extraction.NewExtractor(completer, opts...), nil
}

func loadSeed(ctx context.Context, svc *service.Service, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	doc, err := document.Read(path, data)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	req, err := service.RequestFromDocument("seed", doc)
	if err != nil {
		return fmt.Errorf("seed file %s: %w", path, err)
	}
	if _, err := svc.Load(ctx, req); err != nil {
		return fmt.Errorf("load seed file %s: %w", path, err)
	}
	return nil
}
