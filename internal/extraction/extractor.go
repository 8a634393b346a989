package extraction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"eligo/pkg/platform/circuit"
	"eligo/pkg/platform/sentinel"
	"eligo/pkg/requestcontext"
)

var tracer = otel.Tracer("eligo/internal/extraction")

// Extractor fans document chunks out to a Completer and merges the returned
// scheme objects in document order.
type Extractor struct {
	completer   Completer
	breaker     *circuit.Breaker
	limiter     *rate.Limiter
	logger      *slog.Logger
	chunkSize   int
	concurrency int
	timeout     time.Duration
}

type Option func(*Extractor)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithBreaker guards the backend. Calls fail fast with sentinel.ErrUnavailable
// while the breaker is open.
func WithBreaker(b *circuit.Breaker) Option {
	return func(e *Extractor) {
		e.breaker = b
	}
}

// WithRateLimit caps backend calls per second. Zero disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(e *Extractor) {
		if perSecond <= 0 {
			e.limiter = nil
			return
		}
		e.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

func WithChunkSize(runes int) Option {
	return func(e *Extractor) {
		if runes > 0 {
			e.chunkSize = runes
		}
	}
}

func WithConcurrency(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithCallTimeout bounds each backend call.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		e.timeout = d
	}
}

// NewExtractor wraps a completer. A nil completer yields an extractor that
// always reports sentinel.ErrUnavailable.
func NewExtractor(completer Completer, opts ...Option) *Extractor {
	e := &Extractor{
		completer:   completer,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		chunkSize:   DefaultChunkSize,
		concurrency: 4,
		timeout:     60 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enabled reports whether a backend is wired.
func (e *Extractor) Enabled() bool {
	return e != nil && e.completer != nil
}

// Extract returns the raw scheme objects found in text. Any failed chunk fails
// the whole extraction so callers never publish a partial scheme set.
func (e *Extractor) Extract(ctx context.Context, text string) ([]any, error) {
	if !e.Enabled() {
		return nil, fmt.Errorf("scheme extraction: %w", sentinel.ErrUnavailable)
	}
	chunks := Chunk(text, e.chunkSize)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("scheme extraction: %w", sentinel.ErrEmpty)
	}

	ctx, span := tracer.Start(ctx, "Extractor.Extract")
	defer span.End()
	span.SetAttributes(
		attribute.Int("extraction.chunks", len(chunks)),
		attribute.Int("extraction.text_runes", len([]rune(text))),
	)
	start := time.Now()

	results := make([][]any, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			schemes, err := e.extractChunk(gctx, i, chunk)
			if err != nil {
				return err
			}
			results[i] = schemes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		e.logger.ErrorContext(ctx, "scheme extraction failed",
			"request_id", requestcontext.RequestID(ctx),
			"chunks", len(chunks),
			"error", err,
		)
		return nil, err
	}

	var out []any
	for _, r := range results {
		out = append(out, r...)
	}
	if out == nil {
		out = []any{}
	}

	span.SetAttributes(attribute.Int("extraction.schemes", len(out)))
	e.logger.InfoContext(ctx, "schemes extracted",
		"request_id", requestcontext.RequestID(ctx),
		"chunks", len(chunks),
		"schemes", len(out),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

func (e *Extractor) extractChunk(ctx context.Context, index int, chunk string) ([]any, error) {
	if e.breaker != nil && !e.breaker.Allow() {
		return nil, fmt.Errorf("extraction backend %s: %w", e.breaker.Name(), sentinel.ErrUnavailable)
	}
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("chunk %d: %w", index, err)
		}
	}

	callCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	reply, err := e.completer.Complete(callCtx, systemPrompt, userPrompt(chunk))
	if err != nil {
		// A sibling failure cancels ctx; that is not a backend fault.
		if !errors.Is(err, context.Canceled) {
			e.recordFailure(ctx)
		}
		return nil, fmt.Errorf("chunk %d: %w", index, err)
	}
	e.recordSuccess(ctx)

	schemes, err := parseSchemes(reply)
	if err != nil {
		e.logger.WarnContext(ctx, "discarding unparseable model reply",
			"request_id", requestcontext.RequestID(ctx),
			"chunk", index,
			"error", err,
		)
		return nil, nil
	}
	return schemes, nil
}

func (e *Extractor) recordFailure(ctx context.Context) {
	if e.breaker == nil {
		return
	}
	if _, change := e.breaker.RecordFailure(); change.Opened {
		e.logger.WarnContext(ctx, "extraction circuit opened", "backend", e.breaker.Name())
	}
}

func (e *Extractor) recordSuccess(ctx context.Context) {
	if e.breaker == nil {
		return
	}
	if _, change := e.breaker.RecordSuccess(); change.Closed {
		e.logger.InfoContext(ctx, "extraction circuit closed", "backend", e.breaker.Name())
	}
}
