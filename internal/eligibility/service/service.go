// Package service orchestrates scheme loading and eligibility checks on top of
// the pure engine: it owns the published scheme snapshot and the load audit
// trail.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"eligo/internal/audit"
	"eligo/internal/document"
	"eligo/internal/eligibility/engine"
	"eligo/internal/eligibility/metrics"
	"eligo/internal/eligibility/models"
	"eligo/internal/eligibility/normalize"
	"eligo/internal/eligibility/profile"
	"eligo/internal/eligibility/store"
	dErrors "eligo/pkg/domain-errors"
	"eligo/pkg/platform/sentinel"
	"eligo/pkg/requestcontext"
)

var tracer = otel.Tracer("eligo/internal/eligibility/service")

type SchemeStore interface {
	Current() *store.Snapshot
	Publish(snap *store.Snapshot)
}

type Extractor interface {
	Enabled() bool
	Extract(ctx context.Context, text string) ([]any, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
	Recent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Service loads scheme sets and checks profiles against the current one.
type Service struct {
	store          SchemeStore
	extractor      Extractor
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithExtractor enables loads from free text.
func WithExtractor(e Extractor) Option {
	return func(s *Service) {
		s.extractor = e
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// New constructs a Service.
func New(schemes SchemeStore, opts ...Option) (*Service, error) {
	if schemes == nil {
		return nil, errors.New("scheme store is required")
	}
	s := &Service{
		store:  schemes,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// LoadRequest carries one load. Exactly one of Schemes (an already decoded
// JSON/YAML document) or Text (free text for extraction) is used; Text wins
// when both are set.
type LoadRequest struct {
	Source  string
	Schemes any
	Text    string
}

// RequestFromDocument decodes structured documents into raw schemes and
// routes everything else to extraction.
func RequestFromDocument(source string, doc document.Document) (LoadRequest, error) {
	req := LoadRequest{Source: source}
	var err error
	switch doc.Kind {
	case document.KindJSON:
		req.Schemes, err = normalize.DecodeJSON([]byte(doc.Content))
	case document.KindYAML:
		req.Schemes, err = normalize.DecodeYAML([]byte(doc.Content))
	default:
		req.Text = doc.Content
	}
	if err != nil {
		return LoadRequest{}, fmt.Errorf("invalid %s file: %w", doc.Kind, err)
	}
	return req, nil
}

// LoadResult describes the snapshot a successful load published.
type LoadResult struct {
	Message         string
	SchemesCount    int
	CriteriaKeys    []string
	SnapshotID      uuid.UUID
	DroppedSchemes  int
	DroppedCriteria int
}

// Load replaces the scheme set. It is all-or-nothing: any failure leaves the
// published snapshot untouched.
func (s *Service) Load(ctx context.Context, req LoadRequest) (*LoadResult, error) {
	ctx, span := tracer.Start(ctx, "eligibility.Load")
	defer span.End()
	span.SetAttributes(attribute.String("load.source", req.Source))

	start := time.Now()
	requestID := requestcontext.RequestID(ctx)
	defer func() { s.metrics.ObserveLoadLatency(time.Since(start)) }()

	raw := req.Schemes
	if req.Text != "" {
		extracted, err := s.extract(ctx, req.Text)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "extraction failed")
			s.recordLoadFailure(ctx, req.Source, audit.ActionLoadFailed, err)
			return nil, err
		}
		raw = extracted
	}

	schemes, stats, err := normalize.Schemes(raw)
	if err != nil {
		span.SetStatus(codes.Error, "payload rejected")
		s.recordLoadFailure(ctx, req.Source, audit.ActionLoadRejected, err)
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "schemes payload must be a JSON array of schemes")
	}

	keys := normalize.Keys(schemes)
	snap := store.NewSnapshot(req.Source, schemes, keys, requestcontext.Now(ctx))
	s.store.Publish(snap)

	s.metrics.IncrementLoad(req.Source, "ok")
	s.metrics.SetSchemesLoaded(len(schemes))
	s.metrics.AddDropped(stats.DroppedSchemes, stats.DroppedCriteria)
	s.emitAudit(ctx, audit.Event{
		Timestamp:       snap.LoadedAt,
		Action:          audit.ActionSchemesLoaded,
		Source:          req.Source,
		SnapshotID:      snap.ID,
		SchemeCount:     len(schemes),
		DroppedSchemes:  stats.DroppedSchemes,
		DroppedCriteria: stats.DroppedCriteria,
		RequestID:       requestID,
	})
	span.SetAttributes(
		attribute.String("load.snapshot_id", snap.ID.String()),
		attribute.Int("load.schemes", len(schemes)),
	)
	s.logger.InfoContext(ctx, "schemes loaded",
		"request_id", requestID,
		"source", req.Source,
		"snapshot_id", snap.ID,
		"schemes", len(schemes),
		"criteria_keys", len(keys),
		"dropped_schemes", stats.DroppedSchemes,
		"dropped_criteria", stats.DroppedCriteria,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &LoadResult{
		Message:         fmt.Sprintf("Loaded %d schemes", len(schemes)),
		SchemesCount:    len(schemes),
		CriteriaKeys:    keys,
		SnapshotID:      snap.ID,
		DroppedSchemes:  stats.DroppedSchemes,
		DroppedCriteria: stats.DroppedCriteria,
	}, nil
}

func (s *Service) extract(ctx context.Context, text string) ([]any, error) {
	if s.extractor == nil || !s.extractor.Enabled() {
		return nil, dErrors.New(dErrors.CodeUnavailable, "scheme extraction is not configured")
	}
	out, err := s.extractor.Extract(ctx, text)
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, sentinel.ErrEmpty):
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "no text to extract schemes from")
	case errors.Is(err, context.DeadlineExceeded):
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "scheme extraction timed out")
	default:
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "scheme extraction failed")
	}
}

func (s *Service) recordLoadFailure(ctx context.Context, source string, action audit.Action, err error) {
	result := "failed"
	if action == audit.ActionLoadRejected {
		result = "rejected"
	}
	s.metrics.IncrementLoad(source, result)
	s.emitAudit(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Action:    action,
		Source:    source,
		RequestID: requestcontext.RequestID(ctx),
		Reason:    err.Error(),
	})
	s.logger.WarnContext(ctx, "scheme load failed",
		"request_id", requestcontext.RequestID(ctx),
		"source", source,
		"action", action,
		"error", err,
	)
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	event.ClientIP = requestcontext.ClientIP(ctx)
	event.Client = requestcontext.UserAgent(ctx)
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"request_id", event.RequestID,
			"action", event.Action,
			"error", err,
		)
	}
}

// Check evaluates the submission against every scheme of the current
// snapshot. Missing fields of pending schemes are ranked and turned into
// follow-up questions. A check never fails on the content of the submission.
func (s *Service) Check(ctx context.Context, sub models.Submission) (*models.CheckResult, error) {
	ctx, span := tracer.Start(ctx, "eligibility.Check")
	defer span.End()
	start := time.Now()

	snap := s.store.Current()
	p := profile.Build(sub)

	result := models.NewCheckResult()
	var pending []models.Scheme
	var missing [][]string
	for _, scheme := range snap.Schemes {
		ev := engine.Evaluate(p, scheme.Criteria)
		s.metrics.IncrementVerdict(string(ev.Verdict))
		summary := models.SchemeSummary{Name: scheme.Name, Benefits: scheme.Benefits}
		switch ev.Verdict {
		case models.VerdictEligible:
			result.Eligible = append(result.Eligible, summary)
		case models.VerdictNotEligible:
			result.NotEligible = append(result.NotEligible, models.IneligibleScheme{SchemeSummary: summary, Reasons: ev.Reasons})
		case models.VerdictNeedsInfo:
			pending = append(pending, scheme)
			missing = append(missing, ev.Missing)
		}
	}
	if ranked := engine.RankMissing(missing); len(ranked) > 0 {
		result.MissingFields = ranked
		result.MissingQuestions = engine.Questions(pending, ranked)
	}

	elapsed := time.Since(start)
	s.metrics.ObserveCheckLatency(elapsed)
	span.SetAttributes(
		attribute.String("check.snapshot_id", snap.ID.String()),
		attribute.Int("check.schemes", len(snap.Schemes)),
		attribute.Int("check.eligible", len(result.Eligible)),
		attribute.Int("check.pending", len(pending)),
	)
	s.logger.InfoContext(ctx, "eligibility checked",
		"request_id", requestcontext.RequestID(ctx),
		"snapshot_id", snap.ID,
		"schemes", len(snap.Schemes),
		"eligible", len(result.Eligible),
		"not_eligible", len(result.NotEligible),
		"needs_info", len(pending),
		"duration_ms", elapsed.Milliseconds(),
	)
	return result, nil
}

// Health describes the service state.
type Health struct {
	SchemesLoaded     int
	Loaded            bool
	SnapshotID        uuid.UUID
	LoadedAt          time.Time
	PDFSupported      bool
	ExtractionEnabled bool
}

func (s *Service) Health(_ context.Context) Health {
	snap := s.store.Current()
	h := Health{
		SchemesLoaded:     len(snap.Schemes),
		Loaded:            snap.Loaded(),
		PDFSupported:      document.PDFSupported,
		ExtractionEnabled: s.extractor != nil && s.extractor.Enabled(),
	}
	if h.Loaded {
		h.SnapshotID = snap.ID
		h.LoadedAt = snap.LoadedAt
	}
	return h
}

// LoadHistory returns up to limit recent load events, newest first.
func (s *Service) LoadHistory(ctx context.Context, limit int) ([]audit.Event, error) {
	if s.auditPublisher == nil {
		return []audit.Event{}, nil
	}
	events, err := s.auditPublisher.Recent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read load history")
	}
	return events, nil
}
