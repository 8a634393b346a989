package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"eligo/internal/audit"
	"eligo/internal/document"
	"eligo/internal/eligibility/models"
	"eligo/internal/eligibility/normalize"
	"eligo/internal/eligibility/service"
	dErrors "eligo/pkg/domain-errors"
	"eligo/pkg/platform/httputil"
	"eligo/pkg/platform/sentinel"
	"eligo/pkg/requestcontext"
)

const (
	// DefaultMaxUpload bounds multipart uploads.
	DefaultMaxUpload = 16 << 20

	defaultHistoryLimit = 20
	maxHistoryLimit     = audit.DefaultCapacity
)

// Load sources recorded in the audit trail and metrics.
const (
	SourcePasteJSON = "paste_json"
	SourcePasteText = "paste_text"
	SourceFile      = "file"
	SourceAPI       = "api"
)

// Service defines the interface for eligibility operations.
type Service interface {
	Load(ctx context.Context, req service.LoadRequest) (*service.LoadResult, error)
	Check(ctx context.Context, sub models.Submission) (*models.CheckResult, error)
	Health(ctx context.Context) service.Health
	LoadHistory(ctx context.Context, limit int) ([]audit.Event, error)
}

// Handler wires eligibility endpoints to the eligibility service.
type Handler struct {
	service   Service
	logger    *slog.Logger
	maxUpload int64
}

// New constructs an eligibility handler. A non-positive maxUpload uses
// DefaultMaxUpload.
func New(service Service, logger *slog.Logger, maxUpload int64) *Handler {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUpload
	}
	return &Handler{
		service:   service,
		logger:    logger,
		maxUpload: maxUpload,
	}
}

// Register mounts eligibility endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/load_schemes", h.HandleLoadSchemes)
	r.Post("/check", h.HandleCheck)
	r.Get("/health", h.HandleHealth)
	r.Get("/loads", h.HandleLoadHistory)
}

// HandleLoadSchemes handles POST /load_schemes. Browser forms post
// multipart data; API clients post JSON.
func (h *Handler) HandleLoadSchemes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	var (
		req service.LoadRequest
		ok  bool
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" || mediaType == "application/x-www-form-urlencoded" {
		req, ok = h.loadRequestFromForm(w, r)
	} else {
		req, ok = h.loadRequestFromJSON(w, r)
	}
	if !ok {
		return
	}

	result, err := h.service.Load(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "scheme load failed",
			"request_id", requestID,
			"source", req.Source,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "scheme load handled",
		"request_id", requestID,
		"source", req.Source,
		"schemes", result.SchemesCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromLoadResult(result))
}

func (h *Handler) loadRequestFromJSON(w http.ResponseWriter, r *http.Request) (service.LoadRequest, bool) {
	ctx := r.Context()
	body, ok := httputil.DecodeAndPrepare[LoadSchemesRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return service.LoadRequest{}, false
	}
	if body.Text != "" {
		return service.LoadRequest{Source: SourceAPI, Text: body.Text}, true
	}
	raw, err := normalize.DecodeJSON(body.Schemes)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid schemes JSON"))
		return service.LoadRequest{}, false
	}
	return service.LoadRequest{Source: SourceAPI, Schemes: raw}, true
}

// loadRequestFromForm reads the first non-empty of paste_json, paste_text and
// file, in that order.
func (h *Handler) loadRequestFromForm(w http.ResponseWriter, r *http.Request) (service.LoadRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "upload too large"))
		} else {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid form data"))
		}
		return service.LoadRequest{}, false
	}

	if pasted := strings.TrimSpace(r.FormValue("paste_json")); pasted != "" {
		raw, err := normalize.DecodeJSON([]byte(pasted))
		if err != nil {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid JSON: "+err.Error()))
			return service.LoadRequest{}, false
		}
		return service.LoadRequest{Source: SourcePasteJSON, Schemes: raw}, true
	}
	if pasted := strings.TrimSpace(r.FormValue("paste_text")); pasted != "" {
		return service.LoadRequest{Source: SourcePasteText, Text: pasted}, true
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "no file or pasted text/json provided"))
		return service.LoadRequest{}, false
	}
	defer file.Close()
	if header.Filename == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "empty filename"))
		return service.LoadRequest{}, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read upload"))
		return service.LoadRequest{}, false
	}
	doc, err := document.Read(header.Filename, data)
	if err != nil {
		httputil.WriteError(w, documentError(err))
		return service.LoadRequest{}, false
	}

	req, err := service.RequestFromDocument(SourceFile, doc)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, err.Error()))
		return service.LoadRequest{}, false
	}
	return req, true
}

func documentError(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrEmpty):
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "could not read text from the file")
	default:
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "could not read the file")
	}
}

// HandleCheck handles POST /check requests.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CheckRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Check(ctx, req.ToSubmission())
	if err != nil {
		h.logger.ErrorContext(ctx, "eligibility check failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleHealth handles GET /health requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromHealth(h.service.Health(r.Context())))
}

// HandleLoadHistory handles GET /loads?limit=N requests.
func (h *Handler) HandleLoadHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("limit must be an integer between 1 and %d", maxHistoryLimit)))
			return
		}
		limit = n
	}

	events, err := h.service.LoadHistory(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "load history failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LoadHistoryResponse{Loads: events})
}
