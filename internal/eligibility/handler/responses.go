package handler

import (
	"time"

	"eligo/internal/audit"
	"eligo/internal/eligibility/service"
)

// LoadSchemesResponse is the HTTP response for POST /load_schemes.
type LoadSchemesResponse struct {
	Message         string   `json:"message"`
	SchemesCount    int      `json:"schemes_count"`
	AllCriteriaKeys []string `json:"all_criteria_keys"`
	SnapshotID      string   `json:"snapshot_id"`
	DroppedSchemes  int      `json:"dropped_schemes"`
	DroppedCriteria int      `json:"dropped_criteria"`
}

func FromLoadResult(res *service.LoadResult) *LoadSchemesResponse {
	keys := res.CriteriaKeys
	if keys == nil {
		keys = []string{}
	}
	return &LoadSchemesResponse{
		Message:         res.Message,
		SchemesCount:    res.SchemesCount,
		AllCriteriaKeys: keys,
		SnapshotID:      res.SnapshotID.String(),
		DroppedSchemes:  res.DroppedSchemes,
		DroppedCriteria: res.DroppedCriteria,
	}
}

// HealthResponse is the HTTP response for GET /health.
type HealthResponse struct {
	OK                bool       `json:"ok"`
	SchemesLoaded     int        `json:"schemes_loaded"`
	SnapshotID        string     `json:"snapshot_id,omitempty"`
	LoadedAt          *time.Time `json:"loaded_at,omitempty"`
	PDFSupported      bool       `json:"pdf_supported"`
	ExtractionEnabled bool       `json:"extraction_enabled"`
}

func FromHealth(h service.Health) *HealthResponse {
	resp := &HealthResponse{
		OK:                true,
		SchemesLoaded:     h.SchemesLoaded,
		PDFSupported:      h.PDFSupported,
		ExtractionEnabled: h.ExtractionEnabled,
	}
	if h.Loaded {
		loadedAt := h.LoadedAt.UTC()
		resp.SnapshotID = h.SnapshotID.String()
		resp.LoadedAt = &loadedAt
	}
	return resp
}

// LoadHistoryResponse is the HTTP response for GET /loads.
type LoadHistoryResponse struct {
	Loads []audit.Event `json:"loads"`
}
