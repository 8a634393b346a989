package handler

import (
	"encoding/json"
	"strings"

	"eligo/internal/eligibility/models"
	dErrors "eligo/pkg/domain-errors"
)

// LoadSchemesRequest is the JSON body form of POST /load_schemes.
type LoadSchemesRequest struct {
	Schemes json.RawMessage `json:"schemes"`
	Text    string          `json:"text"`
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *LoadSchemesRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Text = strings.TrimSpace(r.Text)
	hasSchemes := len(r.Schemes) > 0
	if !hasSchemes && r.Text == "" {
		return dErrors.New(dErrors.CodeValidation, "one of schemes or text is required")
	}
	if hasSchemes && r.Text != "" {
		return dErrors.New(dErrors.CodeValidation, "provide either schemes or text, not both")
	}
	return nil
}

// CheckRequest is the body of POST /check: the basic profile fields at the top
// level plus an optional "extra" object of answers to follow-up questions.
type CheckRequest map[string]any

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CheckRequest) Validate() error {
	if r == nil || *r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body must be a JSON object")
	}
	switch (*r)["extra"].(type) {
	case nil, map[string]any:
		return nil
	default:
		return dErrors.New(dErrors.CodeValidation, "extra must be an object")
	}
}

// ToSubmission splits the body into basic fields and extra answers.
func (r CheckRequest) ToSubmission() models.Submission {
	return models.SubmissionFromMap(r)
}
