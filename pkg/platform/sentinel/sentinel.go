package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Readers, extractors and stores return
// these (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: requested resource does not exist
//   - ErrEmpty: input was readable but carried no content
//   - ErrUnavailable: collaborator temporarily unavailable (circuit open, not configured)
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrEmpty       = errors.New("empty")
	ErrUnavailable = errors.New("unavailable")
)
