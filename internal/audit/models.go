package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action names what happened to the scheme set.
type Action string

const (
	ActionSchemesLoaded Action = "schemes_loaded"
	ActionLoadRejected  Action = "load_rejected"
	ActionLoadFailed    Action = "load_failed"
)

// Event is emitted by the load path. Keep it transport-agnostic so stores and
// sinks can fan out.
type Event struct {
	Timestamp       time.Time `json:"timestamp"`
	Action          Action    `json:"action"`
	Source          string    `json:"source"`
	SnapshotID      uuid.UUID `json:"snapshot_id,omitzero"`
	SchemeCount     int       `json:"scheme_count"`
	DroppedSchemes  int       `json:"dropped_schemes"`
	DroppedCriteria int       `json:"dropped_criteria"`
	RequestID       string    `json:"request_id,omitempty"`
	ClientIP        string    `json:"client_ip,omitempty"`
	Client          string    `json:"client,omitempty"`
	Reason          string    `json:"reason,omitempty"`
}
