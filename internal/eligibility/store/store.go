package store

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"eligo/internal/eligibility/models"
)

// Snapshot is one complete, immutable scheme set. Snapshots are built off to
// the side and published with a single pointer swap.
type Snapshot struct {
	ID       uuid.UUID
	LoadedAt time.Time
	Source   string
	Schemes  []models.Scheme
	Keys     []string
}

// NewSnapshot builds a snapshot with a fresh id.
func NewSnapshot(source string, schemes []models.Scheme, keys []string, loadedAt time.Time) *Snapshot {
	if schemes == nil {
		schemes = []models.Scheme{}
	}
	if keys == nil {
		keys = []string{}
	}
	return &Snapshot{
		ID:       uuid.New(),
		LoadedAt: loadedAt,
		Source:   source,
		Schemes:  schemes,
		Keys:     keys,
	}
}

// Loaded reports whether the snapshot came from a load.
func (s *Snapshot) Loaded() bool {
	return s != nil && s.ID != uuid.Nil
}

var empty = &Snapshot{Schemes: []models.Scheme{}, Keys: []string{}}

// Store holds the current scheme snapshot. The zero value is ready to use and
// reads as empty.
type Store struct {
	current atomic.Pointer[Snapshot]
}

func New() *Store {
	return &Store{}
}

// Current returns the published snapshot. Callers must not mutate it.
func (s *Store) Current() *Snapshot {
	if s == nil {
		return empty
	}
	if snap := s.current.Load(); snap != nil {
		return snap
	}
	return empty
}

// Publish replaces the current snapshot. A nil snapshot is ignored.
func (s *Store) Publish(snap *Snapshot) {
	if snap == nil {
		return
	}
	s.current.Store(snap)
}
