package audit

import (
	"context"
	"slices"
	"sync"
)

// DefaultCapacity bounds the in-memory trail.
const DefaultCapacity = 256

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	Recent(ctx context.Context, limit int) ([]Event, error)
}

// InMemoryStore keeps the most recent events in a ring.
type InMemoryStore struct {
	mu       sync.RWMutex
	events   []Event
	next     int
	full     bool
	capacity int
}

func NewInMemoryStore(capacity int) *InMemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &InMemoryStore{events: make([]Event, capacity), capacity: capacity}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[s.next] = event
	s.next = (s.next + 1) % s.capacity
	if s.next == 0 {
		s.full = true
	}
	return nil
}

// Recent returns up to limit events, newest first. A non-positive limit
// returns everything retained.
func (s *InMemoryStore) Recent(_ context.Context, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ordered []Event
	if s.full {
		ordered = append(ordered, s.events[s.next:]...)
	}
	ordered = append(ordered, s.events[:s.next]...)
	slices.Reverse(ordered)

	if limit > 0 && limit < len(ordered) {
		ordered = ordered[:limit]
	}
	if ordered == nil {
		ordered = []Event{}
	}
	return ordered, nil
}
