package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_RecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(3)

	empty, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []Event{}, empty)

	for i := 1; i <= 5; i++ {
		require.NoError(t, store.Append(ctx, Event{SchemeCount: i}))
	}

	got, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{5, 4, 3}, counts(got))

	got, err = store.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4}, counts(got))
}

func TestPublisher_StampsTimestamp(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := NewPublisher(NewInMemoryStore(0))
	p.now = func() time.Time { return fixed }

	require.NoError(t, p.Emit(ctx, Event{Action: ActionSchemesLoaded, Source: "file"}))
	preset := fixed.Add(-time.Hour)
	require.NoError(t, p.Emit(ctx, Event{Action: ActionLoadFailed, Timestamp: preset}))

	got, err := p.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, preset, got[0].Timestamp)
	assert.Equal(t, fixed, got[1].Timestamp)
	assert.Equal(t, ActionSchemesLoaded, got[1].Action)
}

func counts(events []Event) []int {
	out := make([]int, len(events))
	for i, e := range events {
		out[i] = e.SchemeCount
	}
	return out
}
