package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "mediaconsole/pkg/domain"
	audit "mediaconsole/pkg/platform/audit"
)

func TestInMemoryStore_EvictsOldestWhenFull(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(WithCapacity(3))
	user := id.UserID(uuid.New())
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, subject := range []string{"0_a", "0_b", "0_c", "0_d", "0_e"} {
		require.NoError(t, s.Append(ctx, audit.Event{
			UserID:    user,
			Action:    audit.EventViewAvailabilityChecked.String(),
			Subject:   subject,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.Evicted())

	events, err := s.ListByUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []string{"0_c", "0_d", "0_e"}, subjects(events))

	recent, err := s.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"0_e", "0_d"}, subjects(recent))
}

func TestInMemoryStore_ListByUserFilters(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	alice, bob := id.UserID(uuid.New()), id.UserID(uuid.New())

	require.NoError(t, s.Append(ctx, audit.Event{UserID: alice, Subject: "0_a"}))
	require.NoError(t, s.Append(ctx, audit.Event{UserID: bob, Subject: "0_b"}))
	require.NoError(t, s.Append(ctx, audit.Event{UserID: alice, Subject: "0_c"}))

	events, err := s.ListByUser(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"0_a", "0_c"}, subjects(events))

	none, err := s.ListByUser(ctx, id.UserID(uuid.New()))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInMemoryStore_ClearResetsRing(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(WithCapacity(2))
	for range 3 {
		require.NoError(t, s.Append(ctx, audit.Event{Subject: "0_x"}))
	}
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Evicted())

	require.NoError(t, s.Append(ctx, audit.Event{Subject: "0_y"}))
	recent, err := s.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"0_y"}, subjects(recent))
}

func subjects(events []audit.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Subject
	}
	return out
}
