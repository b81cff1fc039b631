package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaconsole/internal/permissions"
	id "mediaconsole/pkg/domain"
)

func TestInMemory_ScopesGrantsByPartner(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	user := id.UserID(uuid.New())

	require.NoError(t, s.Grant(ctx, 1, user, permissions.ContentIngestClipMedia))

	got, err := s.Permissions(ctx, 1, user)
	require.NoError(t, err)
	assert.True(t, got.Has(permissions.ContentIngestClipMedia))

	other, err := s.Permissions(ctx, 2, user)
	require.NoError(t, err)
	assert.Zero(t, other.Len())
}

func TestInMemory_Revoke(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	user := id.UserID(uuid.New())
	require.NoError(t, s.Grant(ctx, 1, user, permissions.ContentIngestClipMedia, permissions.PlaylistDelete))
	require.NoError(t, s.Grant(ctx, 1, user, permissions.ContentIngestClipMedia))

	require.NoError(t, s.Revoke(ctx, 1, user, permissions.ContentIngestClipMedia))

	got, err := s.Permissions(ctx, 1, user)
	require.NoError(t, err)
	assert.False(t, got.Has(permissions.ContentIngestClipMedia))
	assert.True(t, got.Has(permissions.PlaylistDelete))
}

func TestKey(t *testing.T) {
	user := id.UserID(uuid.MustParse("0b8f6e5c-7e0a-4a45-9f52-4a8a2d3f7c11"))
	assert.Equal(t, "permissions:2063561:0b8f6e5c-7e0a-4a45-9f52-4a8a2d3f7c11", Key(2063561, user))
}
