package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaconsole/internal/playlists/models"
	"mediaconsole/pkg/platform/sentinel"
)

func seeded(t *testing.T) *InMemory {
	t.Helper()
	s := NewInMemory()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, p := range []*models.Playlist{
		{ID: "0_a", PartnerID: 1, Name: "Trailers", Description: "movie trailers", CreatedAt: base},
		{ID: "0_b", PartnerID: 1, Name: "Highlights", CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(5 * time.Hour)},
		{ID: "0_c", PartnerID: 1, Name: "archive", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "0_z", PartnerID: 2, Name: "Other partner", CreatedAt: base},
	} {
		require.NoError(t, s.Save(context.Background(), p))
	}
	return s
}

func ids(res models.ListResult) []string {
	out := make([]string, len(res.Playlists))
	for i, p := range res.Playlists {
		out[i] = p.ID.String()
	}
	return out
}

func TestInMemory_List(t *testing.T) {
	ctx := context.Background()
	s := seeded(t)

	tests := []struct {
		name string
		req  models.ListRequest
		want []string
	}{
		{"newest first", models.ListRequest{PartnerID: 1, SortDirection: models.SortDesc}, []string{"0_c", "0_b", "0_a"}},
		{"name ascending ignores case", models.ListRequest{PartnerID: 1, SortBy: models.SortByName, SortDirection: models.SortAsc}, []string{"0_c", "0_b", "0_a"}},
		{"updated descending", models.ListRequest{PartnerID: 1, SortBy: models.SortByUpdatedAt, SortDirection: models.SortDesc}, []string{"0_b", "0_a", "0_c"}},
		{"free text on description", models.ListRequest{PartnerID: 1, FreeText: "MOVIE"}, []string{"0_a"}},
		{"free text on id", models.ListRequest{PartnerID: 1, FreeText: "0_B"}, []string{"0_b"}},
		{"paged", models.ListRequest{PartnerID: 1, SortDirection: models.SortDesc, PageIndex: 2, PageSize: 2}, []string{"0_a"}},
		{"created window", models.ListRequest{
			PartnerID:     1,
			SortDirection: models.SortAsc,
			CreatedAfter:  time.Date(2024, 6, 1, 0, 30, 0, 0, time.UTC),
			CreatedBefore: time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC),
		}, []string{"0_b", "0_c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.List(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(res))
		})
	}
}

func TestInMemory_DeleteIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := seeded(t)

	err := s.Delete(ctx, 1, "0_a", "0_z")
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	res, err := s.List(ctx, models.ListRequest{PartnerID: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalCount)

	require.NoError(t, s.Delete(ctx, 1, "0_a", "0_b"))
	res, err = s.List(ctx, models.ListRequest{PartnerID: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"0_c"}, ids(res))
}

func TestInMemory_PastLastPageKeepsTotal(t *testing.T) {
	res, err := seeded(t).List(context.Background(), models.ListRequest{PartnerID: 1, PageIndex: 4, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Playlists)
	assert.Equal(t, 3, res.TotalCount)
}
