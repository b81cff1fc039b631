package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaconsole/internal/entries"
	"mediaconsole/internal/entries/models"
	entrystore "mediaconsole/internal/entries/store"
	"mediaconsole/internal/permissions"
	permstore "mediaconsole/internal/permissions/store"
	"mediaconsole/internal/platform/config"
	"mediaconsole/internal/views"
	id "mediaconsole/pkg/domain"
	"mediaconsole/pkg/testutil"
)

// TestClipAndTrimFollowsPermissionChanges walks an editor through losing
// and regaining the ingest permissions between two page loads.
func TestClipAndTrimFollowsPermissionChanges(t *testing.T) {
	ctx := context.Background()
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Default()
	editor := id.UserID(uuid.New())
	now := time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)

	es := entrystore.NewInMemory()
	require.NoError(t, es.Save(ctx, &models.Entry{
		ID: "0_audio1", PartnerID: 11, Kind: id.EntryKindMedia, MediaType: id.MediaTypeAudio,
		Status: id.EntryStatusReady, ReplacementStatus: id.ReplacementStatusNone,
	}))
	perms := permstore.NewInMemory()

	registry, err := views.NewRegistry(views.NewClipAndTrimView(cfg.ExternalApps.ClipAndTrim, views.WithGateLogger(discard)))
	require.NoError(t, err)
	svc, err := views.NewService(registry, entries.New(es, cfg.Client.Views.Tables), perms, views.WithLogger(discard))
	require.NoError(t, err)
	router := chi.NewRouter()
	New(svc, discard).Register(router)

	check := func(t *testing.T) views.Decision {
		req := testutil.NewJSONRequest(t, http.MethodGet, "/entries/0_audio1/views/clipAndTrim", nil)
		req = testutil.WithTime(testutil.WithSession(req, editor, 11), now)
		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusOK, rr.Code)
		return testutil.DecodeResponse[views.Decision](t, rr)
	}

	testutil.Given(t, "an editor without ingest permissions", func(t *testing.T) {
		testutil.Then(t, "the view is refused by permission only", func(t *testing.T) {
			d := check(t)
			assert.False(t, d.Available)
			assert.False(t, d.ByPermission)
			assert.True(t, d.ByConfiguration)
			assert.True(t, d.ByData)
		})
	})

	testutil.When(t, "the editor is granted ready ingest", func(t *testing.T) {
		require.NoError(t, perms.Grant(ctx, 11, editor, permissions.ContentIngestIntoReady))

		testutil.Then(t, "the view becomes available", func(t *testing.T) {
			assert.True(t, check(t).Available)
		})
	})

	testutil.When(t, "the grant is revoked", func(t *testing.T) {
		require.NoError(t, perms.Revoke(ctx, 11, editor, permissions.ContentIngestIntoReady))

		testutil.Then(t, "the view is refused again", func(t *testing.T) {
			assert.False(t, check(t).Available)
		})
	})
}
