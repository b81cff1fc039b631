package uploads

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaconsole/internal/permissions"
	permstore "mediaconsole/internal/permissions/store"
	"mediaconsole/internal/platform/config"
	id "mediaconsole/pkg/domain"
	dErrors "mediaconsole/pkg/domain-errors"
)

type brokenPermissions struct{}

func (brokenPermissions) Permissions(context.Context, id.PartnerID, id.UserID) (permissions.Set, error) {
	return permissions.Set{}, errors.New("redis down")
}

func itemByID(m *Menu, itemID string) (Item, bool) {
	for _, it := range m.Items {
		if it.ID == itemID {
			return it, true
		}
	}
	return Item{}, false
}

func TestMenu(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	user := id.UserID(uuid.New())
	perms := permstore.NewInMemory()
	require.NoError(t, perms.Grant(ctx, 4, user, permissions.ContentIngestUpload))

	t.Run("items follow permissions", func(t *testing.T) {
		menu, err := New(perms, cfg.ExternalLinks.Uploads, cfg.MediaServer).Menu(ctx, 4, user)
		require.NoError(t, err)

		desktop, ok := itemByID(menu, ItemUploadFromDesktop)
		require.True(t, ok)
		assert.True(t, desktop.Enabled)

		bulk, ok := itemByID(menu, ItemBulkUpload)
		require.True(t, ok)
		assert.False(t, bulk.Enabled)

		prepare, ok := itemByID(menu, ItemPrepareEntry)
		require.True(t, ok)
		assert.Equal(t, KindInDevelopment, prepare.Kind)
		assert.Equal(t, "applications.upload.inDevelopment", prepare.Message)

		assert.Equal(t, Limits{MaxUploadFileSizeMB: 2047, MaxConcurrentUploads: 4}, menu.Limits)
	})

	t.Run("links come from configuration", func(t *testing.T) {
		menu, err := New(perms, cfg.ExternalLinks.Uploads, cfg.MediaServer).Menu(ctx, 4, user)
		require.NoError(t, err)
		link, ok := itemByID(menu, ItemHighSpeedUpload)
		require.True(t, ok)
		assert.Equal(t, cfg.ExternalLinks.Uploads.HighSpeedUpload, link.URL)

		menu, err = New(perms, config.UploadLinks{}, cfg.MediaServer).Menu(ctx, 4, user)
		require.NoError(t, err)
		_, ok = itemByID(menu, ItemHighSpeedUpload)
		assert.False(t, ok)
		_, ok = itemByID(menu, ItemDownloadSamples)
		assert.False(t, ok)
	})

	t.Run("permission failure is internal", func(t *testing.T) {
		_, err := New(brokenPermissions{}, cfg.ExternalLinks.Uploads, cfg.MediaServer).Menu(ctx, 4, user)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
