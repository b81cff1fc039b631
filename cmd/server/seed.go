package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	entrymodels "mediaconsole/internal/entries/models"
	"mediaconsole/internal/permissions"
	playlistmodels "mediaconsole/internal/playlists/models"
	id "mediaconsole/pkg/domain"
)

const demoPartner id.PartnerID = 1001

var demoUser = id.UserID(uuid.MustParse("8f14e45f-ceea-4e6c-9a2b-1f0d3c5b7a01"))

// seedDemo fills the stores with a small catalogue for local runs. It refuses
// to touch persistent backends.
func seedDemo(ctx context.Context, a *app) error {
	if a.db != nil || a.redis != nil {
		return fmt.Errorf("--seed only applies to in-memory stores")
	}

	if err := a.permissions.Grant(ctx, demoPartner, demoUser,
		permissions.ContentManageBase,
		permissions.ContentIngestClipMedia,
		permissions.ContentIngestUpload,
		permissions.PlaylistBase,
		permissions.PlaylistDelete,
	); err != nil {
		return err
	}

	now := time.Now().UTC()
	demoEntries := []*entrymodels.Entry{
		{ID: "0_keynote", Name: "Keynote", MediaType: id.MediaTypeVideo, Status: id.EntryStatusReady, ModerationStatus: id.ModerationStatusApproved, DurationSeconds: 3120, Tags: []string{"conference"}},
		{ID: "0_podcast", Name: "Weekly podcast", MediaType: id.MediaTypeAudio, Status: id.EntryStatusReady, ModerationStatus: id.ModerationStatusPending, DurationSeconds: 1800},
		{ID: "0_uploading", Name: "Raw footage", MediaType: id.MediaTypeVideo, Status: id.EntryStatusPending, ModerationStatus: id.ModerationStatusAutoApproved},
		{ID: "0_stream", Name: "Live channel", MediaType: id.MediaTypeLiveStreamFlash, Status: id.EntryStatusReady, ModerationStatus: id.ModerationStatusApproved},
		{ID: "0_youtube", Name: "Embedded trailer", Kind: id.EntryKindExternalMedia, MediaType: id.MediaTypeVideo, Status: id.EntryStatusReady, ModerationStatus: id.ModerationStatusApproved},
	}
	for i, e := range demoEntries {
		e.PartnerID = demoPartner
		if e.Kind == "" {
			e.Kind = id.EntryKindMedia
		}
		e.ReplacementStatus = id.ReplacementStatusNone
		e.CreatedAt = now.Add(-time.Duration(i) * time.Hour)
		e.UpdatedAt = e.CreatedAt
		if err := a.entryStore.Save(ctx, e); err != nil {
			return err
		}
	}

	demoPlaylists := []*playlistmodels.Playlist{
		{ID: "0_pl_conf", Name: "Conference 2024", EntryIDs: []id.EntryID{"0_keynote"}},
		{ID: "0_pl_audio", Name: "Listen later", EntryIDs: []id.EntryID{"0_podcast"}},
	}
	for i, p := range demoPlaylists {
		p.PartnerID = demoPartner
		p.PlaylistType = 3
		p.CreatedAt = now.AddDate(0, 0, -i)
		p.UpdatedAt = p.CreatedAt
		if err := a.playlistStore.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
