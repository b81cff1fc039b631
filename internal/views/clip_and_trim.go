package views

import (
	"context"
	"log/slog"

	"mediaconsole/internal/entries/models"
	"mediaconsole/internal/permissions"
	"mediaconsole/internal/platform/config"
	"mediaconsole/internal/platform/logger"
	id "mediaconsole/pkg/domain"
)

// clipAndTrimPermissions grants the view; holding any one is enough.
var clipAndTrimPermissions = []permissions.Permission{
	permissions.ContentIngestClipMedia,
	permissions.ContentIngestIntoReady,
}

// ClipAndTrimView gates the clip and trim application for an entry.
type ClipAndTrimView struct {
	app    config.ExternalApp
	logger *slog.Logger
}

type GateOption func(*ClipAndTrimView)

func WithGateLogger(l *slog.Logger) GateOption {
	return func(v *ClipAndTrimView) {
		if l != nil {
			v.logger = l
		}
	}
}

// NewClipAndTrimView binds the gate to the clip_and_trim toggle, which is
// read once and fixed for the process lifetime.
func NewClipAndTrimView(app config.ExternalApp, opts ...GateOption) *ClipAndTrimView {
	v := &ClipAndTrimView{app: app, logger: slog.Default()}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = logger.Sub(v.logger, "ClipAndTrimAppView")
	return v
}

func (v *ClipAndTrimView) View() View { return ViewClipAndTrim }

// IsAvailable reports whether clip and trim is exposed for vc.
func (v *ClipAndTrimView) IsAvailable(ctx context.Context, vc Context) bool {
	return v.Evaluate(ctx, vc).Available
}

// Evaluate computes all three sub-checks and combines them with AND.
func (v *ClipAndTrimView) Evaluate(ctx context.Context, vc Context) Decision {
	v.safeLog(func() {
		v.logger.InfoContext(ctx, "handle isAvailable action for clip and trim app",
			slog.Group("clipAndTrimConfig",
				"enabled", v.app.Enabled,
				"uri", v.app.URI,
			),
		)
	})

	byConfiguration := v.app.Enabled
	byPermission := availableByPermission(vc.Permissions)
	byData := v.availableByData(ctx, vc.Entry)

	d := Decision{
		View:            ViewClipAndTrim,
		Available:       byConfiguration && byPermission && byData,
		ByConfiguration: byConfiguration,
		ByPermission:    byPermission,
		ByData:          byData,
	}

	v.safeLog(func() {
		v.logger.InfoContext(ctx, "check if view is available",
			"result", d.Available,
			"validByPermissions", d.ByPermission,
			"validByData", d.ByData,
			"validByConfiguration", d.ByConfiguration,
		)
	})
	return d
}

func availableByPermission(p PermissionQuery) bool {
	if p == nil {
		return false
	}
	return p.HasAnyPermissions(clipAndTrimPermissions...)
}

// availableByData requires a ready, non-replacing, native video or audio
// entry that is not a live stream. A nil entry is never available.
func (v *ClipAndTrimView) availableByData(ctx context.Context, e *models.Entry) bool {
	if e == nil {
		logger.Trace(ctx, v.logger, "conditions used to check availability status by data", func() []any {
			return []any{"result", false, "entry", nil}
		})
		return false
	}

	entryReady := e.Status == id.EntryStatusReady
	isEntryReplacing := e.ReplacementStatus.IsReplacing()
	isExternalMedia := e.IsExternalMedia()
	isEntryRelevant := (e.MediaType == id.MediaTypeVideo || e.MediaType == id.MediaTypeAudio) && !isExternalMedia
	isLiveEntry := e.MediaType.IsLive()
	result := entryReady && !isEntryReplacing && isEntryRelevant && !isLiveEntry

	logger.Trace(ctx, v.logger, "conditions used to check availability status by data", func() []any {
		return []any{
			"result", result,
			"entryReady", entryReady,
			"isLiveEntry", isLiveEntry,
			"isEntryReplacing", isEntryReplacing,
			"isExternalMedia", isExternalMedia,
			"entryMediaType", int(e.MediaType),
			"isEntryRelevant", isEntryRelevant,
		}
	})
	return result
}

// safeLog runs fn and discards any panic raised by the log handler.
func (v *ClipAndTrimView) safeLog(fn func()) {
	defer func() { _ = recover() }()
	fn()
}
