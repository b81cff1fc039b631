// Package playlists serves the partner's playlists list and deletes
// playlists on behalf of users holding PLAYLIST_DELETE.
package playlists

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mediaconsole/internal/entries/filters"
	"mediaconsole/internal/permissions"
	"mediaconsole/internal/platform/config"
	"mediaconsole/internal/playlists/metrics"
	"mediaconsole/internal/playlists/models"
	id "mediaconsole/pkg/domain"
	dErrors "mediaconsole/pkg/domain-errors"
	"mediaconsole/pkg/platform/audit"
	"mediaconsole/pkg/platform/sentinel"
	"mediaconsole/pkg/requestcontext"
)

// Tag types of the playlists list header.
const (
	TagFreeText = "freeText"
	TagDates    = "Dates"
)

// DateLayout renders dates in tag tooltips.
const DateLayout = "January 2, 2006"

// maxDeleteBatch bounds a bulk delete request.
const maxDeleteBatch = 100

type Store interface {
	List(ctx context.Context, req models.ListRequest) (models.ListResult, error)
	Delete(ctx context.Context, partnerID id.PartnerID, ids ...id.PlaylistID) error
}

type PermissionPort interface {
	Permissions(ctx context.Context, partnerID id.PartnerID, userID id.UserID) (permissions.Set, error)
}

type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Query is a list request as the console expresses it. Zero values take the
// table defaults.
type Query struct {
	PartnerID     id.PartnerID
	PageIndex     int
	PageSize      int
	SortBy        string
	SortDirection int
	FreeText      string
	CreatedAfter  time.Time
	CreatedBefore time.Time
}

type ListResult struct {
	Playlists     []*models.Playlist
	TotalCount    int
	PageIndex     int
	PageSize      int
	SortBy        string
	SortDirection models.SortDirection
	ActiveFilters []filters.ValueFilter
}

type Service struct {
	store       Store
	permissions PermissionPort
	tables      config.Tables
	auditor     AuditPort
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditor(auditor AuditPort) Option {
	return func(s *Service) { s.auditor = auditor }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(store Store, perms PermissionPort, tables config.Tables, opts ...Option) *Service {
	s := &Service{
		store:       store,
		permissions: perms,
		tables:      tables,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns one page of playlists along with the normalized query and the
// tags describing it.
func (s *Service) List(ctx context.Context, q Query) (*ListResult, error) {
	if q.SortBy == "" {
		q.SortBy = models.SortByCreatedAt
	}
	if !models.ValidSortBy(q.SortBy) {
		return nil, dErrors.New(dErrors.CodeValidation, "unsupported sort field: "+q.SortBy)
	}
	createdBefore := endOfDay(q.CreatedBefore)
	if !q.CreatedAfter.IsZero() && !createdBefore.IsZero() && createdBefore.Before(q.CreatedAfter) {
		return nil, dErrors.New(dErrors.CodeValidation, "createdBefore precedes createdAfter")
	}

	direction := models.SortDesc
	if q.SortDirection != 0 {
		direction = models.ParseSortDirection(q.SortDirection)
	}
	pageIndex, pageSize := s.tables.Page(q.PageIndex, q.PageSize)

	req := models.ListRequest{
		PartnerID:     q.PartnerID,
		FreeText:      q.FreeText,
		CreatedAfter:  q.CreatedAfter,
		CreatedBefore: createdBefore,
		SortBy:        q.SortBy,
		SortDirection: direction,
		PageIndex:     pageIndex,
		PageSize:      pageSize,
	}
	res, err := s.store.List(ctx, req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list playlists")
	}

	return &ListResult{
		Playlists:     res.Playlists,
		TotalCount:    res.TotalCount,
		PageIndex:     pageIndex,
		PageSize:      pageSize,
		SortBy:        q.SortBy,
		SortDirection: direction,
		ActiveFilters: ActiveFilters(q),
	}, nil
}

// ActiveFilters describes q as list header tags: one for free text and one
// for the creation date range.
func ActiveFilters(q Query) []filters.ValueFilter {
	tags := []filters.ValueFilter{}
	if q.FreeText != "" {
		tags = append(tags, filters.ValueFilter{
			Type:    TagFreeText,
			Value:   q.FreeText,
			Label:   q.FreeText,
			Tooltip: filters.Tooltip{Token: "applications.content.filters.freeText"},
		})
	}

	after, before := !q.CreatedAfter.IsZero(), !q.CreatedBefore.IsZero()
	if !after && !before {
		return tags
	}
	tag := filters.ValueFilter{Type: TagDates, Label: TagDates}
	switch {
	case !after:
		tag.Tooltip = filters.Tooltip{
			Token: "applications.content.filters.dateFilter.until",
			Args:  map[string]string{"0": q.CreatedBefore.Format(DateLayout)},
		}
	case !before:
		tag.Tooltip = filters.Tooltip{
			Token: "applications.content.filters.dateFilter.from",
			Args:  map[string]string{"0": q.CreatedAfter.Format(DateLayout)},
		}
	default:
		tag.Tooltip = filters.Tooltip{
			Text: q.CreatedAfter.Format(DateLayout) + " - " + q.CreatedBefore.Format(DateLayout),
		}
	}
	return append(tags, tag)
}

// Delete removes one playlist.
func (s *Service) Delete(ctx context.Context, partnerID id.PartnerID, userID id.UserID, playlistID id.PlaylistID) error {
	return s.remove(ctx, metrics.ModeSingle, partnerID, userID, []id.PlaylistID{playlistID})
}

// DeleteBulk removes the playlists in ids. Either all are deleted or none.
func (s *Service) DeleteBulk(ctx context.Context, partnerID id.PartnerID, userID id.UserID, ids []id.PlaylistID) error {
	return s.remove(ctx, metrics.ModeBulk, partnerID, userID, ids)
}

func (s *Service) remove(ctx context.Context, mode metrics.DeleteMode, partnerID id.PartnerID, userID id.UserID, ids []id.PlaylistID) error {
	ids = dedupe(ids)
	switch {
	case len(ids) == 0:
		return dErrors.New(dErrors.CodeValidation, "at least one playlist id is required")
	case len(ids) > maxDeleteBatch:
		return dErrors.New(dErrors.CodeValidation, "too many playlists in one request")
	}

	perms, err := s.permissions.Permissions(ctx, partnerID, userID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve permissions")
	}
	if !perms.Has(permissions.PlaylistDelete) {
		s.metrics.IncrementDeleteDenied()
		return dErrors.New(dErrors.CodeForbidden, "missing permission "+string(permissions.PlaylistDelete))
	}

	if err := s.store.Delete(ctx, partnerID, ids...); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "playlist not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete playlists")
	}
	s.metrics.IncrementDeleted(mode, len(ids))

	for _, pid := range ids {
		s.emitDeleted(ctx, partnerID, userID, pid)
	}
	s.logger.InfoContext(ctx, "playlists deleted",
		"partner_id", partnerID,
		"mode", mode,
		"count", len(ids),
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

func (s *Service) emitDeleted(ctx context.Context, partnerID id.PartnerID, userID id.UserID, pid id.PlaylistID) {
	if s.auditor == nil {
		return
	}
	event := audit.Event{
		Category:  audit.EventPlaylistDeleted.Category(),
		Timestamp: requestcontext.Now(ctx),
		UserID:    userID,
		PartnerID: partnerID,
		Action:    audit.EventPlaylistDeleted.String(),
		Subject:   pid.String(),
		Decision:  "deleted",
		RequestID: requestcontext.RequestID(ctx),
		UserAgent: requestcontext.Client(ctx),
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to record playlist deletion",
			"playlist_id", pid,
			"error", err,
		)
	}
}

func endOfDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func dedupe(ids []id.PlaylistID) []id.PlaylistID {
	seen := make(map[id.PlaylistID]struct{}, len(ids))
	out := make([]id.PlaylistID, 0, len(ids))
	for _, pid := range ids {
		if _, dup := seen[pid]; dup {
			continue
		}
		seen[pid] = struct{}{}
		out = append(out, pid)
	}
	return out
}
