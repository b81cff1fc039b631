// Package entries serves entry snapshots and the filtered entries list.
package entries

import (
	"context"
	"errors"
	"log/slog"

	"mediaconsole/internal/entries/filters"
	"mediaconsole/internal/entries/models"
	"mediaconsole/internal/platform/config"
	id "mediaconsole/pkg/domain"
	dErrors "mediaconsole/pkg/domain-errors"
	"mediaconsole/pkg/platform/audit"
	"mediaconsole/pkg/platform/sentinel"
	"mediaconsole/pkg/requestcontext"
)

// Store is the persistence port for entries.
type Store interface {
	FindByID(ctx context.Context, partnerID id.PartnerID, entryID id.EntryID) (*models.Entry, error)
	List(ctx context.Context, req models.ListRequest) (models.ListResult, error)
}

// AuditPort emits audit events.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}

// ListQuery is a list request as the console UI expresses it.
type ListQuery struct {
	PartnerID id.PartnerID
	UserID    id.UserID
	Filters   []filters.ValueFilter
	FreeText  string
	PageIndex int
	PageSize  int
}

// ListResult carries the page together with the normalized paging and the
// active filters so the UI can render its tag bar.
type ListResult struct {
	Entries       []*models.Entry
	TotalCount    int
	PageIndex     int
	PageSize      int
	ActiveFilters []filters.ValueFilter
}

type Service struct {
	store   Store
	filters *filters.Registry
	tables  config.Tables
	auditor AuditPort
	logger  *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditor(auditor AuditPort) Option {
	return func(s *Service) { s.auditor = auditor }
}

// WithFilters replaces the default filter registry.
func WithFilters(r *filters.Registry) Option {
	return func(s *Service) { s.filters = r }
}

func New(store Store, tables config.Tables, opts ...Option) *Service {
	s := &Service{
		store:   store,
		filters: filters.DefaultRegistry(),
		tables:  tables,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the entry when it belongs to partnerID.
func (s *Service) Get(ctx context.Context, partnerID id.PartnerID, entryID id.EntryID) (*models.Entry, error) {
	e, err := s.store.FindByID(ctx, partnerID, entryID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "entry not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load entry")
	}
	return e, nil
}

// List applies the active filters and paging and returns one page.
func (s *Service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	for _, f := range q.Filters {
		if !s.filters.Registered(f.Type) {
			return nil, dErrors.New(dErrors.CodeValidation, "unsupported filter: "+f.Type)
		}
	}

	pageIndex, pageSize := s.tables.Page(q.PageIndex, q.PageSize)
	req := models.ListRequest{
		PartnerID: q.PartnerID,
		Filter:    models.Filter{FreeText: q.FreeText},
		PageIndex: pageIndex,
		PageSize:  pageSize,
	}
	s.filters.Apply(q.Filters, &req)

	res, err := s.store.List(ctx, req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list entries")
	}

	s.emit(ctx, q, res.TotalCount)

	return &ListResult{
		Entries:       res.Entries,
		TotalCount:    res.TotalCount,
		PageIndex:     pageIndex,
		PageSize:      pageSize,
		ActiveFilters: q.Filters,
	}, nil
}

func (s *Service) emit(ctx context.Context, q ListQuery, total int) {
	if s.auditor == nil {
		return
	}
	event := audit.Event{
		Category:  audit.EventEntriesListed.Category(),
		UserID:    q.UserID,
		PartnerID: q.PartnerID,
		Action:    audit.EventEntriesListed.String(),
		Subject:   "entries",
		RequestID: requestcontext.RequestID(ctx),
		UserAgent: requestcontext.Client(ctx),
		Timestamp: requestcontext.Now(ctx),
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"total", total,
			"error", err,
		)
	}
}
