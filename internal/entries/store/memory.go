// Package store persists entry snapshots in memory or PostgreSQL.
package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"mediaconsole/internal/entries/models"
	id "mediaconsole/pkg/domain"
	"mediaconsole/pkg/platform/sentinel"
	pstrings "mediaconsole/pkg/platform/strings"
)

type InMemory struct {
	mu      sync.RWMutex
	entries map[id.EntryID]*models.Entry
}

func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[id.EntryID]*models.Entry)}
}

// Save inserts or replaces the entry. The stored value is a copy.
func (s *InMemory) Save(_ context.Context, e *models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *e
	cp.Tags = slices.Clone(e.Tags)
	s.entries[e.ID] = &cp
	return nil
}

// FindByID returns a copy of the entry when it belongs to partnerID.
func (s *InMemory) FindByID(_ context.Context, partnerID id.PartnerID, entryID id.EntryID) (*models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[entryID]
	if !ok || e.PartnerID != partnerID {
		return nil, sentinel.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

// List filters, orders by creation time (newest first) and pages.
func (s *InMemory) List(_ context.Context, req models.ListRequest) (models.ListResult, error) {
	s.mu.RLock()
	matched := make([]*models.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.PartnerID == req.PartnerID && matches(e, req.Filter) {
			cp := *e
			matched = append(matched, &cp)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b *models.Entry) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})

	total := len(matched)
	start := min(req.Offset(), total)
	end := total
	if req.PageSize > 0 {
		end = min(start+req.PageSize, total)
	}
	return models.ListResult{Entries: matched[start:end], TotalCount: total}, nil
}

func matches(e *models.Entry, f models.Filter) bool {
	if in := pstrings.SplitList(f.StatusIn); in != nil && !slices.Contains(in, string(e.Status)) {
		return false
	}
	if in := pstrings.SplitList(f.MediaTypeIn); in != nil && !slices.Contains(in, e.MediaType.Code()) {
		return false
	}
	if in := pstrings.SplitList(f.ModerationStatusIn); in != nil && !slices.Contains(in, e.ModerationStatus.Code()) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.FreeText)); q != "" {
		if strings.EqualFold(string(e.ID), q) {
			return true
		}
		if strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strings.ToLower(e.Description), q) {
			return true
		}
		for _, tag := range e.Tags {
			if strings.EqualFold(tag, q) {
				return true
			}
		}
		return false
	}
	return true
}
