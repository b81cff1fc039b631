// Package store persists playlists in memory or PostgreSQL.
package store

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"mediaconsole/internal/playlists/models"
	id "mediaconsole/pkg/domain"
	"mediaconsole/pkg/platform/sentinel"
)

type InMemory struct {
	mu        sync.RWMutex
	playlists map[id.PlaylistID]*models.Playlist
}

func NewInMemory() *InMemory {
	return &InMemory{playlists: make(map[id.PlaylistID]*models.Playlist)}
}

func (s *InMemory) Save(_ context.Context, p *models.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	cp.EntryIDs = slices.Clone(p.EntryIDs)
	s.playlists[p.ID] = &cp
	return nil
}

func (s *InMemory) List(_ context.Context, req models.ListRequest) (models.ListResult, error) {
	s.mu.RLock()
	matched := make([]*models.Playlist, 0, len(s.playlists))
	for _, p := range s.playlists {
		if p.PartnerID == req.PartnerID && matches(p, req) {
			cp := *p
			matched = append(matched, &cp)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b *models.Playlist) int {
		c := compareBy(req.SortBy, a, b)
		if req.SortDirection != models.SortAsc {
			c = -c
		}
		if c != 0 {
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
	return models.ListResult{Playlists: matched[start:end], TotalCount: total}, nil
}

// Delete removes every playlist in ids or none of them. A missing id, or one
// owned by another partner, yields sentinel.ErrNotFound.
func (s *InMemory) Delete(_ context.Context, partnerID id.PartnerID, ids ...id.PlaylistID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pid := range ids {
		p, ok := s.playlists[pid]
		if !ok || p.PartnerID != partnerID {
			return sentinel.ErrNotFound
		}
	}
	for _, pid := range ids {
		delete(s.playlists, pid)
	}
	return nil
}

func compareBy(field string, a, b *models.Playlist) int {
	switch field {
	case models.SortByName:
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case models.SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func matches(p *models.Playlist, req models.ListRequest) bool {
	if !req.CreatedAfter.IsZero() && p.CreatedAt.Before(req.CreatedAfter) {
		return false
	}
	if !req.CreatedBefore.IsZero() && p.CreatedAt.After(req.CreatedBefore) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(req.FreeText)); q != "" {
		return strings.EqualFold(string(p.ID), q) ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
	}
	return true
}
