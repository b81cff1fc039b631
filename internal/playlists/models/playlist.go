package models

import (
	"time"

	id "mediaconsole/pkg/domain"
)

// Playlist is a partner-owned ordered list of entries.
type Playlist struct {
	ID           id.PlaylistID
	PartnerID    id.PartnerID
	Name         string
	Description  string
	PlaylistType int
	EntryIDs     []id.EntryID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SortDirection follows the console table convention: 1 is ascending,
// -1 descending.
type SortDirection int

const (
	SortAsc  SortDirection = 1
	SortDesc SortDirection = -1
)

// ParseSortDirection maps 1 to ascending and anything else to descending.
func ParseSortDirection(n int) SortDirection {
	if n == int(SortAsc) {
		return SortAsc
	}
	return SortDesc
}

// Sortable columns.
const (
	SortByCreatedAt = "createdAt"
	SortByName      = "name"
	SortByUpdatedAt = "updatedAt"
)

// ValidSortBy reports whether field is a sortable column.
func ValidSortBy(field string) bool {
	switch field {
	case SortByCreatedAt, SortByName, SortByUpdatedAt:
		return true
	}
	return false
}

// ListRequest is what the playlists store executes. Zero dates do not
// filter; both bounds are inclusive.
type ListRequest struct {
	PartnerID     id.PartnerID
	FreeText      string
	CreatedAfter  time.Time
	CreatedBefore time.Time
	SortBy        string
	SortDirection SortDirection
	PageIndex     int // 1-based
	PageSize      int
}

func (r ListRequest) Offset() int {
	if r.PageIndex <= 1 {
		return 0
	}
	return (r.PageIndex - 1) * r.PageSize
}

type ListResult struct {
	Playlists  []*Playlist
	TotalCount int
}
