package models

import (
	"time"

	id "mediaconsole/pkg/domain"
)

// Entry is the console's snapshot of a media entry.
type Entry struct {
	ID                id.EntryID
	PartnerID         id.PartnerID
	Name              string
	Description       string
	Kind              id.EntryKind
	MediaType         id.MediaType
	Status            id.EntryStatus
	ReplacementStatus id.ReplacementStatus
	ModerationStatus  id.ModerationStatus
	DurationSeconds   int
	Tags              []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsExternalMedia reports whether the entry only references media hosted
// elsewhere.
func (e *Entry) IsExternalMedia() bool {
	return e.Kind.IsExternal()
}

// Filter narrows a list request. *In fields are comma separated wire codes;
// an empty value does not filter.
type Filter struct {
	FreeText           string
	ModerationStatusIn string
	MediaTypeIn        string
	StatusIn           string
}

// ListRequest is what the entries store executes.
type ListRequest struct {
	PartnerID id.PartnerID
	Filter    Filter
	PageIndex int // 1-based
	PageSize  int
}

// Offset returns the number of rows to skip.
func (r ListRequest) Offset() int {
	if r.PageIndex <= 1 {
		return 0
	}
	return (r.PageIndex - 1) * r.PageSize
}

type ListResult struct {
	Entries    []*Entry
	TotalCount int
}
