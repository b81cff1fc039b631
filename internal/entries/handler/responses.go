package handler

import (
	"time"

	"mediaconsole/internal/entries"
	"mediaconsole/internal/entries/filters"
	"mediaconsole/internal/entries/models"
)

type EntryResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Kind              string    `json:"kind"`
	MediaType         int       `json:"mediaType"`
	MediaTypeName     string    `json:"mediaTypeName"`
	Status            string    `json:"status"`
	StatusName        string    `json:"statusName"`
	ReplacementStatus string    `json:"replacementStatus"`
	ModerationStatus  int       `json:"moderationStatus"`
	Duration          int       `json:"duration"`
	Tags              []string  `json:"tags"`
	CreatedAt         time.Time `json:"createdAt"`
}

type ListResponse struct {
	Objects       []EntryResponse       `json:"objects"`
	TotalCount    int                   `json:"totalCount"`
	PageIndex     int                   `json:"pageIndex"`
	PageSize      int                   `json:"pageSize"`
	ActiveFilters []filters.ValueFilter `json:"activeFilters"`
}

func toEntryResponse(e *models.Entry) EntryResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EntryResponse{
		ID:                string(e.ID),
		Name:              e.Name,
		Description:       e.Description,
		Kind:              string(e.Kind),
		MediaType:         int(e.MediaType),
		MediaTypeName:     e.MediaType.Name(),
		Status:            string(e.Status),
		StatusName:        e.Status.Name(),
		ReplacementStatus: string(e.ReplacementStatus),
		ModerationStatus:  int(e.ModerationStatus),
		Duration:          e.DurationSeconds,
		Tags:              tags,
		CreatedAt:         e.CreatedAt,
	}
}

func toListResponse(res *entries.ListResult) ListResponse {
	out := ListResponse{
		Objects:       make([]EntryResponse, 0, len(res.Entries)),
		TotalCount:    res.TotalCount,
		PageIndex:     res.PageIndex,
		PageSize:      res.PageSize,
		ActiveFilters: res.ActiveFilters,
	}
	if out.ActiveFilters == nil {
		out.ActiveFilters = []filters.ValueFilter{}
	}
	for _, e := range res.Entries {
		out.Objects = append(out.Objects, toEntryResponse(e))
	}
	return out
}
