package handler

import (
	"time"

	"mediaconsole/internal/entries/filters"
	"mediaconsole/internal/playlists"
	"mediaconsole/internal/playlists/models"
)

type PlaylistResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	PlaylistType int       `json:"playlistType"`
	EntriesCount int       `json:"entriesCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ListResponse struct {
	Objects       []PlaylistResponse    `json:"objects"`
	TotalCount    int                   `json:"totalCount"`
	PageIndex     int                   `json:"pageIndex"`
	PageSize      int                   `json:"pageSize"`
	SortBy        string                `json:"sortBy"`
	SortDirection int                   `json:"sortDirection"`
	ActiveFilters []filters.ValueFilter `json:"activeFilters"`
}

type DeleteResponse struct {
	Deleted int `json:"deleted"`
}

func toPlaylistResponse(p *models.Playlist) PlaylistResponse {
	return PlaylistResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Description:  p.Description,
		PlaylistType: p.PlaylistType,
		EntriesCount: len(p.EntryIDs),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toListResponse(res *playlists.ListResult) ListResponse {
	out := ListResponse{
		Objects:       make([]PlaylistResponse, 0, len(res.Playlists)),
		TotalCount:    res.TotalCount,
		PageIndex:     res.PageIndex,
		PageSize:      res.PageSize,
		SortBy:        res.SortBy,
		SortDirection: int(res.SortDirection),
		ActiveFilters: res.ActiveFilters,
	}
	for _, p := range res.Playlists {
		out.Objects = append(out.Objects, toPlaylistResponse(p))
	}
	return out
}
