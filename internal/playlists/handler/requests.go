package handler

import (
	id "mediaconsole/pkg/domain"
	dErrors "mediaconsole/pkg/domain-errors"
)

// DeleteRequest is the body of POST /playlists/delete.
type DeleteRequest struct {
	IDs []string `json:"ids"`

	parsed []id.PlaylistID
}

func (r *DeleteRequest) Validate() error {
	if len(r.IDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "ids is required")
	}
	r.parsed = make([]id.PlaylistID, 0, len(r.IDs))
	for _, raw := range r.IDs {
		pid, err := id.ParsePlaylistID(raw)
		if err != nil {
			return err
		}
		r.parsed = append(r.parsed, pid)
	}
	return nil
}
