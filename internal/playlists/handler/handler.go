package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"mediaconsole/internal/playlists"
	id "mediaconsole/pkg/domain"
	dErrors "mediaconsole/pkg/domain-errors"
	"mediaconsole/pkg/platform/httputil"
	"mediaconsole/pkg/requestcontext"
)

// dateParam is the layout of createdAfter and createdBefore.
const dateParam = "2006-01-02"

type Service interface {
	List(ctx context.Context, q playlists.Query) (*playlists.ListResult, error)
	Delete(ctx context.Context, partnerID id.PartnerID, userID id.UserID, playlistID id.PlaylistID) error
	DeleteBulk(ctx context.Context, partnerID id.PartnerID, userID id.UserID, ids []id.PlaylistID) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/playlists", h.HandleList)
	r.Delete("/playlists/{playlistID}", h.HandleDelete)
	r.Post("/playlists/delete", h.HandleBulkDelete)
}

// HandleList handles GET /playlists.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	partnerID := requestcontext.PartnerID(ctx)
	if partnerID == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	q, err := parseQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	q.PartnerID = partnerID

	res, err := h.service.List(ctx, q)
	if err != nil {
		h.logFailure(ctx, "playlists list failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(res))
}

// HandleDelete handles DELETE /playlists/{playlistID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	partnerID := requestcontext.PartnerID(ctx)
	if partnerID == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	playlistID, err := id.ParsePlaylistID(chi.URLParam(r, "playlistID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, partnerID, requestcontext.UserID(ctx), playlistID); err != nil {
		h.logFailure(ctx, "playlist delete failed", err, "playlist_id", playlistID)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleBulkDelete handles POST /playlists/delete.
func (h *Handler) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	partnerID := requestcontext.PartnerID(ctx)
	if partnerID == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[DeleteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.DeleteBulk(ctx, partnerID, requestcontext.UserID(ctx), req.parsed); err != nil {
		h.logFailure(ctx, "playlists bulk delete failed", err, "count", len(req.parsed))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DeleteResponse{Deleted: len(req.parsed)})
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	args = append(args, "request_id", requestcontext.RequestID(ctx), "error", err)
	h.logger.Log(ctx, level, msg, args...)
}

func parseQuery(r *http.Request) (playlists.Query, error) {
	values := r.URL.Query()
	q := playlists.Query{
		FreeText: values.Get("freeText"),
		SortBy:   values.Get("sortBy"),
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"pageIndex", &q.PageIndex},
		{"pageSize", &q.PageSize},
		{"sortDirection", &q.SortDirection},
	}
	for _, p := range ints {
		raw := values.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, dErrors.New(dErrors.CodeBadRequest, "invalid "+p.name)
		}
		*p.dst = n
	}

	dates := []struct {
		name string
		dst  *time.Time
	}{
		{"createdAfter", &q.CreatedAfter},
		{"createdBefore", &q.CreatedBefore},
	}
	for _, p := range dates {
		raw := values.Get(p.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(dateParam, raw)
		if err != nil {
			return q, dErrors.New(dErrors.CodeBadRequest, "invalid "+p.name+", expected YYYY-MM-DD")
		}
		*p.dst = t
	}
	return q, nil
}
