package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mediaconsole/internal/views"
	id "mediaconsole/pkg/domain"
	dErrors "mediaconsole/pkg/domain-errors"
	"mediaconsole/pkg/platform/httputil"
	"mediaconsole/pkg/requestcontext"
)

// Service defines the view availability operations the handler needs.
type Service interface {
	Check(ctx context.Context, req views.CheckRequest) (*views.Decision, error)
	Available(ctx context.Context, partnerID id.PartnerID, userID id.UserID, entryID id.EntryID) ([]views.Decision, error)
}

// Handler exposes view availability to the console.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts view endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/entries/{entryID}/views", h.HandleList)
	r.Get("/entries/{entryID}/views/{view}", h.HandleCheck)
}

// HandleCheck handles GET /entries/{entryID}/views/{view}.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entryID, ok := h.session(w, r)
	if !ok {
		return
	}

	d, err := h.service.Check(ctx, views.CheckRequest{
		View:      views.View(chi.URLParam(r, "view")),
		EntryID:   entryID,
		PartnerID: requestcontext.PartnerID(ctx),
		UserID:    requestcontext.UserID(ctx),
	})
	if err != nil {
		h.logFailure(ctx, "view availability check failed", err, entryID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

// HandleList handles GET /entries/{entryID}/views.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entryID, ok := h.session(w, r)
	if !ok {
		return
	}

	decisions, err := h.service.Available(ctx, requestcontext.PartnerID(ctx), requestcontext.UserID(ctx), entryID)
	if err != nil {
		h.logFailure(ctx, "view availability listing failed", err, entryID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Views: decisions})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (id.EntryID, bool) {
	if requestcontext.PartnerID(r.Context()) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return "", false
	}
	entryID, err := id.ParseEntryID(chi.URLParam(r, "entryID"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return entryID, true
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error, entryID id.EntryID) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"entry_id", entryID,
		"error", err,
	)
}

type ListResponse struct {
	Views []views.Decision `json:"views"`
}
