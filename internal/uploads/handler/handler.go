package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mediaconsole/internal/uploads"
	id "mediaconsole/pkg/domain"
	dErrors "mediaconsole/pkg/domain-errors"
	"mediaconsole/pkg/platform/httputil"
	"mediaconsole/pkg/requestcontext"
)

type Service interface {
	Menu(ctx context.Context, partnerID id.PartnerID, userID id.UserID) (*uploads.Menu, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/upload/menu", h.HandleMenu)
}

// HandleMenu handles GET /upload/menu.
func (h *Handler) HandleMenu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	partnerID := requestcontext.PartnerID(ctx)
	if partnerID == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	menu, err := h.service.Menu(ctx, partnerID, requestcontext.UserID(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "upload menu failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, menu)
}
