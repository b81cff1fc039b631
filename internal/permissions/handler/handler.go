package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mediaconsole/internal/permissions"
	id "mediaconsole/pkg/domain"
	dErrors "mediaconsole/pkg/domain-errors"
	"mediaconsole/pkg/platform/httputil"
	"mediaconsole/pkg/requestcontext"
)

// Reader resolves the permission set of a partner member.
type Reader interface {
	Permissions(ctx context.Context, partnerID id.PartnerID, userID id.UserID) (permissions.Set, error)
}

type Handler struct {
	reader Reader
	logger *slog.Logger
}

func New(reader Reader, logger *slog.Logger) *Handler {
	return &Handler{reader: reader, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/me/permissions", h.HandleList)
}

type listResponse struct {
	PartnerID   id.PartnerID             `json:"partnerId"`
	Permissions []permissions.Permission `json:"permissions"`
}

// HandleList handles GET /me/permissions.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	partnerID := requestcontext.PartnerID(ctx)
	if userID.IsNil() || partnerID == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	set, err := h.reader.Permissions(ctx, partnerID, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read permissions",
			"request_id", requestcontext.RequestID(ctx),
			"partner_id", partnerID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read permissions"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{PartnerID: partnerID, Permissions: set.List()})
}
