package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mediaconsole/internal/entries"
	"mediaconsole/internal/entries/filters"
	"mediaconsole/internal/entries/models"
	id "mediaconsole/pkg/domain"
	dErrors "mediaconsole/pkg/domain-errors"
	"mediaconsole/pkg/platform/httputil"
	"mediaconsole/pkg/platform/strings"
	"mediaconsole/pkg/requestcontext"
)

// Service defines the entries operations the handler needs.
type Service interface {
	Get(ctx context.Context, partnerID id.PartnerID, entryID id.EntryID) (*models.Entry, error)
	List(ctx context.Context, q entries.ListQuery) (*entries.ListResult, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/entries", h.HandleList)
	r.Get("/entries/{entryID}", h.HandleGet)
}

// HandleGet handles GET /entries/{entryID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	partnerID := requestcontext.PartnerID(ctx)
	if partnerID == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	entryID, err := id.ParseEntryID(chi.URLParam(r, "entryID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	e, err := h.service.Get(ctx, partnerID, entryID)
	if err != nil {
		h.logFailure(ctx, "entry lookup failed", err, "entry_id", entryID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toEntryResponse(e))
}

// HandleList handles GET /entries.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	partnerID := requestcontext.PartnerID(ctx)
	if partnerID == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	q.PartnerID = partnerID
	q.UserID = requestcontext.UserID(ctx)

	res, err := h.service.List(ctx, q)
	if err != nil {
		h.logFailure(ctx, "entries list failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(res))
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	args = append(args, "request_id", requestcontext.RequestID(ctx), "error", err)
	h.logger.Log(ctx, level, msg, args...)
}

func parseListQuery(r *http.Request) (entries.ListQuery, error) {
	values := r.URL.Query()
	q := entries.ListQuery{FreeText: values.Get("freeText")}

	var err error
	if q.PageIndex, err = optionalInt(values.Get("pageIndex"), "pageIndex"); err != nil {
		return q, err
	}
	if q.PageSize, err = optionalInt(values.Get("pageSize"), "pageSize"); err != nil {
		return q, err
	}

	for _, code := range strings.SplitList(values.Get(filters.TypeModerationStatuses)) {
		ms, err := id.ParseModerationStatus(code)
		if err != nil {
			return q, err
		}
		q.Filters = append(q.Filters, filters.ModerationStatusesFilter(ms.Code(), ms.Name()))
	}
	for _, code := range strings.SplitList(values.Get(filters.TypeMediaTypes)) {
		mt, err := id.ParseMediaType(code)
		if err != nil {
			return q, err
		}
		q.Filters = append(q.Filters, filters.MediaTypesFilter(mt.Code(), mt.Name()))
	}
	for _, code := range strings.SplitList(values.Get(filters.TypeIngestionStatuses)) {
		st, err := id.ParseEntryStatus(code)
		if err != nil {
			return q, err
		}
		q.Filters = append(q.Filters, filters.IngestionStatusesFilter(string(st), st.Name()))
	}
	return q, nil
}

func optionalInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid "+name)
	}
	return n, nil
}
