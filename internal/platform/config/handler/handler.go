// Package handler serves the read-only configuration the console UI loads
// before signing in.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mediaconsole/internal/platform/config"
	"mediaconsole/pkg/platform/httputil"
)

type ExternalAppsResponse struct {
	ClipAndTrim    config.ExternalApp `json:"clipAndTrim"`
	Advertisements config.ExternalApp `json:"advertisements"`
}

type ClientConfigResponse struct {
	Client       config.Client        `json:"client"`
	MediaServer  config.MediaServer   `json:"mediaServer"`
	ExternalApps ExternalAppsResponse `json:"externalApps"`
}

type Handler struct {
	body ClientConfigResponse
}

// New snapshots cfg; the configuration never changes after load.
func New(cfg config.Config) *Handler {
	return &Handler{body: ClientConfigResponse{
		Client:      cfg.Client,
		MediaServer: cfg.MediaServer,
		ExternalApps: ExternalAppsResponse{
			ClipAndTrim:    cfg.ExternalApps.ClipAndTrim,
			Advertisements: cfg.ExternalApps.Advertisements,
		},
	}}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/config/client", h.HandleClientConfig)
}

// HandleClientConfig handles GET /config/client.
func (h *Handler) HandleClientConfig(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.body)
}
