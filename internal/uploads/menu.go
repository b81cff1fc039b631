// Package uploads builds the upload menu: which ingestion entry points the
// acting user may use and the limits that apply to them.
package uploads

import (
	"context"
	"log/slog"

	"mediaconsole/internal/permissions"
	"mediaconsole/internal/platform/config"
	id "mediaconsole/pkg/domain"
	dErrors "mediaconsole/pkg/domain-errors"
)

// Item identifiers.
const (
	ItemUploadFromDesktop = "uploadFromDesktop"
	ItemBulkUpload        = "bulkUpload"
	ItemHighSpeedUpload   = "highSpeedUpload"
	ItemDownloadSamples   = "downloadSamples"
	ItemPrepareEntry      = "prepareEntry"
)

// ItemKind tells the console how to act on a menu item.
type ItemKind string

const (
	KindAction        ItemKind = "action"
	KindLink          ItemKind = "link"
	KindInDevelopment ItemKind = "inDevelopment"
)

// Item is one upload menu entry.
type Item struct {
	ID      string   `json:"id"`
	Kind    ItemKind `json:"kind"`
	Label   string   `json:"label"`
	URL     string   `json:"url,omitempty"`
	Enabled bool     `json:"enabled"`
	// Message is the localization prefix of the notice shown instead of
	// acting, for items still in development.
	Message string `json:"message,omitempty"`
}

type Limits struct {
	MaxUploadFileSizeMB  int `json:"maxUploadFileSizeMb"`
	MaxConcurrentUploads int `json:"maxConcurrentUploads"`
}

type Menu struct {
	Items  []Item `json:"items"`
	Limits Limits `json:"limits"`
}

type PermissionPort interface {
	Permissions(ctx context.Context, partnerID id.PartnerID, userID id.UserID) (permissions.Set, error)
}

type Service struct {
	permissions PermissionPort
	links       config.UploadLinks
	server      config.MediaServer
	logger      *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(perms PermissionPort, links config.UploadLinks, server config.MediaServer, opts ...Option) *Service {
	s := &Service{
		permissions: perms,
		links:       links,
		server:      server,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Menu returns the menu for the user. Link items without a configured URL
// are left out.
func (s *Service) Menu(ctx context.Context, partnerID id.PartnerID, userID id.UserID) (*Menu, error) {
	perms, err := s.permissions.Permissions(ctx, partnerID, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve permissions")
	}

	items := []Item{
		{
			ID:      ItemUploadFromDesktop,
			Kind:    KindAction,
			Label:   "applications.upload.uploadMenu.uploadFromDesktop",
			Enabled: perms.Has(permissions.ContentIngestUpload),
		},
		{
			ID:      ItemBulkUpload,
			Kind:    KindAction,
			Label:   "applications.upload.uploadMenu.bulkUpload",
			Enabled: perms.Has(permissions.ContentIngestBulkUpload),
		},
	}
	if s.links.HighSpeedUpload != "" {
		items = append(items, Item{
			ID:      ItemHighSpeedUpload,
			Kind:    KindLink,
			Label:   "applications.upload.uploadMenu.highSpeed",
			URL:     s.links.HighSpeedUpload,
			Enabled: true,
		})
	}
	if s.links.BulkUploadSamples != "" {
		items = append(items, Item{
			ID:      ItemDownloadSamples,
			Kind:    KindLink,
			Label:   "applications.upload.uploadMenu.downloadSamples",
			URL:     s.links.BulkUploadSamples,
			Enabled: true,
		})
	}
	items = append(items, Item{
		ID:      ItemPrepareEntry,
		Kind:    KindInDevelopment,
		Label:   "applications.upload.uploadMenu.prepareEntry",
		Enabled: true,
		Message: "applications.upload.inDevelopment",
	})

	s.logger.DebugContext(ctx, "upload menu built",
		"partner_id", partnerID,
		"items", len(items),
	)
	return &Menu{
		Items: items,
		Limits: Limits{
			MaxUploadFileSizeMB:  s.server.MaxUploadFileSizeMB,
			MaxConcurrentUploads: s.server.MaxConcurrentUploads,
		},
	}, nil
}
