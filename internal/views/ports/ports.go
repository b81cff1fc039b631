package ports

//go:generate mockgen -source=ports.go -destination=../mocks/mocks.go -package=mocks EntryPort,PermissionPort,AuditPort

import (
	"context"

	"mediaconsole/internal/entries/models"
	"mediaconsole/internal/permissions"
	id "mediaconsole/pkg/domain"
	"mediaconsole/pkg/platform/audit"
)

// EntryPort loads the entry snapshot a gate evaluates. Returns a not_found
// coded error for unknown entries.
type EntryPort interface {
	Get(ctx context.Context, partnerID id.PartnerID, entryID id.EntryID) (*models.Entry, error)
}

// PermissionPort resolves the acting user's permission set.
type PermissionPort interface {
	Permissions(ctx context.Context, partnerID id.PartnerID, userID id.UserID) (permissions.Set, error)
}

// AuditPort emits audit events.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
