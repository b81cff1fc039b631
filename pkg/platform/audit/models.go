package audit

import (
	"context"
	"time"

	id "mediaconsole/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose so sinks
// can apply different retention and delivery guarantees.
type EventCategory string

const (
	// CategoryCompliance covers changes to customer content. Delivered
	// synchronously; the caller learns about persistence failures.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers read-side activity such as availability
	// checks. Delivered best effort and may be dropped under pressure.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from services to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	UserID    id.UserID     `json:"user_id"`
	PartnerID id.PartnerID  `json:"partner_id"`
	Action    string        `json:"action"`
	// Subject is the entry, playlist or view the action applied to.
	Subject   string `json:"subject"`
	Decision  string `json:"decision,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	// UserAgent is a short "browser version / os" summary, never the raw header.
	UserAgent string `json:"user_agent,omitempty"`
}

type AuditEvent string

const (
	EventViewAvailabilityChecked AuditEvent = "view_availability_checked"
	EventPlaylistDeleted         AuditEvent = "playlist_deleted"
	EventEntriesListed           AuditEvent = "entries_listed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventViewAvailabilityChecked: CategoryOperations,
	EventEntriesListed:           CategoryOperations,
	EventPlaylistDeleted:         CategoryCompliance,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

func (e AuditEvent) String() string {
	return string(e)
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Reader is implemented by stores that can be queried back, such as the
// in-memory store used in development and tests.
type Reader interface {
	ListByUser(ctx context.Context, userID id.UserID) ([]Event, error)
}
