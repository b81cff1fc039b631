package domain

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	dErrors "mediaconsole/pkg/domain-errors"
)

// UserID identifies a console user. Typed so it cannot be mixed with other IDs.
type UserID uuid.UUID

// PartnerID identifies the media-platform account a user acts within.
type PartnerID int64

// EntryID identifies a media entry, e.g. "0_x8a1fzp3".
type EntryID string

// PlaylistID identifies a playlist; playlists share the entry ID space.
type PlaylistID string

const maxEntryIDLength = 64

// ParseUserID parses a non-nil UUID at a trust boundary.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID(u), nil
}

func (id UserID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the ID is the zero UUID.
func (id UserID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *UserID) UnmarshalText(b []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(b); err != nil {
		return err
	}
	*id = UserID(u)
	return nil
}

// ParsePartnerID parses a positive partner ID.
func ParsePartnerID(s string) (PartnerID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid partner id")
	}
	return PartnerID(n), nil
}

func (id PartnerID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseEntryID validates an entry ID: non-empty, bounded, and limited to
// letters, digits, '_' and '-'.
func ParseEntryID(s string) (EntryID, error) {
	if err := validateObjectID(s, "entry id"); err != nil {
		return "", err
	}
	return EntryID(s), nil
}

func (id EntryID) String() string { return string(id) }

// ParsePlaylistID validates a playlist ID with the same rules as entry IDs.
func ParsePlaylistID(s string) (PlaylistID, error) {
	if err := validateObjectID(s, "playlist id"); err != nil {
		return "", err
	}
	return PlaylistID(s), nil
}

func (id PlaylistID) String() string { return string(id) }

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid id format")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be nil")
	}
	return u, nil
}

func validateObjectID(s, what string) error {
	if s == "" {
		return dErrors.New(dErrors.CodeInvalidInput, what+" cannot be empty")
	}
	if len(s) > maxEntryIDLength {
		return dErrors.New(dErrors.CodeInvalidInput, what+" is too long")
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return dErrors.New(dErrors.CodeInvalidInput, "invalid "+what)
		}
	}
	return nil
}
