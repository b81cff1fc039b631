package domain

import (
	"strconv"
	"strings"

	dErrors "mediaconsole/pkg/domain-errors"
)

// EntryStatus is the ingestion status of a media entry. Values match the
// media platform's wire codes.
type EntryStatus string

const (
	EntryStatusErrorImporting  EntryStatus = "-2"
	EntryStatusErrorConverting EntryStatus = "-1"
	EntryStatusImport          EntryStatus = "0"
	EntryStatusPreconvert      EntryStatus = "1"
	EntryStatusReady           EntryStatus = "2"
	EntryStatusDeleted         EntryStatus = "3"
	EntryStatusPending         EntryStatus = "4"
	EntryStatusModerate        EntryStatus = "5"
	EntryStatusBlocked         EntryStatus = "6"
	EntryStatusNoContent       EntryStatus = "7"
)

var entryStatusNames = map[EntryStatus]string{
	EntryStatusErrorImporting:  "errorImporting",
	EntryStatusErrorConverting: "errorConverting",
	EntryStatusImport:          "import",
	EntryStatusPreconvert:      "preconvert",
	EntryStatusReady:           "ready",
	EntryStatusDeleted:         "deleted",
	EntryStatusPending:         "pending",
	EntryStatusModerate:        "moderate",
	EntryStatusBlocked:         "blocked",
	EntryStatusNoContent:       "noContent",
}

// ParseEntryStatus accepts a known wire code.
func ParseEntryStatus(s string) (EntryStatus, error) {
	st := EntryStatus(strings.TrimSpace(s))
	if _, ok := entryStatusNames[st]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid entry status")
	}
	return st, nil
}

// Name returns the readable name, or the raw code when unknown.
func (s EntryStatus) Name() string {
	if n, ok := entryStatusNames[s]; ok {
		return n
	}
	return string(s)
}

// ReplacementStatus tracks whether an entry's content is being replaced.
// Anything other than ReplacementStatusNone, including the empty value,
// means a replacement is in flight.
type ReplacementStatus string

const (
	ReplacementStatusNone                   ReplacementStatus = "0"
	ReplacementStatusApprovedButNotReady    ReplacementStatus = "1"
	ReplacementStatusReadyButNotApproved    ReplacementStatus = "2"
	ReplacementStatusNotReadyAndNotApproved ReplacementStatus = "3"
	ReplacementStatusFailed                 ReplacementStatus = "4"
)

// IsReplacing reports whether the entry is undergoing replacement.
func (s ReplacementStatus) IsReplacing() bool {
	return s != ReplacementStatusNone
}

// MediaType is the declared media type of an entry.
type MediaType int

const (
	MediaTypeVideo                  MediaType = 1
	MediaTypeImage                  MediaType = 2
	MediaTypeAudio                  MediaType = 5
	MediaTypeLiveStreamFlash        MediaType = 201
	MediaTypeLiveStreamWindowsMedia MediaType = 202
	MediaTypeLiveStreamRealMedia    MediaType = 203
	MediaTypeLiveStreamQuicktime    MediaType = 204
)

var mediaTypeNames = map[MediaType]string{
	MediaTypeVideo:                  "video",
	MediaTypeImage:                  "image",
	MediaTypeAudio:                  "audio",
	MediaTypeLiveStreamFlash:        "liveStreamFlash",
	MediaTypeLiveStreamWindowsMedia: "liveStreamWindowsMedia",
	MediaTypeLiveStreamRealMedia:    "liveStreamRealMedia",
	MediaTypeLiveStreamQuicktime:    "liveStreamQuicktime",
}

// ParseMediaType accepts a known numeric wire code.
func ParseMediaType(s string) (MediaType, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid media type")
	}
	mt := MediaType(n)
	if _, ok := mediaTypeNames[mt]; !ok {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid media type")
	}
	return mt, nil
}

// IsLive reports whether the type is one of the four live stream variants.
func (t MediaType) IsLive() bool {
	switch t {
	case MediaTypeLiveStreamFlash,
		MediaTypeLiveStreamWindowsMedia,
		MediaTypeLiveStreamRealMedia,
		MediaTypeLiveStreamQuicktime:
		return true
	}
	return false
}

// Name returns the readable name, or the numeric code when unknown.
func (t MediaType) Name() string {
	if n, ok := mediaTypeNames[t]; ok {
		return n
	}
	return strconv.Itoa(int(t))
}

// Code returns the numeric wire code as a string.
func (t MediaType) Code() string {
	return strconv.Itoa(int(t))
}

// EntryKind discriminates entries hosted on the platform from entries that
// only reference media hosted elsewhere.
type EntryKind string

const (
	EntryKindMedia         EntryKind = "media"
	EntryKindExternalMedia EntryKind = "externalMedia"
)

// IsExternal reports whether the entry references externally hosted media.
func (k EntryKind) IsExternal() bool {
	return k == EntryKindExternalMedia
}

// ModerationStatus is the moderation state of an entry.
type ModerationStatus int

const (
	ModerationStatusPending          ModerationStatus = 1
	ModerationStatusApproved         ModerationStatus = 2
	ModerationStatusRejected         ModerationStatus = 3
	ModerationStatusFlaggedForReview ModerationStatus = 5
	ModerationStatusAutoApproved     ModerationStatus = 6
)

var moderationStatusNames = map[ModerationStatus]string{
	ModerationStatusPending:          "pendingModeration",
	ModerationStatusApproved:         "approved",
	ModerationStatusRejected:         "rejected",
	ModerationStatusFlaggedForReview: "flaggedForReview",
	ModerationStatusAutoApproved:     "autoApproved",
}

// ParseModerationStatus accepts a known numeric wire code.
func ParseModerationStatus(s string) (ModerationStatus, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid moderation status")
	}
	ms := ModerationStatus(n)
	if _, ok := moderationStatusNames[ms]; !ok {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid moderation status")
	}
	return ms, nil
}

func (s ModerationStatus) Name() string {
	if n, ok := moderationStatusNames[s]; ok {
		return n
	}
	return strconv.Itoa(int(s))
}

func (s ModerationStatus) Code() string {
	return strconv.Itoa(int(s))
}
