// Package permissions models the permission tokens a console user holds
// within a partner and the stores that resolve them.
package permissions

import (
	"slices"

	"mediaconsole/pkg/platform/strings"
)

// Permission is an opaque capability token.
type Permission string

const (
	ContentIngestClipMedia  Permission = "CONTENT_INGEST_CLIP_MEDIA"
	ContentIngestIntoReady  Permission = "CONTENT_INGEST_INTO_READY"
	ContentIngestUpload     Permission = "CONTENT_INGEST_UPLOAD"
	ContentIngestBulkUpload Permission = "CONTENT_INGEST_BULK_UPLOAD"
	ContentManageBase       Permission = "CONTENT_MANAGE_BASE"
	ContentModerateBase     Permission = "CONTENT_MODERATE_BASE"
	PlaylistBase            Permission = "PLAYLIST_BASE"
	PlaylistDelete          Permission = "PLAYLIST_DELETE"
)

// Set is an immutable set of permission tokens. The zero value is empty.
type Set struct {
	tokens map[Permission]struct{}
}

// NewSet builds a set from tokens. Tokens are trimmed and upper-cased.
func NewSet(tokens ...Permission) Set {
	raw := make([]string, len(tokens))
	for i, t := range tokens {
		raw[i] = string(t)
	}
	return Parse(raw)
}

// Parse builds a set from raw token strings as stored in Redis or a token.
func Parse(raw []string) Set {
	clean := strings.DedupeUpper(raw)
	s := Set{tokens: make(map[Permission]struct{}, len(clean))}
	for _, t := range clean {
		s.tokens[Permission(t)] = struct{}{}
	}
	return s
}

// Has reports whether the set holds p.
func (s Set) Has(p Permission) bool {
	_, ok := s.tokens[p]
	return ok
}

// HasAnyPermissions reports whether at least one of ps is held. An empty
// ps is never satisfied.
func (s Set) HasAnyPermissions(ps ...Permission) bool {
	for _, p := range ps {
		if s.Has(p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether every one of ps is held.
func (s Set) HasAllPermissions(ps ...Permission) bool {
	for _, p := range ps {
		if !s.Has(p) {
			return false
		}
	}
	return true
}

func (s Set) Len() int { return len(s.tokens) }

// List returns the tokens sorted.
func (s Set) List() []Permission {
	out := make([]Permission, 0, len(s.tokens))
	for p := range s.tokens {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
