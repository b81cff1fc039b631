package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_HasAnyPermissions(t *testing.T) {
	tests := []struct {
		name string
		held []Permission
		ask  []Permission
		want bool
	}{
		{"holds first", []Permission{ContentIngestClipMedia}, []Permission{ContentIngestClipMedia, ContentIngestIntoReady}, true},
		{"holds second", []Permission{ContentIngestIntoReady}, []Permission{ContentIngestClipMedia, ContentIngestIntoReady}, true},
		{"holds both", []Permission{ContentIngestClipMedia, ContentIngestIntoReady}, []Permission{ContentIngestClipMedia, ContentIngestIntoReady}, true},
		{"holds unrelated", []Permission{PlaylistDelete}, []Permission{ContentIngestClipMedia, ContentIngestIntoReady}, false},
		{"empty set", nil, []Permission{ContentIngestClipMedia}, false},
		{"empty request", []Permission{PlaylistDelete}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewSet(tt.held...).HasAnyPermissions(tt.ask...))
		})
	}
}

func TestSet_HasAllPermissions(t *testing.T) {
	s := NewSet(ContentIngestUpload, ContentIngestBulkUpload)
	assert.True(t, s.HasAllPermissions(ContentIngestUpload, ContentIngestBulkUpload))
	assert.False(t, s.HasAllPermissions(ContentIngestUpload, PlaylistDelete))
	assert.True(t, s.HasAllPermissions())
}

func TestParse_NormalizesTokens(t *testing.T) {
	s := Parse([]string{" content_ingest_clip_media", "CONTENT_INGEST_CLIP_MEDIA", "", "playlist_delete"})
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []Permission{ContentIngestClipMedia, PlaylistDelete}, s.List())
}

func TestSet_ZeroValue(t *testing.T) {
	var s Set
	assert.False(t, s.Has(PlaylistDelete))
	assert.Empty(t, s.List())
}
