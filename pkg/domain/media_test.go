package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaType(t *testing.T) {
	t.Run("live variants", func(t *testing.T) {
		for _, mt := range []MediaType{
			MediaTypeLiveStreamFlash,
			MediaTypeLiveStreamWindowsMedia,
			MediaTypeLiveStreamRealMedia,
			MediaTypeLiveStreamQuicktime,
		} {
			assert.True(t, mt.IsLive(), mt.Name())
		}
		for _, mt := range []MediaType{MediaTypeVideo, MediaTypeAudio, MediaTypeImage, 0} {
			assert.False(t, mt.IsLive(), mt.Name())
		}
	})

	t.Run("parse accepts wire codes only", func(t *testing.T) {
		mt, err := ParseMediaType(" 5 ")
		require.NoError(t, err)
		assert.Equal(t, MediaTypeAudio, mt)

		_, err = ParseMediaType("3")
		assert.Error(t, err)
		_, err = ParseMediaType("video")
		assert.Error(t, err)
	})
}

func TestReplacementStatus(t *testing.T) {
	assert.False(t, ReplacementStatusNone.IsReplacing())
	assert.True(t, ReplacementStatusApprovedButNotReady.IsReplacing())
	assert.True(t, ReplacementStatus("").IsReplacing(), "absent status counts as replacing")
}

func TestEntryStatus(t *testing.T) {
	st, err := ParseEntryStatus("2")
	require.NoError(t, err)
	assert.Equal(t, EntryStatusReady, st)
	assert.Equal(t, "ready", st.Name())

	_, err = ParseEntryStatus("ready")
	assert.Error(t, err)
}

func TestModerationStatus(t *testing.T) {
	ms, err := ParseModerationStatus("6")
	require.NoError(t, err)
	assert.Equal(t, "autoApproved", ms.Name())
	assert.Equal(t, "6", ms.Code())

	_, err = ParseModerationStatus("4")
	assert.Error(t, err)
}

func TestEntryKind(t *testing.T) {
	assert.True(t, EntryKindExternalMedia.IsExternal())
	assert.False(t, EntryKindMedia.IsExternal())
	assert.False(t, EntryKind("").IsExternal())
}
