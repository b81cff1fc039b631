package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	id "mediaconsole/pkg/domain"
)

func TestListRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, ListRequest{PageIndex: 0, PageSize: 50}.Offset())
	assert.Equal(t, 0, ListRequest{PageIndex: 1, PageSize: 50}.Offset())
	assert.Equal(t, 100, ListRequest{PageIndex: 3, PageSize: 50}.Offset())
}

func TestEntry_IsExternalMedia(t *testing.T) {
	assert.True(t, (&Entry{Kind: id.EntryKindExternalMedia}).IsExternalMedia())
	assert.False(t, (&Entry{Kind: id.EntryKindMedia}).IsExternalMedia())
	assert.False(t, (&Entry{}).IsExternalMedia())
}
