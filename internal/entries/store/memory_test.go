package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"mediaconsole/internal/entries/models"
	id "mediaconsole/pkg/domain"
	"mediaconsole/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	base  time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seed := []*models.Entry{
		{ID: "0_video", PartnerID: 1, Name: "Keynote", MediaType: id.MediaTypeVideo, Status: id.EntryStatusReady, ModerationStatus: id.ModerationStatusApproved, Tags: []string{"conference"}, CreatedAt: s.base.Add(3 * time.Hour)},
		{ID: "0_audio", PartnerID: 1, Name: "Podcast 12", MediaType: id.MediaTypeAudio, Status: id.EntryStatusPending, ModerationStatus: id.ModerationStatusPending, CreatedAt: s.base.Add(2 * time.Hour)},
		{ID: "0_image", PartnerID: 1, Name: "Poster", MediaType: id.MediaTypeImage, Status: id.EntryStatusReady, ModerationStatus: id.ModerationStatusFlaggedForReview, CreatedAt: s.base.Add(1 * time.Hour)},
		{ID: "1_other", PartnerID: 2, Name: "Keynote", MediaType: id.MediaTypeVideo, Status: id.EntryStatusReady, CreatedAt: s.base},
	}
	for _, e := range seed {
		s.Require().NoError(s.store.Save(s.ctx, e))
	}
}

func (s *InMemoryStoreSuite) ids(res models.ListResult) []id.EntryID {
	out := make([]id.EntryID, len(res.Entries))
	for i, e := range res.Entries {
		out[i] = e.ID
	}
	return out
}

func (s *InMemoryStoreSuite) TestFindByID() {
	s.Run("scoped to partner", func() {
		_, err := s.store.FindByID(s.ctx, 2, "0_video")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns a copy", func() {
		e, err := s.store.FindByID(s.ctx, 1, "0_video")
		s.Require().NoError(err)
		e.Name = "mutated"

		again, err := s.store.FindByID(s.ctx, 1, "0_video")
		s.Require().NoError(err)
		s.Equal("Keynote", again.Name)
	})
}

func (s *InMemoryStoreSuite) TestList() {
	tests := []struct {
		name   string
		filter models.Filter
		want   []id.EntryID
	}{
		{"newest first", models.Filter{}, []id.EntryID{"0_video", "0_audio", "0_image"}},
		{"status in", models.Filter{StatusIn: "2"}, []id.EntryID{"0_video", "0_image"}},
		{"media type in", models.Filter{MediaTypeIn: "1,5"}, []id.EntryID{"0_video", "0_audio"}},
		{"moderation in", models.Filter{ModerationStatusIn: "5,1"}, []id.EntryID{"0_audio", "0_image"}},
		{"free text on name", models.Filter{FreeText: "podcast"}, []id.EntryID{"0_audio"}},
		{"free text on tag", models.Filter{FreeText: "Conference"}, []id.EntryID{"0_video"}},
		{"free text on id", models.Filter{FreeText: "0_image"}, []id.EntryID{"0_image"}},
		{"combined", models.Filter{StatusIn: "2", MediaTypeIn: "2"}, []id.EntryID{"0_image"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			res, err := s.store.List(s.ctx, models.ListRequest{PartnerID: 1, Filter: tt.filter})
			s.Require().NoError(err)
			s.Equal(tt.want, s.ids(res))
			s.Equal(len(tt.want), res.TotalCount)
		})
	}
}

func (s *InMemoryStoreSuite) TestListPaging() {
	res, err := s.store.List(s.ctx, models.ListRequest{PartnerID: 1, PageIndex: 2, PageSize: 2})
	s.Require().NoError(err)
	s.Equal([]id.EntryID{"0_image"}, s.ids(res))
	s.Equal(3, res.TotalCount)

	res, err = s.store.List(s.ctx, models.ListRequest{PartnerID: 1, PageIndex: 5, PageSize: 2})
	s.Require().NoError(err)
	s.Empty(res.Entries)
	s.Equal(3, res.TotalCount)
}
