package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"mediaconsole/internal/entries"
	"mediaconsole/internal/entries/models"
	"mediaconsole/internal/entries/store"
	"mediaconsole/internal/platform/config"
	id "mediaconsole/pkg/domain"
	"mediaconsole/pkg/testutil"
)

type EntriesHandlerSuite struct {
	suite.Suite
	router chi.Router
	user   id.UserID
}

func TestEntriesHandlerSuite(t *testing.T) {
	suite.Run(t, new(EntriesHandlerSuite))
}

func (s *EntriesHandlerSuite) SetupTest() {
	st := store.NewInMemory()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, e := range []*models.Entry{
		{ID: "0_v1", PartnerID: 3, Name: "Launch video", MediaType: id.MediaTypeVideo, Status: id.EntryStatusReady, ModerationStatus: id.ModerationStatusApproved},
		{ID: "0_a1", PartnerID: 3, Name: "Interview", MediaType: id.MediaTypeAudio, Status: id.EntryStatusReady, ModerationStatus: id.ModerationStatusPending},
		{ID: "0_i1", PartnerID: 3, Name: "Thumbnail", MediaType: id.MediaTypeImage, Status: id.EntryStatusPending, ModerationStatus: id.ModerationStatusFlaggedForReview},
	} {
		e.CreatedAt = now.Add(-time.Duration(i) * time.Hour)
		s.Require().NoError(st.Save(context.Background(), e))
	}

	svc := entries.New(st, config.Default().Client.Views.Tables)
	s.router = chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
	s.user = id.UserID(uuid.New())
}

func (s *EntriesHandlerSuite) get(path string) *http.Request {
	return testutil.WithSession(testutil.NewJSONRequest(s.T(), http.MethodGet, path, nil), s.user, 3)
}

func (s *EntriesHandlerSuite) TestGet() {
	s.Run("found", func() {
		rr := testutil.DoRequest(s.router, s.get("/entries/0_v1"))
		s.Require().Equal(http.StatusOK, rr.Code)
		body := testutil.DecodeResponse[EntryResponse](s.T(), rr)
		s.Equal("Launch video", body.Name)
		s.Equal("video", body.MediaTypeName)
		s.Equal("ready", body.StatusName)
	})

	s.Run("missing", func() {
		rr := testutil.DoRequest(s.router, s.get("/entries/0_nope"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("malformed id", func() {
		rr := testutil.DoRequest(s.router, s.get("/entries/bad.id"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("unauthenticated", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/entries/0_v1", nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})
}

func (s *EntriesHandlerSuite) TestList() {
	s.Run("filters and active tags", func() {
		rr := testutil.DoRequest(s.router, s.get("/entries?moderationStatuses=1,5&mediaTypes=5"))
		s.Require().Equal(http.StatusOK, rr.Code)
		body := testutil.DecodeResponse[ListResponse](s.T(), rr)

		s.Equal(1, body.TotalCount)
		s.Equal("0_a1", body.Objects[0].ID)
		s.Require().Len(body.ActiveFilters, 3)
		s.Equal("pendingModeration", body.ActiveFilters[0].Label)
		s.Equal("applications.content.filters.moderation", body.ActiveFilters[0].Tooltip.Token)
	})

	s.Run("paging defaults", func() {
		rr := testutil.DoRequest(s.router, s.get("/entries"))
		body := testutil.DecodeResponse[ListResponse](s.T(), rr)
		s.Equal(1, body.PageIndex)
		s.Equal(50, body.PageSize)
		s.Equal(3, body.TotalCount)
		s.Equal("0_v1", body.Objects[0].ID)
		s.NotNil(body.ActiveFilters)
	})

	s.Run("invalid filter code", func() {
		rr := testutil.DoRequest(s.router, s.get("/entries?mediaTypes=42"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("invalid page size", func() {
		rr := testutil.DoRequest(s.router, s.get("/entries?pageSize=abc"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}
