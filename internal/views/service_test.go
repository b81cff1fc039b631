package views

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"mediaconsole/internal/permissions"
	"mediaconsole/internal/platform/config"
	"mediaconsole/internal/views/metrics"
	"mediaconsole/internal/views/mocks"
	id "mediaconsole/pkg/domain"
	dErrors "mediaconsole/pkg/domain-errors"
	"mediaconsole/pkg/platform/audit"
	"mediaconsole/pkg/platform/sentinel"
	"mediaconsole/pkg/requestcontext"
)

// =============================================================================
// Views Service Test Suite
// =============================================================================
// Justification: the service owns evidence gathering, error mapping, metrics
// and audit emission around the pure gates. Ports are mocked so each failure
// path can be driven directly.

type ViewsServiceSuite struct {
	suite.Suite
	ctx         context.Context
	entries     *mocks.MockEntryPort
	permissions *mocks.MockPermissionPort
	auditor     *mocks.MockAuditPort
	metrics     *metrics.Metrics
	service     *Service
	partnerID   id.PartnerID
	userID      id.UserID
}

func TestViewsServiceSuite(t *testing.T) {
	suite.Run(t, new(ViewsServiceSuite))
}

func (s *ViewsServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.entries = mocks.NewMockEntryPort(ctrl)
	s.permissions = mocks.NewMockPermissionPort(ctrl)
	s.auditor = mocks.NewMockAuditPort(ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.partnerID = 2063561
	s.userID = id.UserID(uuid.New())

	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry, err := NewRegistry(NewClipAndTrimView(
		config.ExternalApp{Enabled: true, URI: "/apps/clip-and-trim/"},
		WithGateLogger(discard),
	))
	s.Require().NoError(err)

	s.service, err = NewService(registry, s.entries, s.permissions,
		WithLogger(discard),
		WithMetrics(s.metrics),
		WithAuditor(s.auditor),
	)
	s.Require().NoError(err)

	s.ctx = requestcontext.WithRequestID(context.Background(), "req-1")
	s.ctx = requestcontext.WithTime(s.ctx, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
}

func (s *ViewsServiceSuite) request() CheckRequest {
	return CheckRequest{
		View:      ViewClipAndTrim,
		EntryID:   "0_x8a1fzp3",
		PartnerID: s.partnerID,
		UserID:    s.userID,
	}
}

// =============================================================================
// Check
// =============================================================================

func (s *ViewsServiceSuite) TestCheckAvailable() {
	s.entries.EXPECT().Get(gomock.Any(), s.partnerID, id.EntryID("0_x8a1fzp3")).Return(readyVideo(), nil)
	s.permissions.EXPECT().Permissions(gomock.Any(), s.partnerID, s.userID).
		Return(permissions.NewSet(permissions.ContentIngestIntoReady), nil)

	var emitted audit.Event
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
		emitted = e
		return nil
	})

	d, err := s.service.Check(s.ctx, s.request())
	s.Require().NoError(err)
	s.True(d.Available)

	s.Equal(audit.EventViewAvailabilityChecked.String(), emitted.Action)
	s.Equal("available", emitted.Decision)
	s.Equal("0_x8a1fzp3/clipAndTrim", emitted.Subject)
	s.Equal("configuration=true permission=true data=true", emitted.Reason)
	s.Equal("req-1", emitted.RequestID)
	s.Equal(s.userID, emitted.UserID)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.Evaluations.WithLabelValues("clipAndTrim", "available")))
}

func (s *ViewsServiceSuite) TestCheckCountsEveryFailedSubCheck() {
	entry := readyVideo()
	entry.Status = id.EntryStatusPending
	s.entries.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(entry, nil)
	s.permissions.EXPECT().Permissions(gomock.Any(), gomock.Any(), gomock.Any()).Return(permissions.NewSet(), nil)
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	d, err := s.service.Check(s.ctx, s.request())
	s.Require().NoError(err)
	s.False(d.Available)
	s.True(d.ByConfiguration)
	s.False(d.ByPermission)
	s.False(d.ByData)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.Evaluations.WithLabelValues("clipAndTrim", "unavailable")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Rejections.WithLabelValues("clipAndTrim", "permission")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Rejections.WithLabelValues("clipAndTrim", "data")))
	s.Equal(0.0, testutil.ToFloat64(s.metrics.Rejections.WithLabelValues("clipAndTrim", "configuration")))
}

func (s *ViewsServiceSuite) TestCheckUnknownView() {
	req := s.request()
	req.View = "advertisements"

	_, err := s.service.Check(s.ctx, req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ViewsServiceSuite) TestCheckEntryNotFoundPassesThrough() {
	s.entries.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "entry not found"))
	s.permissions.EXPECT().Permissions(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(permissions.NewSet(), nil).MaxTimes(1)

	_, err := s.service.Check(s.ctx, s.request())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ViewsServiceSuite) TestCheckPermissionBackendFailureIsInternal() {
	s.entries.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(readyVideo(), nil).MaxTimes(1)
	s.permissions.EXPECT().Permissions(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(permissions.Set{}, sentinel.ErrUnavailable)

	_, err := s.service.Check(s.ctx, s.request())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.True(errors.Is(err, sentinel.ErrUnavailable))
}

func (s *ViewsServiceSuite) TestAuditFailureDoesNotFailCheck() {
	s.entries.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(readyVideo(), nil)
	s.permissions.EXPECT().Permissions(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(permissions.NewSet(permissions.ContentIngestClipMedia), nil)
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("buffer full"))

	d, err := s.service.Check(s.ctx, s.request())
	s.Require().NoError(err)
	s.True(d.Available)
}

// =============================================================================
// Available
// =============================================================================

func (s *ViewsServiceSuite) TestAvailableEvaluatesEveryRegisteredView() {
	s.entries.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(readyVideo(), nil).Times(1)
	s.permissions.EXPECT().Permissions(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(permissions.NewSet(permissions.ContentIngestClipMedia), nil).Times(1)
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	decisions, err := s.service.Available(s.ctx, s.partnerID, s.userID, "0_x8a1fzp3")
	s.Require().NoError(err)
	s.Require().Len(decisions, 1)
	s.Equal(ViewClipAndTrim, decisions[0].View)
	s.True(decisions[0].Available)
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewService(nil, mocks.NewMockEntryPort(ctrl), mocks.NewMockPermissionPort(ctrl)); err == nil {
		t.Error("expected error for nil registry")
	}
	if _, err := NewService(registry, nil, mocks.NewMockPermissionPort(ctrl)); err == nil {
		t.Error("expected error for nil entry port")
	}
	if _, err := NewService(registry, mocks.NewMockEntryPort(ctrl), nil); err == nil {
		t.Error("expected error for nil permission port")
	}
}
