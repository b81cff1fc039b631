package views

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mediaconsole/internal/views/metrics"
	"mediaconsole/internal/views/ports"
	id "mediaconsole/pkg/domain"
	dErrors "mediaconsole/pkg/domain-errors"
	"mediaconsole/pkg/platform/audit"
	"mediaconsole/pkg/requestcontext"
)

const (
	evidenceTimeout = 3 * time.Second
	tracerName      = "mediaconsole/internal/views"
)

// CheckRequest asks whether one view is exposed for an entry.
type CheckRequest struct {
	View      View
	EntryID   id.EntryID
	PartnerID id.PartnerID
	UserID    id.UserID
}

// Service gathers evidence for a gate and evaluates it.
type Service struct {
	registry    *Registry
	entries     ports.EntryPort
	permissions ports.PermissionPort
	auditor     ports.AuditPort
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	logger      *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditor(auditor ports.AuditPort) Option {
	return func(s *Service) { s.auditor = auditor }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

func NewService(registry *Registry, entries ports.EntryPort, perms ports.PermissionPort, opts ...Option) (*Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("views registry is required")
	}
	if entries == nil {
		return nil, fmt.Errorf("entry port is required")
	}
	if perms == nil {
		return nil, fmt.Errorf("permission port is required")
	}
	s := &Service{
		registry:    registry,
		entries:     entries,
		permissions: perms,
		tracer:      otel.Tracer(tracerName),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Check evaluates a single view. The gate itself never fails; errors come
// only from an unknown view or from gathering evidence.
func (s *Service) Check(ctx context.Context, req CheckRequest) (*Decision, error) {
	gate, ok := s.registry.Lookup(req.View)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown view: "+req.View.String())
	}

	ctx, span := s.tracer.Start(ctx, "views.Check", trace.WithAttributes(
		attribute.String("view", req.View.String()),
		attribute.String("entry_id", req.EntryID.String()),
		attribute.Int64("partner_id", int64(req.PartnerID)),
	))
	defer span.End()

	vc, err := s.gatherEvidence(ctx, req.PartnerID, req.UserID, req.EntryID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evidence gathering failed")
		return nil, err
	}

	d := s.evaluate(ctx, gate, vc, req.PartnerID, req.UserID)
	span.SetAttributes(attribute.Bool("available", d.Available))
	return &d, nil
}

// Available evaluates every registered view for the entry, gathering the
// evidence once.
func (s *Service) Available(ctx context.Context, partnerID id.PartnerID, userID id.UserID, entryID id.EntryID) ([]Decision, error) {
	ctx, span := s.tracer.Start(ctx, "views.Available", trace.WithAttributes(
		attribute.String("entry_id", entryID.String()),
		attribute.Int64("partner_id", int64(partnerID)),
	))
	defer span.End()

	vc, err := s.gatherEvidence(ctx, partnerID, userID, entryID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evidence gathering failed")
		return nil, err
	}

	views := s.registry.Views()
	out := make([]Decision, 0, len(views))
	for _, v := range views {
		gate, _ := s.registry.Lookup(v)
		out = append(out, s.evaluate(ctx, gate, vc, partnerID, userID))
	}
	return out, nil
}

func (s *Service) evaluate(ctx context.Context, gate Gate, vc Context, partnerID id.PartnerID, userID id.UserID) Decision {
	d := gate.Evaluate(ctx, vc)

	view := d.View.String()
	s.metrics.IncrementEvaluation(view, d.Available)
	if !d.ByConfiguration {
		s.metrics.IncrementRejection(view, "configuration")
	}
	if !d.ByPermission {
		s.metrics.IncrementRejection(view, "permission")
	}
	if !d.ByData {
		s.metrics.IncrementRejection(view, "data")
	}

	s.emit(ctx, d, vc, partnerID, userID)
	return d
}

func (s *Service) emit(ctx context.Context, d Decision, vc Context, partnerID id.PartnerID, userID id.UserID) {
	if s.auditor == nil {
		return
	}
	decision := "unavailable"
	if d.Available {
		decision = "available"
	}
	subject := d.View.String()
	if vc.Entry != nil {
		subject = vc.Entry.ID.String() + "/" + subject
	}
	event := audit.Event{
		Category:  audit.EventViewAvailabilityChecked.Category(),
		Timestamp: requestcontext.Now(ctx),
		UserID:    userID,
		PartnerID: partnerID,
		Action:    audit.EventViewAvailabilityChecked.String(),
		Subject:   subject,
		Decision:  decision,
		Reason:    fmt.Sprintf("configuration=%t permission=%t data=%t", d.ByConfiguration, d.ByPermission, d.ByData),
		RequestID: requestcontext.RequestID(ctx),
		UserAgent: requestcontext.Client(ctx),
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"subject", event.Subject,
			"error", err,
		)
	}
}
