package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"mediaconsole/internal/entries"
	entrieshandler "mediaconsole/internal/entries/handler"
	entrymodels "mediaconsole/internal/entries/models"
	entrystore "mediaconsole/internal/entries/store"
	jwttoken "mediaconsole/internal/jwt_token"
	"mediaconsole/internal/permissions"
	permissionshandler "mediaconsole/internal/permissions/handler"
	permstore "mediaconsole/internal/permissions/store"
	"mediaconsole/internal/platform/config"
	confighandler "mediaconsole/internal/platform/config/handler"
	"mediaconsole/internal/platform/httpserver"
	"mediaconsole/internal/platform/logger"
	"mediaconsole/internal/platform/metrics"
	"mediaconsole/internal/platform/postgres"
	platformredis "mediaconsole/internal/platform/redis"
	"mediaconsole/internal/playlists"
	playlistshandler "mediaconsole/internal/playlists/handler"
	playlistmetrics "mediaconsole/internal/playlists/metrics"
	playlistmodels "mediaconsole/internal/playlists/models"
	playliststore "mediaconsole/internal/playlists/store"
	"mediaconsole/internal/ratelimit"
	ratelimitstore "mediaconsole/internal/ratelimit/store"
	"mediaconsole/internal/uploads"
	uploadshandler "mediaconsole/internal/uploads/handler"
	"mediaconsole/internal/views"
	viewshandler "mediaconsole/internal/views/handler"
	viewmetrics "mediaconsole/internal/views/metrics"
	id "mediaconsole/pkg/domain"
	"mediaconsole/pkg/platform/audit"
	auditkafka "mediaconsole/pkg/platform/audit/kafka"
	"mediaconsole/pkg/platform/audit/publisher"
	auditmemory "mediaconsole/pkg/platform/audit/store/memory"
	"mediaconsole/pkg/platform/circuit"
	"mediaconsole/pkg/platform/httputil"
	authmw "mediaconsole/pkg/platform/middleware/auth"
	"mediaconsole/pkg/platform/middleware/metadata"
	"mediaconsole/pkg/platform/middleware/request"
	"mediaconsole/pkg/platform/middleware/requesttime"
)

// permissionStore is satisfied by both the Redis and in-memory stores.
type permissionStore interface {
	permissionshandler.Reader
	Grant(ctx context.Context, partnerID id.PartnerID, userID id.UserID, ps ...permissions.Permission) error
}

type entryWriter interface {
	entries.Store
	Save(ctx context.Context, e *entrymodels.Entry) error
}

type playlistWriter interface {
	playlists.Store
	Save(ctx context.Context, p *playlistmodels.Playlist) error
}

// app owns every long-lived dependency of the server.
type app struct {
	cfg    config.Config
	logger *slog.Logger

	db    *sql.DB
	redis *platformredis.Client
	kafka *auditkafka.Store

	entryStore    entryWriter
	playlistStore playlistWriter
	permissions   permissionStore

	opsAudit        *publisher.Publisher
	complianceAudit *publisher.Publisher

	router chi.Router
}

func newApp(ctx context.Context, cfg config.Config, log *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: log}
	if err := a.openBackends(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.buildRouter(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) openBackends(ctx context.Context) error {
	var err error

	if a.db, err = postgres.Open(ctx, a.cfg.Postgres); err != nil {
		return err
	}
	if a.db != nil {
		if err := postgres.Migrate(ctx, a.db); err != nil {
			return err
		}
		a.entryStore = entrystore.NewPostgres(a.db)
		a.playlistStore = playliststore.NewPostgres(a.db)
		a.logger.Info("using postgres for entries and playlists")
	} else {
		a.entryStore = entrystore.NewInMemory()
		a.playlistStore = playliststore.NewInMemory()
	}

	if a.redis, err = platformredis.New(ctx, a.cfg.Redis); err != nil {
		return err
	}
	if a.redis != nil {
		a.permissions = permstore.NewRedis(a.redis.Client)
		a.logger.Info("using redis for permissions")
	} else {
		a.permissions = permstore.NewInMemory()
	}

	fallback := auditmemory.NewInMemoryStore(auditmemory.WithCapacity(a.cfg.Kafka.MemoryCapacity))
	var primary audit.Store = fallback
	if len(a.cfg.Kafka.Brokers) > 0 {
		a.kafka, err = auditkafka.New(ctx, auditkafka.Config{
			Brokers:           a.cfg.Kafka.Brokers,
			Topic:             a.cfg.Kafka.Topic,
			Partitions:        a.cfg.Kafka.Partitions,
			ReplicationFactor: a.cfg.Kafka.ReplicationFactor,
		})
		if err != nil {
			return fmt.Errorf("audit sink: %w", err)
		}
		primary = a.kafka
		a.logger.Info("using kafka for audit events", "topic", a.cfg.Kafka.Topic)
	}

	auditLog := logger.Sub(a.logger, "audit")
	a.opsAudit = publisher.NewPublisher(primary,
		publisher.WithAsyncBuffer(a.cfg.Kafka.AsyncBuffer),
		publisher.WithFallback(fallback, circuit.New("audit-operations")),
		publisher.WithLogger(auditLog),
	)
	a.complianceAudit = publisher.NewPublisher(primary,
		publisher.WithFallback(fallback, circuit.New("audit-compliance")),
		publisher.WithLogger(auditLog),
	)
	return nil
}

func (a *app) buildRouter() error {
	cfg := a.cfg
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.New(reg)

	entriesSvc := entries.New(a.entryStore, cfg.Client.Views.Tables,
		entries.WithLogger(logger.Sub(a.logger, "entries")),
		entries.WithAuditor(a.opsAudit),
	)

	gates, err := views.NewRegistry(
		views.NewClipAndTrimView(cfg.ExternalApps.ClipAndTrim, views.WithGateLogger(a.logger)),
	)
	if err != nil {
		return err
	}
	viewsSvc, err := views.NewService(gates, entriesSvc, a.permissions,
		views.WithLogger(logger.Sub(a.logger, "views")),
		views.WithMetrics(viewmetrics.New(reg)),
		views.WithAuditor(a.opsAudit),
	)
	if err != nil {
		return err
	}

	playlistsSvc := playlists.New(a.playlistStore, a.permissions, cfg.Client.Views.Tables,
		playlists.WithLogger(logger.Sub(a.logger, "playlists")),
		playlists.WithAuditor(a.complianceAudit),
		playlists.WithMetrics(playlistmetrics.New(reg)),
	)
	uploadsSvc := uploads.New(a.permissions, cfg.ExternalLinks.Uploads, cfg.MediaServer,
		uploads.WithLogger(logger.Sub(a.logger, "uploads")),
	)

	var authOpts []authmw.Option
	if cfg.MediaServer.LimitToPartnerID > 0 {
		authOpts = append(authOpts, authmw.WithPartnerLimit(id.PartnerID(cfg.MediaServer.LimitToPartnerID)))
	}
	var limiterStore ratelimit.Store = ratelimitstore.NewInMemory()
	if a.redis != nil {
		limiterStore = ratelimitstore.NewRedis(a.redis.Client)
	}
	limiter := ratelimit.New(limiterStore, cfg.RateLimit.RequestsPerWindow, cfg.RateLimit.Window,
		logger.Sub(a.logger, "ratelimit"),
		ratelimit.WithDisabled(!cfg.RateLimit.Enabled),
	)

	tokens := jwttoken.NewJWTServiceAdapter(jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience))

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(httpMetrics.Middleware)

	r.Get("/healthz", a.handleHealth)
	r.Handle("/metrics", httpMetrics.Handler())
	confighandler.New(cfg).Register(r)

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(tokens, a.logger, authOpts...))
		r.Use(limiter.Handler)

		permissionshandler.New(a.permissions, a.logger).Register(r)
		entrieshandler.New(entriesSvc, a.logger).Register(r)
		viewshandler.New(viewsSvc, a.logger).Register(r)
		playlistshandler.New(playlistsSvc, a.logger).Register(r)
		uploadshandler.New(uploadsSvc, a.logger).Register(r)
	})

	a.router = r
	return nil
}

func (a *app) Server() *http.Server {
	return httpserver.New(a.cfg.Server, a.router)
}

// handleHealth reports whether every configured backend answers.
func (a *app) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := map[string]string{}
	healthy := true
	check := func(name string, err error) {
		if err != nil {
			healthy = false
			status[name] = err.Error()
			return
		}
		status[name] = "ok"
	}
	if a.db != nil {
		check("postgres", a.db.PingContext(ctx))
	}
	if a.redis != nil {
		check("redis", a.redis.Health(ctx))
	}
	if a.kafka != nil {
		check("kafka", a.kafka.Health(ctx))
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, code, status)
}

// Close drains the audit publishers before closing the sinks they write to.
func (a *app) Close() {
	for _, p := range []*publisher.Publisher{a.opsAudit, a.complianceAudit} {
		if p == nil {
			continue
		}
		if err := p.Close(); err != nil {
			a.logger.Warn("failed to close audit publisher", "error", err)
		}
	}
	if a.kafka != nil {
		a.kafka.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
