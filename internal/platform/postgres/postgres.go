// Package postgres opens the lib/pq connection pool and owns the schema of
// the entries and playlists tables.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"mediaconsole/internal/platform/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id                 TEXT PRIMARY KEY,
	partner_id         BIGINT      NOT NULL,
	name               TEXT        NOT NULL,
	description        TEXT        NOT NULL DEFAULT '',
	kind               TEXT        NOT NULL DEFAULT 'media',
	media_type         INTEGER     NOT NULL,
	status             TEXT        NOT NULL,
	replacement_status TEXT        NOT NULL DEFAULT '0',
	moderation_status  INTEGER     NOT NULL DEFAULT 6,
	duration_seconds   INTEGER     NOT NULL DEFAULT 0,
	tags               TEXT[]      NOT NULL DEFAULT '{}',
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS entries_partner_created_idx ON entries (partner_id, created_at DESC);

CREATE TABLE IF NOT EXISTS playlists (
	id            TEXT PRIMARY KEY,
	partner_id    BIGINT      NOT NULL,
	name          TEXT        NOT NULL,
	description   TEXT        NOT NULL DEFAULT '',
	playlist_type INTEGER     NOT NULL DEFAULT 3,
	entry_ids     TEXT[]      NOT NULL DEFAULT '{}',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS playlists_partner_created_idx ON playlists (partner_id, created_at DESC);
`

// Open returns a pinged pool. An empty DSN returns (nil, nil) so callers
// fall back to in-memory stores.
func Open(ctx context.Context, cfg config.Postgres) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, nil
	}
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return db, nil
}

// Migrate applies the schema. Statements are idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
