package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"mediaconsole/internal/entries/models"
	id "mediaconsole/pkg/domain"
	"mediaconsole/pkg/platform/sentinel"
	pstrings "mediaconsole/pkg/platform/strings"
	"mediaconsole/pkg/platform/tx"
)

const entryColumns = `id, partner_id, name, description, kind, media_type, status,
	replacement_status, moderation_status, duration_seconds, tags, created_at, updated_at`

// Postgres persists entries in the entries table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Save(ctx context.Context, e *models.Entry) error {
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			kind = EXCLUDED.kind,
			media_type = EXCLUDED.media_type,
			status = EXCLUDED.status,
			replacement_status = EXCLUDED.replacement_status,
			moderation_status = EXCLUDED.moderation_status,
			duration_seconds = EXCLUDED.duration_seconds,
			tags = EXCLUDED.tags,
			updated_at = EXCLUDED.updated_at
	`
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := tx.Exec(ctx, s.db).ExecContext(ctx, query,
		string(e.ID), int64(e.PartnerID), e.Name, e.Description, string(e.Kind),
		int(e.MediaType), string(e.Status), string(e.ReplacementStatus),
		int(e.ModerationStatus), e.DurationSeconds, pq.Array(tags),
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save entry: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, partnerID id.PartnerID, entryID id.EntryID) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1 AND partner_id = $2`
	row := tx.Exec(ctx, s.db).QueryRowContext(ctx, query, string(entryID), int64(partnerID))
	e, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find entry: %w", err)
	}
	return e, nil
}

func (s *Postgres) List(ctx context.Context, req models.ListRequest) (models.ListResult, error) {
	where, args, err := buildWhere(req)
	if err != nil {
		return models.ListResult{}, err
	}
	query := `SELECT ` + entryColumns + `, COUNT(*) OVER() FROM entries WHERE ` + where +
		` ORDER BY created_at DESC, id ASC`
	filterArgs := args
	if req.PageSize > 0 {
		args = append(args, req.PageSize, req.Offset())
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return models.ListResult{}, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	result := models.ListResult{Entries: []*models.Entry{}}
	for rows.Next() {
		var total int
		e, err := scanEntry(func(dest ...any) error {
			return rows.Scan(append(dest, &total)...)
		})
		if err != nil {
			return models.ListResult{}, fmt.Errorf("scan entry: %w", err)
		}
		result.Entries = append(result.Entries, e)
		result.TotalCount = total
	}
	if err := rows.Err(); err != nil {
		return models.ListResult{}, fmt.Errorf("iterate entries: %w", err)
	}

	// A page past the end carries no window count.
	if len(result.Entries) == 0 && req.Offset() > 0 {
		row := tx.Exec(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE `+where, filterArgs...)
		if err := row.Scan(&result.TotalCount); err != nil {
			return models.ListResult{}, fmt.Errorf("count entries: %w", err)
		}
	}
	return result, nil
}

func buildWhere(req models.ListRequest) (string, []any, error) {
	clauses := []string{"partner_id = $1"}
	args := []any{int64(req.PartnerID)}
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args))))
	}

	f := req.Filter
	if in := pstrings.SplitList(f.StatusIn); in != nil {
		add("status = ANY(?)", pq.Array(in))
	}
	if in := pstrings.SplitList(f.MediaTypeIn); in != nil {
		codes, err := atoiAll(in)
		if err != nil {
			return "", nil, fmt.Errorf("media type filter: %w", err)
		}
		add("media_type = ANY(?)", pq.Array(codes))
	}
	if in := pstrings.SplitList(f.ModerationStatusIn); in != nil {
		codes, err := atoiAll(in)
		if err != nil {
			return "", nil, fmt.Errorf("moderation filter: %w", err)
		}
		add("moderation_status = ANY(?)", pq.Array(codes))
	}
	if q := strings.TrimSpace(f.FreeText); q != "" {
		add("(name ILIKE '%' || ? || '%' OR description ILIKE '%' || ? || '%' OR lower(id) = lower(?) OR lower(?) = ANY(SELECT lower(t) FROM unnest(tags) t))", q)
	}
	return strings.Join(clauses, " AND "), args, nil
}

func atoiAll(values []string) ([]int64, error) {
	out := make([]int64, len(values))
	for i, v := range values {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func scanEntry(scan func(dest ...any) error) (*models.Entry, error) {
	var (
		e                                  models.Entry
		entryID, kind, status, replacement string
		partnerID                          int64
		mediaType, moderation              int
		tags                               pq.StringArray
	)
	err := scan(&entryID, &partnerID, &e.Name, &e.Description, &kind, &mediaType, &status,
		&replacement, &moderation, &e.DurationSeconds, &tags, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.ID = id.EntryID(entryID)
	e.PartnerID = id.PartnerID(partnerID)
	e.Kind = id.EntryKind(kind)
	e.MediaType = id.MediaType(mediaType)
	e.Status = id.EntryStatus(status)
	e.ReplacementStatus = id.ReplacementStatus(replacement)
	e.ModerationStatus = id.ModerationStatus(moderation)
	e.Tags = []string(tags)
	return &e, nil
}
