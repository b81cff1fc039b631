package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"mediaconsole/internal/playlists/models"
	id "mediaconsole/pkg/domain"
	"mediaconsole/pkg/platform/sentinel"
	"mediaconsole/pkg/platform/tx"
)

const playlistColumns = `id, partner_id, name, description, playlist_type, entry_ids, created_at, updated_at`

var sortColumns = map[string]string{
	models.SortByCreatedAt: "created_at",
	models.SortByUpdatedAt: "updated_at",
	models.SortByName:      "lower(name)",
}

// Postgres persists playlists in the playlists table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Save(ctx context.Context, p *models.Playlist) error {
	query := `
		INSERT INTO playlists (` + playlistColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			playlist_type = EXCLUDED.playlist_type,
			entry_ids = EXCLUDED.entry_ids,
			updated_at = EXCLUDED.updated_at
	`
	entryIDs := make([]string, len(p.EntryIDs))
	for i, e := range p.EntryIDs {
		entryIDs[i] = string(e)
	}
	_, err := tx.Exec(ctx, s.db).ExecContext(ctx, query,
		string(p.ID), int64(p.PartnerID), p.Name, p.Description, p.PlaylistType,
		pq.Array(entryIDs), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save playlist: %w", err)
	}
	return nil
}

func (s *Postgres) List(ctx context.Context, req models.ListRequest) (models.ListResult, error) {
	clauses := []string{"partner_id = $1"}
	args := []any{int64(req.PartnerID)}
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args))))
	}
	if !req.CreatedAfter.IsZero() {
		add("created_at >= ?", req.CreatedAfter)
	}
	if !req.CreatedBefore.IsZero() {
		add("created_at <= ?", req.CreatedBefore)
	}
	if q := strings.TrimSpace(req.FreeText); q != "" {
		add("(name ILIKE '%' || ? || '%' OR description ILIKE '%' || ? || '%' OR lower(id) = lower(?))", q)
	}

	column, ok := sortColumns[req.SortBy]
	if !ok {
		column = sortColumns[models.SortByCreatedAt]
	}
	direction := "DESC"
	if req.SortDirection == models.SortAsc {
		direction = "ASC"
	}

	where := strings.Join(clauses, " AND ")
	filterArgs := args
	query := `SELECT ` + playlistColumns + `, COUNT(*) OVER() FROM playlists WHERE ` +
		where + ` ORDER BY ` + column + ` ` + direction + `, id ASC`
	if req.PageSize > 0 {
		args = append(args, req.PageSize, req.Offset())
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return models.ListResult{}, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	result := models.ListResult{Playlists: []*models.Playlist{}}
	for rows.Next() {
		var (
			p          models.Playlist
			playlistID string
			partnerID  int64
			entryIDs   pq.StringArray
			total      int
		)
		if err := rows.Scan(&playlistID, &partnerID, &p.Name, &p.Description, &p.PlaylistType,
			&entryIDs, &p.CreatedAt, &p.UpdatedAt, &total); err != nil {
			return models.ListResult{}, fmt.Errorf("scan playlist: %w", err)
		}
		p.ID = id.PlaylistID(playlistID)
		p.PartnerID = id.PartnerID(partnerID)
		for _, e := range entryIDs {
			p.EntryIDs = append(p.EntryIDs, id.EntryID(e))
		}
		result.Playlists = append(result.Playlists, &p)
		result.TotalCount = total
	}
	if err := rows.Err(); err != nil {
		return models.ListResult{}, fmt.Errorf("iterate playlists: %w", err)
	}

	// A page past the end carries no window count.
	if len(result.Playlists) == 0 && req.Offset() > 0 {
		row := tx.Exec(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM playlists WHERE `+where, filterArgs...)
		if err := row.Scan(&result.TotalCount); err != nil {
			return models.ListResult{}, fmt.Errorf("count playlists: %w", err)
		}
	}
	return result, nil
}

// Delete removes every playlist in ids inside one transaction. If any id is
// missing the transaction rolls back and sentinel.ErrNotFound is returned.
func (s *Postgres) Delete(ctx context.Context, partnerID id.PartnerID, ids ...id.PlaylistID) error {
	return tx.Run(ctx, s.db, func(ctx context.Context) error {
		for _, pid := range ids {
			res, err := tx.Exec(ctx, s.db).ExecContext(ctx,
				`DELETE FROM playlists WHERE id = $1 AND partner_id = $2`, string(pid), int64(partnerID))
			if err != nil {
				return fmt.Errorf("delete playlist: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("delete playlist: %w", err)
			}
			if n == 0 {
				return sentinel.ErrNotFound
			}
		}
		return nil
	})
}
