// Package repo provides postgres access for comments
package repo

import (
	"context"
	"fmt"
	"time"

	"cliptube/internal/core/keyset"
	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
)

// Row is the storage shape of a comment
type Row struct {
	ID        string
	VideoID   string
	AuthorID  string
	Body      string
	CreatedAt time.Time
}

// Repo defines the repository contract for comments
type Repo interface {
	List(ctx context.Context, videoID string, q keyset.Query) ([]Row, error)
	Insert(ctx context.Context, row Row) error

	// DeleteOwned folds the authorship check into the DELETE predicate
	DeleteOwned(ctx context.Context, authorID, id string) error

	// VideoExists checks the commented video is published
	VideoExists(ctx context.Context, videoID string) (bool, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) List(ctx context.Context, videoID string, q keyset.Query) ([]Row, error) {
	args := []any{videoID}
	pred := ""
	if frag, curArgs := keyset.SQL(q, len(args)+1); frag != "" {
		pred = " AND " + frag
		args = append(args, curArgs...)
	}
	args = append(args, q.Limit)

	sql := fmt.Sprintf(`
SELECT id, video_id, author_id, body, created_at
FROM comments
WHERE video_id = $1%s
ORDER BY %s
LIMIT $%d`, pred, keyset.OrderBy(q), len(args))

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "comment list failed")
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var c Row
		if err := rows.Scan(&c.ID, &c.VideoID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *queries) Insert(ctx context.Context, row Row) error {
	const sql = `
INSERT INTO comments (id, video_id, author_id, body, created_at)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, sql, row.ID, row.VideoID, row.AuthorID, row.Body, row.CreatedAt); err != nil {
		return perr.FromPostgres(err, "comment insert failed")
	}
	return nil
}

func (r *queries) DeleteOwned(ctx context.Context, authorID, id string) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM comments WHERE id = $1 AND author_id = $2", id, authorID)
	if err != nil {
		return perr.FromPostgres(err, "comment delete failed")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("comment not found")
	}
	return nil
}

func (r *queries) VideoExists(ctx context.Context, videoID string) (bool, error) {
	var one int
	if err := r.q.QueryRow(ctx, "SELECT 1 FROM videos WHERE id = $1 AND published", videoID).Scan(&one); err != nil {
		if perr.IsNoRows(err) {
			return false, nil
		}
		return false, perr.FromPostgres(err, "video lookup failed")
	}
	return true, nil
}
