// Package repo provides postgres access for posts
package repo

import (
	"context"
	"fmt"
	"time"

	"cliptube/internal/core/keyset"
	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
)

// Row is the storage shape of a post
type Row struct {
	ID        string
	AuthorID  string
	Body      string
	CreatedAt time.Time
}

// Repo defines the repository contract for posts
type Repo interface {
	Insert(ctx context.Context, row Row) error
	ListByAuthor(ctx context.Context, authorID string, q keyset.Query) ([]Row, error)

	// DeleteOwned folds the authorship check into the DELETE predicate
	DeleteOwned(ctx context.Context, authorID, id string) error

	// AuthorExists checks the listed user exists
	AuthorExists(ctx context.Context, authorID string) (bool, error)
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

func (r *queries) Insert(ctx context.Context, row Row) error {
	const sql = `
INSERT INTO posts (id, author_id, body, created_at)
VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, sql, row.ID, row.AuthorID, row.Body, row.CreatedAt); err != nil {
		return perr.FromPostgres(err, "post insert failed")
	}
	return nil
}

func (r *queries) ListByAuthor(ctx context.Context, authorID string, q keyset.Query) ([]Row, error) {
	args := []any{authorID}
	pred := ""
	if frag, curArgs := keyset.SQL(q, len(args)+1); frag != "" {
		pred = " AND " + frag
		args = append(args, curArgs...)
	}
	args = append(args, q.Limit)

	sql := fmt.Sprintf(`
SELECT id, author_id, body, created_at
FROM posts
WHERE author_id = $1%s
ORDER BY %s
LIMIT $%d`, pred, keyset.OrderBy(q), len(args))

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "post list failed")
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var p Row
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Body, &p.CreatedAt); err != nil {
			return nil, perr.FromPostgres(err, "post scan failed")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *queries) DeleteOwned(ctx context.Context, authorID, id string) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM posts WHERE id = $1 AND author_id = $2", id, authorID)
	if err != nil {
		return perr.FromPostgres(err, "post delete failed")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("post not found")
	}
	return nil
}

func (r *queries) AuthorExists(ctx context.Context, authorID string) (bool, error) {
	var one int
	if err := r.q.QueryRow(ctx, "SELECT 1 FROM users WHERE id = $1", authorID).Scan(&one); err != nil {
		if perr.IsNoRows(err) {
			return false, nil
		}
		return false, perr.FromPostgres(err, "author lookup failed")
	}
	return true, nil
}
