// Package repo provides postgres access for videos
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cliptube/internal/core/keyset"
	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
)

// Row is a video row from the database
type Row struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Views       int64
	Published   bool
	CreatedAt   time.Time
}

// Filter narrows List results. Pattern is a pre-escaped ILIKE pattern.
// IncludeUnpublishedFor widens visibility to one owner's drafts.
type Filter struct {
	Pattern               string
	OwnerID               string
	IncludeUnpublishedFor string
}

// Repo defines the repository contract for videos
type Repo interface {
	List(ctx context.Context, f Filter, q keyset.Query) ([]Row, error)
	Get(ctx context.Context, id string) (Row, error)
	Exists(ctx context.Context, id string) (bool, error)
	OwnerExists(ctx context.Context, ownerID string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
	Insert(ctx context.Context, row Row) error
	UpdateOwned(ctx context.Context, ownerID, id string, title, description *string) (Row, error)
	DeleteOwned(ctx context.Context, ownerID, id string) error
	TogglePublishOwned(ctx context.Context, ownerID, id string) (Row, error)
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

const cols = "id, owner_id, title, description, views, published, created_at"

func scanRow(r repokit.Row) (Row, error) {
	var v Row
	err := r.Scan(&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.Views, &v.Published, &v.CreatedAt)
	return v, err
}

func (r *queries) List(ctx context.Context, f Filter, q keyset.Query) ([]Row, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.IncludeUnpublishedFor != "" {
		conds = append(conds, fmt.Sprintf("(published OR owner_id = %s)", arg(f.IncludeUnpublishedFor)))
	} else {
		conds = append(conds, "published")
	}
	if f.OwnerID != "" {
		conds = append(conds, fmt.Sprintf("owner_id = %s", arg(f.OwnerID)))
	}
	if f.Pattern != "" {
		p := arg(f.Pattern)
		conds = append(conds, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", p, p))
	}

	if frag, curArgs := keyset.SQL(q, len(args)+1); frag != "" {
		conds = append(conds, frag)
		args = append(args, curArgs...)
	}

	sql := fmt.Sprintf(
		"SELECT %s FROM videos WHERE %s ORDER BY %s LIMIT %s",
		cols, strings.Join(conds, " AND "), keyset.OrderBy(q), arg(q.Limit),
	)

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "videos list failed")
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		v, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *queries) Get(ctx context.Context, id string) (Row, error) {
	row := r.q.QueryRow(ctx, "SELECT "+cols+" FROM videos WHERE id = $1", id)
	v, err := scanRow(row)
	if err != nil {
		if perr.IsNoRows(err) {
			return Row{}, perr.ErrNotFound
		}
		return Row{}, perr.FromPostgres(err, "video get failed")
	}
	return v, nil
}

func (r *queries) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.q.QueryRow(ctx, "SELECT 1 FROM videos WHERE id = $1 AND published", id).Scan(&one)
	if err != nil {
		if perr.IsNoRows(err) {
			return false, nil
		}
		return false, perr.FromPostgres(err, "video lookup failed")
	}
	return true, nil
}

func (r *queries) OwnerExists(ctx context.Context, ownerID string) (bool, error) {
	var one int
	err := r.q.QueryRow(ctx, "SELECT 1 FROM users WHERE id = $1", ownerID).Scan(&one)
	if err != nil {
		if perr.IsNoRows(err) {
			return false, nil
		}
		return false, perr.FromPostgres(err, "owner lookup failed")
	}
	return true, nil
}

func (r *queries) IncrementViews(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, "UPDATE videos SET views = views + 1 WHERE id = $1", id)
	if err != nil {
		return perr.FromPostgres(err, "view increment failed")
	}
	return nil
}

func (r *queries) Insert(ctx context.Context, row Row) error {
	const sql = `
INSERT INTO videos (id, owner_id, title, description, views, published, created_at)
VALUES ($1, $2, $3, $4, 0, false, $5)`
	if _, err := r.q.Exec(ctx, sql, row.ID, row.OwnerID, row.Title, row.Description, row.CreatedAt); err != nil {
		return perr.FromPostgres(err, "video insert failed")
	}
	return nil
}

// UpdateOwned folds the ownership check into the UPDATE predicate so a
// non-owner collapses to not found without a separate read
func (r *queries) UpdateOwned(ctx context.Context, ownerID, id string, title, description *string) (Row, error) {
	const sql = `
UPDATE videos
SET title = COALESCE($3, title), description = COALESCE($4, description)
WHERE id = $1 AND owner_id = $2
RETURNING ` + cols
	row := r.q.QueryRow(ctx, sql, id, ownerID, title, description)
	v, err := scanRow(row)
	if err != nil {
		if perr.IsNoRows(err) {
			return Row{}, perr.NotFoundf("video not found")
		}
		return Row{}, perr.FromPostgres(err, "video update failed")
	}
	return v, nil
}

func (r *queries) DeleteOwned(ctx context.Context, ownerID, id string) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM videos WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return perr.FromPostgres(err, "video delete failed")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("video not found")
	}
	return nil
}

func (r *queries) TogglePublishOwned(ctx context.Context, ownerID, id string) (Row, error) {
	const sql = `
UPDATE videos SET published = NOT published
WHERE id = $1 AND owner_id = $2
RETURNING ` + cols
	row := r.q.QueryRow(ctx, sql, id, ownerID)
	v, err := scanRow(row)
	if err != nil {
		if perr.IsNoRows(err) {
			return Row{}, perr.NotFoundf("video not found")
		}
		return Row{}, perr.FromPostgres(err, "publish toggle failed")
	}
	return v, nil
}
