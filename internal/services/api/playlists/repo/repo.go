// Package repo provides postgres access for playlists.
//
// Two uniqueness rules live in the schema: (owner_id, name) is unique and
// domain visible, and membership of a video in a playlist is enforced by
// the update predicate itself, not by a preceding read.
package repo

import (
	"context"
	"fmt"
	"time"

	"cliptube/internal/core/keyset"
	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
)

// Row is the storage shape of a playlist
type Row struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Public      bool
	VideoIDs    []string
	VideoCount  int
	CreatedAt   time.Time
}

// Repo defines the repository contract for playlists
type Repo interface {
	Insert(ctx context.Context, row Row) error
	List(ctx context.Context, callerID, ownerID string, q keyset.Query) ([]Row, error)
	Get(ctx context.Context, id string) (Row, error)

	// UpdateOwned, DeleteOwned and ToggleVisibilityOwned fold the ownership
	// check into the statement predicate; a miss collapses to not found
	UpdateOwned(ctx context.Context, ownerID, id string, name, description *string) (Row, error)
	DeleteOwned(ctx context.Context, ownerID, id string) error
	ToggleVisibilityOwned(ctx context.Context, ownerID, id string) (Row, error)

	// AddVideoOwned appends the video and bumps the counter in one statement
	// whose predicate excludes rows already containing it; ok=false means the
	// playlist is missing, not owned, or already has the video
	AddVideoOwned(ctx context.Context, ownerID, id, videoID string) (Row, bool, error)

	// RemoveVideoOwned is the mirror image of AddVideoOwned
	RemoveVideoOwned(ctx context.Context, ownerID, id, videoID string) (Row, bool, error)
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

const cols = "id, owner_id, name, description, public, video_ids, video_count, created_at"

func scanRow(r repokit.Row) (Row, error) {
	var p Row
	err := r.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Public, &p.VideoIDs, &p.VideoCount, &p.CreatedAt)
	return p, err
}

func (r *queries) Insert(ctx context.Context, row Row) error {
	const sql = `
INSERT INTO playlists (id, owner_id, name, description, public, video_ids, video_count, created_at)
VALUES ($1, $2, $3, $4, $5, '{}', 0, $6)`
	_, err := r.q.Exec(ctx, sql, row.ID, row.OwnerID, row.Name, row.Description, row.Public, row.CreatedAt)
	if err != nil {
		// the (owner_id, name) unique index surfaces as a domain conflict
		return perr.FromPostgresWithField(err, "playlist insert failed")
	}
	return nil
}

func (r *queries) List(ctx context.Context, callerID, ownerID string, q keyset.Query) ([]Row, error) {
	args := []any{ownerID, callerID}
	pred := ""
	if frag, curArgs := keyset.SQL(q, len(args)+1); frag != "" {
		pred = " AND " + frag
		args = append(args, curArgs...)
	}
	args = append(args, q.Limit)

	sql := fmt.Sprintf(`
SELECT %s FROM playlists
WHERE owner_id = $1 AND (public OR owner_id = $2)%s
ORDER BY %s
LIMIT $%d`, cols, pred, keyset.OrderBy(q), len(args))

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "playlist list failed")
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var p Row
		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Public, &p.VideoIDs, &p.VideoCount, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *queries) Get(ctx context.Context, id string) (Row, error) {
	p, err := scanRow(r.q.QueryRow(ctx, "SELECT "+cols+" FROM playlists WHERE id = $1", id))
	if err != nil {
		if perr.IsNoRows(err) {
			return Row{}, perr.NotFoundf("playlist not found")
		}
		return Row{}, perr.FromPostgres(err, "playlist get failed")
	}
	return p, nil
}

func (r *queries) UpdateOwned(ctx context.Context, ownerID, id string, name, description *string) (Row, error) {
	const sql = `
UPDATE playlists
SET name = COALESCE($3, name), description = COALESCE($4, description)
WHERE id = $1 AND owner_id = $2
RETURNING ` + cols
	p, err := scanRow(r.q.QueryRow(ctx, sql, id, ownerID, name, description))
	if err != nil {
		if perr.IsDuplicateKey(err) {
			return Row{}, perr.FromPostgresWithField(err, "playlist rename failed")
		}
		if perr.IsNoRows(err) {
			return Row{}, perr.NotFoundf("playlist not found")
		}
		return Row{}, perr.FromPostgres(err, "playlist update failed")
	}
	return p, nil
}

func (r *queries) DeleteOwned(ctx context.Context, ownerID, id string) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM playlists WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return perr.FromPostgres(err, "playlist delete failed")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("playlist not found")
	}
	return nil
}

func (r *queries) ToggleVisibilityOwned(ctx context.Context, ownerID, id string) (Row, error) {
	const sql = `
UPDATE playlists SET public = NOT public
WHERE id = $1 AND owner_id = $2
RETURNING ` + cols
	p, err := scanRow(r.q.QueryRow(ctx, sql, id, ownerID))
	if err != nil {
		if perr.IsNoRows(err) {
			return Row{}, perr.NotFoundf("playlist not found")
		}
		return Row{}, perr.FromPostgres(err, "visibility toggle failed")
	}
	return p, nil
}

func (r *queries) AddVideoOwned(ctx context.Context, ownerID, id, videoID string) (Row, bool, error) {
	const sql = `
UPDATE playlists
SET video_ids = array_append(video_ids, $3), video_count = video_count + 1
WHERE id = $1 AND owner_id = $2 AND NOT ($3 = ANY(video_ids))
RETURNING ` + cols
	p, err := scanRow(r.q.QueryRow(ctx, sql, id, ownerID, videoID))
	if err != nil {
		if perr.IsNoRows(err) {
			return Row{}, false, nil
		}
		return Row{}, false, perr.FromPostgres(err, "playlist video add failed")
	}
	return p, true, nil
}

func (r *queries) RemoveVideoOwned(ctx context.Context, ownerID, id, videoID string) (Row, bool, error) {
	const sql = `
UPDATE playlists
SET video_ids = array_remove(video_ids, $3), video_count = video_count - 1
WHERE id = $1 AND owner_id = $2 AND $3 = ANY(video_ids)
RETURNING ` + cols
	p, err := scanRow(r.q.QueryRow(ctx, sql, id, ownerID, videoID))
	if err != nil {
		if perr.IsNoRows(err) {
			return Row{}, false, nil
		}
		return Row{}, false, perr.FromPostgres(err, "playlist video remove failed")
	}
	return p, true, nil
}
