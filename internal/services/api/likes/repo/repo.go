// Package repo provides postgres access for likes.
//
// The likes table carries a compound unique index on (user_id, kind,
// target_id); that index is the only synchronization the toggle needs.
package repo

import (
	"context"
	"fmt"
	"time"

	"cliptube/internal/core/keyset"
	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
	"cliptube/internal/services/api/likes/domain"
)

// LikedVideoRow joins a like to its video
type LikedVideoRow struct {
	VideoID   string
	Title     string
	OwnerID   string
	LikedAt   time.Time
	CreatedAt time.Time
}

// Repo defines the repository contract for likes
type Repo interface {
	// Delete removes the relation row and reports whether one was there
	Delete(ctx context.Context, userID string, kind domain.Kind, targetID string) (bool, error)

	// InsertIfAbsent adds the relation row, letting the unique index swallow
	// the duplicate when a concurrent toggle won the race
	InsertIfAbsent(ctx context.Context, userID string, kind domain.Kind, targetID string) (repokit.InsertOutcome, error)

	// TargetExists checks the liked entity is visible
	TargetExists(ctx context.Context, kind domain.Kind, targetID string) (bool, error)

	// LikedVideos pages videos the user liked, newest like first
	LikedVideos(ctx context.Context, userID string, q keyset.Query) ([]LikedVideoRow, error)
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

func (r *queries) Delete(ctx context.Context, userID string, kind domain.Kind, targetID string) (bool, error) {
	const sql = `DELETE FROM likes WHERE user_id = $1 AND kind = $2 AND target_id = $3`
	tag, err := r.q.Exec(ctx, sql, userID, string(kind), targetID)
	if err != nil {
		return false, perr.FromPostgres(err, "like delete failed")
	}
	return tag.RowsAffected() > 0, nil
}

func (r *queries) InsertIfAbsent(
	ctx context.Context, userID string, kind domain.Kind, targetID string,
) (repokit.InsertOutcome, error) {
	const sql = `
INSERT INTO likes (user_id, kind, target_id, created_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (user_id, kind, target_id) DO NOTHING`
	tag, err := r.q.Exec(ctx, sql, userID, string(kind), targetID)
	if err != nil {
		// a duplicate surfacing as an error (no conflict target hit) still
		// means the row exists
		if perr.IsDuplicateKey(err) {
			return repokit.AlreadyPresent, nil
		}
		return 0, perr.FromPostgres(err, "like insert failed")
	}
	if tag.RowsAffected() == 0 {
		return repokit.AlreadyPresent, nil
	}
	return repokit.Inserted, nil
}

func (r *queries) TargetExists(ctx context.Context, kind domain.Kind, targetID string) (bool, error) {
	var sql string
	switch kind {
	case domain.KindVideo:
		sql = `SELECT 1 FROM videos WHERE id = $1 AND published`
	case domain.KindComment:
		sql = `SELECT 1 FROM comments WHERE id = $1`
	case domain.KindPost:
		sql = `SELECT 1 FROM posts WHERE id = $1`
	default:
		return false, fmt.Errorf("unknown like kind %q", kind)
	}
	var one int
	if err := r.q.QueryRow(ctx, sql, targetID).Scan(&one); err != nil {
		if perr.IsNoRows(err) {
			return false, nil
		}
		return false, perr.FromPostgres(err, "like target lookup failed")
	}
	return true, nil
}

func (r *queries) LikedVideos(ctx context.Context, userID string, q keyset.Query) ([]LikedVideoRow, error) {
	args := []any{userID}
	pred := ""
	if frag, curArgs := keyset.SQL(q, len(args)+1); frag != "" {
		// the cursor orders on the like's created_at, aliased below
		pred = " AND l." + frag
		args = append(args, curArgs...)
	}
	args = append(args, q.Limit)

	sql := fmt.Sprintf(`
SELECT l.target_id, v.title, v.owner_id, l.created_at, v.created_at
FROM likes l
JOIN videos v ON v.id = l.target_id
WHERE l.user_id = $1 AND l.kind = 'video'%s
ORDER BY l.%s
LIMIT $%d`, pred, keyset.OrderBy(q), len(args))

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "liked videos list failed")
	}
	defer rows.Close()

	var out []LikedVideoRow
	for rows.Next() {
		var lv LikedVideoRow
		if err := rows.Scan(&lv.VideoID, &lv.Title, &lv.OwnerID, &lv.LikedAt, &lv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, lv)
	}
	return out, rows.Err()
}
