// Package repo provides postgres access for accounts and refresh tokens
package repo

import (
	"context"
	"time"

	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
)

// UserRow is the storage shape of an account
type UserRow struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Repo defines the repository contract for auth
type Repo interface {
	InsertUser(ctx context.Context, row UserRow) error
	UserByUsername(ctx context.Context, username string) (UserRow, error)
	UserByID(ctx context.Context, id string) (UserRow, error)

	// InsertRefresh stores a hashed refresh token with its expiry
	InsertRefresh(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error

	// ConsumeRefresh atomically deletes the stored hash and returns its row.
	// ok=false means the token was never issued or was already rotated; the
	// delete-and-return shape is what makes rotation single use under
	// concurrent replays.
	ConsumeRefresh(ctx context.Context, tokenHash string) (userID string, expiresAt time.Time, ok bool, err error)
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

const userCols = "id, username, email, password_hash, created_at"

func scanUser(r repokit.Row) (UserRow, error) {
	var u UserRow
	err := r.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func (r *queries) InsertUser(ctx context.Context, row UserRow) error {
	const sql = `
INSERT INTO users (id, username, email, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, sql, row.ID, row.Username, row.Email, row.PasswordHash, row.CreatedAt)
	if err != nil {
		// username/email unique indexes surface as domain conflicts
		return perr.FromPostgresWithField(err, "user insert failed")
	}
	return nil
}

func (r *queries) UserByUsername(ctx context.Context, username string) (UserRow, error) {
	u, err := scanUser(r.q.QueryRow(ctx, "SELECT "+userCols+" FROM users WHERE username = $1", username))
	if err != nil {
		if perr.IsNoRows(err) {
			return UserRow{}, perr.NotFoundf("user not found")
		}
		return UserRow{}, perr.FromPostgres(err, "user lookup failed")
	}
	return u, nil
}

func (r *queries) UserByID(ctx context.Context, id string) (UserRow, error) {
	u, err := scanUser(r.q.QueryRow(ctx, "SELECT "+userCols+" FROM users WHERE id = $1", id))
	if err != nil {
		if perr.IsNoRows(err) {
			return UserRow{}, perr.NotFoundf("user not found")
		}
		return UserRow{}, perr.FromPostgres(err, "user lookup failed")
	}
	return u, nil
}

func (r *queries) InsertRefresh(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	const sql = `
INSERT INTO refresh_tokens (token_hash, user_id, expires_at)
VALUES ($1, $2, $3)`
	if _, err := r.q.Exec(ctx, sql, tokenHash, userID, expiresAt); err != nil {
		return perr.FromPostgres(err, "refresh token insert failed")
	}
	return nil
}

func (r *queries) ConsumeRefresh(ctx context.Context, tokenHash string) (string, time.Time, bool, error) {
	const sql = `
DELETE FROM refresh_tokens WHERE token_hash = $1
RETURNING user_id, expires_at`
	var userID string
	var expiresAt time.Time
	if err := r.q.QueryRow(ctx, sql, tokenHash).Scan(&userID, &expiresAt); err != nil {
		if perr.IsNoRows(err) {
			return "", time.Time{}, false, nil
		}
		return "", time.Time{}, false, perr.FromPostgres(err, "refresh token consume failed")
	}
	return userID, expiresAt, true, nil
}
