package repo

import (
	"context"
	"errors"
	"testing"

	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"

	"github.com/jackc/pgx/v5"
)

type scanQuerier struct{ err error }

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func (q scanQuerier) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, q.err
}

func (q scanQuerier) Query(context.Context, string, ...any) (repokit.Rows, error) {
	return nil, q.err
}

func (q scanQuerier) QueryRow(context.Context, string, ...any) repokit.Row {
	return errRow{err: q.err}
}

func TestConsumeRefresh_NoRowsMeansAlreadyRotated(t *testing.T) {
	r := NewPG().Bind(scanQuerier{err: pgx.ErrNoRows})

	_, _, ok, err := r.ConsumeRefresh(context.Background(), "hash")
	if err != nil {
		t.Fatalf("a rotated token is not a storage error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for an unknown hash")
	}
}

// A storage outage must not masquerade as a rotated token; the caller
// would otherwise answer it with a hard unauthorized.
func TestConsumeRefresh_StorageFailurePropagates(t *testing.T) {
	r := NewPG().Bind(scanQuerier{err: errors.New("connection refused")})

	_, _, ok, err := r.ConsumeRefresh(context.Background(), "hash")
	if ok {
		t.Fatal("expected ok=false on failure")
	}
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("expected DB classification, got %v", err)
	}
}

func TestUserByUsername_StorageFailureIsNotNotFound(t *testing.T) {
	r := NewPG().Bind(scanQuerier{err: errors.New("connection refused")})

	_, err := r.UserByUsername(context.Background(), "alice")
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("storage failure must not surface as not found: %v", err)
	}
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("expected DB classification, got %v", err)
	}
}
