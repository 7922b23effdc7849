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

func TestAddVideoOwned_NoRowsMeansPredicateMiss(t *testing.T) {
	r := NewPG().Bind(scanQuerier{err: pgx.ErrNoRows})

	_, ok, err := r.AddVideoOwned(context.Background(), "u1", "p1", "v1")
	if err != nil {
		t.Fatalf("a predicate miss is not an error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false when no row matched")
	}
}

func TestAddVideoOwned_StorageFailurePropagates(t *testing.T) {
	r := NewPG().Bind(scanQuerier{err: errors.New("connection refused")})

	_, ok, err := r.AddVideoOwned(context.Background(), "u1", "p1", "v1")
	if ok {
		t.Fatal("expected ok=false on failure")
	}
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("expected DB classification, got %v", err)
	}
}

func TestRemoveVideoOwned_StorageFailurePropagates(t *testing.T) {
	r := NewPG().Bind(scanQuerier{err: errors.New("connection refused")})

	_, ok, err := r.RemoveVideoOwned(context.Background(), "u1", "p1", "v1")
	if ok {
		t.Fatal("expected ok=false on failure")
	}
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("expected DB classification, got %v", err)
	}
}

func TestGet_StorageFailureIsNotNotFound(t *testing.T) {
	r := NewPG().Bind(scanQuerier{err: errors.New("connection refused")})

	_, err := r.Get(context.Background(), "p1")
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("storage failure must not surface as not found: %v", err)
	}
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("expected DB classification, got %v", err)
	}
}
