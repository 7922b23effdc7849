package repo

import (
	"context"
	"errors"
	"testing"

	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"

	"github.com/jackc/pgx/v5"
)

// scanQuerier returns a fixed Scan error from every QueryRow
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

func TestGet_NoRowsMapsToNotFound(t *testing.T) {
	r := NewPG().Bind(scanQuerier{err: pgx.ErrNoRows})

	_, err := r.Get(context.Background(), "v1")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found for missing row, got %v", err)
	}
}

func TestGet_StorageFailureIsNotNotFound(t *testing.T) {
	r := NewPG().Bind(scanQuerier{err: errors.New("connection refused")})

	_, err := r.Get(context.Background(), "v1")
	if err == nil {
		t.Fatal("expected an error")
	}
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("storage failure must not surface as not found: %v", err)
	}
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("expected DB classification, got %v (code %d)", err, perr.CodeOf(err))
	}
}

func TestExists_StorageFailurePropagates(t *testing.T) {
	r := NewPG().Bind(scanQuerier{err: errors.New("connection refused")})

	ok, err := r.Exists(context.Background(), "v1")
	if ok {
		t.Fatal("expected ok=false on failure")
	}
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("expected DB classification, got %v", err)
	}
}

func TestExists_NoRowsIsFalseWithoutError(t *testing.T) {
	r := NewPG().Bind(scanQuerier{err: pgx.ErrNoRows})

	ok, err := r.Exists(context.Background(), "v1")
	if err != nil {
		t.Fatalf("no rows is not an error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for a missing video")
	}
}

func TestUpdateOwned_StorageFailureIsNotNotFound(t *testing.T) {
	r := NewPG().Bind(scanQuerier{err: errors.New("connection refused")})

	title := "t"
	_, err := r.UpdateOwned(context.Background(), "u1", "v1", &title, nil)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("storage failure must not surface as not found: %v", err)
	}
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("expected DB classification, got %v", err)
	}
}
