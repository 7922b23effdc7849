package repo

import (
	"context"
	"errors"
	"testing"

	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
	"cliptube/internal/services/api/likes/domain"

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

func TestTargetExists_NoRowsIsFalseWithoutError(t *testing.T) {
	r := NewPG().Bind(scanQuerier{err: pgx.ErrNoRows})

	ok, err := r.TargetExists(context.Background(), domain.KindVideo, "v1")
	if err != nil {
		t.Fatalf("no rows is not an error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for a missing target")
	}
}

func TestTargetExists_StorageFailurePropagates(t *testing.T) {
	r := NewPG().Bind(scanQuerier{err: errors.New("connection refused")})

	ok, err := r.TargetExists(context.Background(), domain.KindVideo, "v1")
	if ok {
		t.Fatal("expected ok=false on failure")
	}
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("expected DB classification, got %v", err)
	}
}
