//go:build integration_pg
// +build integration_pg

package store

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func TestOpen_Guard_And_ToggleSemantics_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	s, err := Open(ctx, Config{
		AppName: "cliptube-it",
		PG:      PGConfig{Enabled: true, URL: dsn, MaxConns: 4},
	}, WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close(context.Background()) }()

	if err := s.Guard(ctx); err != nil {
		t.Fatalf("guard: %v", err)
	}

	if _, err := s.PG.Exec(ctx, `
		create table likes (
			user_id text not null,
			video_id text not null,
			unique (user_id, video_id)
		)`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	// first insert lands, duplicate is swallowed by the conflict target
	const ins = `insert into likes (user_id, video_id) values ($1, $2) on conflict do nothing`
	ct, err := s.PG.Exec(ctx, ins, "u1", "v1")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if ct.RowsAffected() != 1 {
		t.Fatalf("expected 1 row inserted, got %d", ct.RowsAffected())
	}
	ct, err = s.PG.Exec(ctx, ins, "u1", "v1")
	if err != nil {
		t.Fatalf("duplicate insert: %v", err)
	}
	if ct.RowsAffected() != 0 {
		t.Fatalf("expected duplicate to affect 0 rows, got %d", ct.RowsAffected())
	}

	// delete reports the row it removed
	ct, err = s.PG.Exec(ctx, `delete from likes where user_id = $1 and video_id = $2`, "u1", "v1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ct.RowsAffected() != 1 {
		t.Fatalf("expected 1 row deleted, got %d", ct.RowsAffected())
	}

	// tx rollback on error
	errBoom := fmt.Errorf("boom")
	err = s.PG.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, ins, "u2", "v2"); err != nil {
			return err
		}
		return errBoom
	})
	if err != errBoom {
		t.Fatalf("expected fn error back, got %v", err)
	}
	n, err := Scalar[int64](ctx, s.PG, `select count(*) from likes where user_id = $1`, "u2")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected rollback, found %d rows", n)
	}
}
