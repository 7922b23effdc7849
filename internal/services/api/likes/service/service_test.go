package service

import (
	"context"
	"sync"
	"testing"

	"cliptube/internal/core/keyset"
	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
	"cliptube/internal/platform/testkit"
	"cliptube/internal/services/api/likes/domain"
	"cliptube/internal/services/api/likes/repo"
)

// memRepo emulates the likes table with a mutex standing in for the
// storage-level unique index: delete and insert are each atomic, the
// window between them is not, exactly like the real store
type memRepo struct {
	mu      sync.Mutex
	rows    map[string]bool
	targets map[string]bool
}

func key(userID string, kind domain.Kind, targetID string) string {
	return userID + "|" + string(kind) + "|" + targetID
}

func newMemRepo(targets ...string) *memRepo {
	m := &memRepo{rows: map[string]bool{}, targets: map[string]bool{}}
	for _, t := range targets {
		m.targets[t] = true
	}
	return m
}

func (m *memRepo) Delete(_ context.Context, userID string, kind domain.Kind, targetID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(userID, kind, targetID)
	if m.rows[k] {
		delete(m.rows, k)
		return true, nil
	}
	return false, nil
}

func (m *memRepo) InsertIfAbsent(
	_ context.Context, userID string, kind domain.Kind, targetID string,
) (repokit.InsertOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(userID, kind, targetID)
	if m.rows[k] {
		return repokit.AlreadyPresent, nil
	}
	m.rows[k] = true
	return repokit.Inserted, nil
}

func (m *memRepo) TargetExists(_ context.Context, _ domain.Kind, targetID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.targets[targetID], nil
}

func (m *memRepo) LikedVideos(_ context.Context, _ string, _ keyset.Query) ([]repo.LikedVideoRow, error) {
	return nil, nil
}

func (m *memRepo) active(userID string, kind domain.Kind, targetID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[key(userID, kind, targetID)]
}

type memBinder struct{ r *memRepo }

func (b memBinder) Bind(repokit.Queryer) repo.Repo { return b.r }

type noopTx struct{}

func (noopTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (noopTx) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (noopTx) QueryRow(context.Context, string, ...any) repokit.Row             { return nil }
func (noopTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error   { return fn(noopTx{}) }

func newSvc(m *memRepo) *Svc {
	return New(noopTx{}, memBinder{r: m}, nil)
}

func TestNew_PanicsWithoutDependencies(t *testing.T) {
	testkit.MustPanic(t, func() { New(nil, memBinder{r: newMemRepo()}, nil) })
	testkit.MustPanic(t, func() { New(noopTx{}, nil, nil) })
}

func TestToggle_OffOnOff(t *testing.T) {
	m := newMemRepo("v1")
	s := newSvc(m)
	ctx := context.Background()

	res, err := s.Toggle(ctx, "u1", domain.KindVideo, "v1")
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if !res.Active {
		t.Fatal("first toggle should activate")
	}

	res, err = s.Toggle(ctx, "u1", domain.KindVideo, "v1")
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if res.Active {
		t.Fatal("second toggle should deactivate")
	}

	res, err = s.Toggle(ctx, "u1", domain.KindVideo, "v1")
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if !res.Active {
		t.Fatal("third toggle should activate again")
	}
}

func TestToggle_UnknownKind(t *testing.T) {
	s := newSvc(newMemRepo("v1"))
	_, err := s.Toggle(context.Background(), "u1", domain.Kind("playlist"), "v1")
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestToggle_MissingTarget(t *testing.T) {
	s := newSvc(newMemRepo())
	_, err := s.Toggle(context.Background(), "u1", domain.KindVideo, "ghost")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestToggle_VideoExistsPortPreferred(t *testing.T) {
	m := newMemRepo() // repo knows no targets
	called := false
	s := New(noopTx{}, memBinder{r: m}, func(_ context.Context, id string) (bool, error) {
		called = true
		return id == "v9", nil
	})

	if _, err := s.Toggle(context.Background(), "u1", domain.KindVideo, "v9"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if !called {
		t.Fatal("expected videos port to be consulted")
	}
}

// Many goroutines hammering the same relation must never see an error;
// the unique index absorbs every race and the row count stays 0 or 1
func TestToggle_ConcurrentSameRelation(t *testing.T) {
	t.Parallel()

	m := newMemRepo("v1")
	s := newSvc(m)

	const n = 64
	var wg sync.WaitGroup
	errs := make(chan error, n)

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := s.Toggle(context.Background(), "u1", domain.KindVideo, "v1"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("toggle under contention errored: %v", err)
	}

	// state is either liked or not; one more toggle still behaves
	before := m.active("u1", domain.KindVideo, "v1")
	res, err := s.Toggle(context.Background(), "u1", domain.KindVideo, "v1")
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if res.Active == before {
		t.Fatalf("toggle did not flip state: before=%v after=%v", before, res.Active)
	}
}

// Distinct users toggling the same target are independent relations
func TestToggle_DistinctUsersIndependent(t *testing.T) {
	m := newMemRepo("v1")
	s := newSvc(m)
	ctx := context.Background()

	if _, err := s.Toggle(ctx, "u1", domain.KindVideo, "v1"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if _, err := s.Toggle(ctx, "u2", domain.KindVideo, "v1"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}

	if !m.active("u1", domain.KindVideo, "v1") || !m.active("u2", domain.KindVideo, "v1") {
		t.Fatal("both users should have active likes")
	}

	if _, err := s.Toggle(ctx, "u1", domain.KindVideo, "v1"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if m.active("u1", domain.KindVideo, "v1") {
		t.Fatal("u1 should be unliked")
	}
	if !m.active("u2", domain.KindVideo, "v1") {
		t.Fatal("u2 must be untouched by u1's toggle")
	}
}
