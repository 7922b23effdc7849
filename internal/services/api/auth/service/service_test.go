package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
	"cliptube/internal/platform/testkit"
	"cliptube/internal/services/api/auth/domain"
	"cliptube/internal/services/api/auth/repo"
)

type refreshRow struct {
	userID    string
	expiresAt time.Time
}

type memRepo struct {
	mu       sync.Mutex
	users    map[string]repo.UserRow // by id
	byName   map[string]string
	refresh  map[string]refreshRow
	consumed int
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:   map[string]repo.UserRow{},
		byName:  map[string]string{},
		refresh: map[string]refreshRow{},
	}
}

func (m *memRepo) InsertUser(_ context.Context, row repo.UserRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.byName[row.Username]; taken {
		return perr.WithField(perr.DuplicateKeyf("user insert failed"), "username")
	}
	for _, u := range m.users {
		if u.Email == row.Email {
			return perr.WithField(perr.DuplicateKeyf("user insert failed"), "email")
		}
	}
	m.users[row.ID] = row
	m.byName[row.Username] = row.ID
	return nil
}

func (m *memRepo) UserByUsername(_ context.Context, username string) (repo.UserRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.byName[username]; ok {
		return m.users[id], nil
	}
	return repo.UserRow{}, perr.NotFoundf("user not found")
}

func (m *memRepo) UserByID(_ context.Context, id string) (repo.UserRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return repo.UserRow{}, perr.NotFoundf("user not found")
}

func (m *memRepo) InsertRefresh(_ context.Context, tokenHash, userID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh[tokenHash] = refreshRow{userID: userID, expiresAt: expiresAt}
	return nil
}

func (m *memRepo) ConsumeRefresh(_ context.Context, tokenHash string) (string, time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.refresh[tokenHash]
	if !ok {
		return "", time.Time{}, false, nil
	}
	delete(m.refresh, tokenHash)
	m.consumed++
	return row.userID, row.expiresAt, true, nil
}

type memBinder struct{ r *memRepo }

func (b memBinder) Bind(repokit.Queryer) repo.Repo { return b.r }

type noopTx struct{}

func (noopTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (noopTx) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (noopTx) QueryRow(context.Context, string, ...any) repokit.Row             { return nil }
func (noopTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error   { return fn(noopTx{}) }

func newSvc(m *memRepo) *Svc {
	return New(noopTx{}, memBinder{r: m}, Config{Secret: []byte("test-secret")})
}

func register(t *testing.T, s *Svc) domain.User {
	t.Helper()
	u, err := s.Register(context.Background(), domain.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return u
}

func TestNew_PanicsWithoutDependencies(t *testing.T) {
	cfg := Config{Secret: []byte("test-secret")}
	testkit.MustPanic(t, func() { New(nil, memBinder{r: newMemRepo()}, cfg) })
	testkit.MustPanic(t, func() { New(noopTx{}, nil, cfg) })
	testkit.MustPanic(t, func() { New(noopTx{}, memBinder{r: newMemRepo()}, Config{}) })
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s := newSvc(newMemRepo())
	register(t, s)

	_, err := s.Register(context.Background(), domain.RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "hunter2hunter2",
	})
	if !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("expected duplicate key, got %v", err)
	}
}

func TestLogin_IssuesValidAccessToken(t *testing.T) {
	s := newSvc(newMemRepo())
	u := register(t, s)

	pair, err := s.Login(context.Background(), domain.LoginInput{Username: "alice", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}

	uid, err := s.ParseAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if uid != u.ID {
		t.Fatalf("token carries %q, want %q", uid, u.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newSvc(newMemRepo())
	register(t, s)

	_, err := s.Login(context.Background(), domain.LoginInput{Username: "alice", Password: "wrong-password"})
	if !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	// unknown user reads the same as a wrong password
	_, err2 := s.Login(context.Background(), domain.LoginInput{Username: "nobody", Password: "wrong-password"})
	if err2 == nil || err2.Error() != err.Error() {
		t.Fatalf("unknown user should be indistinguishable: %v vs %v", err, err2)
	}
}

// downRepo answers lookups the way an unreachable database would
type downRepo struct{ repo.Repo }

func (downRepo) UserByUsername(context.Context, string) (repo.UserRow, error) {
	return repo.UserRow{}, perr.DBf("user lookup failed")
}

type downBinder struct{}

func (downBinder) Bind(repokit.Queryer) repo.Repo { return downRepo{} }

func TestLogin_StorageFailureIsNotInvalidCredentials(t *testing.T) {
	s := New(noopTx{}, downBinder{}, Config{Secret: []byte("test-secret")})

	_, err := s.Login(context.Background(), domain.LoginInput{Username: "alice", Password: "hunter2hunter2"})
	if perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("storage failure must not read as bad credentials: %v", err)
	}
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("expected DB classification, got %v", err)
	}
}

func TestRefresh_RotatesAndInvalidatesOldToken(t *testing.T) {
	s := newSvc(newMemRepo())
	register(t, s)
	ctx := context.Background()

	pair, err := s.Login(ctx, domain.LoginInput{Username: "alice", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	next, err := s.Refresh(ctx, domain.RefreshInput{RefreshToken: pair.RefreshToken})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh must rotate the token")
	}

	// replaying the consumed token is a hard failure
	if _, err := s.Refresh(ctx, domain.RefreshInput{RefreshToken: pair.RefreshToken}); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("expected unauthorized on reuse, got %v", err)
	}

	// the rotated token still works
	if _, err := s.Refresh(ctx, domain.RefreshInput{RefreshToken: next.RefreshToken}); err != nil {
		t.Fatalf("rotated token rejected: %v", err)
	}
}

func TestRefresh_Expired(t *testing.T) {
	m := newMemRepo()
	s := newSvc(m)
	register(t, s)
	ctx := context.Background()

	pair, err := s.Login(ctx, domain.LoginInput{Username: "alice", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	testkit.Swap(t, &s.now, func() time.Time { return time.Now().Add(31 * 24 * time.Hour) })
	if _, err := s.Refresh(ctx, domain.RefreshInput{RefreshToken: pair.RefreshToken}); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("expected unauthorized on expired token, got %v", err)
	}
}

// Two replays of the same refresh token race: the atomic consume lets
// exactly one rotation through
func TestRefresh_ConcurrentReplaySingleWinner(t *testing.T) {
	t.Parallel()

	m := newMemRepo()
	s := newSvc(m)
	register(t, s)
	ctx := context.Background()

	pair, err := s.Login(ctx, domain.LoginInput{Username: "alice", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	const n = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	okCount := 0

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := s.Refresh(ctx, domain.RefreshInput{RefreshToken: pair.RefreshToken})
			switch {
			case err == nil:
				mu.Lock()
				okCount++
				mu.Unlock()
			case perr.IsCode(err, perr.ErrorCodeUnauthorized):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if okCount != 1 {
		t.Fatalf("expected exactly one successful rotation, got %d", okCount)
	}
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	s := newSvc(newMemRepo())
	register(t, s)
	ctx := context.Background()

	pair, err := s.Login(ctx, domain.LoginInput{Username: "alice", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := s.Logout(ctx, domain.RefreshInput{RefreshToken: pair.RefreshToken}); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := s.Refresh(ctx, domain.RefreshInput{RefreshToken: pair.RefreshToken}); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("expected unauthorized after logout, got %v", err)
	}

	// logging out twice is harmless
	if err := s.Logout(ctx, domain.RefreshInput{RefreshToken: pair.RefreshToken}); err != nil {
		t.Fatalf("second logout failed: %v", err)
	}
}

func TestParseAccess_RejectsTampered(t *testing.T) {
	s := newSvc(newMemRepo())
	register(t, s)

	pair, err := s.Login(context.Background(), domain.LoginInput{Username: "alice", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := s.ParseAccess(pair.AccessToken + "x"); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	other := New(noopTx{}, memBinder{r: newMemRepo()}, Config{Secret: []byte("different-secret")})
	if _, err := other.ParseAccess(pair.AccessToken); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("expected unauthorized across secrets, got %v", err)
	}
}

func TestParseAccess_ExpiredToken(t *testing.T) {
	s := newSvc(newMemRepo())
	register(t, s)

	pair, err := s.Login(context.Background(), domain.LoginInput{Username: "alice", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	testkit.Swap(t, &s.now, func() time.Time { return time.Now().Add(time.Hour) })
	if _, err := s.ParseAccess(pair.AccessToken); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("expected unauthorized on expired access token, got %v", err)
	}
}
