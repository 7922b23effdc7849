package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"cliptube/internal/core/keyset"
	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
	"cliptube/internal/services/api/comments/domain"
	"cliptube/internal/services/api/comments/repo"
)

type fakeRepo struct {
	rows   []repo.Row
	videos map[string]bool
}

func (f *fakeRepo) List(_ context.Context, videoID string, q keyset.Query) ([]repo.Row, error) {
	var out []repo.Row
	for _, r := range f.rows {
		if r.VideoID != videoID {
			continue
		}
		if q.Cursor != nil && !r.CreatedAt.Before(q.Cursor.CreatedAt) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeRepo) Insert(_ context.Context, row repo.Row) error {
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeRepo) DeleteOwned(_ context.Context, authorID, id string) error {
	for i, r := range f.rows {
		if r.ID == id && r.AuthorID == authorID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return perr.NotFoundf("comment not found")
}

func (f *fakeRepo) VideoExists(_ context.Context, videoID string) (bool, error) {
	return f.videos[videoID], nil
}

type fakeBinder struct{ r *fakeRepo }

func (b fakeBinder) Bind(repokit.Queryer) repo.Repo { return b.r }

type noopTx struct{}

func (noopTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (noopTx) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (noopTx) QueryRow(context.Context, string, ...any) repokit.Row             { return nil }
func (noopTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error   { return fn(noopTx{}) }

func newSvc(f *fakeRepo) *Svc {
	s := New(noopTx{}, fakeBinder{r: f}, nil)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	s.now = func() time.Time { n++; return base.Add(time.Duration(n) * time.Second) }
	s.newID = func() string { return fmt.Sprintf("c%d", n+1) }
	return s
}

func TestCreateAndList_NewestFirst(t *testing.T) {
	f := &fakeRepo{videos: map[string]bool{"v1": true}}
	s := newSvc(f)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Create(ctx, "u1", "v1", domain.CreateInput{Body: "hi"}); err != nil {
			t.Fatalf("unexpected: %v", err)
		}
	}

	p, err := s.List(ctx, "v1", domain.ListInput{})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if len(p.Items) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(p.Items))
	}
	for i := 1; i < len(p.Items); i++ {
		if p.Items[i].CreatedAt.After(p.Items[i-1].CreatedAt) {
			t.Fatal("comments not sorted newest first")
		}
	}
}

func TestList_PaginatesWithCursor(t *testing.T) {
	f := &fakeRepo{videos: map[string]bool{"v1": true}}
	s := newSvc(f)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.Create(ctx, "u1", "v1", domain.CreateInput{Body: "hi"}); err != nil {
			t.Fatalf("unexpected: %v", err)
		}
	}

	var seen []string
	cur := ""
	for {
		p, err := s.List(ctx, "v1", domain.ListInput{Limit: 2, Cursor: cur})
		if err != nil {
			t.Fatalf("unexpected: %v", err)
		}
		for _, it := range p.Items {
			seen = append(seen, it.ID)
		}
		if p.NextCursor == "" {
			break
		}
		cur = p.NextCursor
	}

	if len(seen) != 5 {
		t.Fatalf("pagination lost or duplicated comments: %v", seen)
	}
	uniq := map[string]bool{}
	for _, id := range seen {
		if uniq[id] {
			t.Fatalf("comment %s repeated across pages", id)
		}
		uniq[id] = true
	}
}

func TestList_UnknownVideo(t *testing.T) {
	s := newSvc(&fakeRepo{videos: map[string]bool{}})
	_, err := s.List(context.Background(), "ghost", domain.ListInput{})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreate_UnknownVideo(t *testing.T) {
	s := newSvc(&fakeRepo{videos: map[string]bool{}})
	_, err := s.Create(context.Background(), "u1", "ghost", domain.CreateInput{Body: "hi"})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDelete_NonAuthorCollapsesToNotFound(t *testing.T) {
	f := &fakeRepo{videos: map[string]bool{"v1": true}}
	s := newSvc(f)
	ctx := context.Background()

	c, err := s.Create(ctx, "u1", "v1", domain.CreateInput{Body: "mine"})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}

	if err := s.Delete(ctx, "u2", c.ID); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := s.Delete(ctx, "u1", c.ID); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
}
