// Package service contains post workflows
package service

import (
	"context"
	"time"

	"cliptube/internal/core/cursor"
	"cliptube/internal/core/keyset"
	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
	"cliptube/internal/services/api/posts/domain"
	"cliptube/internal/services/api/posts/repo"

	"github.com/google/uuid"
)

// Service defines the service contract for posts
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	now    func() time.Time
	newID  func() string
}

// New creates a new posts service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("posts.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("posts.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

func toPost(r repo.Row) domain.Post {
	return domain.Post{ID: r.ID, AuthorID: r.AuthorID, Body: r.Body, CreatedAt: r.CreatedAt}
}

// Create publishes a post under the caller's account
func (s *Svc) Create(ctx context.Context, authorID string, in domain.CreateInput) (domain.Post, error) {
	row := repo.Row{
		ID:        s.newID(),
		AuthorID:  authorID,
		Body:      in.Body,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Repo.Insert(ctx, row); err != nil {
		return domain.Post{}, err
	}
	return toPost(row), nil
}

// ListByAuthor pages one author's posts, newest first
func (s *Svc) ListByAuthor(ctx context.Context, authorID string, in domain.ListInput) (domain.Page, error) {
	exists, err := s.Repo.AuthorExists(ctx, authorID)
	if err != nil {
		return domain.Page{}, err
	}
	if !exists {
		return domain.Page{}, perr.NotFoundf("user not found")
	}

	q, err := keyset.Parse("", "", in.Limit, in.Cursor, domain.MaxPageSize)
	if err != nil {
		return domain.Page{}, err
	}

	rows, err := s.Repo.ListByAuthor(ctx, authorID, q)
	if err != nil {
		return domain.Page{}, err
	}

	items := make([]domain.Post, 0, len(rows))
	for _, r := range rows {
		items = append(items, toPost(r))
	}

	p := domain.Page{Items: items, HasMore: keyset.HasMore(len(rows), q.Limit)}
	if p.HasMore {
		p.NextCursor = cursor.Encode(cursor.ModeRecency, cursor.Cursor{CreatedAt: rows[len(rows)-1].CreatedAt})
	}
	return p, nil
}

// Delete removes a post authored by the caller
func (s *Svc) Delete(ctx context.Context, authorID, id string) error {
	return s.Repo.DeleteOwned(ctx, authorID, id)
}
