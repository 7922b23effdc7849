// Package service contains comment workflows
package service

import (
	"context"
	"time"

	"cliptube/internal/core/cursor"
	"cliptube/internal/core/keyset"
	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
	"cliptube/internal/services/api/comments/domain"
	"cliptube/internal/services/api/comments/repo"

	"github.com/google/uuid"
)

// VideoExistsFunc checks a published video exists, wired from the videos module
type VideoExistsFunc func(ctx context.Context, id string) (bool, error)

// Service defines the service contract for comments
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo        repo.Repo
	binder      repokit.Binder[repo.Repo]
	db          repokit.TxRunner
	videoExists VideoExistsFunc
	now         func() time.Time
	newID       func() string
}

// New creates a new comments service.
// videoExists may be nil, in which case the repo-side check is used.
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], videoExists VideoExistsFunc) *Svc {
	if db == nil {
		panic("comments.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("comments.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:        binder.Bind(db),
		binder:      binder,
		db:          db,
		videoExists: videoExists,
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
	}
}

func toComment(r repo.Row) domain.Comment {
	return domain.Comment{
		ID:        r.ID,
		VideoID:   r.VideoID,
		AuthorID:  r.AuthorID,
		Body:      r.Body,
		CreatedAt: r.CreatedAt,
	}
}

// List pages a video's comments by recency
func (s *Svc) List(ctx context.Context, videoID string, in domain.ListInput) (domain.Page, error) {
	exists, err := s.checkVideo(ctx, videoID)
	if err != nil {
		return domain.Page{}, err
	}
	if !exists {
		return domain.Page{}, perr.NotFoundf("video not found")
	}

	q, err := keyset.Parse("", "", in.Limit, in.Cursor, domain.MaxPageSize)
	if err != nil {
		return domain.Page{}, err
	}

	rows, err := s.Repo.List(ctx, videoID, q)
	if err != nil {
		return domain.Page{}, err
	}

	items := make([]domain.Comment, 0, len(rows))
	for _, r := range rows {
		items = append(items, toComment(r))
	}

	p := domain.Page{Items: items, HasMore: keyset.HasMore(len(rows), q.Limit)}
	if p.HasMore {
		p.NextCursor = cursor.Encode(cursor.ModeRecency, cursor.Cursor{CreatedAt: rows[len(rows)-1].CreatedAt})
	}
	return p, nil
}

// Create posts a comment on a published video
func (s *Svc) Create(ctx context.Context, authorID, videoID string, in domain.CreateInput) (domain.Comment, error) {
	exists, err := s.checkVideo(ctx, videoID)
	if err != nil {
		return domain.Comment{}, err
	}
	if !exists {
		return domain.Comment{}, perr.NotFoundf("video not found")
	}

	row := repo.Row{
		ID:        s.newID(),
		VideoID:   videoID,
		AuthorID:  authorID,
		Body:      in.Body,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Repo.Insert(ctx, row); err != nil {
		return domain.Comment{}, err
	}
	return toComment(row), nil
}

// Delete removes a comment authored by the caller
func (s *Svc) Delete(ctx context.Context, authorID, id string) error {
	return s.Repo.DeleteOwned(ctx, authorID, id)
}

func (s *Svc) checkVideo(ctx context.Context, videoID string) (bool, error) {
	if s.videoExists != nil {
		return s.videoExists(ctx, videoID)
	}
	return s.Repo.VideoExists(ctx, videoID)
}
