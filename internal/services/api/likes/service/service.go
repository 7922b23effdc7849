// Package service contains the like toggle workflow
package service

import (
	"context"

	"cliptube/internal/core/cursor"
	"cliptube/internal/core/keyset"
	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
	"cliptube/internal/services/api/likes/domain"
	"cliptube/internal/services/api/likes/repo"
)

// VideoExistsFunc checks a published video exists, wired from the videos module
type VideoExistsFunc func(ctx context.Context, id string) (bool, error)

// Service defines the service contract for likes
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo        repo.Repo
	binder      repokit.Binder[repo.Repo]
	db          repokit.TxRunner
	videoExists VideoExistsFunc
}

// New creates a new likes service.
// videoExists may be nil, in which case the repo-side check is used for videos too.
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], videoExists VideoExistsFunc) *Svc {
	if db == nil {
		panic("likes.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("likes.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, videoExists: videoExists}
}

// Toggle flips the like relation and returns the resulting state.
//
// Delete first: a removed row means the caller just unliked. Otherwise insert
// with the unique index absorbing concurrent winners; both the inserted and
// already-present outcomes converge on active. No locks, no read-then-write.
func (s *Svc) Toggle(ctx context.Context, userID string, kind domain.Kind, targetID string) (domain.ToggleResult, error) {
	if !kind.Valid() {
		return domain.ToggleResult{}, perr.Validationf("unknown like kind %q", kind)
	}

	exists, err := s.targetExists(ctx, kind, targetID)
	if err != nil {
		return domain.ToggleResult{}, err
	}
	if !exists {
		return domain.ToggleResult{}, perr.NotFoundf("%s not found", kind)
	}

	deleted, err := s.Repo.Delete(ctx, userID, kind, targetID)
	if err != nil {
		return domain.ToggleResult{}, err
	}
	if deleted {
		return domain.ToggleResult{Active: false}, nil
	}

	if _, err := s.Repo.InsertIfAbsent(ctx, userID, kind, targetID); err != nil {
		return domain.ToggleResult{}, err
	}
	return domain.ToggleResult{Active: true}, nil
}

func (s *Svc) targetExists(ctx context.Context, kind domain.Kind, targetID string) (bool, error) {
	if kind == domain.KindVideo && s.videoExists != nil {
		return s.videoExists(ctx, targetID)
	}
	return s.Repo.TargetExists(ctx, kind, targetID)
}

// LikedVideos pages the caller's liked videos by like recency
func (s *Svc) LikedVideos(ctx context.Context, userID string, in domain.LikedVideosInput) (domain.LikedVideosPage, error) {
	q, err := keyset.Parse("", "", in.Limit, in.Cursor, domain.MaxPageSize)
	if err != nil {
		return domain.LikedVideosPage{}, err
	}

	rows, err := s.Repo.LikedVideos(ctx, userID, q)
	if err != nil {
		return domain.LikedVideosPage{}, err
	}

	items := make([]domain.LikedVideo, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.LikedVideo{
			VideoID:   r.VideoID,
			Title:     r.Title,
			OwnerID:   r.OwnerID,
			LikedAt:   r.LikedAt,
			CreatedAt: r.CreatedAt,
		})
	}

	p := domain.LikedVideosPage{Items: items, HasMore: keyset.HasMore(len(rows), q.Limit)}
	if p.HasMore {
		p.NextCursor = cursor.Encode(cursor.ModeRecency, cursor.Cursor{CreatedAt: rows[len(rows)-1].LikedAt})
	}
	return p, nil
}
