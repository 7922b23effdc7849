// Package service contains video workflows
package service

import (
	"context"
	"time"

	"cliptube/internal/core/cursor"
	"cliptube/internal/core/keyset"
	"cliptube/internal/core/textnorm"
	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
	"cliptube/internal/services/api/videos/domain"
	"cliptube/internal/services/api/videos/repo"

	"github.com/google/uuid"
)

// Service defines the service contract for videos
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	now    func() time.Time
	newID  func() string
}

// New creates a new videos service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("videos.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("videos.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// page converts repo rows to a wire page, deriving the next cursor from the
// last item only when the page came back full
func page(rows []repo.Row, q keyset.Query) domain.Page {
	items := make([]domain.Video, 0, len(rows))
	for _, r := range rows {
		items = append(items, toVideo(r))
	}
	p := domain.Page{Items: items, HasMore: keyset.HasMore(len(rows), q.Limit)}
	if p.HasMore {
		last := rows[len(rows)-1]
		p.NextCursor = cursor.Encode(q.Mode(), cursor.Cursor{
			CreatedAt: last.CreatedAt,
			Views:     last.Views,
			ID:        last.ID,
		})
	}
	return p
}

func toVideo(r repo.Row) domain.Video {
	return domain.Video{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Title:       r.Title,
		Description: r.Description,
		Views:       r.Views,
		Published:   r.Published,
		CreatedAt:   r.CreatedAt,
	}
}

// Feed lists published videos with optional search and owner filters
func (s *Svc) Feed(ctx context.Context, in domain.FeedInput) (domain.Page, error) {
	q, err := keyset.Parse(in.SortBy, in.SortDir, in.Limit, in.Cursor, domain.MaxPageSize)
	if err != nil {
		return domain.Page{}, err
	}

	f := repo.Filter{OwnerID: in.OwnerID}
	if in.Query != "" {
		f.Pattern = textnorm.LikePattern(in.Query)
	}

	rows, err := s.Repo.List(ctx, f, q)
	if err != nil {
		return domain.Page{}, err
	}
	return page(rows, q), nil
}

// ChannelVideos lists one channel's uploads.
// The channel owner also sees unpublished videos.
func (s *Svc) ChannelVideos(ctx context.Context, callerID string, in domain.ChannelVideosInput) (domain.Page, error) {
	q, err := keyset.Parse(in.SortBy, in.SortDir, in.Limit, in.Cursor, domain.MaxPageSize)
	if err != nil {
		return domain.Page{}, err
	}

	ok, err := s.Repo.OwnerExists(ctx, in.ChannelID)
	if err != nil {
		return domain.Page{}, err
	}
	if !ok {
		return domain.Page{}, perr.NotFoundf("channel not found")
	}

	f := repo.Filter{OwnerID: in.ChannelID}
	if callerID == in.ChannelID {
		f.IncludeUnpublishedFor = callerID
	}

	rows, err := s.Repo.List(ctx, f, q)
	if err != nil {
		return domain.Page{}, err
	}
	return page(rows, q), nil
}

// Create stores video metadata as an unpublished draft
func (s *Svc) Create(ctx context.Context, ownerID string, in domain.CreateInput) (domain.Video, error) {
	row := repo.Row{
		ID:          s.newID(),
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.Repo.Insert(ctx, row); err != nil {
		return domain.Video{}, err
	}
	return toVideo(row), nil
}

// Get returns a video when it is published or the caller owns it,
// counting the view for non-owner reads
func (s *Svc) Get(ctx context.Context, callerID, id string) (domain.Video, error) {
	row, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.Video{}, err
	}
	if !row.Published && row.OwnerID != callerID {
		return domain.Video{}, perr.NotFoundf("video not found")
	}
	if row.OwnerID != callerID {
		if err := s.Repo.IncrementViews(ctx, id); err != nil {
			return domain.Video{}, err
		}
		row.Views++
	}
	return toVideo(row), nil
}

// Update patches title and description for the owner
func (s *Svc) Update(ctx context.Context, ownerID, id string, in domain.UpdateInput) (domain.Video, error) {
	row, err := s.Repo.UpdateOwned(ctx, ownerID, id, in.Title, in.Description)
	if err != nil {
		return domain.Video{}, err
	}
	return toVideo(row), nil
}

// Delete removes a video the caller owns
func (s *Svc) Delete(ctx context.Context, ownerID, id string) error {
	return s.Repo.DeleteOwned(ctx, ownerID, id)
}

// TogglePublish flips the publish flag for the owner
func (s *Svc) TogglePublish(ctx context.Context, ownerID, id string) (domain.Video, error) {
	row, err := s.Repo.TogglePublishOwned(ctx, ownerID, id)
	if err != nil {
		return domain.Video{}, err
	}
	return toVideo(row), nil
}

// Exists reports whether a published video exists, for cross module checks
func (s *Svc) Exists(ctx context.Context, id string) (bool, error) {
	return s.Repo.Exists(ctx, id)
}
