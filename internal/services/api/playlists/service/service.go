// Package service contains playlist workflows
package service

import (
	"context"
	"time"

	"cliptube/internal/core/cursor"
	"cliptube/internal/core/keyset"
	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
	"cliptube/internal/services/api/playlists/domain"
	"cliptube/internal/services/api/playlists/repo"

	"github.com/google/uuid"
)

// VideoExistsFunc checks a published video exists, wired from the videos module
type VideoExistsFunc func(ctx context.Context, id string) (bool, error)

// Service defines the service contract for playlists
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

// New creates a new playlists service.
// videoExists may be nil, in which case adds skip the video check and rely on
// the membership predicate alone.
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], videoExists VideoExistsFunc) *Svc {
	if db == nil {
		panic("playlists.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("playlists.Service requires a non nil Repo binder")
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

func toPlaylist(r repo.Row) domain.Playlist {
	ids := r.VideoIDs
	if ids == nil {
		ids = []string{}
	}
	return domain.Playlist{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		Public:      r.Public,
		VideoIDs:    ids,
		VideoCount:  r.VideoCount,
		CreatedAt:   r.CreatedAt,
	}
}

// Create inserts a playlist; a duplicate (owner, name) pair surfaces as a
// conflict rather than being swallowed
func (s *Svc) Create(ctx context.Context, ownerID string, in domain.CreateInput) (domain.Playlist, error) {
	row := repo.Row{
		ID:          s.newID(),
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: in.Description,
		Public:      in.Public,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.Repo.Insert(ctx, row); err != nil {
		return domain.Playlist{}, err
	}
	return toPlaylist(row), nil
}

// List pages one owner's playlists by recency; private ones show only to
// their owner. OwnerID empty lists the caller's own.
func (s *Svc) List(ctx context.Context, callerID string, in domain.ListInput) (domain.Page, error) {
	owner := in.OwnerID
	if owner == "" {
		owner = callerID
	}

	q, err := keyset.Parse("", "", in.Limit, in.Cursor, domain.MaxPageSize)
	if err != nil {
		return domain.Page{}, err
	}

	rows, err := s.Repo.List(ctx, callerID, owner, q)
	if err != nil {
		return domain.Page{}, err
	}

	items := make([]domain.Playlist, 0, len(rows))
	for _, r := range rows {
		items = append(items, toPlaylist(r))
	}

	p := domain.Page{Items: items, HasMore: keyset.HasMore(len(rows), q.Limit)}
	if p.HasMore {
		p.NextCursor = cursor.Encode(cursor.ModeRecency, cursor.Cursor{CreatedAt: rows[len(rows)-1].CreatedAt})
	}
	return p, nil
}

// Get returns a playlist visible to the caller; private and not owned
// collapses to not found
func (s *Svc) Get(ctx context.Context, callerID, id string) (domain.Playlist, error) {
	row, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.Playlist{}, err
	}
	if !row.Public && row.OwnerID != callerID {
		return domain.Playlist{}, perr.NotFoundf("playlist not found")
	}
	return toPlaylist(row), nil
}

// Update renames or redescribes a playlist owned by the caller
func (s *Svc) Update(ctx context.Context, ownerID, id string, in domain.UpdateInput) (domain.Playlist, error) {
	row, err := s.Repo.UpdateOwned(ctx, ownerID, id, in.Name, in.Description)
	if err != nil {
		return domain.Playlist{}, err
	}
	return toPlaylist(row), nil
}

// Delete removes a playlist owned by the caller
func (s *Svc) Delete(ctx context.Context, ownerID, id string) error {
	return s.Repo.DeleteOwned(ctx, ownerID, id)
}

// ToggleVisibility flips a playlist between public and private
func (s *Svc) ToggleVisibility(ctx context.Context, ownerID, id string) (domain.Playlist, error) {
	row, err := s.Repo.ToggleVisibilityOwned(ctx, ownerID, id)
	if err != nil {
		return domain.Playlist{}, err
	}
	return toPlaylist(row), nil
}

// AddVideo appends a video to an owned playlist. Membership, ownership, and
// existence of the playlist are all decided by one conditional update; two
// racing adds leave the video in the array exactly once with the counter
// bumped exactly once.
func (s *Svc) AddVideo(ctx context.Context, ownerID, id, videoID string) (domain.Playlist, error) {
	if s.videoExists != nil {
		exists, err := s.videoExists(ctx, videoID)
		if err != nil {
			return domain.Playlist{}, err
		}
		if !exists {
			return domain.Playlist{}, perr.NotFoundf("video not found")
		}
	}

	row, ok, err := s.Repo.AddVideoOwned(ctx, ownerID, id, videoID)
	if err != nil {
		return domain.Playlist{}, err
	}
	if !ok {
		return domain.Playlist{}, perr.Conflictf("video already in playlist or playlist not found")
	}
	return toPlaylist(row), nil
}

// RemoveVideo drops a video from an owned playlist, same atomic shape as add
func (s *Svc) RemoveVideo(ctx context.Context, ownerID, id, videoID string) (domain.Playlist, error) {
	row, ok, err := s.Repo.RemoveVideoOwned(ctx, ownerID, id, videoID)
	if err != nil {
		return domain.Playlist{}, err
	}
	if !ok {
		return domain.Playlist{}, perr.NotFoundf("video not in playlist")
	}
	return toPlaylist(row), nil
}
