// Package service contains the subscription toggle workflow
package service

import (
	"context"

	"cliptube/internal/core/cursor"
	"cliptube/internal/core/keyset"
	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
	"cliptube/internal/services/api/subscriptions/domain"
	"cliptube/internal/services/api/subscriptions/repo"
)

// Service defines the service contract for subscriptions
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new subscriptions service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("subscriptions.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("subscriptions.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Toggle flips the subscription relation and returns the resulting state.
// Same shape as the like toggle: delete first, then insert behind the
// unique index, no locks.
func (s *Svc) Toggle(ctx context.Context, subscriberID, channelID string) (domain.ToggleResult, error) {
	if subscriberID == channelID {
		return domain.ToggleResult{}, perr.Validationf("cannot subscribe to your own channel")
	}

	exists, err := s.Repo.ChannelExists(ctx, channelID)
	if err != nil {
		return domain.ToggleResult{}, err
	}
	if !exists {
		return domain.ToggleResult{}, perr.NotFoundf("channel not found")
	}

	deleted, err := s.Repo.Delete(ctx, subscriberID, channelID)
	if err != nil {
		return domain.ToggleResult{}, err
	}
	if deleted {
		return domain.ToggleResult{Active: false}, nil
	}

	if _, err := s.Repo.InsertIfAbsent(ctx, subscriberID, channelID); err != nil {
		return domain.ToggleResult{}, err
	}
	return domain.ToggleResult{Active: true}, nil
}

// Subscribers pages a channel's subscribers by subscription recency
func (s *Svc) Subscribers(ctx context.Context, channelID string, in domain.ListInput) (domain.SubscribersPage, error) {
	exists, err := s.Repo.ChannelExists(ctx, channelID)
	if err != nil {
		return domain.SubscribersPage{}, err
	}
	if !exists {
		return domain.SubscribersPage{}, perr.NotFoundf("channel not found")
	}

	q, err := keyset.Parse("", "", in.Limit, in.Cursor, domain.MaxPageSize)
	if err != nil {
		return domain.SubscribersPage{}, err
	}

	rows, err := s.Repo.Subscribers(ctx, channelID, q)
	if err != nil {
		return domain.SubscribersPage{}, err
	}

	items := make([]domain.Subscriber, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.Subscriber{
			UserID:       r.UserID,
			Username:     r.Username,
			SubscribedAt: r.SubscribedAt,
		})
	}

	p := domain.SubscribersPage{Items: items, HasMore: keyset.HasMore(len(rows), q.Limit)}
	if p.HasMore {
		p.NextCursor = cursor.Encode(cursor.ModeRecency, cursor.Cursor{CreatedAt: rows[len(rows)-1].SubscribedAt})
	}
	return p, nil
}

// Mine pages the channels the caller subscribes to
func (s *Svc) Mine(ctx context.Context, subscriberID string, in domain.ListInput) (domain.SubscriptionsPage, error) {
	q, err := keyset.Parse("", "", in.Limit, in.Cursor, domain.MaxPageSize)
	if err != nil {
		return domain.SubscriptionsPage{}, err
	}

	rows, err := s.Repo.Mine(ctx, subscriberID, q)
	if err != nil {
		return domain.SubscriptionsPage{}, err
	}

	items := make([]domain.Subscription, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.Subscription{
			ChannelID:    r.ChannelID,
			ChannelName:  r.ChannelName,
			SubscribedAt: r.SubscribedAt,
		})
	}

	p := domain.SubscriptionsPage{Items: items, HasMore: keyset.HasMore(len(rows), q.Limit)}
	if p.HasMore {
		p.NextCursor = cursor.Encode(cursor.ModeRecency, cursor.Cursor{CreatedAt: rows[len(rows)-1].SubscribedAt})
	}
	return p, nil
}
