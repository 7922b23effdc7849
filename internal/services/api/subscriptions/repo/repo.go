// Package repo provides postgres access for subscriptions.
//
// The subscriptions table carries a compound unique index on
// (subscriber_id, channel_id); the toggle relies on it alone.
package repo

import (
	"context"
	"fmt"
	"time"

	"cliptube/internal/core/keyset"
	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
)

// SubscriberRow joins a subscription to the subscribing user
type SubscriberRow struct {
	UserID       string
	Username     string
	SubscribedAt time.Time
}

// SubscriptionRow joins a subscription to the channel it targets
type SubscriptionRow struct {
	ChannelID    string
	ChannelName  string
	SubscribedAt time.Time
}

// Repo defines the repository contract for subscriptions
type Repo interface {
	// Delete removes the relation row and reports whether one was there
	Delete(ctx context.Context, subscriberID, channelID string) (bool, error)

	// InsertIfAbsent adds the relation row, letting the unique index swallow
	// the duplicate when a concurrent toggle won the race
	InsertIfAbsent(ctx context.Context, subscriberID, channelID string) (repokit.InsertOutcome, error)

	// ChannelExists checks the channel user exists
	ChannelExists(ctx context.Context, channelID string) (bool, error)

	// Subscribers pages a channel's subscribers, newest first
	Subscribers(ctx context.Context, channelID string, q keyset.Query) ([]SubscriberRow, error)

	// Mine pages the channels a user subscribes to, newest first
	Mine(ctx context.Context, subscriberID string, q keyset.Query) ([]SubscriptionRow, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Delete(ctx context.Context, subscriberID, channelID string) (bool, error) {
	const sql = `DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`
	tag, err := r.q.Exec(ctx, sql, subscriberID, channelID)
	if err != nil {
		return false, perr.FromPostgres(err, "subscription delete failed")
	}
	return tag.RowsAffected() > 0, nil
}

func (r *queries) InsertIfAbsent(ctx context.Context, subscriberID, channelID string) (repokit.InsertOutcome, error) {
	const sql = `
INSERT INTO subscriptions (subscriber_id, channel_id, created_at)
VALUES ($1, $2, now())
ON CONFLICT (subscriber_id, channel_id) DO NOTHING`
	tag, err := r.q.Exec(ctx, sql, subscriberID, channelID)
	if err != nil {
		if perr.IsDuplicateKey(err) {
			return repokit.AlreadyPresent, nil
		}
		return 0, perr.FromPostgres(err, "subscription insert failed")
	}
	if tag.RowsAffected() == 0 {
		return repokit.AlreadyPresent, nil
	}
	return repokit.Inserted, nil
}

func (r *queries) ChannelExists(ctx context.Context, channelID string) (bool, error) {
	const sql = `SELECT 1 FROM users WHERE id = $1`
	var one int
	if err := r.q.QueryRow(ctx, sql, channelID).Scan(&one); err != nil {
		if perr.IsNoRows(err) {
			return false, nil
		}
		return false, perr.FromPostgres(err, "channel lookup failed")
	}
	return true, nil
}

func (r *queries) Subscribers(ctx context.Context, channelID string, q keyset.Query) ([]SubscriberRow, error) {
	args := []any{channelID}
	pred := ""
	if frag, curArgs := keyset.SQL(q, len(args)+1); frag != "" {
		pred = " AND s." + frag
		args = append(args, curArgs...)
	}
	args = append(args, q.Limit)

	sql := fmt.Sprintf(`
SELECT s.subscriber_id, u.username, s.created_at
FROM subscriptions s
JOIN users u ON u.id = s.subscriber_id
WHERE s.channel_id = $1%s
ORDER BY s.%s
LIMIT $%d`, pred, keyset.OrderBy(q), len(args))

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "subscriber list failed")
	}
	defer rows.Close()

	var out []SubscriberRow
	for rows.Next() {
		var sr SubscriberRow
		if err := rows.Scan(&sr.UserID, &sr.Username, &sr.SubscribedAt); err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

func (r *queries) Mine(ctx context.Context, subscriberID string, q keyset.Query) ([]SubscriptionRow, error) {
	args := []any{subscriberID}
	pred := ""
	if frag, curArgs := keyset.SQL(q, len(args)+1); frag != "" {
		pred = " AND s." + frag
		args = append(args, curArgs...)
	}
	args = append(args, q.Limit)

	sql := fmt.Sprintf(`
SELECT s.channel_id, u.username, s.created_at
FROM subscriptions s
JOIN users u ON u.id = s.channel_id
WHERE s.subscriber_id = $1%s
ORDER BY s.%s
LIMIT $%d`, pred, keyset.OrderBy(q), len(args))

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "subscription list failed")
	}
	defer rows.Close()

	var out []SubscriptionRow
	for rows.Next() {
		var sr SubscriptionRow
		if err := rows.Scan(&sr.ChannelID, &sr.ChannelName, &sr.SubscribedAt); err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}
