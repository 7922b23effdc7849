// Package domain holds DTOs for subscriptions http and service contracts
package domain

import "time"

// MaxPageSize caps subscriber and subscription listings
const MaxPageSize = 50

// ToggleResult reports the state after a toggle, not what the call did
type ToggleResult struct {
	Active bool `json:"active"`
}

// Subscriber is one entry of a channel's subscriber listing
type Subscriber struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// Subscription is one channel the caller subscribes to
type Subscription struct {
	ChannelID    string    `json:"channel_id"`
	ChannelName  string    `json:"channel_name"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// ListInput pages a subscriber or subscription listing by recency
type ListInput struct {
	Limit  int    `json:"limit,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

// SubscribersPage is one keyset page of subscribers
type SubscribersPage struct {
	Items      []Subscriber
	NextCursor string
	HasMore    bool
}

// SubscriptionsPage is one keyset page of the caller's subscriptions
type SubscriptionsPage struct {
	Items      []Subscription
	NextCursor string
	HasMore    bool
}
