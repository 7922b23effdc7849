// Package domain holds DTOs for videos http and service contracts
package domain

import "time"

// MaxPageSize caps a single feed page
const MaxPageSize = 10

// Video is the wire shape for a video
type Video struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Views       int64     `json:"views"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
}

// FeedInput filters and pages the public feed
type FeedInput struct {
	Query   string `json:"query,omitempty" validate:"omitempty,max=200"`
	OwnerID string `json:"owner_id,omitempty" validate:"omitempty,uuid4"`
	SortBy  string `json:"sort_by,omitempty"`
	SortDir string `json:"sort_dir,omitempty"`
	Limit   int    `json:"limit,omitempty" validate:"omitempty,min=1"`
	Cursor  string `json:"cursor,omitempty" validate:"omitempty,max=256"`
}

// ChannelVideosInput pages one channel's uploads
type ChannelVideosInput struct {
	ChannelID string `json:"-"`
	SortBy    string `json:"sort_by,omitempty"`
	SortDir   string `json:"sort_dir,omitempty"`
	Limit     int    `json:"limit,omitempty" validate:"omitempty,min=1"`
	Cursor    string `json:"cursor,omitempty" validate:"omitempty,max=256"`
}

// CreateInput carries metadata for a new video
type CreateInput struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

// UpdateInput carries a partial metadata update
type UpdateInput struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

// Page is one keyset page of videos
type Page struct {
	Items      []Video
	NextCursor string
	HasMore    bool
}
