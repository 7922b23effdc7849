// Package domain holds DTOs for playlists http and service contracts
package domain

import "time"

// MaxPageSize caps the playlist listing
const MaxPageSize = 50

// Playlist is the wire shape of a playlist
type Playlist struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Public      bool      `json:"public"`
	VideoIDs    []string  `json:"video_ids"`
	VideoCount  int       `json:"video_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateInput creates a playlist; (owner, name) is unique
type CreateInput struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Public      bool   `json:"public"`
}

// UpdateInput renames or redescribes a playlist; nil fields keep current values
type UpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// ListInput pages playlists by recency. OwnerID empty means the caller's own.
type ListInput struct {
	OwnerID string `json:"owner_id,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Cursor  string `json:"cursor,omitempty"`
}

// Page is one keyset page of playlists
type Page struct {
	Items      []Playlist
	NextCursor string
	HasMore    bool
}
