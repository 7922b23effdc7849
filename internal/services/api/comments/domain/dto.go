// Package domain holds DTOs for comments http and service contracts
package domain

import "time"

// MaxPageSize caps the comment listing
const MaxPageSize = 20

// Comment is the wire shape of a comment
type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInput posts a comment on a video
type CreateInput struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

// ListInput pages a video's comments by recency
type ListInput struct {
	Limit  int    `json:"limit,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

// Page is one keyset page of comments
type Page struct {
	Items      []Comment
	NextCursor string
	HasMore    bool
}
