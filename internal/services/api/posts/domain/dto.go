// Package domain holds DTOs for posts http and service contracts
package domain

import "time"

// MaxPageSize caps the post listing
const MaxPageSize = 20

// Post is the wire shape of a text post
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInput publishes a new post
type CreateInput struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

// ListInput pages one author's posts by recency
type ListInput struct {
	Limit  int    `json:"limit,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

// Page is one keyset page of posts
type Page struct {
	Items      []Post
	NextCursor string
	HasMore    bool
}
