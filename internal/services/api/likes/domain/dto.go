// Package domain holds DTOs for likes http and service contracts
package domain

import "time"

// MaxPageSize caps the liked-videos listing
const MaxPageSize = 10

// Kind names the likeable target type
type Kind string

const (
	KindVideo   Kind = "video"
	KindComment Kind = "comment"
	KindPost    Kind = "post"
)

// Valid reports whether k is a known target kind
func (k Kind) Valid() bool {
	switch k {
	case KindVideo, KindComment, KindPost:
		return true
	}
	return false
}

// ToggleResult reports the state after a toggle, not what the call did.
// Two racing togglers may both observe active=true; the row exists either way.
type ToggleResult struct {
	Active bool `json:"active"`
}

// LikedVideo is one entry of the liked-videos listing
type LikedVideo struct {
	VideoID   string    `json:"video_id"`
	Title     string    `json:"title"`
	OwnerID   string    `json:"owner_id"`
	LikedAt   time.Time `json:"liked_at"`
	CreatedAt time.Time `json:"created_at"`
}

// LikedVideosInput pages the caller's liked videos
type LikedVideosInput struct {
	Limit  int    `json:"limit,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

// LikedVideosPage is one keyset page of liked videos
type LikedVideosPage struct {
	Items      []LikedVideo
	NextCursor string
	HasMore    bool
}
