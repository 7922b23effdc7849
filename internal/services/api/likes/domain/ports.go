package domain

import "context"

// ServicePort defines the service contract for likes
type ServicePort interface {
	Toggle(ctx context.Context, userID string, kind Kind, targetID string) (ToggleResult, error)
	LikedVideos(ctx context.Context, userID string, in LikedVideosInput) (LikedVideosPage, error)
}
