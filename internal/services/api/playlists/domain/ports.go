package domain

import "context"

// ServicePort defines the service surface for playlists
type ServicePort interface {
	Create(ctx context.Context, ownerID string, in CreateInput) (Playlist, error)
	List(ctx context.Context, callerID string, in ListInput) (Page, error)
	Get(ctx context.Context, callerID, id string) (Playlist, error)
	Update(ctx context.Context, ownerID, id string, in UpdateInput) (Playlist, error)
	Delete(ctx context.Context, ownerID, id string) error
	ToggleVisibility(ctx context.Context, ownerID, id string) (Playlist, error)
	AddVideo(ctx context.Context, ownerID, id, videoID string) (Playlist, error)
	RemoveVideo(ctx context.Context, ownerID, id, videoID string) (Playlist, error)
}
