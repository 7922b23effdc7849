package domain

import "context"

// ServicePort defines the service contract for videos
type ServicePort interface {
	Feed(ctx context.Context, in FeedInput) (Page, error)
	ChannelVideos(ctx context.Context, callerID string, in ChannelVideosInput) (Page, error)
	Create(ctx context.Context, ownerID string, in CreateInput) (Video, error)
	Get(ctx context.Context, callerID, id string) (Video, error)
	Update(ctx context.Context, ownerID, id string, in UpdateInput) (Video, error)
	Delete(ctx context.Context, ownerID, id string) error
	TogglePublish(ctx context.Context, ownerID, id string) (Video, error)
}
