package domain

import "context"

// ServicePort defines the service surface for comments
type ServicePort interface {
	List(ctx context.Context, videoID string, in ListInput) (Page, error)
	Create(ctx context.Context, authorID, videoID string, in CreateInput) (Comment, error)
	Delete(ctx context.Context, authorID, id string) error
}
