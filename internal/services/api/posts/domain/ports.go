package domain

import "context"

// ServicePort defines the service surface for posts
type ServicePort interface {
	Create(ctx context.Context, authorID string, in CreateInput) (Post, error)
	ListByAuthor(ctx context.Context, authorID string, in ListInput) (Page, error)
	Delete(ctx context.Context, authorID, id string) error
}
