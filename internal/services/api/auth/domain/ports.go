package domain

import "context"

// ServicePort defines the service surface for auth
type ServicePort interface {
	Register(ctx context.Context, in RegisterInput) (User, error)
	Login(ctx context.Context, in LoginInput) (TokenPair, error)
	Refresh(ctx context.Context, in RefreshInput) (TokenPair, error)
	Logout(ctx context.Context, in RefreshInput) error
	Me(ctx context.Context, userID string) (User, error)
}
