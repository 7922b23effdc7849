package domain

import "context"

// ServicePort defines the service surface for subscriptions
type ServicePort interface {
	Toggle(ctx context.Context, subscriberID, channelID string) (ToggleResult, error)
	Subscribers(ctx context.Context, channelID string, in ListInput) (SubscribersPage, error)
	Mine(ctx context.Context, subscriberID string, in ListInput) (SubscriptionsPage, error)
}
