package client

import (
	"context"
	"errors"
	"sync"
)

// ErrReauthRequired is terminal: the refresh token was rejected or missing,
// local credentials are gone, and the user has to log in again
var ErrReauthRequired = errors.New("re-authentication required")

// refreshCoordinator single-flights credential refresh.
//
// The first caller to observe an expired credential becomes the trigger and
// performs the refresh; callers arriving while it is in flight park on a
// channel instead of issuing their own. When the refresh settles, waiters
// are woken in arrival order and share its outcome.
type refreshCoordinator struct {
	mu         sync.Mutex
	refreshing bool
	waiters    []chan error

	refresh func(ctx context.Context) error
}

func newRefreshCoordinator(refresh func(ctx context.Context) error) *refreshCoordinator {
	return &refreshCoordinator{refresh: refresh}
}

// run blocks until a refresh attempt (ours or a concurrent trigger's) has
// settled, and returns its outcome
func (c *refreshCoordinator) run(ctx context.Context) error {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan error, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()
		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	err := c.refresh(ctx)

	c.mu.Lock()
	c.refreshing = false
	ws := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	// buffered channels, so a waiter that already gave up on its context
	// does not block the wakeup of the ones behind it
	for _, ch := range ws {
		ch <- err
	}
	return err
}
