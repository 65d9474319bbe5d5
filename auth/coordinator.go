package auth

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// RefreshFunc performs one uncoordinated refresh attempt.
type RefreshFunc func(ctx context.Context) (*RefreshResult, error)

// RefreshCoordinator guarantees at most one in-flight refresh at a
// time for the strategy it wraps. Callers that request a refresh while
// one is already in flight do not trigger a second network call; they
// block on the in-flight attempt and receive its outcome, success or
// typed error, identically.
//
// The coordinator holds no lock across the network call and never
// retries: one physical refresh per wave of callers. Retry policy and
// timeouts belong to the caller.
type RefreshCoordinator struct {
	canRefresh func() bool
	refresh    RefreshFunc
	group      singleflight.Group
}

// NewRefreshCoordinator wraps a strategy's refresh logic.
//
// Parameters:
//   - canRefresh: reports whether refresh is possible; checked before
//     every attempt so misconfigured strategies fail fast with
//     ErrStrategy. May be nil to skip the check.
//   - refresh: the strategy's own refresh logic, invoked at most once
//     per wave of concurrent callers.
func NewRefreshCoordinator(canRefresh func() bool, refresh RefreshFunc) *RefreshCoordinator {
	return &RefreshCoordinator{canRefresh: canRefresh, refresh: refresh}
}

// Refresh requests a coordinated refresh. If an attempt is already in
// flight, the call blocks until that attempt resolves and returns its
// outcome without performing a second network call.
func (c *RefreshCoordinator) Refresh(ctx context.Context) (*RefreshResult, error) {
	if c.canRefresh != nil && !c.canRefresh() {
		return nil, strategyErrf("refresh requested on a non-refreshable strategy")
	}

	// singleflight collapses concurrent calls into one execution; all
	// callers in the wave share the single outcome.
	v, err, _ := c.group.Do("refresh", func() (any, error) {
		return c.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*RefreshResult), nil
}

// Callback returns the zero-argument hook retry layers invoke before
// replaying a failed request. It discards the refresh result and
// surfaces only errors.
func (c *RefreshCoordinator) Callback() RefreshCallback {
	return func() error {
		_, err := c.Refresh(context.Background())
		return err
	}
}
