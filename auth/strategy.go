package auth

import "context"

// Strategy decides what credentials to attach to an outgoing request
// and, when the credentials can expire, how to refresh them.
//
// PrepareHeaders and PrepareParams are pure functions of current
// state: they never block on the network and may be called repeatedly
// with identical results between refreshes. A strategy that only
// contributes headers returns an empty map from PrepareParams and
// vice versa.
//
// Refresh is never called directly by retry code; external layers go
// through RefreshCallback (or a RefreshCoordinator), which serializes
// concurrent refresh attempts.
type Strategy interface {
	// PrepareHeaders returns the headers to set on the next request.
	PrepareHeaders() (map[string]string, error)

	// PrepareParams returns the query parameters to set on the next
	// request.
	PrepareParams() (map[string]string, error)

	// CanRefresh reports whether the strategy was constructed with
	// everything it needs to mint new credentials. Side-effect free.
	CanRefresh() bool

	// IsExpired reports whether the current credentials should be
	// treated as expired, applying the expiry leeway. False when no
	// expiry is known.
	IsExpired() bool

	// Refresh performs one refresh attempt and replaces the credential
	// snapshot on success. Fails with ErrStrategy on non-refreshable
	// strategies and ErrTokenRefresh on transport or response
	// failures.
	Refresh(ctx context.Context) (*RefreshResult, error)

	// RefreshCallback returns the zero-argument hook handed to retry
	// layers, or nil when CanRefresh is false. The callback discards
	// the refresh result and surfaces only errors.
	RefreshCallback() RefreshCallback
}

// RefreshCallback triggers a coordinated refresh. It is shaped for the
// generic "pre-retry hook" parameter of HTTP client retry layers:
// no arguments, no result, just an error.
type RefreshCallback func() error

// noRefresh provides the refresh surface for strategies whose
// credentials are fixed for the lifetime of the process.
type noRefresh struct{}

func (noRefresh) CanRefresh() bool { return false }

func (noRefresh) IsExpired() bool { return false }

func (noRefresh) Refresh(context.Context) (*RefreshResult, error) {
	return nil, strategyErrf("strategy is not refreshable")
}

func (noRefresh) RefreshCallback() RefreshCallback { return nil }

// EnsureFresh refreshes the strategy's credentials when they are
// expired and the strategy can refresh. It returns ErrExpiredToken
// when the credentials are expired but the strategy has no way to
// renew them, and nil when the credentials are still usable.
func EnsureFresh(ctx context.Context, s Strategy) error {
	if !s.IsExpired() {
		return nil
	}
	if !s.CanRefresh() {
		return ErrExpiredToken
	}
	_, err := s.Refresh(ctx)
	return err
}
