package auth

import "time"

// DefaultExpiryLeeway is the grace buffer subtracted from a token's
// expiry instant: a token is treated as expired this long before it
// actually is, so that a request prepared just before the deadline is
// not rejected mid-flight.
const DefaultExpiryLeeway = 5 * time.Minute

// Credentials is a snapshot of the secrets a strategy attaches to
// requests. Snapshots are replaced wholesale on refresh; a snapshot
// handed out by a strategy is never mutated afterwards, so it is safe
// to read from any goroutine.
type Credentials struct {
	// AccessToken is the value sent on requests. Never empty for a
	// constructed strategy.
	AccessToken string

	// RefreshToken is the opaque value exchanged for a new access
	// token. Empty when the credential cannot be refreshed.
	RefreshToken string

	// TokenType is informational, e.g. "Bearer". Empty means Bearer.
	TokenType string

	// ExpiresAt is the absolute expiry instant. The zero value means
	// the expiry is unknown and the token is never treated as expired.
	ExpiresAt time.Time

	// Scope is the space-separated scope list the server granted, if
	// it reported one.
	Scope string
}

// ExpiredAt reports whether the snapshot counts as expired at the
// given instant, applying the leeway buffer. A zero ExpiresAt is never
// expired: absence of expiry information must not trigger refreshes.
func (c *Credentials) ExpiredAt(now time.Time, leeway time.Duration) bool {
	if c == nil || c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(c.ExpiresAt.Add(-leeway))
}

// Clone returns a copy of the snapshot. Used when accepting caller
// provided credentials so later refreshes cannot alias caller memory.
func (c *Credentials) Clone() *Credentials {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// RefreshResult is the outcome of one successful refresh attempt.
type RefreshResult struct {
	// Credentials is the new snapshot. AccessToken is non-empty.
	Credentials *Credentials

	// ConfigUpdates holds non-credential fields the refresh response
	// revealed (for example a rotated endpoint). Applying them is the
	// caller's responsibility, not this package's.
	ConfigUpdates map[string]any
}
