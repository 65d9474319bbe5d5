package auth

import (
	"errors"
	"fmt"
)

// Error taxonomy for authentication failures.
//
// Every error returned by this package matches ErrAuthentication via
// errors.Is, and additionally matches exactly one of the specific
// sentinels below. Underlying causes (network errors, JSON decode
// failures, user-callback errors) stay on the chain and can be
// inspected with errors.Is / errors.As.
var (
	// ErrAuthentication is the root of the taxonomy. It is never
	// returned on its own; match against it to catch any
	// authentication failure.
	ErrAuthentication = errors.New("auth: authentication failed")

	// ErrMissingCredentials indicates a required secret was absent or
	// blank at construction or use time.
	ErrMissingCredentials = fmt.Errorf("%w: missing credentials", ErrAuthentication)

	// ErrInvalidCredentials indicates a credential was present but
	// rejected by the remote side. This package never detects
	// rejection itself; callers map a 401 response to this sentinel.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrAuthentication)

	// ErrExpiredToken indicates the token is expired and the strategy
	// has no way to refresh it.
	ErrExpiredToken = fmt.Errorf("%w: token expired", ErrAuthentication)

	// ErrTokenRefresh indicates a refresh was attempted and failed:
	// network failure, non-2xx status, malformed JSON, or a response
	// missing the access_token field.
	ErrTokenRefresh = fmt.Errorf("%w: token refresh failed", ErrAuthentication)

	// ErrStrategy indicates strategy misconfiguration: ambiguous
	// placement, a failing user callback, or refresh requested on a
	// non-refreshable strategy.
	ErrStrategy = fmt.Errorf("%w: auth strategy error", ErrAuthentication)
)

// missingErrf wraps a formatted message with ErrMissingCredentials.
func missingErrf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMissingCredentials, fmt.Sprintf(format, args...))
}

// strategyErrf wraps a formatted message with ErrStrategy.
func strategyErrf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStrategy, fmt.Sprintf(format, args...))
}

// wrapStrategyErr chains a cause under ErrStrategy.
func wrapStrategyErr(msg string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrStrategy, msg, cause)
}

// refreshErr chains a cause under ErrTokenRefresh.
func refreshErr(msg string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrTokenRefresh, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrTokenRefresh, msg, cause)
}
