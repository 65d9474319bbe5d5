package auth

import "strings"

// DefaultAPIKeyHeader is the header used when no placement is
// configured explicitly.
const DefaultAPIKeyHeader = "X-API-Key"

// APIKeyAuth attaches a fixed API key to requests, either as a header
// or as a query parameter. It never refreshes and never expires.
type APIKeyAuth struct {
	noRefresh

	key        string
	headerName string
	paramName  string
}

// APIKeyOption configures an APIKeyAuth strategy.
type APIKeyOption func(*APIKeyAuth)

// WithHeaderName places the key in the named request header.
func WithHeaderName(name string) APIKeyOption {
	return func(a *APIKeyAuth) {
		a.headerName = name
	}
}

// WithParamName places the key in the named query parameter instead of
// a header.
func WithParamName(name string) APIKeyOption {
	return func(a *APIKeyAuth) {
		a.paramName = name
	}
}

// NewAPIKeyAuth creates an API-key strategy. With no placement option
// the key goes into the X-API-Key header.
//
// Construction fails with ErrMissingCredentials on a blank key, and
// with ErrStrategy when both a header and a parameter placement are
// configured: only one placement is meaningful for a single key.
func NewAPIKeyAuth(key string, opts ...APIKeyOption) (*APIKeyAuth, error) {
	if strings.TrimSpace(key) == "" {
		return nil, missingErrf("API key is required")
	}

	a := &APIKeyAuth{key: key}
	for _, opt := range opts {
		opt(a)
	}

	if a.headerName != "" && a.paramName != "" {
		return nil, strategyErrf("API key placement is ambiguous: both header %q and param %q configured", a.headerName, a.paramName)
	}
	if a.headerName == "" && a.paramName == "" {
		a.headerName = DefaultAPIKeyHeader
	}

	return a, nil
}

// PrepareHeaders returns the key header, or an empty map for
// parameter-placed keys.
func (a *APIKeyAuth) PrepareHeaders() (map[string]string, error) {
	if a.headerName == "" {
		return map[string]string{}, nil
	}
	return map[string]string{a.headerName: a.key}, nil
}

// PrepareParams returns the key parameter, or an empty map for
// header-placed keys.
func (a *APIKeyAuth) PrepareParams() (map[string]string, error) {
	if a.paramName == "" {
		return map[string]string{}, nil
	}
	return map[string]string{a.paramName: a.key}, nil
}
