package auth

import (
	"encoding/base64"
	"strings"
)

// BasicAuth attaches an RFC 7617 Basic Authorization header built from
// a fixed username and password. It never refreshes and never expires.
type BasicAuth struct {
	noRefresh

	header string
}

// NewBasicAuth creates a Basic authentication strategy.
//
// Construction fails with ErrMissingCredentials if the username or
// password is empty or blank.
func NewBasicAuth(username, password string) (*BasicAuth, error) {
	if strings.TrimSpace(username) == "" {
		return nil, missingErrf("basic auth username is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, missingErrf("basic auth password is required")
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return &BasicAuth{header: "Basic " + encoded}, nil
}

// PrepareHeaders returns the Authorization header.
func (a *BasicAuth) PrepareHeaders() (map[string]string, error) {
	return map[string]string{"Authorization": a.header}, nil
}

// PrepareParams returns no parameters; Basic auth is header-only.
func (a *BasicAuth) PrepareParams() (map[string]string, error) {
	return map[string]string{}, nil
}
