package httpclient

import (
	"fmt"
	"net/http"

	"github.com/Leikaab/apiconfig-sub000/auth"
)

// AuthTransport is an http.RoundTripper that applies an auth.Strategy
// to outgoing HTTP requests: headers are set on the request, and
// parameters are merged into the query string.
//
// It wraps an existing transport (typically http.DefaultTransport).
// Requests are cloned before decoration, so callers can reuse them.
type AuthTransport struct {
	// Base is the underlying HTTP transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// Strategy decides what credentials to attach.
	Strategy auth.Strategy

	// RetryOnUnauthorized enables a single replay after a 401: the
	// strategy's refresh callback is invoked and the request is sent
	// again with fresh headers. Requests with bodies are only replayed
	// when GetBody is available.
	RetryOnUnauthorized bool
}

// NewAuthTransport creates an AuthTransport with the given strategy.
// The base transport defaults to http.DefaultTransport if nil.
func NewAuthTransport(strategy auth.Strategy, base http.RoundTripper) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &AuthTransport{Base: base, Strategy: strategy}
}

// RoundTrip implements http.RoundTripper. Expired credentials are
// refreshed up front when the strategy supports it; an expired
// non-refreshable strategy fails with auth.ErrExpiredToken before any
// network call.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Strategy == nil {
		return nil, fmt.Errorf("httpclient: Strategy is nil")
	}

	if err := auth.EnsureFresh(req.Context(), t.Strategy); err != nil {
		return nil, fmt.Errorf("httpclient: %w", err)
	}

	decorated, err := t.decorate(req)
	if err != nil {
		return nil, err
	}

	resp, err := t.base().RoundTrip(decorated)
	if err != nil || !t.shouldRetry(resp, req) {
		return resp, err
	}

	// One replay only; further 401 handling belongs to the caller.
	callback := t.Strategy.RefreshCallback()
	if callback == nil {
		return resp, nil
	}
	if err := callback(); err != nil {
		return resp, nil
	}

	retried, derr := t.decorate(req)
	if derr != nil {
		return resp, nil
	}

	resp.Body.Close()
	return t.base().RoundTrip(retried)
}

func (t *AuthTransport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

// decorate clones the request and applies the strategy's headers and
// query parameters.
func (t *AuthTransport) decorate(req *http.Request) (*http.Request, error) {
	headers, err := t.Strategy.PrepareHeaders()
	if err != nil {
		return nil, fmt.Errorf("httpclient: prepare headers: %w", err)
	}
	params, err := t.Strategy.PrepareParams()
	if err != nil {
		return nil, fmt.Errorf("httpclient: prepare params: %w", err)
	}

	clone := req.Clone(req.Context())
	for k, v := range headers {
		clone.Header.Set(k, v)
	}

	if len(params) > 0 {
		query := clone.URL.Query()
		for k, v := range params {
			query.Set(k, v)
		}
		clone.URL.RawQuery = query.Encode()
	}

	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("httpclient: rewind request body: %w", err)
		}
		clone.Body = body
	}

	return clone, nil
}

// shouldRetry reports whether the response warrants a refresh-and-
// replay attempt.
func (t *AuthTransport) shouldRetry(resp *http.Response, req *http.Request) bool {
	if !t.RetryOnUnauthorized || resp == nil {
		return false
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return false
	}
	// Bodies without GetBody cannot be replayed.
	if req.Body != nil && req.GetBody == nil {
		return false
	}
	return true
}
