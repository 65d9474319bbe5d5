package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// TransportResponse is the minimal view of an HTTP response a strategy
// needs from its refresh transport: the status and the raw body.
type TransportResponse struct {
	StatusCode int
	Body       []byte
}

// RefreshTransport performs the network call that mints new
// credentials. It is supplied by the caller; this package never builds
// its own transport implicitly. Implementations return an error only
// for transport-level failures; an error-status response is returned
// as a TransportResponse so the strategy can report the status.
type RefreshTransport interface {
	RoundTrip(ctx context.Context, method, url string, headers map[string]string, form url.Values) (*TransportResponse, error)
}

// RefreshTransportFunc allows inlining RefreshTransport
// implementations, mirroring http.HandlerFunc.
type RefreshTransportFunc func(ctx context.Context, method, url string, headers map[string]string, form url.Values) (*TransportResponse, error)

// RoundTrip calls the underlying function.
func (f RefreshTransportFunc) RoundTrip(ctx context.Context, method, reqURL string, headers map[string]string, form url.Values) (*TransportResponse, error) {
	return f(ctx, method, reqURL, headers, form)
}

// httpRefreshTransport adapts an *http.Client to RefreshTransport.
type httpRefreshTransport struct {
	client *http.Client
}

// NewHTTPRefreshTransport returns a RefreshTransport backed by the
// given HTTP client. If client is nil, http.DefaultClient is used.
// Form values are sent URL-encoded with the usual content type.
func NewHTTPRefreshTransport(client *http.Client) RefreshTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpRefreshTransport{client: client}
}

func (t *httpRefreshTransport) RoundTrip(ctx context.Context, method, reqURL string, headers map[string]string, form url.Values) (*TransportResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("auth: build refresh request: %w", err)
	}

	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRefreshBodySize))
	if err != nil {
		return nil, fmt.Errorf("auth: read refresh response: %w", err)
	}

	return &TransportResponse{StatusCode: resp.StatusCode, Body: data}, nil
}

// maxRefreshBodySize caps refresh response bodies; token endpoints
// return small JSON documents.
const maxRefreshBodySize = 1 << 20
