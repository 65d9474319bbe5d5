package testutil

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Leikaab/apiconfig-sub000/auth"
)

// NewLocalHTTPServer starts an HTTP server bound to IPv4 loopback only.
// The sandbox blocks IPv6 listeners, so force tcp4 to keep tests runnable.
func NewLocalHTTPServer(tb testing.TB, handler http.Handler) *httptest.Server {
	tb.Helper()

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("failed to create IPv4 listener: %v", err)
	}

	server := httptest.NewUnstartedServer(handler)
	server.Listener = listener
	server.Start()

	return server
}

// RoundTripFunc allows inlining http.RoundTripper implementations.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls the underlying function.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// StaticJSONResponse returns a RoundTripper that always responds with the provided JSON body.
func StaticJSONResponse(body string) RoundTripFunc {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	}
}

// MockTokenEndpoint simulates an OAuth2 token endpoint behind the
// auth.RefreshTransport port without real sockets. It counts calls,
// records the submitted forms, and can delay responses to widen race
// windows in concurrency tests.
type MockTokenEndpoint struct {
	mu    sync.Mutex
	calls atomic.Int64
	forms []url.Values

	// Delay is applied before every response.
	Delay time.Duration

	// Status and Body shape the response; defaults are 200 and a
	// successful token document.
	Status int
	Body   string

	// Err, when set, is returned instead of any response to simulate
	// transport-level failures.
	Err error
}

// NewMockTokenEndpoint returns an endpoint that serves a successful
// refresh response.
func NewMockTokenEndpoint() *MockTokenEndpoint {
	return &MockTokenEndpoint{
		Status: http.StatusOK,
		Body:   `{"access_token": "mock-access-token", "token_type": "Bearer", "expires_in": 3600}`,
	}
}

// RoundTrip implements auth.RefreshTransport.
func (m *MockTokenEndpoint) RoundTrip(ctx context.Context, method, reqURL string, headers map[string]string, form url.Values) (*auth.TransportResponse, error) {
	m.calls.Add(1)

	m.mu.Lock()
	m.forms = append(m.forms, form)
	delay := m.Delay
	status := m.Status
	body := m.Body
	err := m.Err
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, err
	}
	if status == 0 {
		status = http.StatusOK
	}

	return &auth.TransportResponse{StatusCode: status, Body: []byte(body)}, nil
}

// Calls returns how many times the endpoint was invoked.
func (m *MockTokenEndpoint) Calls() int {
	return int(m.calls.Load())
}

// LastForm returns the most recently submitted form, or nil when the
// endpoint was never called.
func (m *MockTokenEndpoint) LastForm() url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.forms) == 0 {
		return nil
	}
	return m.forms[len(m.forms)-1]
}

// SetResponse replaces the response served to subsequent calls.
func (m *MockTokenEndpoint) SetResponse(status int, body string) {
	m.mu.Lock()
	m.Status = status
	m.Body = body
	m.mu.Unlock()
}

// TokenEndpointHandler returns an http.Handler that serves a fixed
// token response and counts calls, for tests that need a real server
// (client-credentials flow, HTTP transport adapter).
func TokenEndpointHandler(tb testing.TB, calls *atomic.Int64, body string) http.Handler {
	tb.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			tb.Errorf("unexpected method: %s", r.Method)
		}
		if calls != nil {
			calls.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	})
}

// SignedJWT mints an HS256-signed JWT with the given expiry for
// expiry-inference tests. The signature is irrelevant to the code
// under test, which never verifies it.
func SignedJWT(tb testing.TB, expiresAt time.Time) string {
	tb.Helper()

	claims := jwt.MapClaims{"sub": "test-subject"}
	if !expiresAt.IsZero() {
		claims["exp"] = jwt.NewNumericDate(expiresAt)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		tb.Fatalf("failed to sign JWT: %v", err)
	}
	return token
}
