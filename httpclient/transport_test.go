package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Leikaab/apiconfig-sub000/auth"
	"github.com/Leikaab/apiconfig-sub000/internal/testutil"
)

func jsonResponse(status int, body string, req *http.Request) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

func TestAuthTransportNilStrategy(t *testing.T) {
	transport := &AuthTransport{}
	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com/data", nil)
	if _, err := transport.RoundTrip(req); err == nil {
		t.Error("expected an error for a nil strategy")
	}
}

func TestAuthTransportAppliesHeaders(t *testing.T) {
	strategy, err := auth.NewBearerAuth("abc")
	if err != nil {
		t.Fatalf("NewBearerAuth failed: %v", err)
	}

	var seen string
	base := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		seen = req.Header.Get("Authorization")
		return jsonResponse(http.StatusOK, `{}`, req), nil
	})

	transport := NewAuthTransport(strategy, base)
	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com/data", nil)
	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}
	resp.Body.Close()

	if seen != "Bearer abc" {
		t.Errorf(`Authorization = %q, want "Bearer abc"`, seen)
	}
	if req.Header.Get("Authorization") != "" {
		t.Error("original request was mutated")
	}
}

func TestAuthTransportAppliesParams(t *testing.T) {
	strategy, err := auth.NewAPIKeyAuth("secret", auth.WithParamName("api_key"))
	if err != nil {
		t.Fatalf("NewAPIKeyAuth failed: %v", err)
	}

	var seenQuery string
	base := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		seenQuery = req.URL.Query().Get("api_key")
		return jsonResponse(http.StatusOK, `{}`, req), nil
	})

	transport := NewAuthTransport(strategy, base)
	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com/data?page=2", nil)
	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}
	resp.Body.Close()

	if seenQuery != "secret" {
		t.Errorf("api_key param = %q, want %q", seenQuery, "secret")
	}
}

func TestAuthTransportExpiredNotRefreshable(t *testing.T) {
	strategy, err := auth.NewBearerAuth("abc", auth.WithExpiresAt(time.Now().Add(-time.Minute)))
	if err != nil {
		t.Fatalf("NewBearerAuth failed: %v", err)
	}

	base := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		t.Error("network should not be reached with expired credentials")
		return jsonResponse(http.StatusOK, `{}`, req), nil
	})

	transport := NewAuthTransport(strategy, base)
	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com/data", nil)
	if _, err := transport.RoundTrip(req); !errors.Is(err, auth.ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestAuthTransportRefreshesExpiredUpFront(t *testing.T) {
	endpoint := testutil.NewMockTokenEndpoint()
	endpoint.SetResponse(http.StatusOK, `{"access_token": "fresh", "expires_in": 3600}`)

	strategy, err := auth.NewBearerAuth("stale",
		auth.WithRefreshToken("r1"),
		auth.WithTokenURL("https://auth.example.com/token"),
		auth.WithRefreshTransport(endpoint),
		auth.WithExpiresAt(time.Now().Add(-time.Minute)),
	)
	if err != nil {
		t.Fatalf("NewBearerAuth failed: %v", err)
	}

	var seen string
	base := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		seen = req.Header.Get("Authorization")
		return jsonResponse(http.StatusOK, `{}`, req), nil
	})

	transport := NewAuthTransport(strategy, base)
	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com/data", nil)
	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}
	resp.Body.Close()

	if seen != "Bearer fresh" {
		t.Errorf(`Authorization = %q, want "Bearer fresh"`, seen)
	}
	if endpoint.Calls() != 1 {
		t.Errorf("refresh transport hit %d times, want 1", endpoint.Calls())
	}
}

func TestAuthTransportRetryOnUnauthorized(t *testing.T) {
	endpoint := testutil.NewMockTokenEndpoint()
	endpoint.SetResponse(http.StatusOK, `{"access_token": "renewed", "expires_in": 3600}`)

	strategy, err := auth.NewBearerAuth("revoked",
		auth.WithRefreshToken("r1"),
		auth.WithTokenURL("https://auth.example.com/token"),
		auth.WithRefreshTransport(endpoint),
	)
	if err != nil {
		t.Fatalf("NewBearerAuth failed: %v", err)
	}

	var attempts atomic.Int64
	base := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		if attempts.Add(1) == 1 {
			return jsonResponse(http.StatusUnauthorized, `{"error": "expired"}`, req), nil
		}
		if req.Header.Get("Authorization") != "Bearer renewed" {
			t.Errorf("replay used stale header %q", req.Header.Get("Authorization"))
		}
		return jsonResponse(http.StatusOK, `{"data": 1}`, req), nil
	})

	transport := NewAuthTransport(strategy, base)
	transport.RetryOnUnauthorized = true

	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com/data", nil)
	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 after replay", resp.StatusCode)
	}
	if attempts.Load() != 2 {
		t.Errorf("base transport hit %d times, want 2", attempts.Load())
	}
	if endpoint.Calls() != 1 {
		t.Errorf("refresh transport hit %d times, want 1", endpoint.Calls())
	}
}

func TestAuthTransportNoRetryWithoutOptIn(t *testing.T) {
	strategy, err := auth.NewBearerAuth("abc")
	if err != nil {
		t.Fatalf("NewBearerAuth failed: %v", err)
	}

	var attempts atomic.Int64
	base := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		attempts.Add(1)
		return jsonResponse(http.StatusUnauthorized, `{}`, req), nil
	})

	transport := NewAuthTransport(strategy, base)
	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com/data", nil)
	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want the original 401", resp.StatusCode)
	}
	if attempts.Load() != 1 {
		t.Errorf("base transport hit %d times, want 1", attempts.Load())
	}
}

func TestAuthTransportPreparationErrorSurfaces(t *testing.T) {
	strategy, err := auth.NewCustomAuth(auth.CustomAuthConfig{
		HeaderFunc: func() (map[string]string, error) {
			return nil, errors.New("signer unavailable")
		},
	})
	if err != nil {
		t.Fatalf("NewCustomAuth failed: %v", err)
	}

	transport := NewAuthTransport(strategy, testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		t.Error("network should not be reached when preparation fails")
		return nil, nil
	}))

	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com/data", nil)
	if _, err := transport.RoundTrip(req.WithContext(context.Background())); !errors.Is(err, auth.ErrStrategy) {
		t.Errorf("expected ErrStrategy, got %v", err)
	}
}
