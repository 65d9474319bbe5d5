package auth

import (
	"errors"
	"testing"
	"time"
)

func TestCredentialsExpiredAt(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	leeway := 5 * time.Minute

	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"no expiry information", time.Time{}, false},
		{"well before leeway window", now.Add(time.Hour), false},
		{"just outside leeway window", now.Add(leeway + time.Second), false},
		{"exactly at leeway boundary", now.Add(leeway), true},
		{"inside leeway window", now.Add(time.Minute), true},
		{"already past expiry", now.Add(-time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := &Credentials{AccessToken: "abc", ExpiresAt: tt.expiresAt}
			if got := creds.ExpiredAt(now, leeway); got != tt.want {
				t.Errorf("ExpiredAt = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCredentialsClone(t *testing.T) {
	var creds *Credentials
	if creds.Clone() != nil {
		t.Error("nil Clone should be nil")
	}

	creds = &Credentials{AccessToken: "abc", RefreshToken: "xyz"}
	clone := creds.Clone()
	clone.AccessToken = "changed"
	if creds.AccessToken != "abc" {
		t.Error("Clone aliases the original")
	}
}

func TestParseRefreshResponse(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	prev := &Credentials{AccessToken: "old", RefreshToken: "keep-me", TokenType: "Bearer"}

	t.Run("full response", func(t *testing.T) {
		body := []byte(`{
			"access_token": "new-token",
			"refresh_token": "rotated",
			"token_type": "Bearer",
			"expires_in": 3600,
			"scope": "read write",
			"endpoint": "https://api2.example.com"
		}`)

		result, err := parseRefreshResponse(body, prev, now)
		if err != nil {
			t.Fatalf("parseRefreshResponse failed: %v", err)
		}

		creds := result.Credentials
		if creds.AccessToken != "new-token" {
			t.Errorf("AccessToken = %q", creds.AccessToken)
		}
		if creds.RefreshToken != "rotated" {
			t.Errorf("RefreshToken = %q", creds.RefreshToken)
		}
		if want := now.Add(time.Hour); !creds.ExpiresAt.Equal(want) {
			t.Errorf("ExpiresAt = %v, want %v", creds.ExpiresAt, want)
		}
		if creds.Scope != "read write" {
			t.Errorf("Scope = %q", creds.Scope)
		}
		if result.ConfigUpdates["endpoint"] != "https://api2.example.com" {
			t.Errorf("ConfigUpdates = %v", result.ConfigUpdates)
		}
	})

	t.Run("minimal response carries fields forward", func(t *testing.T) {
		result, err := parseRefreshResponse([]byte(`{"access_token": "new-token"}`), prev, now)
		if err != nil {
			t.Fatalf("parseRefreshResponse failed: %v", err)
		}
		if result.Credentials.RefreshToken != "keep-me" {
			t.Error("previous refresh token not carried forward")
		}
		if !result.Credentials.ExpiresAt.IsZero() {
			t.Error("expiry invented out of nothing")
		}
		if result.ConfigUpdates != nil {
			t.Errorf("unexpected ConfigUpdates: %v", result.ConfigUpdates)
		}
	})

	t.Run("missing access token", func(t *testing.T) {
		_, err := parseRefreshResponse([]byte(`{"token_type": "Bearer"}`), prev, now)
		if !errors.Is(err, ErrTokenRefresh) {
			t.Errorf("expected ErrTokenRefresh, got %v", err)
		}
	})

	t.Run("non-JSON body", func(t *testing.T) {
		_, err := parseRefreshResponse([]byte("<html>oops</html>"), prev, now)
		if !errors.Is(err, ErrTokenRefresh) {
			t.Errorf("expected ErrTokenRefresh, got %v", err)
		}
	})

	t.Run("empty access token", func(t *testing.T) {
		_, err := parseRefreshResponse([]byte(`{"access_token": ""}`), prev, now)
		if !errors.Is(err, ErrTokenRefresh) {
			t.Errorf("expected ErrTokenRefresh, got %v", err)
		}
	})
}
