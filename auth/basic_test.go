package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
)

func TestNewBasicAuthValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "secret"},
		{"blank username", "   ", "secret"},
		{"empty password", "user", ""},
		{"blank password", "user", "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBasicAuth(tt.username, tt.password)
			if !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	}
}

func TestBasicAuthHeaders(t *testing.T) {
	strategy, err := NewBasicAuth("user", "pass")
	if err != nil {
		t.Fatalf("NewBasicAuth failed: %v", err)
	}

	headers, err := strategy.PrepareHeaders()
	if err != nil {
		t.Fatalf("PrepareHeaders failed: %v", err)
	}

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("user:pass"))
	if headers["Authorization"] != want {
		t.Errorf("Authorization = %q, want %q", headers["Authorization"], want)
	}

	params, err := strategy.PrepareParams()
	if err != nil {
		t.Fatalf("PrepareParams failed: %v", err)
	}
	if len(params) != 0 {
		t.Errorf("expected no params, got %v", params)
	}
}

func TestBasicAuthNotRefreshable(t *testing.T) {
	strategy, err := NewBasicAuth("user", "pass")
	if err != nil {
		t.Fatalf("NewBasicAuth failed: %v", err)
	}

	if strategy.CanRefresh() {
		t.Error("CanRefresh should be false")
	}
	if strategy.IsExpired() {
		t.Error("IsExpired should be false")
	}
	if strategy.RefreshCallback() != nil {
		t.Error("RefreshCallback should be nil")
	}

	before, _ := strategy.PrepareHeaders()
	if _, err := strategy.Refresh(context.Background()); !errors.Is(err, ErrStrategy) {
		t.Errorf("Refresh should fail with ErrStrategy, got %v", err)
	}
	after, _ := strategy.PrepareHeaders()
	if before["Authorization"] != after["Authorization"] {
		t.Error("failed Refresh mutated the prepared headers")
	}
}

func TestBasicAuthIdempotentPreparation(t *testing.T) {
	strategy, err := NewBasicAuth("user", "pass")
	if err != nil {
		t.Fatalf("NewBasicAuth failed: %v", err)
	}

	first, _ := strategy.PrepareHeaders()
	for i := 0; i < 5; i++ {
		next, _ := strategy.PrepareHeaders()
		if next["Authorization"] != first["Authorization"] {
			t.Fatalf("call %d returned different headers", i)
		}
	}
}
