package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewCustomAuthValidation(t *testing.T) {
	_, err := NewCustomAuth(CustomAuthConfig{})
	if !errors.Is(err, ErrStrategy) {
		t.Errorf("expected ErrStrategy, got %v", err)
	}
}

func TestCustomAuthHeaderFuncErrorWrapped(t *testing.T) {
	boom := errors.New("boom")
	strategy, err := NewCustomAuth(CustomAuthConfig{
		HeaderFunc: func() (map[string]string, error) { return nil, boom },
	})
	if err != nil {
		t.Fatalf("NewCustomAuth failed: %v", err)
	}

	_, err = strategy.PrepareHeaders()
	if !errors.Is(err, ErrStrategy) {
		t.Errorf("expected ErrStrategy, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Error("original cause lost from the chain")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error message %q does not mention the cause", err.Error())
	}
}

func TestCustomAuthPreparation(t *testing.T) {
	strategy, err := NewCustomAuth(CustomAuthConfig{
		HeaderFunc: func() (map[string]string, error) {
			return map[string]string{"X-Signature": "sig"}, nil
		},
		ParamFunc: func() (map[string]string, error) {
			return map[string]string{"nonce": "42"}, nil
		},
	})
	if err != nil {
		t.Fatalf("NewCustomAuth failed: %v", err)
	}

	headers, err := strategy.PrepareHeaders()
	if err != nil || headers["X-Signature"] != "sig" {
		t.Errorf("headers = %v, err = %v", headers, err)
	}
	params, err := strategy.PrepareParams()
	if err != nil || params["nonce"] != "42" {
		t.Errorf("params = %v, err = %v", params, err)
	}
}

func TestCustomAuthNilMapsBecomeEmpty(t *testing.T) {
	strategy, err := NewCustomAuth(CustomAuthConfig{
		HeaderFunc: func() (map[string]string, error) { return nil, nil },
	})
	if err != nil {
		t.Fatalf("NewCustomAuth failed: %v", err)
	}

	headers, err := strategy.PrepareHeaders()
	if err != nil || headers == nil {
		t.Errorf("expected empty map, got %v, err %v", headers, err)
	}
	params, err := strategy.PrepareParams()
	if err != nil || params == nil {
		t.Errorf("expected empty map, got %v, err %v", params, err)
	}
}

func TestCustomAuthRefreshCapability(t *testing.T) {
	headerFunc := func() (map[string]string, error) {
		return map[string]string{"X-Token": "t"}, nil
	}

	t.Run("no refresh func", func(t *testing.T) {
		strategy, _ := NewCustomAuth(CustomAuthConfig{HeaderFunc: headerFunc})
		if strategy.CanRefresh() {
			t.Error("CanRefresh should be false without RefreshFunc")
		}
		if strategy.RefreshCallback() != nil {
			t.Error("RefreshCallback should be nil")
		}
		if _, err := strategy.Refresh(context.Background()); !errors.Is(err, ErrStrategy) {
			t.Errorf("expected ErrStrategy, got %v", err)
		}
	})

	t.Run("refresh func implies refreshable", func(t *testing.T) {
		strategy, _ := NewCustomAuth(CustomAuthConfig{
			HeaderFunc: headerFunc,
			RefreshFunc: func(context.Context) (*RefreshResult, error) {
				return &RefreshResult{Credentials: &Credentials{AccessToken: "new"}}, nil
			},
		})
		if !strategy.CanRefresh() {
			t.Error("CanRefresh should be true with RefreshFunc")
		}
		if err := strategy.RefreshCallback()(); err != nil {
			t.Errorf("callback failed: %v", err)
		}
	})

	t.Run("can refresh override", func(t *testing.T) {
		strategy, _ := NewCustomAuth(CustomAuthConfig{
			HeaderFunc:     headerFunc,
			CanRefreshFunc: func() bool { return false },
			RefreshFunc: func(context.Context) (*RefreshResult, error) {
				return &RefreshResult{Credentials: &Credentials{AccessToken: "new"}}, nil
			},
		})
		if strategy.CanRefresh() {
			t.Error("CanRefreshFunc override ignored")
		}
	})
}

func TestCustomAuthRefreshErrorsWrapped(t *testing.T) {
	boom := errors.New("refresh boom")

	t.Run("user error", func(t *testing.T) {
		strategy, _ := NewCustomAuth(CustomAuthConfig{
			HeaderFunc:  func() (map[string]string, error) { return nil, nil },
			RefreshFunc: func(context.Context) (*RefreshResult, error) { return nil, boom },
		})
		_, err := strategy.Refresh(context.Background())
		if !errors.Is(err, ErrTokenRefresh) || !errors.Is(err, boom) {
			t.Errorf("expected wrapped ErrTokenRefresh, got %v", err)
		}
	})

	t.Run("empty result", func(t *testing.T) {
		strategy, _ := NewCustomAuth(CustomAuthConfig{
			HeaderFunc:  func() (map[string]string, error) { return nil, nil },
			RefreshFunc: func(context.Context) (*RefreshResult, error) { return &RefreshResult{}, nil },
		})
		if _, err := strategy.Refresh(context.Background()); !errors.Is(err, ErrTokenRefresh) {
			t.Errorf("expected ErrTokenRefresh, got %v", err)
		}
	})
}

func TestCustomAuthIsExpired(t *testing.T) {
	expired := false
	strategy, _ := NewCustomAuth(CustomAuthConfig{
		HeaderFunc:    func() (map[string]string, error) { return nil, nil },
		IsExpiredFunc: func() bool { return expired },
	})

	if strategy.IsExpired() {
		t.Error("IsExpired should be false")
	}
	expired = true
	if !strategy.IsExpired() {
		t.Error("IsExpired should follow IsExpiredFunc")
	}
}
