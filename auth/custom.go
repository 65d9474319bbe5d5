package auth

import "context"

// CustomAuthConfig carries the user-supplied functions a CustomAuth
// strategy dispatches to. HeaderFunc and ParamFunc produce the request
// decoration; at least one must be set. The refresh trio is optional
// and only consulted when RefreshFunc is present.
type CustomAuthConfig struct {
	// HeaderFunc returns the headers to attach, or an error when the
	// strategy's state is unusable.
	HeaderFunc func() (map[string]string, error)

	// ParamFunc returns the query parameters to attach.
	ParamFunc func() (map[string]string, error)

	// CanRefreshFunc overrides refresh capability. When nil, the
	// strategy is refreshable iff RefreshFunc is set.
	CanRefreshFunc func() bool

	// IsExpiredFunc overrides expiry detection. When nil, the strategy
	// never reports expired.
	IsExpiredFunc func() bool

	// RefreshFunc performs one refresh attempt. Invoked only through
	// the coordinator, at most once per wave of concurrent callers.
	RefreshFunc func(ctx context.Context) (*RefreshResult, error)
}

// CustomAuth adapts user-supplied functions into a Strategy. Errors
// from the user functions never escape untyped: they are wrapped with
// ErrStrategy (preparation) or ErrTokenRefresh (refresh) with the
// original error on the chain.
type CustomAuth struct {
	cfg         CustomAuthConfig
	coordinator *RefreshCoordinator
}

// NewCustomAuth creates a custom strategy.
//
// Construction fails with ErrStrategy when neither HeaderFunc nor
// ParamFunc is provided: a strategy that decorates nothing is a
// configuration mistake, not a useful no-op.
func NewCustomAuth(cfg CustomAuthConfig) (*CustomAuth, error) {
	if cfg.HeaderFunc == nil && cfg.ParamFunc == nil {
		return nil, strategyErrf("custom auth requires a header or param function")
	}

	a := &CustomAuth{cfg: cfg}
	a.coordinator = NewRefreshCoordinator(a.CanRefresh, a.doRefresh)
	return a, nil
}

// PrepareHeaders invokes HeaderFunc, wrapping any error it returns.
func (a *CustomAuth) PrepareHeaders() (map[string]string, error) {
	if a.cfg.HeaderFunc == nil {
		return map[string]string{}, nil
	}
	headers, err := a.cfg.HeaderFunc()
	if err != nil {
		return nil, wrapStrategyErr("header function failed", err)
	}
	if headers == nil {
		headers = map[string]string{}
	}
	return headers, nil
}

// PrepareParams invokes ParamFunc, wrapping any error it returns.
func (a *CustomAuth) PrepareParams() (map[string]string, error) {
	if a.cfg.ParamFunc == nil {
		return map[string]string{}, nil
	}
	params, err := a.cfg.ParamFunc()
	if err != nil {
		return nil, wrapStrategyErr("param function failed", err)
	}
	if params == nil {
		params = map[string]string{}
	}
	return params, nil
}

// CanRefresh consults CanRefreshFunc, falling back to the presence of
// RefreshFunc.
func (a *CustomAuth) CanRefresh() bool {
	if a.cfg.RefreshFunc == nil {
		return false
	}
	if a.cfg.CanRefreshFunc != nil {
		return a.cfg.CanRefreshFunc()
	}
	return true
}

// IsExpired consults IsExpiredFunc; without one the strategy never
// reports expired.
func (a *CustomAuth) IsExpired() bool {
	if a.cfg.IsExpiredFunc == nil {
		return false
	}
	return a.cfg.IsExpiredFunc()
}

// Refresh performs one coordinated refresh via RefreshFunc.
func (a *CustomAuth) Refresh(ctx context.Context) (*RefreshResult, error) {
	return a.coordinator.Refresh(ctx)
}

// RefreshCallback returns the coordinated refresh hook, or nil when
// the strategy cannot refresh.
func (a *CustomAuth) RefreshCallback() RefreshCallback {
	if !a.CanRefresh() {
		return nil
	}
	return a.coordinator.Callback()
}

func (a *CustomAuth) doRefresh(ctx context.Context) (*RefreshResult, error) {
	result, err := a.cfg.RefreshFunc(ctx)
	if err != nil {
		return nil, refreshErr("custom refresh failed", err)
	}
	if result == nil || result.Credentials == nil || result.Credentials.AccessToken == "" {
		return nil, refreshErr("custom refresh returned no access token", nil)
	}
	return result, nil
}
