package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// BearerAuth attaches a bearer token to the Authorization header and,
// when configured with a refresh token, token URL, and a
// RefreshTransport, can mint new tokens via the OAuth2 refresh-token
// grant.
//
// The credential snapshot is replaced wholesale under a lock on
// refresh; readers never observe a half-updated snapshot. Concurrent
// refreshes are serialized through an internal RefreshCoordinator, so
// the RefreshCallback can be invoked from any number of goroutines
// while the transport is called at most once per refresh wave.
type BearerAuth struct {
	mu    sync.RWMutex
	creds *Credentials

	tokenURL     string
	clientID     string
	clientSecret string
	transport    RefreshTransport

	store    TokenStore
	storeKey string

	leeway time.Duration
	logger Logger
	now    func() time.Time

	coordinator *RefreshCoordinator
}

// BearerOption configures a BearerAuth strategy.
type BearerOption func(*BearerAuth)

// WithRefreshToken sets the refresh token exchanged for new access
// tokens.
func WithRefreshToken(token string) BearerOption {
	return func(a *BearerAuth) {
		a.creds.RefreshToken = token
	}
}

// WithTokenURL sets the token endpoint used for the refresh-token
// grant.
func WithTokenURL(tokenURL string) BearerOption {
	return func(a *BearerAuth) {
		a.tokenURL = tokenURL
	}
}

// WithClientCredentials sets the optional client_id/client_secret pair
// sent with refresh requests.
func WithClientCredentials(clientID, clientSecret string) BearerOption {
	return func(a *BearerAuth) {
		a.clientID = clientID
		a.clientSecret = clientSecret
	}
}

// WithRefreshTransport sets the transport used to perform the refresh
// HTTP exchange. Without a transport the strategy cannot refresh.
func WithRefreshTransport(transport RefreshTransport) BearerOption {
	return func(a *BearerAuth) {
		a.transport = transport
	}
}

// WithHTTPClient is shorthand for WithRefreshTransport wrapping the
// given HTTP client.
func WithHTTPClient(client *http.Client) BearerOption {
	return func(a *BearerAuth) {
		a.transport = NewHTTPRefreshTransport(client)
	}
}

// WithExpiresAt sets the access token's absolute expiry instant.
func WithExpiresAt(t time.Time) BearerOption {
	return func(a *BearerAuth) {
		a.creds.ExpiresAt = t
	}
}

// WithJWTExpiry infers the expiry instant from the access token's exp
// claim when the token is a JWT. Tokens that do not parse as JWTs are
// left without expiry information.
func WithJWTExpiry() BearerOption {
	return func(a *BearerAuth) {
		if exp, err := TokenExpiry(a.creds.AccessToken); err == nil {
			a.creds.ExpiresAt = exp
		}
	}
}

// WithTokenStore enables snapshot write-through: after every
// successful refresh the new snapshot is stored under key. Store
// failures are logged and do not fail the refresh.
func WithTokenStore(store TokenStore, key string) BearerOption {
	return func(a *BearerAuth) {
		a.store = store
		a.storeKey = key
	}
}

// WithExpiryLeeway overrides the grace buffer applied before the real
// expiry instant. Default is DefaultExpiryLeeway.
func WithExpiryLeeway(leeway time.Duration) BearerOption {
	return func(a *BearerAuth) {
		a.leeway = leeway
	}
}

// WithBearerLogger sets a logger for refresh events.
func WithBearerLogger(logger Logger) BearerOption {
	return func(a *BearerAuth) {
		a.logger = logger
	}
}

// NewBearerAuth creates a bearer-token strategy from an access token.
//
// Construction fails with ErrMissingCredentials on a blank access
// token. The strategy is refresh-capable only when a refresh token, a
// token URL, and a RefreshTransport are all configured.
func NewBearerAuth(accessToken string, opts ...BearerOption) (*BearerAuth, error) {
	return newBearerAuth(&Credentials{AccessToken: accessToken}, opts)
}

// NewBearerAuthFromCredentials creates a bearer-token strategy from an
// existing credential snapshot. The snapshot is copied; the caller's
// value is not retained.
func NewBearerAuthFromCredentials(creds *Credentials, opts ...BearerOption) (*BearerAuth, error) {
	if creds == nil {
		return nil, missingErrf("bearer credentials are required")
	}
	return newBearerAuth(creds.Clone(), opts)
}

// NewBearerAuthFromStore creates a bearer-token strategy whose initial
// snapshot is loaded from the store under key. Write-through for the
// same key is enabled automatically.
func NewBearerAuthFromStore(store TokenStore, key string, opts ...BearerOption) (*BearerAuth, error) {
	if store == nil {
		return nil, strategyErrf("token store is required")
	}

	creds, err := store.Load(key)
	if err != nil {
		return nil, strategyErrf("load credentials %q: %v", key, err)
	}
	if creds == nil {
		return nil, missingErrf("no credentials stored under %q", key)
	}

	return newBearerAuth(creds.Clone(), append([]BearerOption{WithTokenStore(store, key)}, opts...))
}

func newBearerAuth(creds *Credentials, opts []BearerOption) (*BearerAuth, error) {
	a := &BearerAuth{
		creds:  creds,
		leeway: DefaultExpiryLeeway,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.creds.AccessToken == "" {
		return nil, missingErrf("bearer access token is required")
	}

	a.coordinator = NewRefreshCoordinator(a.CanRefresh, a.doRefresh)
	return a, nil
}

// PrepareHeaders returns the Authorization header with the current
// access token.
func (a *BearerAuth) PrepareHeaders() (map[string]string, error) {
	creds := a.snapshot()
	return map[string]string{"Authorization": "Bearer " + creds.AccessToken}, nil
}

// PrepareParams returns no parameters; bearer auth is header-only.
func (a *BearerAuth) PrepareParams() (map[string]string, error) {
	return map[string]string{}, nil
}

// CanRefresh reports whether refresh token, token URL, and transport
// are all configured.
func (a *BearerAuth) CanRefresh() bool {
	return a.snapshot().RefreshToken != "" && a.tokenURL != "" && a.transport != nil
}

// IsExpired reports whether the current token is within the leeway
// window of its expiry. False when no expiry is known.
func (a *BearerAuth) IsExpired() bool {
	return a.snapshot().ExpiredAt(a.now(), a.leeway)
}

// Credentials returns the current snapshot. The returned value is
// never mutated by the strategy afterwards.
func (a *BearerAuth) Credentials() *Credentials {
	return a.snapshot()
}

// Refresh performs one coordinated refresh attempt. Concurrent calls
// share a single transport exchange and observe the same outcome.
func (a *BearerAuth) Refresh(ctx context.Context) (*RefreshResult, error) {
	return a.coordinator.Refresh(ctx)
}

// RefreshCallback returns the zero-argument refresh hook, or nil when
// the strategy cannot refresh.
func (a *BearerAuth) RefreshCallback() RefreshCallback {
	if !a.CanRefresh() {
		return nil
	}
	return a.coordinator.Callback()
}

func (a *BearerAuth) snapshot() *Credentials {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.creds
}

// doRefresh is the uncoordinated refresh logic; it runs at most once
// per wave, under the coordinator.
func (a *BearerAuth) doRefresh(ctx context.Context) (*RefreshResult, error) {
	prev := a.snapshot()

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {prev.RefreshToken},
	}
	if a.clientID != "" {
		form.Set("client_id", a.clientID)
	}
	if a.clientSecret != "" {
		form.Set("client_secret", a.clientSecret)
	}

	resp, err := a.transport.RoundTrip(ctx, http.MethodPost, a.tokenURL, nil, form)
	if err != nil {
		return nil, refreshErr("transport call failed", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, refreshErr(fmt.Sprintf("token endpoint returned status %d", resp.StatusCode), nil)
	}

	result, err := parseRefreshResponse(resp.Body, prev, a.now())
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.creds = result.Credentials
	a.mu.Unlock()

	if a.store != nil {
		if err := a.store.Store(a.storeKey, result.Credentials); err != nil && a.logger != nil {
			a.logger.Printf("auth: failed to persist refreshed credentials %q: %v", a.storeKey, err)
		}
	}

	if a.logger != nil {
		if result.Credentials.ExpiresAt.IsZero() {
			a.logger.Printf("auth: refreshed bearer token (no expiry reported)")
		} else {
			a.logger.Printf("auth: refreshed bearer token (expires: %s)", result.Credentials.ExpiresAt.Format(time.RFC3339))
		}
	}

	return result, nil
}

// parseRefreshResponse decodes an OAuth2 token response into a new
// snapshot. Fields the previous snapshot carried but the response
// omitted (refresh token, token type) are carried forward; unknown
// top-level fields are surfaced as ConfigUpdates.
func parseRefreshResponse(body []byte, prev *Credentials, now time.Time) (*RefreshResult, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, refreshErr("malformed token response", err)
	}

	creds := &Credentials{
		RefreshToken: prev.RefreshToken,
		TokenType:    prev.TokenType,
	}

	if err := decodeStringField(payload, "access_token", &creds.AccessToken); err != nil {
		return nil, err
	}
	if creds.AccessToken == "" {
		return nil, refreshErr("token response missing access_token", nil)
	}

	if err := decodeStringField(payload, "refresh_token", &creds.RefreshToken); err != nil {
		return nil, err
	}
	if err := decodeStringField(payload, "token_type", &creds.TokenType); err != nil {
		return nil, err
	}
	if err := decodeStringField(payload, "scope", &creds.Scope); err != nil {
		return nil, err
	}

	if raw, ok := payload["expires_in"]; ok {
		var expiresIn float64
		if err := json.Unmarshal(raw, &expiresIn); err != nil {
			return nil, refreshErr("invalid expires_in field", err)
		}
		if expiresIn > 0 {
			creds.ExpiresAt = now.Add(time.Duration(expiresIn) * time.Second)
		}
	}

	result := &RefreshResult{Credentials: creds}
	for key, raw := range payload {
		switch key {
		case "access_token", "refresh_token", "token_type", "scope", "expires_in":
			continue
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			continue
		}
		if result.ConfigUpdates == nil {
			result.ConfigUpdates = make(map[string]any)
		}
		result.ConfigUpdates[key] = value
	}

	return result, nil
}

func decodeStringField(payload map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := payload[key]
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return refreshErr(fmt.Sprintf("invalid %s field", key), err)
	}
	if s != "" {
		*dst = s
	}
	return nil
}
