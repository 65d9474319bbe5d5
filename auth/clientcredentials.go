package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ClientCredentialsAuth mints bearer tokens through the OAuth2
// client-credentials flow and caches them until shortly before expiry.
//
// The first token is minted on the first Refresh (or EnsureFresh)
// call; PrepareHeaders never performs network I/O and fails with
// ErrMissingCredentials until a token has been minted. IsExpired
// reports true while no token is cached, so the usual
// EnsureFresh-then-prepare sequence mints lazily.
type ClientCredentialsAuth struct {
	config *clientcredentials.Config

	mu    sync.RWMutex
	token *oauth2.Token

	leeway      time.Duration
	logger      Logger
	now         func() time.Time
	coordinator *RefreshCoordinator
}

// ClientCredentialsOption configures a ClientCredentialsAuth strategy.
type ClientCredentialsOption func(*ClientCredentialsAuth)

// WithClientCredentialsLeeway overrides the expiry grace buffer.
func WithClientCredentialsLeeway(leeway time.Duration) ClientCredentialsOption {
	return func(a *ClientCredentialsAuth) {
		a.leeway = leeway
	}
}

// WithClientCredentialsLogger sets a logger for token mint events.
func WithClientCredentialsLogger(logger Logger) ClientCredentialsOption {
	return func(a *ClientCredentialsAuth) {
		a.logger = logger
	}
}

// NewClientCredentialsAuth creates a client-credentials strategy.
//
// Parameters:
//   - tokenURL: OAuth2 token endpoint (e.g., "https://auth.example.com/oauth/v2/token")
//   - clientID: OAuth2 client identifier
//   - clientSecret: OAuth2 client secret
//   - scopes: Space-separated list of OAuth2 scopes (e.g., "openid profile email")
func NewClientCredentialsAuth(tokenURL, clientID, clientSecret, scopes string, opts ...ClientCredentialsOption) (*ClientCredentialsAuth, error) {
	if tokenURL == "" {
		return nil, strategyErrf("client credentials token URL is required")
	}
	if clientID == "" || clientSecret == "" {
		return nil, missingErrf("client credentials require client ID and secret")
	}

	a := &ClientCredentialsAuth{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			Scopes:       strings.Fields(scopes),
		},
		leeway: DefaultExpiryLeeway,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.coordinator = NewRefreshCoordinator(a.CanRefresh, a.doRefresh)
	return a, nil
}

// PrepareHeaders returns the Authorization header with the cached
// token. It never blocks on the network; mint a token first via
// Refresh or EnsureFresh.
func (a *ClientCredentialsAuth) PrepareHeaders() (map[string]string, error) {
	a.mu.RLock()
	token := a.token
	a.mu.RUnlock()

	if token == nil {
		return nil, missingErrf("no client-credentials token minted yet")
	}
	return map[string]string{"Authorization": "Bearer " + token.AccessToken}, nil
}

// PrepareParams returns no parameters; the flow is header-only.
func (a *ClientCredentialsAuth) PrepareParams() (map[string]string, error) {
	return map[string]string{}, nil
}

// CanRefresh always reports true: the flow can mint a token at any
// time from the client credentials.
func (a *ClientCredentialsAuth) CanRefresh() bool { return true }

// IsExpired reports true while no token is cached or the cached token
// is within the leeway window of its expiry.
func (a *ClientCredentialsAuth) IsExpired() bool {
	a.mu.RLock()
	token := a.token
	a.mu.RUnlock()

	if token == nil {
		return true
	}
	if token.Expiry.IsZero() {
		return false
	}
	return a.now().After(token.Expiry.Add(-a.leeway)) || a.now().Equal(token.Expiry.Add(-a.leeway))
}

// Refresh mints a new token. Concurrent calls share one token request.
func (a *ClientCredentialsAuth) Refresh(ctx context.Context) (*RefreshResult, error) {
	return a.coordinator.Refresh(ctx)
}

// RefreshCallback returns the coordinated refresh hook.
func (a *ClientCredentialsAuth) RefreshCallback() RefreshCallback {
	return a.coordinator.Callback()
}

func (a *ClientCredentialsAuth) doRefresh(ctx context.Context) (*RefreshResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	token, err := a.config.Token(ctx)
	if err != nil {
		return nil, refreshErr("client credentials token fetch failed", err)
	}

	a.mu.Lock()
	a.token = token
	a.mu.Unlock()

	if a.logger != nil {
		a.logger.Printf("auth: obtained client-credentials token (expires: %s)", token.Expiry.Format(time.RFC3339))
	}

	return &RefreshResult{Credentials: &Credentials{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.Expiry,
	}}, nil
}
