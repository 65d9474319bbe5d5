package auth

import "golang.org/x/oauth2"

// TokenSourceAuth adapts an oauth2.TokenSource into a Strategy. Token
// lifetime management stays with the source (wrap it in
// oauth2.ReuseTokenSource for caching); the strategy itself reports
// non-refreshable and never expired.
//
// Note that a self-refreshing source may perform network I/O inside
// PrepareHeaders; use a caching source when that matters.
type TokenSourceAuth struct {
	noRefresh

	source oauth2.TokenSource
}

// NewTokenSourceAuth creates a strategy backed by the given source.
func NewTokenSourceAuth(source oauth2.TokenSource) (*TokenSourceAuth, error) {
	if source == nil {
		return nil, strategyErrf("token source is required")
	}
	return &TokenSourceAuth{source: source}, nil
}

// PrepareHeaders obtains a token from the source and returns the
// Authorization header. Source failures are reported as refresh
// errors.
func (a *TokenSourceAuth) PrepareHeaders() (map[string]string, error) {
	token, err := a.source.Token()
	if err != nil {
		return nil, refreshErr("token source failed", err)
	}
	if token.AccessToken == "" {
		return nil, missingErrf("token source returned an empty access token")
	}

	typ := token.TokenType
	if typ == "" {
		typ = "Bearer"
	}
	return map[string]string{"Authorization": typ + " " + token.AccessToken}, nil
}

// PrepareParams returns no parameters; token sources are header-only.
func (a *TokenSourceAuth) PrepareParams() (map[string]string, error) {
	return map[string]string{}, nil
}

// StaticTokenSource is a convenience wrapper for a fixed bearer token
// exposed as an oauth2.TokenSource.
func StaticTokenSource(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
}
