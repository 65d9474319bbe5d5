// Package auth provides authentication strategies for HTTP and gRPC API
// clients: it decides what credentials to attach to a request and, when
// credentials can expire, coordinates their refresh.
//
// Strategies produce headers and query parameters; refresh-capable
// strategies additionally expose a zero-argument RefreshCallback that
// retry layers invoke after an authorization failure. Concurrent
// refresh attempts on one strategy are collapsed into a single network
// call whose outcome every caller shares.
//
// # Features
//
//   - Basic, API-key, bearer, client-credentials, token-source, and
//     custom strategies behind one Strategy interface
//   - Single-flight refresh coordination: at most one in-flight refresh
//     per strategy, identical outcome for every concurrent caller
//   - OAuth2 refresh-token grant wire shape with passthrough of
//     refresh_token, expires_in, token_type, and scope
//   - Pluggable refresh transport and token store ports
//   - Typed error taxonomy rooted at ErrAuthentication
//   - Optional logging (WithBearerLogger and friends)
//
// # Quick Start
//
//	strategy, err := auth.NewBearerAuth("abc",
//	    auth.WithRefreshToken("refresh-xyz"),
//	    auth.WithTokenURL("https://auth.example.com/oauth/v2/token"),
//	    auth.WithHTTPClient(http.DefaultClient),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	headers, _ := strategy.PrepareHeaders()
//	// headers["Authorization"] == "Bearer abc"
//
//	// Hand the callback to your HTTP client's retry layer:
//	retryHook := strategy.RefreshCallback()
//
// # Concurrency
//
// All strategies are safe for concurrent use. Credential snapshots are
// replaced wholesale under a lock; PrepareHeaders never observes a
// half-updated snapshot. The refresh coordinator holds no lock across
// the network call and performs exactly one transport exchange per
// wave of concurrent refresh requests.
//
// # Errors
//
// Every failure matches ErrAuthentication via errors.Is and one of the
// specific sentinels (ErrMissingCredentials, ErrInvalidCredentials,
// ErrExpiredToken, ErrTokenRefresh, ErrStrategy). No raw transport or
// JSON error crosses the Strategy interface untyped.
package auth
