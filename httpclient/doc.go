// Package httpclient offers HTTP client construction helpers with strategy-based authentication
// and TLS/mTLS options.
//
// It provides a fluent Builder that can create an http.Client whose requests are decorated by any
// auth.Strategy (headers and query parameters), configurable TLS (custom CA, mTLS, insecure for
// tests), timeouts, base transports, and redirect handling. AuthTransport can wrap any
// RoundTripper.
//
// # Features
//
//   - Fluent builder for http.Client with strategy-based request decoration
//   - Optional single refresh-and-replay on 401 via the strategy's refresh callback
//   - TLS 1.2+ by default, with custom CA/mTLS and optional InsecureSkipVerify
//   - Custom timeouts, base transport override, and redirect disabling
//   - Reusable AuthTransport for manual composition
//
// # Quick Start
//
//	strategy, err := auth.NewBearerAuth(token,
//	    auth.WithRefreshToken(refreshToken),
//	    auth.WithTokenURL("https://auth.example.com/oauth/v2/token"),
//	    auth.WithHTTPClient(nil),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := httpclient.NewBuilder().
//	    WithStrategy(strategy).
//	    WithRetryOnUnauthorized().
//	    WithTimeout(60 * time.Second).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Get("https://api.example.com/data")
//
// # Manual Transport Wrapping
//
//	transport := httpclient.NewAuthTransport(strategy, nil)
//	client := &http.Client{Transport: transport}
//
// All components are safe for concurrent use if the provided Strategy is.
package httpclient
