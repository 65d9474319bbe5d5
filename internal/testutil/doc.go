// Package testutil provides test helpers for the auth packages.
//
// It includes utilities to spin up IPv4-only local HTTP servers (avoiding IPv6 in sandboxes),
// mock token endpoints behind the refresh-transport port, and mint JWTs for expiry tests.
//
// # Utilities
//
//   - NewLocalHTTPServer: start httptest server bound to 127.0.0.1
//   - MockTokenEndpoint: stub refresh transport with call counting and configurable delay
//   - TokenEndpointHandler: http.Handler serving token responses for socket-based tests
//   - RoundTripFunc and StaticJSONResponse: inline http.RoundTripper implementations
//   - SignedJWT: mint HS256 tokens with chosen expiry claims
package testutil
