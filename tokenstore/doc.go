// Package tokenstore provides ready-made auth.TokenStore backends.
//
// Memory keeps snapshots in process memory and suits tests and
// short-lived tools. File persists snapshots as a JSON document with
// owner-only permissions for CLI-style clients that survive restarts.
// Both are safe for concurrent use.
//
// # Quick Start
//
//	store, err := tokenstore.NewFile("/home/user/.config/myapi/tokens.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	strategy, err := auth.NewBearerAuthFromStore(store, "myapi",
//	    auth.WithTokenURL(tokenURL),
//	    auth.WithHTTPClient(nil),
//	)
package tokenstore
