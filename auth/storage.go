package auth

// TokenStore persists credential snapshots under a caller-chosen key.
// This package only consumes the interface; concrete backends live in
// the tokenstore package or with the caller.
//
// Load returns (nil, nil) when no snapshot is stored under the key.
// Store failures indicate I/O problems; a strategy that writes through
// after a refresh treats them as non-fatal because the in-memory
// snapshot is authoritative.
type TokenStore interface {
	Load(key string) (*Credentials, error)
	Store(key string, creds *Credentials) error
}
