package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Leikaab/apiconfig-sub000/auth"
)

// File is an auth.TokenStore backed by a single JSON file holding one
// snapshot per key. The file is written with owner-only permissions
// and replaced atomically via a rename, so a crashed write never
// leaves a truncated document behind.
type File struct {
	mu   sync.Mutex
	path string
}

// fileEntry is the persisted form of one credential snapshot.
type fileEntry struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
	Scope        string    `json:"scope,omitempty"`
}

// NewFile creates a file-backed store at path. The parent directory
// must exist; the file itself is created on first Store.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("tokenstore: file path is required")
	}

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("tokenstore: token directory: %w", err)
	}

	return &File{path: path}, nil
}

// Load returns the snapshot stored under key, or (nil, nil) when the
// file or the key does not exist.
func (f *File) Load(key string) (*auth.Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return nil, err
	}

	entry, ok := entries[key]
	if !ok {
		return nil, nil
	}

	return &auth.Credentials{
		AccessToken:  entry.AccessToken,
		RefreshToken: entry.RefreshToken,
		TokenType:    entry.TokenType,
		ExpiresAt:    entry.ExpiresAt,
		Scope:        entry.Scope,
	}, nil
}

// Store saves the snapshot under key, creating the file if needed.
// Storing nil deletes the key.
func (f *File) Store(key string, creds *auth.Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return err
	}

	if creds == nil {
		delete(entries, key)
	} else {
		entries[key] = fileEntry{
			AccessToken:  creds.AccessToken,
			RefreshToken: creds.RefreshToken,
			TokenType:    creds.TokenType,
			ExpiresAt:    creds.ExpiresAt,
			Scope:        creds.Scope,
		}
	}

	return f.write(entries)
}

func (f *File) read() (map[string]fileEntry, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]fileEntry), nil
	}
	if err != nil {
		return nil, fmt.Errorf("tokenstore: read token file: %w", err)
	}

	entries := make(map[string]fileEntry)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("tokenstore: parse token file: %w", err)
	}
	return entries, nil
}

func (f *File) write(entries map[string]fileEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("tokenstore: encode token file: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("tokenstore: write token file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("tokenstore: replace token file: %w", err)
	}
	return nil
}
