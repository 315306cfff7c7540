// Package session persists the login token between console runs, the
// way the browser console kept it in local storage.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const fileName = "session.json"

// Session is the stored login state.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Store reads and writes the session file in the state directory.
type Store struct {
	dir string
}

// NewStore builds a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("session: create state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, fileName)
}

// Load returns the stored session, or nil when not logged in.
func (s *Store) Load() (*Session, error) {
	raw, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("session: read: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	if sess.Token == "" {
		return nil, nil
	}
	return &sess, nil
}

// Save stores the session. The file is user-readable only; it holds a
// bearer token.
func (s *Store) Save(sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := os.WriteFile(s.path(), raw, 0o600); err != nil {
		return fmt.Errorf("session: write: %w", err)
	}
	return nil
}

// Clear logs out by removing the session file.
func (s *Store) Clear() error {
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: remove: %w", err)
	}
	return nil
}
