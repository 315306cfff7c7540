package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// storageKey is the fixed name the in-progress order form is saved
// under, so a restart does not lose draft input.
const storageKey = "order_form_data"

// Store persists one order draft to a JSON file in the state
// directory. Saved on every mutation, cleared on successful
// submission.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore builds a Store rooted at dir, creating it if needed.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("draft: create state dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, storageKey+".json")
}

// Load reads the saved draft. A missing file means no draft; a corrupt
// file is logged and discarded rather than blocking a new order.
func (s *Store) Load() (*Order, error) {
	raw, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("draft: read %s: %w", s.path(), err)
	}
	var o Order
	if err := json.Unmarshal(raw, &o); err != nil {
		s.logger.Warn("discarding corrupt draft", slog.String("path", s.path()), slog.Any("error", err))
		return nil, nil
	}
	return &o, nil
}

// Save writes the draft atomically (write-then-rename).
func (s *Store) Save(o *Order) error {
	raw, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("draft: encode: %w", err)
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("draft: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		return fmt.Errorf("draft: rename: %w", err)
	}
	return nil
}

// Clear removes the saved draft. Missing is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("draft: remove %s: %w", s.path(), err)
	}
	return nil
}
