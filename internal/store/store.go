// Package store persists downloaded flag images on the local filesystem.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// FlagStore writes flag images under a root directory, one file per country
// display name.
type FlagStore struct {
	root string
}

// New returns a FlagStore rooted at dir, creating it if needed.
func New(dir string) (*FlagStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("flag store directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create flag dir %s: %w", dir, err)
	}
	return &FlagStore{root: dir}, nil
}

// Save writes data as "<safe name>.gif" under the store root. Names that
// sanitize down to nothing are rejected rather than written as a hidden
// ".gif" file.
func (s *FlagStore) Save(name string, data []byte) error {
	if SafeName(name) == "" {
		return fmt.Errorf("flag name %q has no filesystem-safe characters", name)
	}
	target := s.Path(name)
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("write flag %s: %w", target, err)
	}
	return nil
}

// Path returns the file location Save would use for a display name.
func (s *FlagStore) Path(name string) string {
	return filepath.Join(s.root, SafeName(name)+".gif")
}

// SafeName converts a country display name into a filesystem-safe filename
// stem: spaces become underscores and anything else unsafe is stripped.
func SafeName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	return unsafeNameChars.ReplaceAllString(name, "")
}
