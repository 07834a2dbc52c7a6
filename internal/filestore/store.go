// Package filestore reads and writes whole files under a single root
// directory and refuses names that would resolve outside of it.
package filestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound    = errors.New("filestore: file not found")
	ErrInvalidName = errors.New("filestore: invalid file name")
)

// Store is safe for concurrent use; it holds no mutable state. Concurrent
// writers to the same name are not serialized, the last write wins.
type Store struct {
	root string
}

// New returns a Store rooted at dir. The directory must already exist.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("filestore: empty root directory")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("filestore: resolve root: %w", err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("filestore: root: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("filestore: root %s is not a directory", abs)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute root directory.
func (s *Store) Root() string { return s.root }

// Resolve maps a file name to its path under the root.
func (s *Store) Resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, "/\\\x00") || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	p := filepath.Join(s.root, name)
	rel, err := filepath.Rel(s.root, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return p, nil
}

// Exists reports whether name exists under the root. A stat failure other
// than non-existence is returned as an error.
func (s *Store) Exists(name string) (bool, error) {
	p, err := s.Resolve(name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("filestore: stat %s: %w", name, err)
	}
	return true, nil
}

// Read returns the full contents of name. ErrNotFound is returned when the
// file does not exist.
func (s *Store) Read(name string) ([]byte, error) {
	p, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("filestore: read %s: %w", name, err)
	}
	return b, nil
}

// Write creates or truncates name and writes data to it.
func (s *Store) Write(name string, data []byte) error {
	p, err := s.Resolve(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("filestore: write %s: %w", name, err)
	}
	return nil
}
