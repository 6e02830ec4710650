package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File persists keys as a single JSON document with 0600 permissions.
// On platforms with an OS keychain the caller should provide its own
// Store implementation instead; this one covers headless hosts.
type File struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("tokenstore: path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("tokenstore: create dir for %s: %w", path, err)
	}

	f := &File{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run, nothing persisted yet.
	case err != nil:
		return nil, fmt.Errorf("tokenstore: read %s: %w", path, err)
	default:
		if err := json.Unmarshal(data, &f.values); err != nil {
			return nil, fmt.Errorf("tokenstore: %s is corrupt: %w", path, err)
		}
	}

	return f, nil
}

func (f *File) Read(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (f *File) Write(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return f.flushLocked()
}

func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return f.flushLocked()
}

func (f *File) flushLocked() error {
	data, err := json.Marshal(f.values)
	if err != nil {
		return fmt.Errorf("tokenstore: encode: %w", err)
	}

	// Write-then-rename so a crash mid-write cannot corrupt the store.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("tokenstore: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("tokenstore: rename %s: %w", tmp, err)
	}
	return nil
}

// DefaultPath returns a per-user location for the token file.
func DefaultPath(appName string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("tokenstore: no user config dir: %w", err)
	}
	return filepath.Join(dir, appName, "tokens.json"), nil
}
