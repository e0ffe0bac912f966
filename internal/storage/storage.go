package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/bmk-dev/bmk/internal/model"
)

// ErrParse marks persisted data that could not be decoded or that violates
// the bookmark invariants (empty name/url, duplicate names).
var ErrParse = errors.New("malformed bookmark data")

// Storage defines the interface for persisting bookmarks.
type Storage interface {
	Load() (*model.Store, error)
	Save(store *model.Store) error
	// Path is the file the bookmarks live in.
	Path() string
}

// Open returns the storage backend for path, chosen by file extension:
// .json for JSON, .db/.sqlite/.sqlite3 for SQLite, anything else is YAML.
func Open(path string) (Storage, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONStorage(path), nil
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStorage(path)
	default:
		return NewYAMLStorage(path), nil
	}
}

// Close releases backend resources if the storage holds any.
func Close(s Storage) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// DefaultPath returns the default bookmarks file: $XDG_CONFIG_HOME/bmk/bookmarks.yaml
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("bmk", "bookmarks.yaml"))
}

// validate wraps invariant violations of a freshly loaded store as parse errors.
func validate(path string, store *model.Store) error {
	if err := store.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it into
// place, so readers never observe a half-written file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
