package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore implements Store on the filesystem: one directory per user, one
// JSON file per record. Used when no database is configured.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir. An empty dir
// defaults to ~/.coach_data.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".coach_data")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Load implements Store.
func (fs *FileStore) Load(_ context.Context, userID, name string) (json.RawMessage, bool, error) {
	data, err := os.ReadFile(fs.path(userID, name))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load record %s/%s: %w", userID, name, err)
	}
	return data, true, nil
}

// Save implements Store. Writes go to a temporary file first, then rename
// (atomic on the same filesystem).
func (fs *FileStore) Save(_ context.Context, userID, name string, record any) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", name, err)
	}

	path := fs.path(userID, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	tmpPath := path + fmt.Sprintf(".tmp.%d", rand.Int())
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// Users implements Store.
func (fs *FileStore) Users(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, err
	}
	var users []string
	for _, e := range entries {
		if e.IsDir() {
			users = append(users, e.Name())
		}
	}
	sort.Strings(users)
	return users, nil
}

func (fs *FileStore) path(userID, name string) string {
	return filepath.Join(fs.dir, sanitize(userID), sanitize(name)+".json")
}

// sanitize keeps record and user names safe for use as path components.
func sanitize(s string) string {
	unsafe := []string{"/", "\\", "..", ":", "?", "&", "=", "#", "<", ">", "|", "*", "\""}
	for _, c := range unsafe {
		s = strings.ReplaceAll(s, c, "_")
	}
	return s
}
