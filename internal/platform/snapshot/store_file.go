// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// # File Backend

// fileStore persists each document as a JSON file under a local data directory.
type fileStore struct {
	dir string
}

// NewFileStore constructs a file-backed [Store] rooted at dir, creating the
// directory if it does not exist.
func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: failed to create data directory: %w", err)
	}
	return &fileStore{dir: dir}, nil
}

// Read loads the document file for key. A missing file maps to ErrNotFound.
func (store *fileStore) Read(context context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(store.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("snapshot: failed to read %q: %w", key, err)
	}
	return data, nil
}

// Write replaces the document file for key.
//
// The write goes to a temporary file first and is renamed into place, so a
// crash mid-write never corrupts the previous snapshot.
func (store *fileStore) Write(context context.Context, key string, data []byte) error {
	target := store.path(key)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: failed to write %q: %w", key, err)
	}

	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("snapshot: failed to commit %q: %w", key, err)
	}

	return nil
}

// path maps a document key to its on-disk location.
func (store *fileStore) path(key string) string {
	return filepath.Join(store.dir, key+".json")
}
