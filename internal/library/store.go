// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/taibuivan/bibliotech/internal/platform/constants"
	"github.com/taibuivan/bibliotech/internal/platform/snapshot"
)

// # Repository Contract

// Repository is the persistence port for the item list.
type Repository interface {
	/*
		Load reads the persisted item list.

		Description: Fails soft. A missing or unreadable snapshot yields an
		empty list and a nil error — absence of data is a valid state
		(first run), not a failure.

		Parameters:
		  - context: context.Context

		Returns:
		  - []LibraryItem: The persisted items, or an empty list
		  - error: Nothing in practice; reserved for future backends
	*/
	Load(context context.Context) ([]LibraryItem, error)

	/*
		Save persists the full item list as one snapshot document.

		Parameters:
		  - context: context.Context
		  - items: []LibraryItem (the complete list — no delta writes)

		Returns:
		  - error: Backend write failures
	*/
	Save(context context.Context, items []LibraryItem) error
}

// # Snapshot Repository Implementation

// snapshotRepository implements [Repository] on top of a [snapshot.Store].
type snapshotRepository struct {
	store  snapshot.Store
	logger *slog.Logger
}

// NewSnapshotRepository constructs a snapshot-backed item repository.
func NewSnapshotRepository(store snapshot.Store, logger *slog.Logger) Repository {
	return &snapshotRepository{store: store, logger: logger}
}

// Load reads and decodes the library snapshot, substituting an empty list for
// any read or decode failure.
func (repository *snapshotRepository) Load(context context.Context) ([]LibraryItem, error) {
	data, err := repository.store.Read(context, constants.SnapshotKeyLibrary)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) {
			repository.logger.Warn("library_snapshot_unreadable",
				slog.Any("error", err),
			)
		}
		return []LibraryItem{}, nil
	}

	var items []LibraryItem
	if err := json.Unmarshal(data, &items); err != nil {
		// A corrupt snapshot degrades to an empty library rather than failing startup.
		repository.logger.Warn("library_snapshot_corrupt",
			slog.Any("error", err),
		)
		return []LibraryItem{}, nil
	}

	if items == nil {
		items = []LibraryItem{}
	}
	return items, nil
}

// Save encodes and writes the full item list.
func (repository *snapshotRepository) Save(context context.Context, items []LibraryItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return repository.store.Write(context, constants.SnapshotKeyLibrary, data)
}
