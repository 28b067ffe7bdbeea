// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/taibuivan/bibliotech/internal/platform/constants"
	"github.com/taibuivan/bibliotech/internal/platform/snapshot"
)

// # Repository Contract

// Repository is the persistence port for the user profile document.
type Repository interface {
	/*
		Load reads the persisted profile.

		Description: Fails soft. A missing or unreadable snapshot yields
		(nil, nil) — the caller substitutes the first-run default.

		Returns:
		  - *Profile: The persisted profile, or nil on first run
		  - error: Nothing in practice; reserved for future backends
	*/
	Load(context context.Context) (*Profile, error)

	/*
		Save persists the full profile as one snapshot document.

		Returns:
		  - error: Backend write failures
	*/
	Save(context context.Context, profile *Profile) error
}

// # Snapshot Repository Implementation

// snapshotRepository implements [Repository] on top of a [snapshot.Store].
type snapshotRepository struct {
	store  snapshot.Store
	logger *slog.Logger
}

// NewSnapshotRepository constructs a snapshot-backed profile repository.
func NewSnapshotRepository(store snapshot.Store, logger *slog.Logger) Repository {
	return &snapshotRepository{store: store, logger: logger}
}

// Load reads and decodes the profile snapshot, substituting nil for any read
// or decode failure.
func (repository *snapshotRepository) Load(context context.Context) (*Profile, error) {
	data, err := repository.store.Read(context, constants.SnapshotKeyProfile)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) {
			repository.logger.Warn("profile_snapshot_unreadable",
				slog.Any("error", err),
			)
		}
		return nil, nil
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		repository.logger.Warn("profile_snapshot_corrupt",
			slog.Any("error", err),
		)
		return nil, nil
	}

	return &profile, nil
}

// Save encodes and writes the full profile.
func (repository *snapshotRepository) Save(context context.Context, profile *Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return repository.store.Write(context, constants.SnapshotKeyProfile, data)
}
