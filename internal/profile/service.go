// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/bibliotech/internal/platform/apperr"
	"github.com/taibuivan/bibliotech/internal/platform/validate"
)

const (
	FieldName = "name"
	FieldBio  = "bio"

	maxNameLen = 100
	maxBioLen  = 500
)

// # Service Layer

// Service owns the canonical profile state.
//
// Like the library service, it follows the apply-then-persist pipeline, just
// for a single document instead of a list.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu      sync.Mutex
	current Profile
}

// NewService constructs the [Service], seeding from the repository or, on
// first run, generating and persisting the default profile.
func NewService(context context.Context, repo Repository, logger *slog.Logger) (*Service, error) {
	loaded, err := repo.Load(context)
	if err != nil {
		return nil, err
	}

	if loaded == nil {
		fresh := Default(time.Now())
		if err := repo.Save(context, &fresh); err != nil {
			return nil, err
		}
		logger.Info("profile_created_with_defaults", slog.String("name", fresh.Name))
		loaded = &fresh
	} else {
		logger.Info("profile_loaded", slog.String("name", loaded.Name))
	}

	return &Service{
		repo:    repo,
		logger:  logger,
		current: *loaded,
	}, nil
}

// # Operations

/*
Get returns a copy of the current profile.

Returns:
  - *Profile: The current profile (always present after construction)
  - error: Reserved; nil in practice
*/
func (service *Service) Get(context context.Context) (*Profile, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	current := service.current
	return &current, nil
}

/*
Update replaces the editable profile fields wholesale.

Description: Validates the new identity, overwrites name/avatar/bio, keeps
JoinedAt, persists the snapshot, and commits. A failed persist leaves the
previous profile in place.

Parameters:
  - context: context.Context
  - input: UpdateInput (the complete editable field set)

Returns:
  - *Profile: The updated profile
  - error: Validation or persistence failures
*/
func (service *Service) Update(context context.Context, input UpdateInput) (*Profile, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name)
	validator.MaxLen(FieldName, input.Name, maxNameLen)
	validator.MaxLen(FieldBio, input.Bio, maxBioLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	next := Profile{
		Name:     input.Name,
		Avatar:   input.Avatar,
		Bio:      input.Bio,
		JoinedAt: service.current.JoinedAt,
	}

	if err := service.repo.Save(context, &next); err != nil {
		return nil, apperr.Internal(err)
	}

	service.current = next
	service.logger.Info("profile_updated", slog.String("name", next.Name))

	updated := next
	return &updated, nil
}
