// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/bibliotech/internal/platform/apperr"
	"github.com/taibuivan/bibliotech/internal/platform/constants"
	"github.com/taibuivan/bibliotech/internal/platform/validate"
)

const (
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldType          = "type"
	FieldTotalProgress = "total_progress"
	FieldProgress      = "progress"
	FieldRating        = "rating"
	FieldCoverURL      = "cover_url"
	FieldTab           = "tab"
)

// # Service Layer

// Service owns the canonical item list.
//
// Every mutation runs the same pipeline: validate at the boundary, compute the
// next list with a pure mutation function, persist the full snapshot, commit
// the new list in memory, then notify observers. A mutation that fails to
// persist is not committed.
//
// # Concurrency
//
// The application is effectively single-user, but the HTTP transport can carry
// overlapping requests; a mutex serializes intent application so the
// "sequential mutation" model of the original holds.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu        sync.Mutex
	items     []LibraryItem
	observers []func([]LibraryItem)
}

// NewService constructs the [Service] and seeds state from the repository.
//
// Seeding fails soft: a missing or corrupt snapshot yields an empty library.
func NewService(context context.Context, repo Repository, logger *slog.Logger) (*Service, error) {
	items, err := repo.Load(context)
	if err != nil {
		return nil, err
	}

	logger.Info("library_state_loaded", slog.Int("items", len(items)))

	return &Service{
		repo:   repo,
		logger: logger,
		items:  items,
	}, nil
}

// Subscribe registers an observer invoked with the full item list after every
// committed mutation. Observers run synchronously on the mutating goroutine.
func (service *Service) Subscribe(observer func([]LibraryItem)) {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.observers = append(service.observers, observer)
}

// # Read Operations

/*
List derives the filtered, sorted view of the library.

Parameters:
  - context: context.Context
  - searchTerm: string (case-insensitive substring match on title/author)
  - tab: Tab (ALL, READING, FINISHED, REVIEWS)

Returns:
  - []LibraryItem: The derived view (never nil)
  - error: Validation failure for an unknown tab
*/
func (service *Service) List(context context.Context, searchTerm string, tab Tab) ([]LibraryItem, error) {
	if tab == "" {
		tab = TabAll
	}

	validator := &validate.Validator{}
	validator.OneOf(FieldTab, string(tab), Tabs()...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.mu.Lock()
	items := slices.Clone(service.items)
	service.mu.Unlock()

	return Filter(items, searchTerm, tab), nil
}

/*
Get retrieves a single item by id.

Returns:
  - *LibraryItem: A copy of the item
  - error: apperr.NotFound when absent (read path — unlike mutations,
    a read of a missing item is a genuine 404)
*/
func (service *Service) Get(context context.Context, id string) (*LibraryItem, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	for _, item := range service.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, apperr.NotFound("Item")
}

// Stats summarizes the current library for the dashboard.
func (service *Service) Stats(context context.Context) Stats {
	service.mu.Lock()
	defer service.mu.Unlock()
	return Summarize(service.items)
}

// # Mutation Operations
//
// All mutations share the missing-id contract: targeting an id that is not in
// the library is a committed no-op, not an error. Handlers translate the nil
// item to 204 so retries stay idempotent.

/*
Create adds a new item to the library.

Description: Applies creation defaults (type BOOK, total progress 100) before
validation, then prepends the new item. Metadata enrichment happens before
this call, in the add-form flow — a failed lookup never blocks creation.

Parameters:
  - context: context.Context
  - input: NewItemInput

Returns:
  - *LibraryItem: The created item
  - error: Validation or persistence failures
*/
func (service *Service) Create(context context.Context, input NewItemInput) (*LibraryItem, error) {

	// Creation defaults
	if input.Type == "" {
		input.Type = TypeBook
	}
	if input.TotalProgress == 0 {
		input.TotalProgress = constants.DefaultTotalProgress
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title)
	validator.Required(FieldAuthor, input.Author)
	validator.OneOf(FieldType, string(input.Type), string(TypeBook), string(TypeComic))
	validator.Positive(FieldTotalProgress, input.TotalProgress)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	item := NewItem(input, time.Now())

	if err := service.apply(context, func(items []LibraryItem) []LibraryItem {
		return Add(items, item)
	}); err != nil {
		return nil, err
	}

	service.logger.Info("library_item_added",
		slog.String("item_id", item.ID),
		slog.String("type", string(item.Type)),
	)

	return &item, nil
}

/*
UpdateProgress sets an item's progress counter.

Description: The progress value must satisfy 0 <= progress <= total; this is
the boundary that enforces it (the pure mutation assumes sane input). Reaching
the total flips the item to FINISHED, anything less keeps or restores READING.

Returns:
  - *LibraryItem: The updated item, or nil when the id is unknown (no-op)
  - error: Validation or persistence failures
*/
func (service *Service) UpdateProgress(context context.Context, id string, progress int) (*LibraryItem, error) {
	service.mu.Lock()
	current, found := findItem(service.items, id)
	service.mu.Unlock()

	if !found {
		service.logger.Debug("library_mutation_ignored", slog.String("item_id", id))
		return nil, nil
	}

	validator := &validate.Validator{}
	validator.Range(FieldProgress, progress, 0, current.TotalProgress)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.applyToItem(context, id, "library_progress_updated", func(items []LibraryItem) []LibraryItem {
		return UpdateProgress(items, id, progress, time.Now())
	})
}

/*
UpdateReview overwrites an item's rating and review text.

Returns:
  - *LibraryItem: The updated item, or nil when the id is unknown (no-op)
  - error: Validation or persistence failures
*/
func (service *Service) UpdateReview(context context.Context, id string, rating int, review string) (*LibraryItem, error) {
	validator := &validate.Validator{}
	validator.Range(FieldRating, rating, 1, constants.MaxRating)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.applyToItem(context, id, "library_review_updated", func(items []LibraryItem) []LibraryItem {
		return UpdateReview(items, id, rating, review, time.Now())
	})
}

/*
UpdateCover overwrites an item's cover image reference. Remote URLs and
embedded data images are accepted without distinction.

Returns:
  - *LibraryItem: The updated item, or nil when the id is unknown (no-op)
  - error: Validation or persistence failures
*/
func (service *Service) UpdateCover(context context.Context, id, coverURL string) (*LibraryItem, error) {
	validator := &validate.Validator{}
	validator.Required(FieldCoverURL, coverURL)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.applyToItem(context, id, "library_cover_updated", func(items []LibraryItem) []LibraryItem {
		return UpdateCover(items, id, coverURL, time.Now())
	})
}

/*
AddComment appends a comment to an item's thread, snapshotting the poster's
current name and avatar.

Description: Whitespace-only text is a silent no-op per the mutation contract —
the item is returned unchanged rather than an error raised.

Returns:
  - *LibraryItem: The item (possibly unchanged), or nil when the id is unknown
  - error: Persistence failures
*/
func (service *Service) AddComment(context context.Context, itemID, text, userName, userAvatar string) (*LibraryItem, error) {
	comment := NewComment(text, userName, userAvatar, time.Now())

	return service.applyToItem(context, itemID, "library_comment_added", func(items []LibraryItem) []LibraryItem {
		return AddComment(items, itemID, comment, time.Now())
	})
}

/*
ToggleStatus flips an item between FINISHED and READING.

Description: Finishing jumps progress to the total; un-finishing resets it to
zero. The reset destroys progress history by design.

Returns:
  - *LibraryItem: The updated item, or nil when the id is unknown (no-op)
  - error: Persistence failures
*/
func (service *Service) ToggleStatus(context context.Context, id string) (*LibraryItem, error) {
	return service.applyToItem(context, id, "library_status_toggled", func(items []LibraryItem) []LibraryItem {
		return ToggleStatus(items, id, time.Now())
	})
}

/*
Delete removes an item entirely. The confirmation prompt is the presentation
layer's responsibility; by the time the intent arrives here it is final.

Returns:
  - error: Persistence failures. A missing id is a successful no-op.
*/
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.apply(context, func(items []LibraryItem) []LibraryItem {
		return Delete(items, id)
	}); err != nil {
		return err
	}

	service.logger.Info("library_item_deleted", slog.String("item_id", id))
	return nil
}

// # Internal Helpers

// apply runs the mutation pipeline: compute next list, persist snapshot,
// commit, notify observers. Persistence failure aborts the commit.
func (service *Service) apply(context context.Context, mutation func([]LibraryItem) []LibraryItem) error {
	service.mu.Lock()

	next := mutation(service.items)

	if err := service.repo.Save(context, next); err != nil {
		service.mu.Unlock()
		return apperr.Internal(err)
	}

	service.items = next
	observers := slices.Clone(service.observers)
	snapshotCopy := slices.Clone(next)
	service.mu.Unlock()

	for _, observer := range observers {
		observer(snapshotCopy)
	}

	return nil
}

// applyToItem runs apply and returns the post-mutation item, or nil when the
// id was not present (the no-op path).
func (service *Service) applyToItem(context context.Context, id, event string, mutation func([]LibraryItem) []LibraryItem) (*LibraryItem, error) {
	service.mu.Lock()
	_, exists := findItem(service.items, id)
	service.mu.Unlock()

	if !exists {
		service.logger.Debug("library_mutation_ignored", slog.String("item_id", id))
		return nil, nil
	}

	if err := service.apply(context, mutation); err != nil {
		return nil, err
	}

	service.mu.Lock()
	item, _ := findItem(service.items, id)
	service.mu.Unlock()

	service.logger.Info(event, slog.String("item_id", id))
	return item, nil
}

// findItem returns a copy of the item matching id.
func findItem(items []LibraryItem, id string) (*LibraryItem, bool) {
	for _, item := range items {
		if item.ID == id {
			found := item
			return &found, true
		}
	}
	return nil, false
}
