// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bibliotech/internal/library"
	"github.com/taibuivan/bibliotech/internal/platform/apperr"
	"github.com/taibuivan/bibliotech/internal/platform/constants"
	"github.com/taibuivan/bibliotech/internal/platform/snapshot"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestService builds a Service over a real file snapshot store rooted in dir.
func newTestService(t *testing.T, dir string) *library.Service {
	t.Helper()

	store, err := snapshot.NewFileStore(dir)
	require.NoError(t, err)

	service, err := library.NewService(
		context.Background(),
		library.NewSnapshotRepository(store, testLogger()),
		testLogger(),
	)
	require.NoError(t, err)
	return service
}

/*
TestService_StartsEmpty verifies the fail-soft seed: no snapshot on disk
means an empty library, not an error.
*/
func TestService_StartsEmpty(t *testing.T) {
	service := newTestService(t, t.TempDir())

	items, err := service.List(context.Background(), "", library.TabAll)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, library.Stats{}, service.Stats(context.Background()))
}

/*
TestService_CreatePersistsAcrossRestart exercises the full round trip: a
created item survives a service restart with every field intact, including
nested comments and optional pointers.
*/
func TestService_CreatePersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	service := newTestService(t, dir)

	created, err := service.Create(ctx, library.NewItemInput{
		Title:         "Dune",
		Author:        "Frank Herbert",
		Type:          library.TypeBook,
		TotalProgress: 412,
	})
	require.NoError(t, err)

	_, err = service.UpdateReview(ctx, created.ID, 5, "A masterpiece of worldbuilding.")
	require.NoError(t, err)
	_, err = service.AddComment(ctx, created.ID, "Starting the reread.", "Guest", "avatar-url")
	require.NoError(t, err)

	// Restart: a fresh service over the same directory must see the same state.
	reloaded := newTestService(t, dir)

	item, err := reloaded.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", item.Title)
	assert.Equal(t, "Frank Herbert", item.Author)
	assert.Equal(t, library.TypeBook, item.Type)
	assert.Equal(t, 412, item.TotalProgress)
	require.NotNil(t, item.Rating)
	assert.Equal(t, 5, *item.Rating)
	require.NotNil(t, item.Review)
	assert.Equal(t, "A masterpiece of worldbuilding.", *item.Review)
	require.Len(t, item.Comments, 1)
	assert.Equal(t, "Starting the reread.", item.Comments[0].Text)
	assert.Equal(t, "Guest", item.Comments[0].UserName)
}

/*
TestService_EmptyStatePersistsAcrossRestart verifies that an explicitly
emptied library stays empty after a restart — an empty snapshot is a real
state, not the same as a missing one.
*/
func TestService_EmptyStatePersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	service := newTestService(t, dir)
	created, err := service.Create(ctx, library.NewItemInput{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)
	require.NoError(t, service.Delete(ctx, created.ID))

	reloaded := newTestService(t, dir)
	items, err := reloaded.List(ctx, "", library.TabAll)
	require.NoError(t, err)
	assert.Empty(t, items)
}

/*
TestService_CreateValidation covers the boundary checks on creation input.
*/
func TestService_CreateValidation(t *testing.T) {
	service := newTestService(t, t.TempDir())
	ctx := context.Background()

	tests := []struct {
		name  string
		input library.NewItemInput
	}{
		{"missing_title", library.NewItemInput{Author: "Frank Herbert"}},
		{"missing_author", library.NewItemInput{Title: "Dune"}},
		{"unknown_type", library.NewItemInput{Title: "Dune", Author: "Frank Herbert", Type: "SCROLL"}},
		{"negative_total", library.NewItemInput{Title: "Dune", Author: "Frank Herbert", TotalProgress: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, tt.input)

			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

/*
TestService_CreateDefaults verifies that omitted type and total progress
fall back to BOOK and the default page count.
*/
func TestService_CreateDefaults(t *testing.T) {
	service := newTestService(t, t.TempDir())

	created, err := service.Create(context.Background(), library.NewItemInput{
		Title:  "Watchmen",
		Author: "Alan Moore",
	})
	require.NoError(t, err)

	assert.Equal(t, library.TypeBook, created.Type)
	assert.Equal(t, constants.DefaultTotalProgress, created.TotalProgress)
	assert.Equal(t, library.StatusReading, created.Status)
}

/*
TestService_MutationsOnMissingIDAreNoOps verifies the service-level contract:
unknown ids yield (nil, nil), and Delete succeeds outright.
*/
func TestService_MutationsOnMissingIDAreNoOps(t *testing.T) {
	service := newTestService(t, t.TempDir())
	ctx := context.Background()

	tests := []struct {
		name string
		call func() (*library.LibraryItem, error)
	}{
		{"update_progress", func() (*library.LibraryItem, error) { return service.UpdateProgress(ctx, "ghost", 10) }},
		{"update_review", func() (*library.LibraryItem, error) { return service.UpdateReview(ctx, "ghost", 4, "x") }},
		{"update_cover", func() (*library.LibraryItem, error) { return service.UpdateCover(ctx, "ghost", "https://x/y.jpg") }},
		{"add_comment", func() (*library.LibraryItem, error) { return service.AddComment(ctx, "ghost", "hi", "Guest", "a") }},
		{"toggle_status", func() (*library.LibraryItem, error) { return service.ToggleStatus(ctx, "ghost") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := tt.call()
			require.NoError(t, err)
			assert.Nil(t, item)
		})
	}

	t.Run("delete", func(t *testing.T) {
		assert.NoError(t, service.Delete(ctx, "ghost"))
	})
}

/*
TestService_ProgressLifecycle drives an item through the read-finish-reread
cycle and checks the status transitions and range validation along the way.
*/
func TestService_ProgressLifecycle(t *testing.T) {
	service := newTestService(t, t.TempDir())
	ctx := context.Background()

	created, err := service.Create(ctx, library.NewItemInput{
		Title: "Watchmen", Author: "Alan Moore", Type: library.TypeComic, TotalProgress: 12,
	})
	require.NoError(t, err)

	item, err := service.UpdateProgress(ctx, created.ID, 6)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, library.StatusReading, item.Status)

	item, err = service.UpdateProgress(ctx, created.ID, 12)
	require.NoError(t, err)
	assert.Equal(t, library.StatusFinished, item.Status)

	// Out of range values are rejected before any state change.
	_, err = service.UpdateProgress(ctx, created.ID, 13)
	require.Error(t, err)
	_, err = service.UpdateProgress(ctx, created.ID, -1)
	require.Error(t, err)

	item, err = service.ToggleStatus(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, library.StatusReading, item.Status)
	assert.Equal(t, 0, item.CurrentProgress)
}

/*
TestService_ReviewValidation verifies the 1..5 rating bounds.
*/
func TestService_ReviewValidation(t *testing.T) {
	service := newTestService(t, t.TempDir())
	ctx := context.Background()

	created, err := service.Create(ctx, library.NewItemInput{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	for _, rating := range []int{0, 6} {
		_, err := service.UpdateReview(ctx, created.ID, rating, "text")
		require.Error(t, err)
	}

	item, err := service.UpdateReview(ctx, created.ID, 1, "")
	require.NoError(t, err)
	require.NotNil(t, item.Rating)
	assert.Equal(t, 1, *item.Rating)
}

/*
TestService_GetMissingIsNotFound verifies that the read path, unlike
mutations, reports a genuine 404.
*/
func TestService_GetMissingIsNotFound(t *testing.T) {
	service := newTestService(t, t.TempDir())

	_, err := service.Get(context.Background(), "ghost")

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

/*
TestService_ObserversSeeCommittedState verifies the subscribe hook fires
after a committed mutation with the full list.
*/
func TestService_ObserversSeeCommittedState(t *testing.T) {
	service := newTestService(t, t.TempDir())
	ctx := context.Background()

	var seen [][]library.LibraryItem
	service.Subscribe(func(items []library.LibraryItem) {
		seen = append(seen, items)
	})

	created, err := service.Create(ctx, library.NewItemInput{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)
	require.NoError(t, service.Delete(ctx, created.ID))

	require.Len(t, seen, 2)
	require.Len(t, seen[0], 1)
	assert.Equal(t, created.ID, seen[0][0].ID)
	assert.Empty(t, seen[1])
}

// failingRepository simulates a snapshot backend whose writes fail.
type failingRepository struct{}

func (failingRepository) Load(context.Context) ([]library.LibraryItem, error) {
	return []library.LibraryItem{}, nil
}

func (failingRepository) Save(context.Context, []library.LibraryItem) error {
	return errors.New("disk full")
}

/*
TestService_PersistenceFailureAbortsCommit verifies that a failed snapshot
write surfaces as an internal error and leaves the in-memory state untouched.
*/
func TestService_PersistenceFailureAbortsCommit(t *testing.T) {
	service, err := library.NewService(context.Background(), failingRepository{}, testLogger())
	require.NoError(t, err)

	_, err = service.Create(context.Background(), library.NewItemInput{Title: "Dune", Author: "Frank Herbert"})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)

	items, err := service.List(context.Background(), "", library.TabAll)
	require.NoError(t, err)
	assert.Empty(t, items)
}

/*
TestService_CorruptSnapshotDegradesToEmpty verifies that startup survives a
garbage snapshot file by seeding an empty library.
*/
func TestService_CorruptSnapshotDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, constants.SnapshotKeyLibrary+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	service := newTestService(t, dir)

	items, err := service.List(context.Background(), "", library.TabAll)
	require.NoError(t, err)
	assert.Empty(t, items)
}

/*
TestService_ListRejectsUnknownTab verifies tab validation at the boundary.
*/
func TestService_ListRejectsUnknownTab(t *testing.T) {
	service := newTestService(t, t.TempDir())

	_, err := service.List(context.Background(), "", library.Tab("ARCHIVE"))

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
