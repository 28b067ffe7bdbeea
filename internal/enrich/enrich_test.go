// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package enrich_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bibliotech/internal/enrich"
	"github.com/taibuivan/bibliotech/pkg/pointer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeLookup is a canned Lookup implementation for exercising the service.
type fakeLookup struct {
	suggestion *enrich.Suggestion
	err        error

	gotTitle  string
	gotAuthor string
	deadline  bool
}

func (f *fakeLookup) BookDetails(ctx context.Context, title, author string) (*enrich.Suggestion, error) {
	f.gotTitle = title
	f.gotAuthor = author
	_, f.deadline = ctx.Deadline()
	return f.suggestion, f.err
}

/*
TestService_Suggest covers the best-effort contract: successes pass through,
every failure mode degrades to a nil suggestion.
*/
func TestService_Suggest(t *testing.T) {
	t.Run("passes_suggestion_through", func(t *testing.T) {
		lookup := &fakeLookup{suggestion: &enrich.Suggestion{
			TotalPages:  pointer.To(412),
			Description: "A desert planet epic.",
		}}
		service := enrich.NewService(lookup, testLogger())

		got := service.Suggest(context.Background(), "Dune", "Frank Herbert")

		require.NotNil(t, got)
		require.NotNil(t, got.TotalPages)
		assert.Equal(t, 412, *got.TotalPages)
		assert.Equal(t, "A desert planet epic.", got.Description)
		assert.Equal(t, "Dune", lookup.gotTitle)
		assert.Equal(t, "Frank Herbert", lookup.gotAuthor)
	})

	t.Run("provider_error_becomes_nil", func(t *testing.T) {
		lookup := &fakeLookup{err: errors.New("quota exceeded")}
		service := enrich.NewService(lookup, testLogger())

		assert.Nil(t, service.Suggest(context.Background(), "Dune", "Frank Herbert"))
	})

	t.Run("nil_lookup_means_disabled", func(t *testing.T) {
		service := enrich.NewService(nil, testLogger())

		assert.Nil(t, service.Suggest(context.Background(), "Dune", "Frank Herbert"))
	})

	t.Run("lookup_runs_under_a_deadline", func(t *testing.T) {
		lookup := &fakeLookup{suggestion: &enrich.Suggestion{}}
		service := enrich.NewService(lookup, testLogger())

		service.Suggest(context.Background(), "Dune", "")

		assert.True(t, lookup.deadline)
	})
}
