// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bibliotech/internal/library"
	"github.com/taibuivan/bibliotech/pkg/pointer"
)

/*
TestFilter covers the combined search and tab predicates over a small shelf.

The fixture has a book mid-read and a comic that is finished and rated, so
every tab selects a distinct subset.
*/
func TestFilter(t *testing.T) {
	dune := newTestItem("a", "Dune", 150, 412)
	dune.Author = "Frank Herbert"
	dune.LastUpdated = testTime.Add(2 * time.Hour)

	watchmen := newTestItem("b", "Watchmen", 12, 12)
	watchmen.Author = "Alan Moore"
	watchmen.Type = library.TypeComic
	watchmen.Rating = pointer.To(5)
	watchmen.Review = pointer.To("A landmark.")
	watchmen.LastUpdated = testTime.Add(time.Hour)

	shelf := []library.LibraryItem{dune, watchmen}

	tests := []struct {
		name       string
		searchTerm string
		tab        library.Tab
		wantIDs    []string
	}{
		{"empty_search_all_tab_returns_everything", "", library.TabAll, []string{"a", "b"}},
		{"search_matches_title_case_insensitive", "wat", library.TabAll, []string{"b"}},
		{"search_matches_author", "herbert", library.TabAll, []string{"a"}},
		{"search_without_match_is_empty", "middlemarch", library.TabAll, []string{}},
		{"reading_tab", "", library.TabReading, []string{"a"}},
		{"finished_tab", "", library.TabFinished, []string{"b"}},
		{"reviews_tab_needs_review_activity", "", library.TabReviews, []string{"b"}},
		{"search_and_tab_combine_with_and", "dune", library.TabFinished, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := library.Filter(shelf, tt.searchTerm, tt.tab)

			ids := make([]string, 0, len(got))
			for _, item := range got {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

/*
TestFilter_ReviewsTabCommentOnly verifies that a comment alone, with no
rating or review, is enough review activity for the REVIEWS tab.
*/
func TestFilter_ReviewsTabCommentOnly(t *testing.T) {
	item := newTestItem("a", "Dune", 10, 100)
	item.Comments = []library.Comment{
		library.NewComment("Great pacing", "Guest", "avatar", testTime),
	}

	got := library.Filter([]library.LibraryItem{item}, "", library.TabReviews)

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

/*
TestFilter_SortOrder verifies descending LastUpdated ordering and the
stability guarantee for items sharing a timestamp.
*/
func TestFilter_SortOrder(t *testing.T) {
	t.Run("newest_first", func(t *testing.T) {
		oldest := newTestItem("old", "Dune", 0, 100)
		oldest.LastUpdated = testTime

		newest := newTestItem("new", "Watchmen", 0, 12)
		newest.LastUpdated = testTime.Add(time.Hour)

		got := library.Filter([]library.LibraryItem{oldest, newest}, "", library.TabAll)

		require.Len(t, got, 2)
		assert.Equal(t, "new", got[0].ID)
		assert.Equal(t, "old", got[1].ID)
	})

	t.Run("equal_timestamps_keep_input_order", func(t *testing.T) {
		first := newTestItem("first", "Dune", 0, 100)
		second := newTestItem("second", "Watchmen", 0, 12)
		third := newTestItem("third", "Middlemarch", 0, 880)

		got := library.Filter([]library.LibraryItem{first, second, third}, "", library.TabAll)

		require.Len(t, got, 3)
		assert.Equal(t, "first", got[0].ID)
		assert.Equal(t, "second", got[1].ID)
		assert.Equal(t, "third", got[2].ID)
	})
}

/*
TestSummarize verifies the per-status counters behind the dashboard header.
*/
func TestSummarize(t *testing.T) {
	t.Run("empty_shelf", func(t *testing.T) {
		assert.Equal(t, library.Stats{}, library.Summarize(nil))
	})

	t.Run("mixed_shelf", func(t *testing.T) {
		shelf := []library.LibraryItem{
			newTestItem("a", "Dune", 150, 412),
			newTestItem("b", "Watchmen", 12, 12),
			newTestItem("c", "Middlemarch", 880, 880),
		}

		stats := library.Summarize(shelf)

		assert.Equal(t, 3, stats.Total)
		assert.Equal(t, 1, stats.Reading)
		assert.Equal(t, 2, stats.Finished)
	})
}
