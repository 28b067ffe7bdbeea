// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"slices"

	"github.com/taibuivan/bibliotech/pkg/fold"
)

// # Derived Views

// Tab selects which slice of the library a view shows.
type Tab string

const (
	TabAll      Tab = "ALL"
	TabReading  Tab = "READING"
	TabFinished Tab = "FINISHED"
	TabReviews  Tab = "REVIEWS"
)

// Tabs lists every valid tab value, for boundary validation.
func Tabs() []string {
	return []string{string(TabAll), string(TabReading), string(TabFinished), string(TabReviews)}
}

// Filter derives the visible item sequence from the canonical list.
//
// The search predicate is a case-folded substring match against title OR
// author; the tab predicate follows the tab semantics below; both are
// AND-combined. The result is sorted by descending LastUpdated with a stable
// sort, so items sharing a timestamp keep their relative order.
//
// This is recomputed on every request — cheap enough for hundreds of items,
// which is the realistic ceiling for a personal library.
func Filter(items []LibraryItem, searchTerm string, tab Tab) []LibraryItem {
	filtered := make([]LibraryItem, 0, len(items))
	for _, item := range items {
		if !matchesSearch(item, searchTerm) {
			continue
		}
		if !matchesTab(item, tab) {
			continue
		}
		filtered = append(filtered, item)
	}

	slices.SortStableFunc(filtered, func(a, b LibraryItem) int {
		return b.LastUpdated.Compare(a.LastUpdated)
	})

	return filtered
}

// matchesSearch checks the search term against title and author.
func matchesSearch(item LibraryItem, term string) bool {
	return fold.Contains(item.Title, term) || fold.Contains(item.Author, term)
}

// matchesTab checks the item against the active tab.
//
//   - ALL passes everything.
//   - READING / FINISHED match the item status.
//   - REVIEWS passes items with a review, a rating, or at least one comment.
func matchesTab(item LibraryItem, tab Tab) bool {
	switch tab {
	case TabReading:
		return item.Status == StatusReading
	case TabFinished:
		return item.Status == StatusFinished
	case TabReviews:
		return item.HasReviewActivity()
	default:
		return true
	}
}

// # Library Stats

// Stats summarizes the shelf for the dashboard header.
type Stats struct {
	Total    int `json:"total"`
	Reading  int `json:"reading"`
	Finished int `json:"finished"`
}

// Summarize counts items per reading state.
func Summarize(items []LibraryItem) Stats {
	stats := Stats{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case StatusReading:
			stats.Reading++
		case StatusFinished:
			stats.Finished++
		}
	}
	return stats
}
