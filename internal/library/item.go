// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package library implements the media-tracking core: the item data model, the
pure mutation API, the filter/search engine, and the state-holding service.

# Architecture

  - Entities: LibraryItem, Comment (immutable once posted).
  - Mutations: pure copy-on-write functions over the item list (mutate.go).
  - Views: derived filter/sort/stats, recomputed per request (filter.go).
  - State: a single Service owns the canonical list and persists a full
    snapshot after every accepted mutation (service.go).
*/
package library

import "time"

// # Enumerations

// ItemType distinguishes books from comics. It affects display labels only —
// there is no behavioral difference between the two.
type ItemType string

const (
	TypeBook  ItemType = "BOOK"
	TypeComic ItemType = "COMIC"
)

// ItemStatus is the reading lifecycle state of an item.
type ItemStatus string

const (
	StatusReading  ItemStatus = "READING"
	StatusFinished ItemStatus = "FINISHED"

	// StatusWishlist is reserved in the data model for forward compatibility.
	// No transition currently produces or consumes it.
	StatusWishlist ItemStatus = "WISHLIST"
)

// # Domain Entities

// Comment is a note posted on an item. The poster's name and avatar are
// snapshotted at post time, not resolved from the live profile, so editing
// the profile later does not rewrite history. Comments are append-only:
// there is no edit or delete operation.
type Comment struct {
	ID         string    `json:"id"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
}

// LibraryItem is one tracked work.
//
// # Invariants
//
//   - 0 <= CurrentProgress <= TotalProgress
//   - TotalProgress is fixed at creation and never mutated afterward.
//   - Status is FINISHED iff the item was explicitly finished or progress
//     reached the total; toggling back to READING resets progress to zero.
type LibraryItem struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	Type            ItemType   `json:"type"`
	Status          ItemStatus `json:"status"`
	CurrentProgress int        `json:"current_progress"`
	TotalProgress   int        `json:"total_progress"`
	CoverURL        string     `json:"cover_url"`
	LastUpdated     time.Time  `json:"last_updated"`
	Rating          *int       `json:"rating,omitempty"`
	Review          *string    `json:"review,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	Comments        []Comment  `json:"comments"`
}

// CoverOrPlaceholder returns the item's cover URL, falling back to a
// deterministic placeholder image derived from the item id.
func (item LibraryItem) CoverOrPlaceholder() string {
	if item.CoverURL != "" {
		return item.CoverURL
	}
	return "https://picsum.photos/seed/" + item.ID + "/300/450"
}

// HasReviewActivity reports whether the item carries a review, a rating, or
// at least one comment. This drives the REVIEWS tab.
func (item LibraryItem) HasReviewActivity() bool {
	if item.Rating != nil {
		return true
	}
	if item.Review != nil && *item.Review != "" {
		return true
	}
	return len(item.Comments) > 0
}

// # Inputs

// NewItemInput carries the caller-supplied fields for item creation.
type NewItemInput struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Type          ItemType `json:"type"`
	TotalProgress int      `json:"total_progress"`
	CoverURL      string   `json:"cover_url"`
}
