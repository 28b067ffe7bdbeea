// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"slices"
	"strings"
	"time"

	"github.com/taibuivan/bibliotech/pkg/uuid"
)

// # Pure Mutation API
//
// Every function here computes the next item list from the current one without
// touching shared state. The caller (the Service) decides when to persist and
// who to notify. Two rules hold for all of them:
//
//   - Copy-on-write: the input slice is never modified.
//   - Missing id is a no-op: the returned list is value-equal to the input.
//     Callers rely on this for idempotent retries.

// NewItem builds a fresh item from caller input.
//
// New items always start as READING with zero progress and no comments.
// A fresh UUIDv7 id is generated here.
func NewItem(input NewItemInput, now time.Time) LibraryItem {
	return LibraryItem{
		ID:              uuid.New(),
		Title:           input.Title,
		Author:          input.Author,
		Type:            input.Type,
		Status:          StatusReading,
		CurrentProgress: 0,
		TotalProgress:   input.TotalProgress,
		CoverURL:        input.CoverURL,
		LastUpdated:     now,
		Comments:        []Comment{},
	}
}

// Add prepends item to the list, so the newest addition surfaces first.
func Add(items []LibraryItem, item LibraryItem) []LibraryItem {
	next := make([]LibraryItem, 0, len(items)+1)
	next = append(next, item)
	return append(next, items...)
}

// UpdateProgress sets the item's progress counter.
//
// The value is assumed in-range (0 <= progress <= total); the presentation
// boundary rejects anything else before it reaches this function. Status
// becomes FINISHED exactly when progress reaches the total, READING otherwise.
func UpdateProgress(items []LibraryItem, id string, progress int, now time.Time) []LibraryItem {
	return mutate(items, id, func(item *LibraryItem) {
		item.CurrentProgress = progress
		if progress >= item.TotalProgress {
			item.Status = StatusFinished
		} else {
			item.Status = StatusReading
		}
		item.LastUpdated = now
	})
}

// UpdateReview overwrites the item's rating and review text unconditionally.
// Status and progress are untouched.
func UpdateReview(items []LibraryItem, id string, rating int, review string, now time.Time) []LibraryItem {
	return mutate(items, id, func(item *LibraryItem) {
		item.Rating = &rating
		item.Review = &review
		item.LastUpdated = now
	})
}

// UpdateCover overwrites the item's cover URL. Remote URLs and embedded
// data-encoded images are accepted without distinction.
func UpdateCover(items []LibraryItem, id, coverURL string, now time.Time) []LibraryItem {
	return mutate(items, id, func(item *LibraryItem) {
		item.CoverURL = coverURL
		item.LastUpdated = now
	})
}

// NewComment builds a comment carrying a snapshot of the poster's identity.
func NewComment(text, userName, userAvatar string, now time.Time) Comment {
	return Comment{
		ID:         uuid.New(),
		UserName:   userName,
		UserAvatar: userAvatar,
		Text:       text,
		Timestamp:  now,
	}
}

// AddComment appends comment to the item's comment thread.
//
// A comment whose text is empty after trimming is rejected as a no-op:
// the returned list is value-equal to the input.
func AddComment(items []LibraryItem, itemID string, comment Comment, now time.Time) []LibraryItem {
	if strings.TrimSpace(comment.Text) == "" {
		return slices.Clone(items)
	}
	return mutate(items, itemID, func(item *LibraryItem) {
		// Clip forces append to allocate, keeping the input list untouched.
		item.Comments = append(slices.Clip(item.Comments), comment)
		item.LastUpdated = now
	})
}

// ToggleStatus flips FINISHED <-> READING.
//
// Finishing jumps progress to the total; un-finishing resets it to zero.
// The reset is deliberate — re-entering READING never preserves progress.
func ToggleStatus(items []LibraryItem, id string, now time.Time) []LibraryItem {
	return mutate(items, id, func(item *LibraryItem) {
		if item.Status == StatusFinished {
			item.Status = StatusReading
			item.CurrentProgress = 0
		} else {
			item.Status = StatusFinished
			item.CurrentProgress = item.TotalProgress
		}
		item.LastUpdated = now
	})
}

// Delete removes the item from the list. Obtaining user confirmation first
// is the presentation layer's responsibility.
func Delete(items []LibraryItem, id string) []LibraryItem {
	next := make([]LibraryItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	return next
}

// # Internal Helpers

// mutate clones the list and applies apply to the item matching id.
// When no item matches, the clone is returned unchanged.
func mutate(items []LibraryItem, id string, apply func(*LibraryItem)) []LibraryItem {
	next := slices.Clone(items)
	for i := range next {
		if next[i].ID == id {
			apply(&next[i])
			break
		}
	}
	return next
}
