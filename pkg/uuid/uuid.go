// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for the platform.

It wraps the standard UUID library to specifically generate Version 7 values.

Advantages:

  - Sortable: Naturally ordered by creation time (millisecond precision).
  - Collision-safe: 74 bits of entropy per millisecond — far beyond the
    uniqueness needed for a personal library of any realistic size.
  - Compact: 128-bit storage, standard string representation.

This is the mandatory ID type for library items and comments.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}
