// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package snapshot provides whole-document state persistence.

All durable state in Bibliotech lives in two serialized documents: the full
item list and the user profile. There are no partial writes, no deltas, and no
transaction log — every accepted mutation rewrites the entire document under a
versioned key. This is the direct analog of the browser localStorage model the
application replaces, and it is perfectly adequate at personal-library scale.

Backends:

  - FileStore: JSON documents under a local data directory (default).
  - RedisStore: string values under the same keys, for deployments that
    already run Redis.

# Concurrency

The store is single-writer by construction: one process, one state owner.
Backends only need to guarantee that an individual write is atomic so a crash
never leaves a half-written document behind.
*/
package snapshot

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no document exists under the requested key.
//
// Callers treat this as "first run", never as a failure.
var ErrNotFound = errors.New("snapshot: document not found")

// Store is the persistence port for whole-document snapshots.
type Store interface {
	/*
		Read returns the raw document stored under key.

		Parameters:
		  - context: context.Context
		  - key: string (versioned document key, e.g. "library-state-v1")

		Returns:
		  - []byte: The serialized document
		  - error: ErrNotFound when absent, otherwise backend failures
	*/
	Read(context context.Context, key string) ([]byte, error)

	/*
		Write replaces the document stored under key in a single atomic operation.

		Parameters:
		  - context: context.Context
		  - key: string
		  - data: []byte (full serialized document)

		Returns:
		  - error: Backend write failures
	*/
	Write(context context.Context, key string, data []byte) error
}
