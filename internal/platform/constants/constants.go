// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Persistence: Versioned snapshot document keys.
  - Library Defaults: Fallback values used during item creation.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "bibliotech-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	// Generous enough to cover one metadata lookup round-trip.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Snapshot Persistence

const (
	// SnapshotKeyLibrary is the versioned document key for the full item list.
	SnapshotKeyLibrary = "library-state-v1"

	// SnapshotKeyProfile is the versioned document key for the user profile.
	SnapshotKeyProfile = "user-profile-v1"
)

// # Library Defaults

const (
	// DefaultTotalProgress is the fallback page/chapter count applied when the
	// caller supplies none and metadata enrichment yields no suggestion.
	DefaultTotalProgress = 100

	// MaxRating is the upper bound of the 1-5 star rating scale.
	MaxRating = 5
)

// # Metadata Enrichment

const (
	// EnrichmentTimeout bounds a single metadata lookup round-trip.
	EnrichmentTimeout = 15 * time.Second

	// DefaultGeminiModel is the generative model used for metadata lookups.
	DefaultGeminiModel = "gemini-1.5-flash"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)
