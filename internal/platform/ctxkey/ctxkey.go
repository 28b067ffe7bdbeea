// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines the private key types used for [context.Context] values.
//
// Using a dedicated unexported type prevents collisions with context keys
// defined by third-party packages.
package ctxkey

type contextKey string

const (
	// KeyRequestID is the context key for the request correlation ID.
	KeyRequestID contextKey = "request_id"

	// KeyLogger is the context key for the per-request structured logger.
	KeyLogger contextKey = "logger"
)
