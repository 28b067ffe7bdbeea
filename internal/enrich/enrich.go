// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package enrich provides best-effort metadata lookup for new library items.

Given a title and author, it asks a generative model for the work's total
page/chapter count and a one-sentence description. The contract is strictly
best-effort: any failure — transport error, malformed response, timeout,
missing API key — degrades to "no suggestion" and the add-item flow proceeds
with manual or default values. Enrichment can never block or fail item
creation.
*/
package enrich

import (
	stdctx "context"
	"log/slog"

	"github.com/taibuivan/bibliotech/internal/platform/constants"
)

// # Contracts

// Suggestion is the optional metadata returned by a successful lookup.
type Suggestion struct {
	// TotalPages is the suggested page count (or chapter count for comics).
	TotalPages *int `json:"total_pages,omitempty"`

	// Description is a short one-sentence summary of the work.
	Description string `json:"description,omitempty"`
}

// Lookup is the outbound port to the metadata provider.
type Lookup interface {
	/*
		BookDetails fetches metadata for a titled work.

		Parameters:
		  - context: context.Context (carries the lookup deadline)
		  - title: string (required)
		  - author: string (may be empty)

		Returns:
		  - *Suggestion: The provider's suggestion
		  - error: Transport or response-shape failures
	*/
	BookDetails(context stdctx.Context, title, author string) (*Suggestion, error)
}

// # Service Layer

// Service wraps a [Lookup] with the never-fail enrichment contract.
type Service struct {
	lookup Lookup
	logger *slog.Logger
}

// NewService constructs the enrichment [Service].
//
// A nil lookup is valid and means enrichment is not configured; every
// Suggest call then returns no suggestion.
func NewService(lookup Lookup, logger *slog.Logger) *Service {
	return &Service{lookup: lookup, logger: logger}
}

/*
Suggest fetches metadata for a work, absorbing every failure.

Description: Bounds the lookup with the enrichment timeout and maps any
error to a nil suggestion. The caller cannot distinguish "provider down"
from "no data" — by design, both mean "fill the form yourself".

Parameters:
  - context: context.Context
  - title: string
  - author: string

Returns:
  - *Suggestion: The suggestion, or nil when none is available
*/
func (service *Service) Suggest(context stdctx.Context, title, author string) *Suggestion {
	if service.lookup == nil {
		return nil
	}

	lookupCtx, cancel := stdctx.WithTimeout(context, constants.EnrichmentTimeout)
	defer cancel()

	suggestion, err := service.lookup.BookDetails(lookupCtx, title, author)
	if err != nil {
		service.logger.Warn("metadata_lookup_failed",
			slog.String("title", title),
			slog.Any("error", err),
		)
		return nil
	}

	return suggestion
}
