// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package fold provides case-insensitive string matching for search input.
//
// # Usage
//
// Library search must match titles and authors regardless of letter case,
// including non-ASCII titles (e.g. "BERSERK", "Çalıkuşu"). This package uses
// Unicode case folding, which handles the cases ASCII lowercasing gets wrong.
package fold

import (
	"strings"

	"golang.org/x/text/cases"
)

var caser = cases.Fold()

// Contains reports whether substr is contained in s under Unicode case folding.
//
// An empty substr matches everything, mirroring substring search semantics.
func Contains(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(caser.String(s), caser.String(substr))
}

// Equal reports whether two strings are equal under Unicode case folding.
func Equal(a, b string) bool {
	return caser.String(a) == caser.String(b)
}
