// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bibliotech/pkg/fold"
)

func TestContains(t *testing.T) {
	tests := []struct {
		name    string
		s       string
		substr  string
		matches bool
	}{
		{"exact_match", "Watchmen", "Watchmen", true},
		{"case_insensitive", "Watchmen", "wat", true},
		{"upper_needle", "watchmen", "WATCH", true},
		{"no_match", "Dune", "wat", false},
		{"empty_needle_matches_all", "Dune", "", true},
		{"unicode_folding", "BERSERK", "berserk", true},
		{"substring_in_middle", "The Great Gatsby", "great", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, fold.Contains(tt.s, tt.substr))
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, fold.Equal("Dune", "dune"))
	assert.False(t, fold.Equal("Dune", "Dune II"))
}
