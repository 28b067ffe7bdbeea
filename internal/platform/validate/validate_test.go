// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bibliotech/internal/platform/apperr"
	"github.com/taibuivan/bibliotech/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "Dune", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Range checks the inclusive numeric range rule used for ratings
and progress bounds.
*/
func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		min     int
		max     int
		isValid bool
	}{
		{"lower_bound", 1, 1, 5, true},
		{"upper_bound", 5, 1, 5, true},
		{"below_range", 0, 1, 5, false},
		{"above_range", 6, 1, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Range("rating", tt.value, tt.min, tt.max)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOf checks the enumeration membership rule.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("type", "BOOK", "BOOK", "COMIC")
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	v.OneOf("type", "MAGAZINE", "BOOK", "COMIC")
	assert.True(t, v.HasErrors())
}

/*
TestValidator_Chaining verifies that multiple failures accumulate into one error.
*/
func TestValidator_Chaining(t *testing.T) {
	v := &validate.Validator{}
	v.Required("title", "").
		Required("author", "").
		Positive("total_progress", 0)

	err := v.Err()
	require.NotNil(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
}
