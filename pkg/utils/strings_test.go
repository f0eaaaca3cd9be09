package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"harnesscheck/pkg/utils"
)

func TestTruncate(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Limit    int
		Expected string
	}{
		{Name: "shorter_than_limit", Input: "abc", Limit: 5, Expected: "abc"},
		{Name: "exact_limit", Input: "abcde", Limit: 5, Expected: "abcde"},
		{Name: "longer_than_limit", Input: "abcdef", Limit: 3, Expected: "abc"},
		{Name: "empty", Input: "", Limit: 3, Expected: ""},
		{Name: "zero_limit", Input: "abc", Limit: 0, Expected: ""},
		{Name: "multibyte", Input: "✓✓✓✓", Limit: 2, Expected: "✓✓"},
		{Name: "multibyte_fits_in_runes", Input: "✓✗", Limit: 2, Expected: "✓✗"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, utils.Truncate(tc.Input, tc.Limit))
		})
	}
}
