package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilters(t *testing.T) {
	fs, err := ParseFilters("-readability, +readability/constructors", "", "-build/class")
	require.NoError(t, err)
	assert.Equal(t, Filters{"-readability", "+readability/constructors", "-build/class"}, fs)

	_, err = ParseFilters("+build", "whitespace")
	assert.ErrorIs(t, err, ErrFilter)
	assert.ErrorContains(t, err, `"whitespace"`)
}

func TestFilters_Allows(t *testing.T) {
	tests := []struct {
		name     string
		filters  Filters
		category string
		want     bool
	}{
		{"no filters", nil, "readability/braces", true},
		{"excluded by prefix", Filters{"-readability"}, "readability/braces", false},
		{"other category", Filters{"-readability"}, "build/class", true},
		{"last match wins", Filters{"-readability", "+readability/braces"}, "readability/braces", true},
		{"re-excluded", Filters{"+readability/braces", "-readability"}, "readability/braces", false},
		{"everything", Filters{"-"}, "build/namespaces", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filters.Allows(tt.category))
		})
	}
}
