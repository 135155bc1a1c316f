package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOptions(t *testing.T) {
	cfg := newStartConfig(nil)
	assert.Equal(t, FormatEmacs, cfg.format)
	assert.Equal(t, CountingTotal, cfg.counting)
	assert.False(t, cfg.quiet)

	cfg = newStartConfig([]StartOption{WithFormat(FormatVS7), WithCounting(CountingDetailed), WithQuiet(true)})
	assert.Equal(t, FormatVS7, cfg.format)
	assert.Equal(t, CountingDetailed, cfg.counting)
	assert.True(t, cfg.quiet)
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatEmacs, got)

	_, err = ParseFormat("xml")
	assert.ErrorContains(t, err, `unknown output format "xml"`)

	assert.True(t, FormatJUnit.Buffered())
	assert.True(t, FormatJSON.Buffered())
	assert.False(t, FormatEclipse.Buffered())
}

func TestParseCounting(t *testing.T) {
	got, err := ParseCounting("")
	require.NoError(t, err)
	assert.Equal(t, CountingTotal, got)

	got, err = ParseCounting("toplevel")
	require.NoError(t, err)
	assert.Equal(t, CountingTopLevel, got)

	_, err = ParseCounting("some")
	assert.Error(t, err)
}

func TestTopLevelCounts(t *testing.T) {
	got := topLevelCounts(map[string]int{
		"readability/braces":       2,
		"readability/constructors": 1,
		"build/class":              3,
	})

	assert.Equal(t, map[string]int{"readability": 3, "build": 3}, got)
	assert.Equal(t, []string{"build", "readability"}, sortedKeys(got))
}
