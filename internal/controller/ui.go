// Package controller renders lint results for the terminal and for tools.
package controller

import (
	"fmt"
	"slices"

	m "github.com/mouse-blink/halint/internal/model"
)

// Format selects how diagnostics are printed.
type Format string

// Supported output formats.
const (
	FormatEmacs   Format = "emacs"
	FormatEclipse Format = "eclipse"
	FormatVS7     Format = "vs7"
	FormatJUnit   Format = "junit"
	FormatJSON    Format = "json"
)

// Formats lists every supported format, default first.
var Formats = []Format{FormatEmacs, FormatEclipse, FormatVS7, FormatJUnit, FormatJSON}

// ParseFormat validates a format name. The empty string means emacs.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatEmacs, nil
	}

	if !slices.Contains(Formats, Format(s)) {
		return "", fmt.Errorf("unknown output format %q", s)
	}

	return Format(s), nil
}

// Buffered formats are written as one document when the UI closes.
func (f Format) Buffered() bool {
	return f == FormatJUnit || f == FormatJSON
}

// Counting selects how the closing error counts are broken down.
type Counting string

// Supported counting styles.
const (
	CountingTotal    Counting = "total"
	CountingTopLevel Counting = "toplevel"
	CountingDetailed Counting = "detailed"
)

// ParseCounting validates a counting style. The empty string means total.
func ParseCounting(s string) (Counting, error) {
	switch Counting(s) {
	case "":
		return CountingTotal, nil
	case CountingTotal, CountingTopLevel, CountingDetailed:
		return Counting(s), nil
	default:
		return "", fmt.Errorf("unknown counting style %q", s)
	}
}

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	format   Format
	counting Counting
	quiet    bool
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{format: FormatEmacs, counting: CountingTotal}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

func (c StartConfig) Format() Format     { return c.format }
func (c StartConfig) Counting() Counting { return c.counting }
func (c StartConfig) Quiet() bool        { return c.quiet }

// WithFormat sets the diagnostic output format.
func WithFormat(f Format) StartOption {
	return func(c *StartConfig) {
		c.format = f
	}
}

// WithCounting sets how the summary breaks down error counts.
func WithCounting(counting Counting) StartOption {
	return func(c *StartConfig) {
		c.counting = counting
	}
}

// WithQuiet suppresses progress lines and the summary of a clean run.
func WithQuiet(quiet bool) StartOption {
	return func(c *StartConfig) {
		c.quiet = quiet
	}
}

// UI defines the interface for displaying lint results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	DisplayFile(report m.FileReport)
	DisplaySummary(summary m.Summary)
	DisplayRules(rules []m.RuleInfo)
	DisplayReport(report m.Report) error
}

// topLevelCounts folds per-category counts into their first path element.
func topLevelCounts(byCategory map[string]int) map[string]int {
	out := make(map[string]int, len(byCategory))
	for category, n := range byCategory {
		out[m.Diagnostic{Rule: category}.TopLevel()] += n
	}

	return out
}

func sortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
