// Package rules holds the style rules built on the scope tracker and the
// catalog of every category halint can report.
package rules

import (
	"slices"
	"strings"

	"github.com/mouse-blink/halint/internal/domain/lexer"
	"github.com/mouse-blink/halint/internal/domain/scope"
	m "github.com/mouse-blink/halint/internal/model"
)

// Categories reported outside the scanner and the tracker.
const (
	CategoryConstructors = "readability/constructors"
	CategoryNolint       = "readability/nolint"
	CategoryUTF8         = "readability/utf8"
)

// Rule is a scope observer that reports violations through the callback it
// was built with.
type Rule interface {
	scope.Observer
	Category() string
	// Finish resolves state left for frames still open at end of input.
	Finish(s *scope.Stack)
	// Discard drops pending state without reporting it.
	Discard()
}

var catalog = []m.RuleInfo{
	{Category: scope.CategoryClass, Description: "class, struct or union body never closed", Severity: m.SeverityError, Structural: true},
	{Category: scope.CategoryNamespaces, Description: "namespace body never closed", Severity: m.SeverityError, Structural: true},
	{Category: scope.CategoryBraces, Description: "unmatched closing brace or unterminated block", Severity: m.SeverityError, Structural: true},
	{Category: CategoryConstructors, Description: "copy/constructor disabling macro is not the last member of its class", Severity: m.SeverityWarning},
	{Category: lexer.CategoryMultilineComment, Description: "block comment never closed", Severity: m.SeverityError, Structural: true},
	{Category: lexer.CategoryMultilineString, Description: "string, character or raw string literal never closed", Severity: m.SeverityError, Structural: true},
	{Category: CategoryNolint, Description: "NOLINT names an unknown category", Severity: m.SeverityWarning},
	{Category: CategoryUTF8, Description: "line contains invalid UTF-8", Severity: m.SeverityWarning},
}

// Catalog returns every known category, sorted by name.
func Catalog() []m.RuleInfo {
	rules := slices.Clone(catalog)
	slices.SortFunc(rules, func(a, b m.RuleInfo) int {
		return strings.Compare(a.Category, b.Category)
	})

	return rules
}

// Known reports whether category is in the catalog.
func Known(category string) bool {
	return slices.ContainsFunc(catalog, func(r m.RuleInfo) bool {
		return r.Category == category
	})
}

// Lookup returns the catalog entry for category.
func Lookup(category string) (m.RuleInfo, bool) {
	i := slices.IndexFunc(catalog, func(r m.RuleInfo) bool {
		return r.Category == category
	})
	if i < 0 {
		return m.RuleInfo{}, false
	}

	return catalog[i], true
}
