package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFilter is returned for a filter that does not start with '+' or '-'.
var ErrFilter = errors.New("invalid filter")

// Filters is an ordered list of "+category" / "-category" prefixes. The last
// filter matching a category decides whether it is reported.
type Filters []string

// ParseFilters splits comma-separated filter lists and validates each entry.
func ParseFilters(lists ...string) (Filters, error) {
	var filters Filters

	for _, list := range lists {
		for part := range strings.SplitSeq(list, ",") {
			f := strings.TrimSpace(part)
			if f == "" {
				continue
			}

			if f[0] != '+' && f[0] != '-' {
				return nil, fmt.Errorf("%w %q: every filter must start with + or -", ErrFilter, f)
			}

			filters = append(filters, f)
		}
	}

	return filters, nil
}

// Allows reports whether category survives the filters.
func (fs Filters) Allows(category string) bool {
	allowed := true

	for _, f := range fs {
		if strings.HasPrefix(category, f[1:]) {
			allowed = f[0] == '+'
		}
	}

	return allowed
}
