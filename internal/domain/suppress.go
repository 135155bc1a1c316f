package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mouse-blink/halint/internal/domain/lexer"
	"github.com/mouse-blink/halint/internal/domain/rules"
	m "github.com/mouse-blink/halint/internal/model"
)

var nolintPattern = regexp.MustCompile(`\bNOLINT(NEXTLINE)?\b(\(([^)]*)\))?`)

// Categories belonging to other tools (clang-tidy) that may appear in NOLINT.
var foreignNolintPrefixes = []string{
	"clang-analyzer-", "abseil-", "altera-", "android-", "boost-", "bugprone-",
	"cert-", "concurrency-", "cppcoreguidelines-", "darwin-", "fuchsia-",
	"google-", "hicpp-", "linuxkernel-", "llvm-", "llvmlibc-", "misc-",
	"modernize-", "mpi-", "objc-", "openmp-", "performance-", "portability-",
	"readability-", "zircon-",
}

type suppression struct {
	all   bool
	names map[string]struct{}
}

func (s suppression) suppresses(category string) bool {
	if s.all {
		return true
	}

	_, ok := s.names[category]

	return ok
}

func mergeSuppression(dst *suppression, src suppression) {
	if src.all {
		dst.all = true
		dst.names = nil

		return
	}

	if dst.all || len(src.names) == 0 {
		return
	}

	if dst.names == nil {
		dst.names = make(map[string]struct{}, len(src.names))
	}

	for name := range src.names {
		dst.names[name] = struct{}{}
	}
}

// nolintDirective is one NOLINT or NOLINTNEXTLINE found in a comment.
type nolintDirective struct {
	rule    suppression
	next    bool
	unknown []string
}

// parseNolint reads `NOLINT`, `NOLINT(*)`, `NOLINT(a/b, c/d)` and the
// NOLINTNEXTLINE forms out of comment text.
func parseNolint(comment string) (nolintDirective, bool) {
	match := nolintPattern.FindStringSubmatch(comment)
	if match == nil {
		return nolintDirective{}, false
	}

	d := nolintDirective{next: match[1] != ""}

	list := strings.TrimSpace(match[3])
	if match[2] == "" || list == "" || list == "*" {
		d.rule.all = true
		return d, true
	}

	d.rule.names = make(map[string]struct{})

	for part := range strings.SplitSeq(list, ",") {
		name := strings.TrimSpace(part)

		switch {
		case name == "":
		case name == "*":
			d.rule = suppression{all: true}
			return d, true
		case rules.Known(name):
			d.rule.names[name] = struct{}{}
		case isForeignCategory(name):
		default:
			d.unknown = append(d.unknown, name)
		}
	}

	return d, true
}

func isForeignCategory(name string) bool {
	for _, prefix := range foreignNolintPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}

	return false
}

// suppressionIndex maps line numbers to the NOLINT rule in force there.
type suppressionIndex struct {
	line map[int]suppression
}

func newSuppressionIndex() *suppressionIndex {
	return &suppressionIndex{line: make(map[int]suppression)}
}

// scan records the NOLINT directive of a classified line and reports unknown
// categories it names.
func (idx *suppressionIndex) scan(line lexer.Line) []m.Diagnostic {
	d, ok := parseNolint(line.Comment())
	if !ok {
		return nil
	}

	target := line.Number
	if d.next {
		target++
	}

	rule := idx.line[target]
	mergeSuppression(&rule, d.rule)
	idx.line[target] = rule

	column := strings.Index(line.Text, "NOLINT") + 1

	problems := make([]m.Diagnostic, 0, len(d.unknown))
	for _, name := range d.unknown {
		problems = append(problems, m.Diagnostic{
			Line:       line.Number,
			Column:     column,
			Rule:       rules.CategoryNolint,
			Message:    fmt.Sprintf("Unknown NOLINT error category: %s", name),
			Severity:   m.SeverityWarning,
			Confidence: 5,
		})
	}

	return problems
}

func (idx *suppressionIndex) suppressed(d m.Diagnostic) bool {
	rule, ok := idx.line[d.Line]
	return ok && rule.suppresses(d.Rule)
}
