// Package domain lints C and C++ files: it drives the scanner and the rules
// for one file and fans whole runs out over workers.
package domain

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/mouse-blink/halint/internal/domain/lexer"
	"github.com/mouse-blink/halint/internal/domain/rules"
	"github.com/mouse-blink/halint/internal/domain/scope"
	m "github.com/mouse-blink/halint/internal/model"
)

// Fatal per-file outcomes. Diagnostics are never errors.
var (
	ErrUnreadable = errors.New("unreadable input")
	ErrEncoding   = errors.New("unsupported encoding")
)

// Options configure a Linter.
type Options struct {
	// Markers are the macro names that must close a class body. Empty means
	// rules.DefaultMarkers.
	Markers []string
	// Rules enables or disables categories; categories not listed are on.
	Rules map[string]bool
	// Filters are "+category" / "-category" prefixes, applied in order.
	Filters []string
	// Verbose drops diagnostics whose confidence is below it.
	Verbose int
}

// Linter checks the content of one file at a time. It holds configuration
// only and is safe for concurrent use.
type Linter interface {
	Lint(file m.Path, content []byte) ([]m.Diagnostic, error)
	Diagnostics(file m.Path, content []byte) iter.Seq2[m.Diagnostic, error]
}

type linter struct {
	markers []string
	rules   map[string]bool
	filters Filters
	verbose int
}

// NewLinter validates opts and returns a Linter.
func NewLinter(opts Options) (Linter, error) {
	filters, err := ParseFilters(opts.Filters...)
	if err != nil {
		return nil, err
	}

	for category := range opts.Rules {
		if !rules.Known(category) {
			return nil, fmt.Errorf("unknown rule category %q", category)
		}
	}

	return &linter{
		markers: opts.Markers,
		rules:   opts.Rules,
		filters: filters,
		verbose: opts.Verbose,
	}, nil
}

// Lint returns every diagnostic for content ordered by line, column and rule.
func (l *linter) Lint(file m.Path, content []byte) ([]m.Diagnostic, error) {
	var diags []m.Diagnostic

	for d, err := range l.Diagnostics(file, content) {
		if err != nil {
			return nil, err
		}

		diags = append(diags, d)
	}

	m.SortDiagnostics(diags)

	return diags, nil
}

// Diagnostics streams diagnostics in discovery order. Rule violations
// surface when the frame they belong to closes. A fatal problem is yielded
// once as a non-nil error and ends the sequence.
func (l *linter) Diagnostics(file m.Path, content []byte) iter.Seq2[m.Diagnostic, error] {
	return func(yield func(m.Diagnostic, error) bool) {
		if i := bytes.IndexByte(content, 0); i >= 0 {
			yield(m.Diagnostic{}, fmt.Errorf("%w: %s: NUL byte at offset %d", ErrEncoding, file, i))
			return
		}

		p := l.newPass()

		emit := func(found []m.Diagnostic) bool {
			for _, d := range found {
				d.File = file
				if !l.keep(d, p.nolint) {
					continue
				}

				if !yield(d, nil) {
					return false
				}
			}

			return true
		}

		for i, text := range splitLines(content) {
			if !emit(p.line(i+1, text)) {
				return
			}
		}

		emit(p.finish())
	}
}

func (l *linter) enabled(category string) bool {
	on, ok := l.rules[category]
	return !ok || on
}

func (l *linter) keep(d m.Diagnostic, nolint *suppressionIndex) bool {
	switch {
	case !l.enabled(d.Rule):
		return false
	case d.Confidence < l.verbose:
		return false
	case !l.filters.Allows(d.Rule):
		return false
	}

	return !nolint.suppressed(d)
}

// pass is the state for one file.
type pass struct {
	classifier *lexer.Classifier
	tracker    *scope.Tracker
	rules      []rules.Rule
	nolint     *suppressionIndex
	found      []m.Diagnostic
}

func (l *linter) newPass() *pass {
	p := &pass{
		classifier: lexer.NewClassifier(),
		nolint:     newSuppressionIndex(),
	}

	report := func(d m.Diagnostic) {
		p.found = append(p.found, d)
	}

	if l.enabled(rules.CategoryConstructors) {
		p.rules = append(p.rules, rules.NewMacroPlacement(l.markers, report))
	}

	observers := make([]scope.Observer, len(p.rules))
	for i, r := range p.rules {
		observers[i] = r
	}

	p.tracker = scope.NewTracker(observers...)

	return p
}

func (p *pass) line(number int, text string) []m.Diagnostic {
	if !utf8.ValidString(text) || strings.ContainsRune(text, utf8.RuneError) {
		p.found = append(p.found, m.Diagnostic{
			Line:       number,
			Column:     1,
			Rule:       rules.CategoryUTF8,
			Message:    "Line contains invalid UTF-8 (or Unicode replacement character).",
			Severity:   m.SeverityWarning,
			Confidence: 5,
		})
	}

	line := p.classifier.Line(number, text)

	p.found = append(p.found, p.nolint.scan(line)...)
	p.found = append(p.found, line.Problems...)

	// Feed may report rule violations into p.found through the callbacks.
	problems := p.tracker.Feed(line)
	p.found = append(p.found, problems...)

	return p.drain()
}

// finish closes the file. When the classifier ends inside a comment or raw
// string, every later brace was swallowed, so open frames are not reported
// and pending rule state is dropped.
func (p *pass) finish() []m.Diagnostic {
	eof := p.classifier.Finish()
	p.found = append(p.found, eof...)

	if len(eof) > 0 {
		for _, r := range p.rules {
			r.Discard()
		}

		return p.drain()
	}

	problems := p.tracker.Finish()
	p.found = append(p.found, problems...)

	for _, r := range p.rules {
		r.Finish(p.tracker.Stack())
	}

	return p.drain()
}

func (p *pass) drain() []m.Diagnostic {
	found := p.found
	p.found = nil

	return found
}

// splitLines splits on '\n'. A final newline does not start another line.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
