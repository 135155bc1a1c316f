package rules

import (
	"fmt"

	"github.com/mouse-blink/halint/internal/domain/scope"
	m "github.com/mouse-blink/halint/internal/model"
)

// DefaultMarkers are the macros that must close a class body.
var DefaultMarkers = []string{"DISALLOW_COPY_AND_ASSIGN", "DISALLOW_IMPLICIT_CONSTRUCTORS"}

type matchState uint8

const (
	matchIdle matchState = iota
	matchMarker
	matchParen
	matchName
	matchScope
)

// MacroPlacement reports marker macros such as DISALLOW_COPY_AND_ASSIGN(Foo)
// that are not the last significant line of the class they sit in.
//
// A marker only counts when it is a direct member of a class-like frame and
// its argument names that class. Markers in method bodies are ignored.
type MacroPlacement struct {
	*scope.Evaluator

	markers map[string]struct{}
	report  func(m.Diagnostic)

	state  matchState
	marker scope.Token
	frame  *m.Frame
	arg    string

	occurrences []m.MacroOccurrence
}

// NewMacroPlacement returns the rule for the given marker names; an empty
// list means DefaultMarkers.
func NewMacroPlacement(markers []string, report func(m.Diagnostic)) *MacroPlacement {
	if len(markers) == 0 {
		markers = DefaultMarkers
	}

	r := &MacroPlacement{
		markers: make(map[string]struct{}, len(markers)),
		report:  report,
	}

	for _, name := range markers {
		r.markers[name] = struct{}{}
	}

	r.Evaluator = scope.NewEvaluator(r.resolve)

	return r
}

func (r *MacroPlacement) Category() string {
	return CategoryConstructors
}

// Occurrences returns the marker invocations recognised so far.
func (r *MacroPlacement) Occurrences() []m.MacroOccurrence {
	return r.occurrences
}

// Token matches MARKER ( Name[::Name...] ) across lines.
func (r *MacroPlacement) Token(tok scope.Token, s *scope.Stack) {
	switch r.state {
	case matchMarker:
		if tok.Is("(") {
			r.state = matchParen
			return
		}
	case matchParen:
		if tok.Kind == scope.TokIdent {
			r.arg = tok.Text
			r.state = matchName

			return
		}
	case matchName:
		switch {
		case tok.Is("::"):
			r.state = matchScope
			return
		case tok.Is(")"):
			r.complete(tok)
			r.state = matchIdle

			return
		}
	case matchScope:
		if tok.Kind == scope.TokIdent {
			r.arg = tok.Text
			r.state = matchName

			return
		}
	}

	r.state = matchIdle
	r.start(tok, s)
}

func (r *MacroPlacement) start(tok scope.Token, s *scope.Stack) {
	if tok.Kind != scope.TokIdent || !s.InClassBody() {
		return
	}

	if _, ok := r.markers[tok.Text]; !ok {
		return
	}

	r.state = matchMarker
	r.marker = tok
	r.frame = s.Top()
	r.arg = ""
}

// complete records the occurrence. Placement is judged on the line of the
// closing parenthesis.
func (r *MacroPlacement) complete(closing scope.Token) {
	if r.frame.Name == "" || r.arg != r.frame.ShortName() {
		return
	}

	occ := m.MacroOccurrence{
		Position: r.marker.Pos,
		Macro:    r.marker.Text,
		Argument: r.arg,
		Frame:    r.frame,
	}

	r.occurrences = append(r.occurrences, occ)
	r.Defer(r.frame, scope.Candidate{Position: closing.Pos, Value: occ})
}

func (r *MacroPlacement) resolve(f *m.Frame, c scope.Candidate, v scope.Verdict) {
	occ, ok := c.Value.(m.MacroOccurrence)
	if !ok {
		return
	}

	var msg string

	switch v {
	case scope.Last:
		return
	case scope.NotLast:
		msg = occ.Macro + " should be the last thing in the class"
	case scope.Unclosed:
		msg = fmt.Sprintf("%s in class %s which is never closed", occ.Macro, f.Name)
	}

	r.report(m.Diagnostic{
		Line:       occ.Line,
		Column:     occ.Column,
		Rule:       CategoryConstructors,
		Message:    msg,
		Severity:   m.SeverityWarning,
		Confidence: 3,
	})
}
