// Package scope turns classified lines into a stack of brace-delimited
// frames and lets rules observe tokens against that stack.
package scope

import (
	"fmt"
	"slices"

	"github.com/mouse-blink/halint/internal/domain/lexer"
	m "github.com/mouse-blink/halint/internal/model"
)

// Rule categories reported by the tracker.
const (
	CategoryBraces     = "readability/braces"
	CategoryClass      = "build/class"
	CategoryNamespaces = "build/namespaces"
)

// Observer is notified as the tracker walks the code. Token is called for
// every code token before the tracker applies it, so s still describes the
// scope the token was found in.
type Observer interface {
	FrameOpened(f *m.Frame)
	Token(tok Token, s *Stack)
	FrameClosed(f *m.Frame)
}

// state is a checkpoint of the tracker. frames holds the open frames as
// they were when the checkpoint was taken.
type state struct {
	entries []entry
	frames  []m.Frame
	decl    []Token
	parens  int
}

// branch is one #if ... #endif group. Every #else and #elif branch starts
// from fresh copies of the frames in start, so a frame closed in one branch
// can be closed again in the next one. afterIf keeps the frames of the
// first branch, which win at #endif.
type branch struct {
	start   state
	afterIf *state
}

// Tracker maintains the scope stack for one file.
type Tracker struct {
	stack     Stack
	decl      []Token
	parens    int
	branches  []branch
	observers []Observer
}

// NewTracker returns a tracker for a single file.
func NewTracker(observers ...Observer) *Tracker {
	return &Tracker{observers: observers}
}

// Stack returns the live scope stack.
func (t *Tracker) Stack() *Stack {
	return &t.stack
}

// Feed consumes one classified line and returns the structural problems
// found on it.
func (t *Tracker) Feed(line lexer.Line) []m.Diagnostic {
	var problems []m.Diagnostic

	if line.Directive != "" {
		t.directive(line.Directive)
	}

	for _, tok := range Tokenize(line) {
		for _, o := range t.observers {
			o.Token(tok, &t.stack)
		}

		if p, ok := t.consume(tok); ok {
			problems = append(problems, p)
		}
	}

	return problems
}

// Finish reports every frame still open, innermost first. The stack is left
// intact so observers can inspect it.
func (t *Tracker) Finish() []m.Diagnostic {
	var problems []m.Diagnostic

	frames := t.stack.Frames()
	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		if f.Closed {
			continue
		}

		problems = append(problems, unterminated(f))
	}

	return problems
}

func unterminated(f *m.Frame) m.Diagnostic {
	d := m.Diagnostic{
		Line:       f.Open.Line,
		Column:     f.Open.Column,
		Severity:   m.SeverityError,
		Confidence: 5,
	}

	name := f.Name
	if name == "" {
		name = "(anonymous)"
	}

	switch {
	case f.IsClass():
		d.Rule = CategoryClass
		d.Message = fmt.Sprintf("Failed to find complete declaration of %s %s", f.Keyword, name)
	case f.IsNamespace():
		d.Rule = CategoryNamespaces
		d.Message = "Failed to find complete declaration of namespace " + name
	default:
		d.Rule = CategoryBraces
		d.Message = fmt.Sprintf("Could not find closing brace for %s block opened here", f.Keyword)
	}

	return d
}

func (t *Tracker) consume(tok Token) (m.Diagnostic, bool) {
	switch {
	case tok.Is("{"):
		t.open(tok)
		return m.Diagnostic{}, false
	case tok.Is("}"):
		return t.close(tok)
	}

	t.touch(tok.Pos.Line)

	switch {
	case tok.Is(";") && t.parens == 0:
		t.decl = nil
		return m.Diagnostic{}, false
	case tok.Is(":") && t.accessSpecifier():
		t.decl = nil
		return m.Diagnostic{}, false
	case tok.Is("("):
		t.parens++
	case tok.Is(")") && t.parens > 0:
		t.parens--
	}

	t.decl = append(t.decl, tok)

	return m.Diagnostic{}, false
}

func (t *Tracker) open(tok Token) {
	parent := t.stack.Top()
	t.touch(tok.Pos.Line)

	h := classify(t.decl, t.parens > 0)
	f := &m.Frame{
		Kind:       h.kind,
		Keyword:    h.keyword,
		Name:       h.name,
		Open:       tok.Pos,
		Expression: h.expression,
		Parent:     parent,
		Depth:      t.stack.Depth() + 1,
	}

	if f.IsClass() {
		f.Access = m.AccessPublic
		if f.Keyword == "class" {
			f.Access = m.AccessPrivate
		}
	}

	t.stack.push(entry{frame: f, decl: t.decl, parens: t.parens})
	t.decl = nil
	t.parens = 0

	for _, o := range t.observers {
		o.FrameOpened(f)
	}
}

func (t *Tracker) close(tok Token) (m.Diagnostic, bool) {
	if t.stack.Empty() {
		t.decl = nil

		return m.Diagnostic{
			Line:       tok.Pos.Line,
			Column:     tok.Pos.Column,
			Rule:       CategoryBraces,
			Message:    "Unmatched closing brace",
			Severity:   m.SeverityError,
			Confidence: 5,
		}, true
	}

	e := t.stack.pop()
	f := e.frame
	f.Close = tok.Pos
	f.Closed = true

	t.decl = nil
	if f.Expression {
		t.decl = append(slices.Clone(e.decl), Token{Kind: TokPunct, Text: placeholder, Pos: tok.Pos})
	}

	t.parens = e.parens
	t.touch(tok.Pos.Line)

	for _, o := range t.observers {
		o.FrameClosed(f)
	}

	return m.Diagnostic{}, false
}

func (t *Tracker) touch(line int) {
	if top := t.stack.Top(); top != nil && !top.Closed {
		top.LastSignificantLine = line
	}
}

// accessSpecifier applies `public:`, `protected slots:`, `signals:` and the
// like to the innermost class when the declaration so far is exactly one.
func (t *Tracker) accessSpecifier() bool {
	top := t.stack.Top()
	if !top.IsClass() || t.parens > 0 {
		return false
	}

	words := make([]string, 0, len(t.decl))
	for _, tok := range t.decl {
		if tok.Kind != TokIdent {
			return false
		}

		words = append(words, tok.Text)
	}

	var access m.Access

	switch {
	case len(words) == 1 && (words[0] == "signals" || words[0] == "Q_SIGNALS"):
		access = m.AccessSignals
	case len(words) >= 1 && len(words) <= 2:
		switch words[0] {
		case "public":
			access = m.AccessPublic
		case "protected":
			access = m.AccessProtected
		case "private":
			access = m.AccessPrivate
		default:
			return false
		}

		if len(words) == 2 && words[1] != "slots" && words[1] != "Q_SLOTS" {
			return false
		}
	default:
		return false
	}

	top.Access = access

	return true
}

func (t *Tracker) save() state {
	frames := make([]m.Frame, len(t.stack.entries))
	for i, e := range t.stack.entries {
		frames[i] = *e.frame
	}

	return state{
		entries: slices.Clone(t.stack.entries),
		frames:  frames,
		decl:    slices.Clone(t.decl),
		parens:  t.parens,
	}
}

// restore makes s the live state. The frames of s are reused as they are.
func (t *Tracker) restore(s state) {
	t.stack.entries = slices.Clone(s.entries)
	t.decl = slices.Clone(s.decl)
	t.parens = s.parens
}

// reopen makes s the live state with new frames copied from the checkpoint,
// leaving the frames of the abandoned branch untouched.
func (t *Tracker) reopen(s state) {
	t.restore(s)

	var parent *m.Frame

	for i := range t.stack.entries {
		f := s.frames[i]
		if i > 0 {
			f.Parent = parent
		}

		t.stack.entries[i].frame = &f
		parent = &f
	}
}

// directive checkpoints the stack across conditional compilation so that
// only the first branch of an #if group shapes the scopes that follow.
func (t *Tracker) directive(name string) {
	switch name {
	case "if", "ifdef", "ifndef":
		t.branches = append(t.branches, branch{start: t.save()})
	case "else", "elif", "elifdef", "elifndef":
		if len(t.branches) == 0 {
			return
		}

		b := &t.branches[len(t.branches)-1]
		if b.afterIf == nil {
			s := t.save()
			b.afterIf = &s
		}

		t.reopen(b.start)
	case "endif":
		if len(t.branches) == 0 {
			return
		}

		b := t.branches[len(t.branches)-1]
		t.branches = t.branches[:len(t.branches)-1]

		if b.afterIf != nil {
			t.restore(*b.afterIf)
		}
	}
}
