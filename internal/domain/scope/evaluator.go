package scope

import (
	m "github.com/mouse-blink/halint/internal/model"
)

// Verdict is the outcome of a deferred position check.
type Verdict uint8

const (
	// Last means the candidate sits on the frame's final significant line.
	Last Verdict = iota
	// NotLast means significant code follows the candidate in its frame.
	NotLast
	// Unclosed means the frame was still open at end of input.
	Unclosed
)

func (v Verdict) String() string {
	switch v {
	case Last:
		return "last"
	case NotLast:
		return "not-last"
	default:
		return "unclosed"
	}
}

// Candidate is a position whose placement can only be judged once its frame
// closes. Value carries rule-specific data back to the resolver.
type Candidate struct {
	m.Position
	Value any
}

// ResolveFunc receives every deferred candidate exactly once.
type ResolveFunc func(f *m.Frame, c Candidate, v Verdict)

// Evaluator buffers candidates per frame and resolves them when the frame is
// popped. It implements Observer and must be registered with the Tracker.
type Evaluator struct {
	resolve ResolveFunc
	pending map[*m.Frame][]Candidate
}

// NewEvaluator returns an evaluator that reports to resolve.
func NewEvaluator(resolve ResolveFunc) *Evaluator {
	return &Evaluator{
		resolve: resolve,
		pending: make(map[*m.Frame][]Candidate),
	}
}

// Defer buffers c until f closes.
func (e *Evaluator) Defer(f *m.Frame, c Candidate) {
	e.pending[f] = append(e.pending[f], c)
}

// Pending returns the number of unresolved candidates.
func (e *Evaluator) Pending() int {
	n := 0
	for _, cs := range e.pending {
		n += len(cs)
	}

	return n
}

// IsLast answers the placement query for a line of f. known is false while
// f is still open, since later lines may still become significant.
func IsLast(f *m.Frame, line int) (last, known bool) {
	if !f.Closed {
		return false, false
	}

	return line == f.LastSignificantLine, true
}

func (e *Evaluator) FrameOpened(*m.Frame) {}

func (e *Evaluator) Token(Token, *Stack) {}

// FrameClosed resolves every candidate of f in the order they were deferred.
func (e *Evaluator) FrameClosed(f *m.Frame) {
	cs, ok := e.pending[f]
	if !ok {
		return
	}

	delete(e.pending, f)

	for _, c := range cs {
		v := NotLast
		if last, _ := IsLast(f, c.Line); last {
			v = Last
		}

		e.resolve(f, c, v)
	}
}

// Finish resolves the candidates of frames still open on s as Unclosed,
// innermost first. Candidates of frames that were dropped by preprocessor
// branch restoration are discarded.
func (e *Evaluator) Finish(s *Stack) {
	open := s.Frames()
	for i := len(open) - 1; i >= 0; i-- {
		f := open[i]

		cs, ok := e.pending[f]
		if !ok {
			continue
		}

		delete(e.pending, f)

		for _, c := range cs {
			e.resolve(f, c, Unclosed)
		}
	}

	e.Discard()
}

// Discard drops every unresolved candidate.
func (e *Evaluator) Discard() {
	clear(e.pending)
}
