package scope

import (
	"slices"

	m "github.com/mouse-blink/halint/internal/model"
)

// entry pairs an open frame with the declaration state of its parent, which
// is restored when the frame closes.
type entry struct {
	frame  *m.Frame
	decl   []Token
	parens int
}

// Stack is the ordered list of open frames, innermost last.
type Stack struct {
	entries []entry
}

// Depth is the number of open frames.
func (s *Stack) Depth() int {
	return len(s.entries)
}

// Empty reports whether no frame is open.
func (s *Stack) Empty() bool {
	return len(s.entries) == 0
}

// Top returns the innermost open frame, or nil.
func (s *Stack) Top() *m.Frame {
	if len(s.entries) == 0 {
		return nil
	}

	return s.entries[len(s.entries)-1].frame
}

// Frames returns the open frames, outermost first.
func (s *Stack) Frames() []*m.Frame {
	frames := make([]*m.Frame, len(s.entries))
	for i, e := range s.entries {
		frames[i] = e.frame
	}

	return frames
}

// InnermostClass returns the closest enclosing class-like frame, or nil.
func (s *Stack) InnermostClass() *m.Frame {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if f := s.entries[i].frame; f.IsClass() {
			return f
		}
	}

	return nil
}

// InClassBody reports whether the innermost frame is a class body.
func (s *Stack) InClassBody() bool {
	return s.Top().IsClass()
}

// InNamespaceBody reports whether the innermost frame is a namespace body.
func (s *Stack) InNamespaceBody() bool {
	return s.Top().IsNamespace()
}

// InExternC reports whether the innermost frame is an extern "C" block.
func (s *Stack) InExternC() bool {
	top := s.Top()
	return top != nil && top.Keyword == "extern"
}

// Snapshot returns a copy of the stack that is not affected by later pushes
// and pops. Frames are shared.
func (s *Stack) Snapshot() *Stack {
	return &Stack{entries: slices.Clone(s.entries)}
}

func (s *Stack) push(e entry) {
	s.entries = append(s.entries, e)
}

func (s *Stack) pop() entry {
	e := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]

	return e
}
