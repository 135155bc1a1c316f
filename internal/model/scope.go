package model

import "fmt"

// SpanKind classifies a character of the input.
type SpanKind uint8

const (
	SpanCode SpanKind = iota
	SpanLineComment
	SpanBlockComment
	SpanString
	SpanChar
	SpanPreprocessor
)

var spanNames = [...]string{
	SpanCode:         "code",
	SpanLineComment:  "line-comment",
	SpanBlockComment: "block-comment",
	SpanString:       "string",
	SpanChar:         "char",
	SpanPreprocessor: "preprocessor",
}

func (k SpanKind) String() string {
	if int(k) < len(spanNames) {
		return spanNames[k]
	}

	return fmt.Sprintf("SpanKind(%d)", k)
}

// Inert reports whether braces and semicolons of this kind are ignored by the
// scope tracker.
func (k SpanKind) Inert() bool {
	return k != SpanCode
}

// FrameKind is the coarse classification of a brace-delimited region.
type FrameKind uint8

const (
	// FrameOtherBlock covers namespaces, enums, extern "C", control
	// statements, initializers and free-standing braces.
	FrameOtherBlock FrameKind = iota
	// FrameClassLike is a class, struct or union body.
	FrameClassLike
	// FrameFunctionLike is a function, method or lambda body.
	FrameFunctionLike
)

func (k FrameKind) String() string {
	switch k {
	case FrameClassLike:
		return "class-like"
	case FrameFunctionLike:
		return "function-like"
	default:
		return "block"
	}
}

// Access is the access-control section currently in effect in a class body.
type Access string

const (
	AccessNone      Access = ""
	AccessPublic    Access = "public"
	AccessProtected Access = "protected"
	AccessPrivate   Access = "private"
	AccessSignals   Access = "signals"
)

// Position is a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Frame is one open or closed brace-delimited region.
//
// LastSignificantLine is written only by the tracker while the frame is open.
// Once Closed is set the frame is never modified again.
type Frame struct {
	Kind    FrameKind
	Keyword string // class, struct, union, namespace, enum, extern, function, lambda, if, ...
	Name    string
	Access  Access

	Open  Position
	Close Position

	// LastSignificantLine is the latest line with code at this nesting level.
	// Zero means the body has no significant line yet.
	LastSignificantLine int

	// Expression is set for initializer and lambda braces that sit inside a
	// larger declaration.
	Expression bool

	Parent *Frame
	Depth  int
	Closed bool
}

// IsClass reports whether the frame is a class, struct or union body.
func (f *Frame) IsClass() bool {
	return f != nil && f.Kind == FrameClassLike
}

// IsNamespace reports whether the frame is a namespace body.
func (f *Frame) IsNamespace() bool {
	return f != nil && f.Keyword == "namespace"
}

// ShortName returns the last component of a qualified frame name.
func (f *Frame) ShortName() string {
	name := f.Name
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == ':' && name[i-1] == ':' {
			return name[i+1:]
		}
	}

	return name
}

func (f *Frame) String() string {
	if f.Name == "" {
		return fmt.Sprintf("%s@%v", f.Keyword, f.Open)
	}

	return fmt.Sprintf("%s %s@%v", f.Keyword, f.Name, f.Open)
}

// MacroOccurrence is a located marker macro invocation inside a class body.
type MacroOccurrence struct {
	Position
	Macro    string
	Argument string
	Frame    *Frame
}
