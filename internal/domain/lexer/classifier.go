// Package lexer classifies every character of C/C++ source as code, comment,
// literal or preprocessor text. It is the only component that looks at raw
// characters; everything above it works on classified lines.
package lexer

import (
	"strings"

	m "github.com/mouse-blink/halint/internal/model"
)

// Rule categories reported by the classifier.
const (
	CategoryMultilineComment = "readability/multiline_comment"
	CategoryMultilineString  = "readability/multiline_string"
)

type mode uint8

const (
	modeCode mode = iota
	modeLineComment
	modeBlockComment
	modeString
	modeChar
	modeRawString
)

// maxRawDelimiter is the longest d-char-sequence allowed in a raw string.
const maxRawDelimiter = 16

// Line is one physical source line with a classification for every byte.
type Line struct {
	Number int
	Text   string
	Kinds  []m.SpanKind

	// Directive is the preprocessor directive name ("if", "define", ...)
	// when a directive starts on this line.
	Directive string

	// Problems found while classifying this line.
	Problems []m.Diagnostic
}

// Code returns the line with every non-code byte replaced by a space.
func (l Line) Code() string {
	b := []byte(l.Text)
	for i, k := range l.Kinds {
		if k != m.SpanCode {
			b[i] = ' '
		}
	}

	return string(b)
}

// Comment returns the text of all comment spans on the line, space separated.
func (l Line) Comment() string {
	var sb strings.Builder

	prev := m.SpanCode
	for i, k := range l.Kinds {
		isComment := k == m.SpanLineComment || k == m.SpanBlockComment
		if isComment {
			if prev != k && sb.Len() > 0 {
				sb.WriteByte(' ')
			}

			sb.WriteByte(l.Text[i])
		}

		prev = k
	}

	return sb.String()
}

// Significant reports whether the line holds any non-blank code.
func (l Line) Significant() bool {
	for i, k := range l.Kinds {
		if k != m.SpanCode {
			continue
		}

		if !isSpace(l.Text[i]) {
			return true
		}
	}

	return false
}

// Classifier holds the lexical mode between lines. A zero Classifier is not
// usable; use NewClassifier. Each file needs its own Classifier.
type Classifier struct {
	mode      mode
	directive bool // inside a preprocessor directive
	opaque    bool // directive text is free-form (#error, #warning)
	escaped   bool
	rawDelim  string
	number    bool // inside a numeric literal, for digit separators
	start     m.Position
}

// NewClassifier returns a classifier positioned before the first line.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Kind returns the span kind the classifier would assign to the next
// character if nothing on it changed the mode.
func (c *Classifier) Kind() m.SpanKind {
	switch c.mode {
	case modeLineComment:
		return m.SpanLineComment
	case modeBlockComment:
		return m.SpanBlockComment
	case modeString, modeRawString:
		return m.SpanString
	case modeChar:
		return m.SpanChar
	}

	if c.directive {
		return m.SpanPreprocessor
	}

	return m.SpanCode
}

// Line classifies one physical line. number is 1-based and must increase
// between calls. A trailing carriage return is treated as whitespace.
func (c *Classifier) Line(number int, text string) Line {
	line := Line{
		Number: number,
		Text:   text,
		Kinds:  make([]m.SpanKind, len(text)),
	}

	if c.mode == modeCode && !c.directive {
		if first := firstNonSpace(text); first >= 0 && text[first] == '#' {
			c.directive = true
			line.Directive = directiveName(text[first+1:])
			c.opaque = line.Directive == "error" || line.Directive == "warning"
		}
	}

	for i := 0; i < len(text); {
		i += c.Step(text, i, number, line.Kinds)
	}

	c.endOfLine(&line)

	return line
}

// Step classifies the character at text[i] (and, for two-character
// openers and closers, the one after it) according to the active mode,
// writes the result into kinds and returns how many bytes were consumed.
func (c *Classifier) Step(text string, i, number int, kinds []m.SpanKind) int {
	ch := text[i]

	var next byte
	if i+1 < len(text) {
		next = text[i+1]
	}

	switch c.mode {
	case modeLineComment:
		kinds[i] = m.SpanLineComment
		return 1

	case modeBlockComment:
		kinds[i] = m.SpanBlockComment
		if ch == '*' && next == '/' {
			kinds[i+1] = m.SpanBlockComment
			c.mode = modeCode

			return 2
		}

		return 1

	case modeString, modeChar:
		kinds[i] = c.Kind()

		switch {
		case c.escaped:
			c.escaped = false
		case ch == '\\':
			c.escaped = true
		case ch == '"' && c.mode == modeString, ch == '\'' && c.mode == modeChar:
			c.mode = modeCode
		}

		return 1

	case modeRawString:
		if strings.HasPrefix(text[i:], c.rawDelim) {
			for j := range len(c.rawDelim) {
				kinds[i+j] = m.SpanString
			}

			c.mode = modeCode

			return len(c.rawDelim)
		}

		kinds[i] = m.SpanString

		return 1
	}

	return c.stepCode(text, i, number, kinds)
}

func (c *Classifier) stepCode(text string, i, number int, kinds []m.SpanKind) int {
	ch := text[i]
	base := c.Kind()

	var next byte
	if i+1 < len(text) {
		next = text[i+1]
	}

	if c.opaque {
		kinds[i] = base
		return 1
	}

	switch {
	case ch == '/' && next == '/':
		c.mode = modeLineComment
		kinds[i], kinds[i+1] = m.SpanLineComment, m.SpanLineComment
		c.number = false

		return 2

	case ch == '/' && next == '*':
		c.mode = modeBlockComment
		c.start = m.Position{Line: number, Column: i + 1}
		kinds[i], kinds[i+1] = m.SpanBlockComment, m.SpanBlockComment
		c.number = false

		return 2

	case ch == '"':
		c.number = false
		if n := c.rawStringOpen(text, i, number, kinds); n > 0 {
			return n
		}

		c.mode = modeString
		c.start = m.Position{Line: number, Column: i + 1}
		kinds[i] = m.SpanString

		return 1

	case ch == '\'':
		if c.number && isIdentChar(next) {
			kinds[i] = base
			return 1
		}

		c.number = false
		c.mode = modeChar
		c.start = m.Position{Line: number, Column: i + 1}
		kinds[i] = m.SpanChar

		return 1
	}

	kinds[i] = base

	switch {
	case isDigit(ch) && (i == 0 || !isIdentChar(text[i-1])):
		c.number = true
	case c.number && (isIdentChar(ch) || ch == '.'):
	default:
		c.number = false
	}

	return 1
}

// rawStringOpen recognises R"delim( with an optional encoding prefix and
// returns the number of bytes consumed, or 0 if text[i] is an ordinary quote.
func (c *Classifier) rawStringOpen(text string, i, number int, kinds []m.SpanKind) int {
	j := i
	for j > 0 && isIdentChar(text[j-1]) {
		j--
	}

	switch text[j:i] {
	case "R", "u8R", "uR", "UR", "LR":
	default:
		return 0
	}

	end := -1

	for k := i + 1; k < len(text) && k-i-1 <= maxRawDelimiter; k++ {
		ch := text[k]
		if ch == '(' {
			end = k
			break
		}

		if ch == ')' || ch == '\\' || isSpace(ch) {
			return 0
		}
	}

	if end < 0 {
		return 0
	}

	for k := j; k <= end; k++ {
		kinds[k] = m.SpanString
	}

	c.mode = modeRawString
	c.rawDelim = ")" + text[i+1:end] + `"`
	c.start = m.Position{Line: number, Column: j + 1}

	return end - i + 1
}

func (c *Classifier) endOfLine(line *Line) {
	continued := strings.HasSuffix(strings.TrimRight(line.Text, "\r"), `\`)
	c.number = false

	switch c.mode {
	case modeLineComment:
		if !continued {
			c.mode = modeCode
		}

	case modeString, modeChar:
		if c.escaped {
			c.escaped = false
			break
		}

		what := "string"
		if c.mode == modeChar {
			what = "character"
		}

		line.Problems = append(line.Problems, m.Diagnostic{
			Line:       c.start.Line,
			Column:     c.start.Column,
			Rule:       CategoryMultilineString,
			Message:    "Unterminated " + what + " literal",
			Severity:   m.SeverityError,
			Confidence: 5,
		})
		c.mode = modeCode
	}

	if c.directive && !continued && c.mode != modeBlockComment {
		c.directive = false
		c.opaque = false
	}
}

// Finish reports constructs still open at end of input and resets the
// classifier to code mode.
func (c *Classifier) Finish() []m.Diagnostic {
	var problems []m.Diagnostic

	switch c.mode {
	case modeBlockComment:
		problems = append(problems, m.Diagnostic{
			Line:       c.start.Line,
			Column:     c.start.Column,
			Rule:       CategoryMultilineComment,
			Message:    "Could not find end of multi-line comment",
			Severity:   m.SeverityError,
			Confidence: 5,
		})
	case modeRawString:
		problems = append(problems, m.Diagnostic{
			Line:       c.start.Line,
			Column:     c.start.Column,
			Rule:       CategoryMultilineString,
			Message:    "Could not find end of raw string literal",
			Severity:   m.SeverityError,
			Confidence: 5,
		})
	case modeString, modeChar:
		problems = append(problems, m.Diagnostic{
			Line:       c.start.Line,
			Column:     c.start.Column,
			Rule:       CategoryMultilineString,
			Message:    "Unterminated literal at end of file",
			Severity:   m.SeverityError,
			Confidence: 5,
		})
	}

	c.mode = modeCode
	c.directive = false
	c.opaque = false
	c.escaped = false

	return problems
}

func directiveName(rest string) string {
	rest = strings.TrimLeft(rest, " \t")

	end := 0
	for end < len(rest) && isIdentChar(rest[end]) {
		end++
	}

	if end == 0 {
		return "#"
	}

	return rest[:end]
}

func firstNonSpace(s string) int {
	for i := range len(s) {
		if !isSpace(s[i]) {
			return i
		}
	}

	return -1
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return ch == '_' || ch == '$' || isDigit(ch) || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}
