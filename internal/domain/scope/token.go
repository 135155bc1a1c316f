package scope

import (
	"github.com/mouse-blink/halint/internal/domain/lexer"
	m "github.com/mouse-blink/halint/internal/model"
)

// TokenKind is the coarse class of a code token.
type TokenKind uint8

const (
	TokIdent TokenKind = iota
	TokNumber
	TokLiteral // string or character literal, one token per span
	TokPunct
)

// Token is a piece of code seen by the tracker.
type Token struct {
	Kind TokenKind
	Text string
	Pos  m.Position
}

// Is reports whether the token is the punctuation or keyword s.
func (t Token) Is(s string) bool {
	return t.Text == s && t.Kind != TokLiteral
}

// placeholder stands in for a closed expression brace inside a declaration.
const placeholder = "{}"

// Tokenize splits the code spans of a classified line into tokens. Comments
// and preprocessor text produce nothing; each string or character literal
// span produces a single TokLiteral token.
func Tokenize(line lexer.Line) []Token {
	var toks []Token

	text := line.Text
	kinds := line.Kinds

	for i := 0; i < len(text); {
		pos := m.Position{Line: line.Number, Column: i + 1}

		switch kinds[i] {
		case m.SpanString, m.SpanChar:
			kind := kinds[i]
			j := i
			for j < len(text) && kinds[j] == kind {
				j++
			}

			toks = append(toks, Token{Kind: TokLiteral, Text: text[i:j], Pos: pos})
			i = j

			continue
		}

		if kinds[i].Inert() {
			i++
			continue
		}

		ch := text[i]

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\v':
			i++
		case isIdentStart(ch):
			j := i + 1
			for j < len(text) && kinds[j] == m.SpanCode && isIdentPart(text[j]) {
				j++
			}

			toks = append(toks, Token{Kind: TokIdent, Text: text[i:j], Pos: pos})
			i = j
		case ch >= '0' && ch <= '9' || ch == '.' && i+1 < len(text) && text[i+1] >= '0' && text[i+1] <= '9':
			j := i + 1
			for j < len(text) && kinds[j] == m.SpanCode && (isIdentPart(text[j]) || text[j] == '.' || text[j] == '\'') {
				j++
			}

			toks = append(toks, Token{Kind: TokNumber, Text: text[i:j], Pos: pos})
			i = j
		case ch == ':' && i+1 < len(text) && text[i+1] == ':' && kinds[i+1] == m.SpanCode,
			ch == '-' && i+1 < len(text) && text[i+1] == '>' && kinds[i+1] == m.SpanCode:
			toks = append(toks, Token{Kind: TokPunct, Text: text[i : i+2], Pos: pos})
			i += 2
		default:
			toks = append(toks, Token{Kind: TokPunct, Text: text[i : i+1], Pos: pos})
			i++
		}
	}

	return toks
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || ch >= '0' && ch <= '9'
}
