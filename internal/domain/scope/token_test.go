package scope

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mouse-blink/halint/internal/domain/lexer"
	m "github.com/mouse-blink/halint/internal/model"
)

type span struct {
	kind m.SpanKind
	text string
}

// classified builds a line from explicit spans, bypassing the classifier.
func classified(spans ...span) lexer.Line {
	var sb strings.Builder

	var kinds []m.SpanKind

	for _, s := range spans {
		sb.WriteString(s.text)

		for range len(s.text) {
			kinds = append(kinds, s.kind)
		}
	}

	return lexer.Line{Number: 1, Text: sb.String(), Kinds: kinds}
}

func TestTokenize(t *testing.T) {
	line := classified(
		span{m.SpanCode, "a::b{ "},
		span{m.SpanBlockComment, "/*}*/"},
		span{m.SpanCode, " x="},
		span{m.SpanString, `"{"`},
		span{m.SpanCode, "+1'000;"},
		span{m.SpanPreprocessor, "#x {"},
		span{m.SpanLineComment, "// }"},
	)

	var texts []string
	for _, tok := range Tokenize(line) {
		texts = append(texts, tok.Text)
	}

	assert.Equal(t, []string{"a", "::", "b", "{", "x", "=", `"{"`, "+", "1'000", ";"}, texts)
}

func TestTokenize_Positions(t *testing.T) {
	toks := Tokenize(classified(span{m.SpanCode, "  int x;"}))

	assert.Equal(t, []Token{
		{Kind: TokIdent, Text: "int", Pos: m.Position{Line: 1, Column: 3}},
		{Kind: TokIdent, Text: "x", Pos: m.Position{Line: 1, Column: 7}},
		{Kind: TokPunct, Text: ";", Pos: m.Position{Line: 1, Column: 8}},
	}, toks)
}
