package scope

import (
	"strings"

	m "github.com/mouse-blink/halint/internal/model"
)

// header is the classification of the declaration in front of a '{'.
type header struct {
	kind       m.FrameKind
	keyword    string
	name       string
	expression bool
}

var controlKeywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"switch": true, "try": true, "catch": true, "case": true, "default": true,
	"__try": true, "__except": true, "__finally": true,
}

var classKeys = map[string]bool{"class": true, "struct": true, "union": true}

var classPrefixes = map[string]bool{
	"typedef": true, "static": true, "const": true, "constexpr": true,
	"volatile": true, "inline": true, "thread_local": true, "export": true,
}

// notCallee lists identifiers that may sit right before '(' without naming
// the function being defined.
var notCallee = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "sizeof": true, "alignof": true, "alignas": true,
	"decltype": true, "typeof": true, "__typeof__": true, "__attribute__": true,
	"__declspec": true, "noexcept": true, "throw": true, "static_assert": true,
	"new": true, "delete": true, "defined": true, "case": true,
	"void": true, "int": true, "char": true, "bool": true, "short": true,
	"long": true, "unsigned": true, "signed": true, "float": true,
	"double": true, "auto": true, "const": true, "volatile": true,
}

var trailingQualifiers = map[string]bool{
	"const": true, "volatile": true, "override": true, "final": true,
	"mutable": true, "constexpr": true, "try": true, "&": true,
}

var lambdaIntroducers = map[string]bool{
	"=": true, "(": true, ",": true, "return": true, placeholder: true,
	"&&": true, "|": true, "?": true, ":": true, "!": true, "&": true,
}

// classify decides the kind of the frame a '{' opens from the declaration
// tokens accumulated since the last ';', '{' or '}' at the same depth.
// inParens is set when the brace sits inside an open parenthesis.
func classify(decl []Token, inParens bool) header {
	toks := stripPrefix(decl)

	if isLambda(toks) {
		return header{kind: m.FrameFunctionLike, keyword: "lambda", expression: true}
	}

	if inParens {
		return header{kind: m.FrameOtherBlock, keyword: "initializer", expression: true}
	}

	if len(toks) == 0 {
		return header{kind: m.FrameOtherBlock, keyword: "block"}
	}

	first := toks[0]

	switch {
	case first.Is("namespace"):
		return header{kind: m.FrameOtherBlock, keyword: "namespace", name: joinName(toks[1:])}
	case first.Is("inline") && len(toks) > 1 && toks[1].Is("namespace"):
		return header{kind: m.FrameOtherBlock, keyword: "namespace", name: joinName(toks[2:])}
	case first.Is("extern") && len(toks) > 1 && toks[1].Kind == TokLiteral:
		return header{kind: m.FrameOtherBlock, keyword: "extern", name: strings.Trim(toks[1].Text, `"`)}
	case first.Is("enum") || first.Is("typedef") && len(toks) > 1 && toks[1].Is("enum"):
		return header{kind: m.FrameOtherBlock, keyword: "enum", name: enumName(toks)}
	case first.Kind == TokIdent && controlKeywords[first.Text]:
		return header{kind: m.FrameOtherBlock, keyword: first.Text}
	}

	if isInitializer(toks) {
		return header{kind: m.FrameOtherBlock, keyword: "initializer", expression: true}
	}

	if key, name, ok := classHeader(toks); ok {
		return header{kind: m.FrameClassLike, keyword: key, name: name}
	}

	if name, ok := functionHeader(toks); ok {
		return header{kind: m.FrameFunctionLike, keyword: "function", name: name}
	}

	// Type var{...}
	last := toks[len(toks)-1]
	if len(toks) >= 2 && last.Kind == TokIdent && !hasTopLevel(toks, "(") {
		return header{kind: m.FrameOtherBlock, keyword: "initializer", expression: true}
	}

	return header{kind: m.FrameOtherBlock, keyword: "block"}
}

// stripPrefix drops template parameter lists, [[attributes]] and export
// from the front of a declaration.
func stripPrefix(toks []Token) []Token {
	for len(toks) > 0 {
		switch {
		case toks[0].Is("template") && len(toks) > 1 && toks[1].Is("<"):
			end := matchAngle(toks, 1)
			if end < 0 {
				return toks
			}

			toks = toks[end+1:]
		case toks[0].Is("[") && len(toks) > 1 && toks[1].Is("["):
			end := matchGroup(toks, 0, "[", "]")
			if end < 0 {
				return toks
			}

			toks = toks[end+1:]
		case toks[0].Is("export"):
			toks = toks[1:]
		default:
			return toks
		}
	}

	return toks
}

func isLambda(toks []Token) bool {
	for p := len(toks) - 1; p >= 0; p-- {
		if !toks[p].Is("[") {
			continue
		}

		if p > 0 && !lambdaIntroducers[toks[p-1].Text] {
			continue
		}

		r := matchGroup(toks, p, "[", "]")
		if r < 0 {
			continue
		}

		if lambdaTail(toks[r+1:]) {
			return true
		}
	}

	return false
}

func lambdaTail(rest []Token) bool {
	i := 0
	if i < len(rest) && rest[i].Is("<") {
		end := matchAngle(rest, i)
		if end < 0 {
			return false
		}

		i = end + 1
	}

	if i < len(rest) && rest[i].Is("(") {
		end := matchGroup(rest, i, "(", ")")
		if end < 0 {
			return false
		}

		i = end + 1
	}

	for i < len(rest) {
		t := rest[i]

		switch {
		case t.Is("mutable"), t.Is("constexpr"), t.Is("consteval"), t.Is("static"):
			i++
		case t.Is("noexcept"):
			i++
			if i < len(rest) && rest[i].Is("(") {
				end := matchGroup(rest, i, "(", ")")
				if end < 0 {
					return false
				}

				i = end + 1
			}
		case t.Is("->"):
			return true
		default:
			return false
		}
	}

	return true
}

func isInitializer(toks []Token) bool {
	last := toks[len(toks)-1]

	switch {
	case last.Kind == TokPunct && (last.Text == "=" || last.Text == "," || last.Text == "(" || last.Text == "["):
		return true
	case last.Is("return"):
		return true
	case hasTopLevelAssign(toks):
		return true
	}

	return isMemberInit(toks)
}

// isMemberInit recognises `Ctor(...) : member_` and `Ctor(...) : a_(1), b_`
// where the brace starts a member's brace initializer.
func isMemberInit(toks []Token) bool {
	last := toks[len(toks)-1]
	if last.Kind != TokIdent && !last.Is(">") {
		return false
	}

	depth := 0

	for i, t := range toks {
		switch {
		case t.Is("("), t.Is("["):
			depth++
		case t.Is(")"), t.Is("]"):
			depth--
		case t.Is(":") && depth == 0:
			return i > 0 && toks[i-1].Is(")") && i < len(toks)-1
		}
	}

	return false
}

func hasTopLevelAssign(toks []Token) bool {
	depth := 0

	for i := 0; i < len(toks); i++ {
		t := toks[i]

		switch {
		case t.Is("operator"):
			// operator=, operator==, operator<= ... belong to the name.
			for i+1 < len(toks) && !toks[i+1].Is("(") {
				i++
			}
		case t.Is("("), t.Is("["):
			depth++
		case t.Is(")"), t.Is("]"):
			depth--
		case t.Is("=") && depth == 0:
			return true
		}
	}

	return false
}

// classHeader recognises `class|struct|union [attrs] Name [final] [: bases]`.
func classHeader(toks []Token) (key, name string, ok bool) {
	i := 0
	for i < len(toks) && toks[i].Kind == TokIdent && classPrefixes[toks[i].Text] {
		i++
	}

	if i >= len(toks) || toks[i].Kind != TokIdent || !classKeys[toks[i].Text] {
		return "", "", false
	}

	key = toks[i].Text
	i++

	end := len(toks)
	depth := 0

	for j := i; j < len(toks); j++ {
		t := toks[j]

		switch {
		case t.Is("("), t.Is("<"):
			depth++
		case t.Is(")"), t.Is(">"):
			depth--
		case t.Is(":") && depth == 0:
			end = j
		}

		if end != len(toks) {
			break
		}
	}

	region := toks[i:end]
	if len(region) > 0 {
		if last := region[len(region)-1]; last.Is(")") || last.Is("*") || last.Is("&") {
			return "", "", false
		}
	}

	return key, className(region), true
}

func className(region []Token) string {
	k := len(region) - 1
	for k >= 0 && (region[k].Is("final") || region[k].Is("sealed")) {
		k--
	}

	if k >= 0 && region[k].Is(">") {
		k = matchAngleBack(region, k) - 1
	}

	if k < 0 || region[k].Kind != TokIdent {
		return ""
	}

	name := region[k].Text
	for k >= 2 && region[k-1].Is("::") && region[k-2].Kind == TokIdent {
		name = region[k-2].Text + "::" + name
		k -= 2
	}

	return name
}

// functionHeader recognises a single named parameter list followed only by
// qualifiers, a trailing return type or a constructor initializer list.
func functionHeader(toks []Token) (string, bool) {
	depth := 0

	for p := 0; p < len(toks); p++ {
		t := toks[p]

		switch {
		case t.Is("["):
			depth++
		case t.Is("]"):
			depth--
		case t.Is("(") && depth == 0:
			if p > 0 && toks[p-1].Is("operator") && p+1 < len(toks) && toks[p+1].Is(")") {
				p++
				continue
			}

			q := matchGroup(toks, p, "(", ")")
			if q < 0 {
				return "", false
			}

			if name, ok := calleeName(toks, p); ok && trailingOK(toks[q+1:]) {
				return name, true
			}

			p = q
		}
	}

	return "", false
}

func calleeName(toks []Token, p int) (string, bool) {
	for k := p - 1; k >= 0 && k >= p-4; k-- {
		if toks[k].Is("operator") {
			var sb strings.Builder

			sb.WriteString("operator")

			for _, t := range toks[k+1 : p] {
				if t.Kind == TokIdent {
					sb.WriteByte(' ')
				}

				sb.WriteString(t.Text)
			}

			return qualify(toks, k, sb.String()), true
		}
	}

	if p == 0 {
		return "", false
	}

	k := p - 1
	if toks[k].Is(">") {
		k = matchAngleBack(toks, k) - 1
		if k < 0 {
			return "", false
		}
	}

	prev := toks[k]
	if prev.Kind != TokIdent || notCallee[prev.Text] || controlKeywords[prev.Text] {
		return "", false
	}

	name := prev.Text
	if k > 0 && toks[k-1].Is("~") {
		name = "~" + name
		k--
	}

	return qualify(toks, k, name), true
}

func qualify(toks []Token, k int, name string) string {
	for k >= 2 && toks[k-1].Is("::") && toks[k-2].Kind == TokIdent {
		name = toks[k-2].Text + "::" + name
		k -= 2
	}

	return name
}

func trailingOK(rest []Token) bool {
	for i := 0; i < len(rest); {
		t := rest[i]

		switch {
		case t.Kind == TokPunct && trailingQualifiers[t.Text], t.Kind == TokIdent && trailingQualifiers[t.Text]:
			i++
		case t.Is("->"), t.Is(":"), t.Is("requires"):
			return true
		case t.Is("[") && i+1 < len(rest) && rest[i+1].Is("["):
			end := matchGroup(rest, i, "[", "]")
			if end < 0 {
				return false
			}

			i = end + 1
		case t.Kind == TokIdent && (t.Is("noexcept") || t.Is("throw") || t.Is("__attribute__") || isAnnotation(t.Text)):
			i++
			if i < len(rest) && rest[i].Is("(") {
				end := matchGroup(rest, i, "(", ")")
				if end < 0 {
					return false
				}

				i = end + 1
			}
		default:
			return false
		}
	}

	return true
}

// isAnnotation matches all-caps macro names such as LOCKS_EXCLUDED.
func isAnnotation(s string) bool {
	hasLetter := false

	for i := range len(s) {
		ch := s[i]

		switch {
		case ch >= 'A' && ch <= 'Z':
			hasLetter = true
		case ch == '_' || ch >= '0' && ch <= '9':
		default:
			return false
		}
	}

	return hasLetter
}

func hasTopLevel(toks []Token, s string) bool {
	for _, t := range toks {
		if t.Is(s) {
			return true
		}
	}

	return false
}

func joinName(toks []Token) string {
	var sb strings.Builder

	for _, t := range toks {
		if t.Kind != TokIdent && !t.Is("::") {
			break
		}

		sb.WriteString(t.Text)
	}

	return sb.String()
}

func enumName(toks []Token) string {
	for i, t := range toks {
		if t.Is("enum") {
			rest := toks[i+1:]
			if len(rest) > 0 && (rest[0].Is("class") || rest[0].Is("struct")) {
				rest = rest[1:]
			}

			if len(rest) > 0 && rest[0].Kind == TokIdent {
				return rest[0].Text
			}

			return ""
		}
	}

	return ""
}

// matchGroup returns the index of the token closing the group opened at
// toks[start], or -1.
func matchGroup(toks []Token, start int, open, closing string) int {
	depth := 0

	for i := start; i < len(toks); i++ {
		switch {
		case toks[i].Is(open):
			depth++
		case toks[i].Is(closing):
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// matchAngle is matchGroup for '<' '>' that ignores angles inside parens.
func matchAngle(toks []Token, start int) int {
	depth, parens := 0, 0

	for i := start; i < len(toks); i++ {
		switch {
		case toks[i].Is("("):
			parens++
		case toks[i].Is(")"):
			parens--
		case parens > 0:
		case toks[i].Is("<"):
			depth++
		case toks[i].Is(">"):
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// matchAngleBack walks back from a '>' at toks[end] to its '<'.
func matchAngleBack(toks []Token, end int) int {
	depth := 0

	for i := end; i >= 0; i-- {
		switch {
		case toks[i].Is(">"):
			depth++
		case toks[i].Is("<"):
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
