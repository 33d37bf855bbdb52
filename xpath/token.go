package xpath

import (
	"fmt"
	"strings"

	"github.com/go-xmldom/xmldom"
	"github.com/go-xmldom/xmldom/internal/xmlchar"
)

// tokKind enumerates every lexical token the XPath 1.0 grammar needs,
// per spec.md §4.H.
type tokKind uint8

const (
	tokEOF tokKind = iota
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokSlash
	tokSlashSlash
	tokComma
	tokColonColon
	tokStar
	tokPipe
	tokPlus
	tokMinus
	tokEq
	tokNe
	tokLt
	tokLe
	tokGt
	tokGe
	tokDot
	tokDotDot
	tokLiteral
	tokNumber
	tokVariable
	tokName
	tokAxisSpec
	tokNodeType
	tokFunctionName
	tokOperatorKeyword // "and" / "or" / "mod" / "div"
)

var tokKindNames = map[tokKind]string{
	tokEOF: "end of expression", tokLParen: "'('", tokRParen: "')'",
	tokLBracket: "'['", tokRBracket: "']'", tokSlash: "'/'", tokSlashSlash: "'//'",
	tokComma: "','", tokColonColon: "'::'", tokStar: "'*'", tokPipe: "'|'",
	tokPlus: "'+'", tokMinus: "'-'", tokEq: "'='", tokNe: "'!='",
	tokLt: "'<'", tokLe: "'<='", tokGt: "'>'", tokGe: "'>='",
	tokDot: "'.'", tokDotDot: "'..'", tokLiteral: "a string literal",
	tokNumber: "a number", tokVariable: "a variable reference", tokName: "a name",
	tokAxisSpec: "an axis specifier", tokNodeType: "a node type test",
	tokFunctionName: "a function call", tokOperatorKeyword: "an operator keyword",
}

func (k tokKind) String() string {
	if s, ok := tokKindNames[k]; ok {
		return s
	}
	return "unknown token"
}

var axisNames = map[string]bool{
	"ancestor": true, "ancestor-or-self": true, "attribute": true,
	"child": true, "descendant": true, "descendant-or-self": true,
	"following": true, "following-sibling": true, "namespace": true,
	"parent": true, "preceding": true, "preceding-sibling": true, "self": true,
}

var nodeTypeNames = map[string]bool{
	"comment": true, "text": true, "processing-instruction": true, "node": true,
}

var coreFunctionNames = map[string]bool{
	"last": true, "position": true, "count": true, "id": true,
	"local-name": true, "namespace-uri": true, "name": true, "string": true,
	"concat": true, "starts-with": true, "contains": true,
	"substring-before": true, "substring-after": true, "substring": true,
	"string-length": true, "normalize-space": true, "translate": true,
	"boolean": true, "not": true, "true": true, "false": true, "lang": true,
	"number": true, "sum": true, "floor": true, "ceiling": true, "round": true,
}

var operatorKeywords = map[string]bool{"and": true, "or": true, "mod": true, "div": true}

// token is a single lexed unit plus its literal text, where relevant.
type token struct {
	kind tokKind
	text string // literal value for tokLiteral, name for tokName/tokAxisSpec/etc, raw source for operators
	num  float64
}

func (t token) String() string {
	if t.text != "" {
		return fmt.Sprintf("%v(%q)", t.kind, t.text)
	}
	return fmt.Sprintf("%v", t.kind)
}

// lexer is a one-codepoint-lookahead scanner over a preprocessed XPath
// expression string (abbreviations already expanded by expand, in
// preprocess.go).
// It classifies a bare Name into AxisSpec/NodeType/FunctionName/Name by
// looking one token ahead at the next non-space character, per
// spec.md §4.H.
type lexer struct {
	src  string
	pos  int
	toks []token
}

func lex(src string) ([]token, error) {
	l := &lexer{src: src}
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.toks = append(l.toks, tok)
		if tok.kind == tokEOF {
			return l.toks, nil
		}
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && xmlchar.IsSpace(l.src[l.pos]) {
		l.pos++
	}
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF}, nil
	}
	c := l.src[l.pos]

	switch c {
	case '(':
		l.pos++
		return token{kind: tokLParen}, nil
	case ')':
		l.pos++
		return token{kind: tokRParen}, nil
	case '[':
		l.pos++
		return token{kind: tokLBracket}, nil
	case ']':
		l.pos++
		return token{kind: tokRBracket}, nil
	case ',':
		l.pos++
		return token{kind: tokComma}, nil
	case '|':
		l.pos++
		return token{kind: tokPipe}, nil
	case '+':
		l.pos++
		return token{kind: tokPlus}, nil
	case '-':
		l.pos++
		return token{kind: tokMinus}, nil
	case '=':
		l.pos++
		return token{kind: tokEq}, nil
	case '$':
		l.pos++
		name, err := l.readQName()
		if err != nil {
			return token{}, err
		}
		return token{kind: tokVariable, text: name}, nil
	case '\'', '"':
		return l.readLiteral(c)
	case '!':
		if l.hasPrefix("!=") {
			l.pos += 2
			return token{kind: tokNe}, nil
		}
		return token{}, errXPathSyntax("unexpected '!' at offset %d", l.pos)
	case '<':
		if l.hasPrefix("<=") {
			l.pos += 2
			return token{kind: tokLe}, nil
		}
		l.pos++
		return token{kind: tokLt}, nil
	case '>':
		if l.hasPrefix(">=") {
			l.pos += 2
			return token{kind: tokGe}, nil
		}
		l.pos++
		return token{kind: tokGt}, nil
	case ':':
		if l.hasPrefix("::") {
			l.pos += 2
			return token{kind: tokColonColon}, nil
		}
		return token{}, errXPathSyntax("unexpected ':' at offset %d", l.pos)
	case '/':
		if l.hasPrefix("//") {
			l.pos += 2
			return token{kind: tokSlashSlash}, nil
		}
		l.pos++
		return token{kind: tokSlash}, nil
	case '.':
		if l.hasPrefix("..") {
			l.pos += 2
			return token{kind: tokDotDot}, nil
		}
		if l.pos+1 < len(l.src) && l.src[l.pos+1] >= '0' && l.src[l.pos+1] <= '9' {
			return l.readNumber()
		}
		l.pos++
		return token{kind: tokDot}, nil
	case '*':
		l.pos++
		return token{kind: tokStar}, nil
	}

	if c >= '0' && c <= '9' {
		return l.readNumber()
	}
	if isNameStart(c) {
		return l.readNameToken()
	}
	return token{}, errXPathSyntax("unexpected character %q at offset %d", c, l.pos)
}

func (l *lexer) hasPrefix(s string) bool { return strings.HasPrefix(l.src[l.pos:], s) }

func (l *lexer) readLiteral(quote byte) (token, error) {
	l.pos++
	start := l.pos
	end := strings.IndexByte(l.src[l.pos:], quote)
	if end < 0 {
		return token{}, errXPathSyntax("unterminated string literal")
	}
	text := l.src[start : start+end]
	l.pos += end + 1
	return token{kind: tokLiteral, text: text}, nil
}

func (l *lexer) readNumber() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
			l.pos++
		}
	}
	text := l.src[start:l.pos]
	var f float64
	if _, err := fmt.Sscanf(text, "%g", &f); err != nil {
		return token{}, errXPathSyntax("invalid number %q", text)
	}
	return token{kind: tokNumber, text: text, num: f}, nil
}

// isNameStart reports whether b can begin an NCName. The check is
// byte-level: an ASCII letter, '_', or any byte >= 0x80 (so every
// non-ASCII character is accepted); the xmlchar name-start class is
// not consulted (spec.md §4.H treats QNames as opaque strings compared
// by local part).
func isNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isNameCont(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9') || b == '-' || b == '.'
}

// readQName reads a Name, optionally "prefix:local", used after "$"
// and for every bare-name token.
func (l *lexer) readQName() (string, error) {
	start := l.pos
	for l.pos < len(l.src) && isNameCont(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == ':' && l.pos+1 < len(l.src) && l.src[l.pos+1] != ':' {
		l.pos++
		for l.pos < len(l.src) && isNameCont(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos == start {
		return "", errXPathSyntax("expected a name at offset %d", start)
	}
	return l.src[start:l.pos], nil
}

// readNameToken reads a bare name and classifies it as an operator
// keyword, AxisSpec, NodeType, FunctionName, or plain Name by peeking
// past any following whitespace for "::" or "(".
func (l *lexer) readNameToken() (token, error) {
	name, err := l.readQName()
	if err != nil {
		return token{}, err
	}

	save := l.pos
	l.skipSpace()
	switch {
	case l.hasPrefix("::") && axisNames[name]:
		l.pos = save
		return token{kind: tokAxisSpec, text: name}, nil
	case l.hasPrefix("(") && nodeTypeNames[name]:
		l.pos = save
		return token{kind: tokNodeType, text: name}, nil
	case l.hasPrefix("(") && coreFunctionNames[name]:
		l.pos = save
		return token{kind: tokFunctionName, text: name}, nil
	default:
		l.pos = save
	}

	if operatorKeywords[name] {
		return token{kind: tokOperatorKeyword, text: name}, nil
	}
	return token{kind: tokName, text: name}, nil
}

// errXPathSyntax wraps a lex/parse failure as the package's unified
// xmldom.Error, kind XPathSyntaxError, per spec.md §7.
func errXPathSyntax(format string, args ...interface{}) *xmldom.Error {
	return xmldom.NewError(xmldom.XPathSyntaxError, format, args...)
}
