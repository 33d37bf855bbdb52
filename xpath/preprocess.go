package xpath

import "strings"

// expand rewrites the abbreviated syntax spec.md §4.H allows into its
// unabbreviated equivalent, so the lexer and parser only ever see the
// full grammar:
//
//	@foo  -> attribute::foo
//	//    -> /descendant-or-self::node()/
//	.     -> self::node()   (when used as a step, not a decimal point)
//	..    -> parent::node()
//
// Quoted string literals are copied verbatim so an '@' or '.' inside
// one is never rewritten.
func expand(src string) string {
	var b strings.Builder
	b.Grow(len(src) + 16)

	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\'' || c == '"':
			end := strings.IndexByte(src[i+1:], c)
			if end < 0 {
				b.WriteString(src[i:])
				return b.String()
			}
			b.WriteString(src[i : i+end+2])
			i += end + 2

		case c == '@':
			b.WriteString("attribute::")
			i++

		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			b.WriteString("/descendant-or-self::node()/")
			i += 2

		case c == '.' && i+1 < len(src) && src[i+1] == '.' && !precededByNameChar(src, i):
			b.WriteString("parent::node()")
			i += 2

		case c == '.' && !precededByNameChar(src, i) && !followedByDigit(src, i):
			b.WriteString("self::node()")
			i++

		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// precededByNameChar reports whether the byte before offset i continues
// an NCName, meaning the '.' at i is part of that name (e.g. "a.b")
// rather than a step-position abbreviation.
func precededByNameChar(src string, i int) bool {
	return i > 0 && isNameCont(src[i-1])
}

// followedByDigit reports whether the byte after offset i is a digit,
// meaning the '.' at i starts a decimal-point number like ".5" rather
// than the self-axis abbreviation.
func followedByDigit(src string, i int) bool {
	return i+1 < len(src) && src[i+1] >= '0' && src[i+1] <= '9'
}
