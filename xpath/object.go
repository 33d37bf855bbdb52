package xpath

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-xmldom/xmldom"
)

// ObjectKind distinguishes the four XPath 1.0 data types plus Undef,
// the zero value returned when an expression has no meaningful result
// (an empty node-set passed where one of the typed results is needed
// never produces Undef; only a handful of evaluator edge cases do).
type ObjectKind uint8

const (
	Undef ObjectKind = iota
	NodeSetKind
	BoolKind
	NumberKind
	StringKind
)

// Object is the tagged union every XPath (sub-)expression evaluates
// to, per spec.md §4.I. Exactly one of the typed fields is meaningful,
// selected by Kind.
type Object struct {
	Kind   ObjectKind
	Nodes  []*xmldom.Node
	Bool   bool
	Number float64
	Str    string
}

func NodeSet(nodes []*xmldom.Node) Object { return Object{Kind: NodeSetKind, Nodes: nodes} }
func BoolObject(b bool) Object           { return Object{Kind: BoolKind, Bool: b} }
func NumberObject(n float64) Object      { return Object{Kind: NumberKind, Number: n} }
func StringObject(s string) Object       { return Object{Kind: StringKind, Str: s} }

// ToBool applies the XPath boolean() coercion: a node-set is true iff
// non-empty, a number is true iff non-zero and not NaN, a string is
// true iff non-empty.
func (o Object) ToBool() bool {
	switch o.Kind {
	case NodeSetKind:
		return len(o.Nodes) > 0
	case BoolKind:
		return o.Bool
	case NumberKind:
		return o.Number != 0 && !math.IsNaN(o.Number)
	case StringKind:
		return o.Str != ""
	default:
		return false
	}
}

// ToString applies the XPath string() coercion. A node-set converts
// via the string-value of its first node in document order; an empty
// node-set is the empty string.
func (o Object) ToString() string {
	switch o.Kind {
	case NodeSetKind:
		if len(o.Nodes) == 0 {
			return ""
		}
		return stringValue(o.Nodes[0])
	case BoolKind:
		if o.Bool {
			return "true"
		}
		return "false"
	case NumberKind:
		return formatNumber(o.Number)
	case StringKind:
		return o.Str
	default:
		return ""
	}
}

// ToNumber applies the XPath number() coercion: a node-set converts
// via its string value, and a bool converts directly to 1 or 0.
func (o Object) ToNumber() float64 {
	switch o.Kind {
	case NodeSetKind:
		return stringToNumber(o.ToString())
	case BoolKind:
		if o.Bool {
			return 1
		}
		return 0
	case NumberKind:
		return o.Number
	case StringKind:
		return stringToNumber(o.Str)
	default:
		return math.NaN()
	}
}

// stringToNumber implements XPath's string-to-number conversion:
// leading/trailing whitespace is ignored and the rest is parsed with
// strconv.ParseFloat, so forms such as "1e3" or "+2" are accepted too.
// An empty string or anything ParseFloat rejects yields NaN.
func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ToInt rounds ToNumber to the nearest integer with the same rule as
// round() (halves go toward positive infinity); NaN converts to 0.
func (o Object) ToInt() int {
	n := o.ToNumber()
	if math.IsNaN(n) {
		return 0
	}
	return int(xpathRound(n))
}
