// Package dtd implements the DTD data model (element, attribute,
// entity, and notation declarations; content-spec trees) and the
// content-model validator compiled from them.
package dtd

// SpecKind discriminates the six shapes a content spec tree node can
// take, per spec.md §3 "Content specs".
type SpecKind uint8

const (
	SpecEmpty SpecKind = iota
	SpecAny
	SpecElement
	SpecRepeated
	SpecSeq
	SpecChoice
)

// Quantifier is one of the three EBNF repetition operators a
// SpecRepeated node carries.
type Quantifier byte

const (
	QuantOptional Quantifier = '?'
	QuantZeroOrMore Quantifier = '*'
	QuantOneOrMore Quantifier = '+'
)

// ContentSpec is a node in a DTD element's content-model tree.
type ContentSpec struct {
	Kind SpecKind
	// Name is the child element name, valid when Kind == SpecElement.
	Name string
	// Child is the repeated sub-spec, valid when Kind == SpecRepeated.
	Child *ContentSpec
	// Quant is the repetition operator, valid when Kind == SpecRepeated.
	Quant Quantifier
	// Children holds the ordered (Seq) or alternative (Choice)
	// sub-specs, valid when Kind is SpecSeq or SpecChoice.
	Children []*ContentSpec
	// Mixed marks a Choice as permitting interleaved character data
	// (the #PCDATA | a | b ... form), valid when Kind == SpecChoice.
	Mixed bool
}

// Empty returns the content spec for EMPTY: no children allowed.
func Empty() *ContentSpec { return &ContentSpec{Kind: SpecEmpty} }

// Any returns the content spec for ANY: any children allowed.
func Any() *ContentSpec { return &ContentSpec{Kind: SpecAny} }

// Element returns the content spec matching exactly one child named
// name.
func Element(name string) *ContentSpec { return &ContentSpec{Kind: SpecElement, Name: name} }

// Repeated returns a content spec wrapping child with an EBNF
// quantifier ('?', '*', or '+').
func Repeated(child *ContentSpec, quant Quantifier) *ContentSpec {
	return &ContentSpec{Kind: SpecRepeated, Child: child, Quant: quant}
}

// Seq returns a content spec requiring children to appear, in order,
// exactly once each.
func Seq(children ...*ContentSpec) *ContentSpec {
	return &ContentSpec{Kind: SpecSeq, Children: children}
}

// Choice returns a content spec accepting exactly one of children; if
// mixed is true, interleaved text is also permitted (the #PCDATA
// mixed-content form).
func Choice(mixed bool, children ...*ContentSpec) *ContentSpec {
	return &ContentSpec{Kind: SpecChoice, Children: children, Mixed: mixed}
}

// PCDATA is the conventional name used as the first alternative of a
// mixed-content Choice, kept only for readability at call sites; the
// validator does not special-case this string, it relies on Mixed.
const PCDATA = "#PCDATA"
