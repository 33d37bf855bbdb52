package xpath

import "github.com/go-xmldom/xmldom"

// axis identifies one of the thirteen traversal directions a Step can
// name, per spec.md §4.I's axis table.
type axis uint8

const (
	axisChild axis = iota
	axisDescendant
	axisParent
	axisAncestor
	axisFollowingSibling
	axisPrecedingSibling
	axisFollowing
	axisPreceding
	axisAttribute
	axisNamespace
	axisSelf
	axisDescendantOrSelf
	axisAncestorOrSelf
)

var axisByName = map[string]axis{
	"child":              axisChild,
	"descendant":         axisDescendant,
	"parent":             axisParent,
	"ancestor":           axisAncestor,
	"following-sibling":  axisFollowingSibling,
	"preceding-sibling":  axisPrecedingSibling,
	"following":          axisFollowing,
	"preceding":          axisPreceding,
	"attribute":          axisAttribute,
	"namespace":          axisNamespace,
	"self":               axisSelf,
	"descendant-or-self": axisDescendantOrSelf,
	"ancestor-or-self":   axisAncestorOrSelf,
}

// principalKind is the node kind an axis addresses by default: element
// for every axis but attribute and namespace, per the XML Namespaces /
// XPath 1.0 notion of "principal node type".
func (a axis) principalKind() xmldom.Kind {
	switch a {
	case axisAttribute, axisNamespace:
		return xmldom.AttributeNode
	default:
		return xmldom.ElementNode
	}
}

// nodeTestKind distinguishes the three forms of NodeTest: a name
// (possibly "*"), one of the four node-type tests, or the
// processing-instruction(literal) form.
type nodeTestKind uint8

const (
	testName nodeTestKind = iota
	testWildcard
	testNode
	testText
	testComment
	testPI
)

// nodeTest is a compiled Step NodeTest.
type nodeTest struct {
	kind    nodeTestKind
	name    string // local-name to match, set only when kind == testName
	piLit   string // optional literal argument to processing-instruction(), set only when kind == testPI and present
	hasPI   bool
}

// step is one AxisSpec? NodeTest Predicate* production.
type step struct {
	axis       axis
	test       nodeTest
	predicates []expr
}

// locationPath is a LocationPath: an optional leading "/" (absolute)
// followed by a chain of steps, optionally rooted at an arbitrary
// expr (the FilterExpr "/" RelativeLocationPath production) instead
// of the document root or the context node.
type locationPath struct {
	absolute bool  // true if the path begins with "/" (steps start from the document root)
	base     expr  // non-nil for a FilterExpr-rooted relative path; nil otherwise
	steps    []step
}

// expr is any compiled XPath expression node; every AST type below
// implements it via a method defined in eval.go.
type expr interface {
	eval(ctx *Context) (Object, error)
}

// literalString / literalNumber are the two literal primary expressions.
type literalString struct{ value string }
type literalNumber struct{ value float64 }

// variableRef is a "$name" reference, resolved against Context.Vars.
type variableRef struct{ name string }

// functionCall is a FunctionName "(" (Expr ("," Expr)*)? ")" production.
type functionCall struct {
	name string
	args []expr
}

// unaryMinus is UnaryExpr's "-" UnionExpr production.
type unaryMinus struct{ operand expr }

// binOpKind enumerates every infix operator of the grammar above
// UnionExpr, sharing one AST node to keep the evaluator table-driven.
type binOpKind uint8

const (
	opOr binOpKind = iota
	opAnd
	opEq
	opNe
	opLt
	opLe
	opGt
	opGe
	opAdd
	opSub
	opMul
	opMod
	opDiv
	opUnion
)

type binOp struct {
	kind        binOpKind
	left, right expr
}

// filterExpr is a FilterExpr: a PrimaryExpr narrowed by zero or more
// Predicates, e.g. "$nodes[1]" or "func()[@a]". Built only when at
// least one predicate is present; an unpredicated PrimaryExpr is used
// directly as its own expr.
type filterExpr struct {
	base       expr
	predicates []expr
}
