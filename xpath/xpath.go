// Package xpath implements XPath 1.0 expression compilation and
// evaluation against xmldom trees, per spec.md §4.H-I: a hand-written
// lexer, abbreviation preprocessor, recursive-descent parser, and a
// tree-walking evaluator over the Object sum type, with an LRU cache
// of compiled expressions (cache.go) grounded on the corpus's
// compiled-selector caching pattern.
package xpath

import "github.com/go-xmldom/xmldom"

// Expr is a compiled XPath expression, safe for concurrent use across
// goroutines (it is never mutated after Compile returns).
type Expr struct {
	root expr
	src  string
}

// String returns the original expression text.
func (e *Expr) String() string { return e.src }

// Eval evaluates e against node as the context node, returning the
// raw Object result (a node-set, boolean, number, or string).
func (e *Expr) Eval(node *xmldom.Node) (Object, error) {
	return e.EvalContext(NewContext(node))
}

// EvalContext evaluates e against a caller-supplied Context, allowing
// variable bindings to be passed in via ctx.Vars.
func (e *Expr) EvalContext(ctx *Context) (Object, error) {
	return e.root.eval(ctx)
}

// Select compiles expr and evaluates it against node, requiring the
// result to be a node-set; it returns that node-set in document
// order. Select is the common case spec.md §8 scenario 5 exercises:
// "nodes matching an XPath expression".
func Select(node *xmldom.Node, expr string) ([]*xmldom.Node, error) {
	e, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return e.Select(node)
}

// Select evaluates a compiled expression against node, requiring a
// node-set result.
func (e *Expr) Select(node *xmldom.Node) ([]*xmldom.Node, error) {
	v, err := e.Eval(node)
	if err != nil {
		return nil, err
	}
	if v.Kind != NodeSetKind {
		return nil, errXPathSyntax("expression %q does not select a node-set", e.src)
	}
	return v.Nodes, nil
}

// SelectOne returns the first node Select would return, or nil if the
// result node-set is empty.
func SelectOne(node *xmldom.Node, expr string) (*xmldom.Node, error) {
	e, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return e.SelectOne(node)
}

// SelectOne returns the first node e.Select(node) would return, or
// nil if empty.
func (e *Expr) SelectOne(node *xmldom.Node) (*xmldom.Node, error) {
	nodes, err := e.Select(node)
	if err != nil || len(nodes) == 0 {
		return nil, err
	}
	return nodes[0], nil
}

// Evaluate compiles and evaluates expr against node, returning
// whichever Object type the expression naturally produces (useful for
// boolean/number/string-valued expressions, unlike Select).
func Evaluate(node *xmldom.Node, expr string) (Object, error) {
	e, err := Compile(expr)
	if err != nil {
		return Object{}, err
	}
	return e.Eval(node)
}

// Matches reports whether node is a member of the node-set produced
// by evaluating expr starting from node's document root, per spec.md
// §4.I: matching is defined relative to the root, not to node itself.
// For a node in a document the root is the Document node, so a
// relative expression like "child::b" matches only a root element
// named b, and "//b" matches any <b> in the document.
func Matches(node *xmldom.Node, expr string) (bool, error) {
	e, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return e.Matches(node)
}

// Matches reports whether node is a member of e evaluated from
// node's document root.
func (e *Expr) Matches(node *xmldom.Node) (bool, error) {
	root := docRoot(node)
	nodes, err := e.Select(root)
	if err != nil {
		return false, err
	}
	for _, n := range nodes {
		if n == node {
			return true, nil
		}
	}
	return false, nil
}
