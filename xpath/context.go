package xpath

import "github.com/go-xmldom/xmldom"

// Context carries everything an XPath expression's evaluation needs
// beyond the expression tree itself: the context node, the context
// node-set it was selected from (for position()/last()), and the
// variable bindings in scope, per spec.md §4.I.
type Context struct {
	Node     *xmldom.Node
	NodeList []*xmldom.Node // the node-set the context node was drawn from
	Pos      int            // 1-based position of Node within NodeList
	Vars     map[string]Object
}

// NewContext builds the initial Context for evaluating an expression
// against a single node: the node-set is the singleton {node} and
// position/last are both 1.
func NewContext(node *xmldom.Node) *Context {
	return &Context{Node: node, NodeList: []*xmldom.Node{node}, Pos: 1, Vars: map[string]Object{}}
}

// Position returns context position(): Pos as set by the enclosing
// step or predicate evaluation.
func (c *Context) Position() int { return c.Pos }

// Last returns context size, last(): the length of the node-set the
// context node was drawn from.
func (c *Context) Last() int { return len(c.NodeList) }

// withNode returns a shallow copy of c for evaluating against a
// different context node at a given 1-based position within
// nodeList, sharing the same variable bindings (per spec.md §4.I,
// variable scope is immutable and copied by reference across a whole
// evaluation).
func (c *Context) withNode(node *xmldom.Node, pos int, nodeList []*xmldom.Node) *Context {
	return &Context{Node: node, NodeList: nodeList, Pos: pos, Vars: c.Vars}
}
