package xpath

import (
	"math"

	"github.com/go-xmldom/xmldom"
)

func (l literalString) eval(ctx *Context) (Object, error) { return StringObject(l.value), nil }
func (l literalNumber) eval(ctx *Context) (Object, error) { return NumberObject(l.value), nil }

func (v variableRef) eval(ctx *Context) (Object, error) {
	if val, ok := ctx.Vars[v.name]; ok {
		return val, nil
	}
	return Object{}, errXPathSyntax("undefined variable $%s", v.name)
}

func (f functionCall) eval(ctx *Context) (Object, error) {
	b, ok := coreFunctions[f.name]
	if !ok {
		return Object{}, errXPathSyntax("unknown function %s()", f.name)
	}
	if len(f.args) < b.arity.min || (b.arity.max >= 0 && len(f.args) > b.arity.max) {
		return Object{}, errXPathSyntax("%s() called with %d arguments", f.name, len(f.args))
	}
	return b.fn(ctx, f.args)
}

func (u unaryMinus) eval(ctx *Context) (Object, error) {
	v, err := u.operand.eval(ctx)
	if err != nil {
		return Object{}, err
	}
	return NumberObject(-v.ToNumber()), nil
}

func (b binOp) eval(ctx *Context) (Object, error) {
	switch b.kind {
	case opOr:
		l, err := b.left.eval(ctx)
		if err != nil {
			return Object{}, err
		}
		if l.ToBool() {
			return BoolObject(true), nil
		}
		r, err := b.right.eval(ctx)
		if err != nil {
			return Object{}, err
		}
		return BoolObject(r.ToBool()), nil

	case opAnd:
		l, err := b.left.eval(ctx)
		if err != nil {
			return Object{}, err
		}
		if !l.ToBool() {
			return BoolObject(false), nil
		}
		r, err := b.right.eval(ctx)
		if err != nil {
			return Object{}, err
		}
		return BoolObject(r.ToBool()), nil

	case opUnion:
		l, err := b.left.eval(ctx)
		if err != nil {
			return Object{}, err
		}
		r, err := b.right.eval(ctx)
		if err != nil {
			return Object{}, err
		}
		if l.Kind != NodeSetKind || r.Kind != NodeSetKind {
			return Object{}, errXPathSyntax("'|' requires node-set operands")
		}
		merged := append(append([]*xmldom.Node(nil), l.Nodes...), r.Nodes...)
		return NodeSet(sortDocumentOrderUnique(merged)), nil
	}

	l, err := b.left.eval(ctx)
	if err != nil {
		return Object{}, err
	}
	r, err := b.right.eval(ctx)
	if err != nil {
		return Object{}, err
	}

	switch b.kind {
	case opEq:
		return BoolObject(xpathEqual(l, r, true)), nil
	case opNe:
		return BoolObject(!xpathEqual(l, r, true)), nil
	case opLt:
		return BoolObject(xpathCompare(l, r, func(a, b float64) bool { return a < b })), nil
	case opLe:
		return BoolObject(xpathCompare(l, r, func(a, b float64) bool { return a <= b })), nil
	case opGt:
		return BoolObject(xpathCompare(l, r, func(a, b float64) bool { return a > b })), nil
	case opGe:
		return BoolObject(xpathCompare(l, r, func(a, b float64) bool { return a >= b })), nil
	case opAdd:
		return NumberObject(l.ToNumber() + r.ToNumber()), nil
	case opSub:
		return NumberObject(l.ToNumber() - r.ToNumber()), nil
	case opMul:
		return NumberObject(l.ToNumber() * r.ToNumber()), nil
	case opDiv:
		return NumberObject(l.ToNumber() / r.ToNumber()), nil
	case opMod:
		return NumberObject(math.Mod(l.ToNumber(), r.ToNumber())), nil
	}
	return Object{}, errXPathSyntax("unhandled operator")
}

// xpathEqual implements the "=" / "!=" comparison rules of XPath 1.0
// §3.4: if either operand is a node-set, the comparison holds if it
// holds for some pair drawn from the node-set (compared as strings,
// unless the other operand is a number or bool, which takes
// precedence over the node-set's string coercion per the spec's
// precedence ladder). Otherwise operands are compared as bool (if
// either side is bool), else as number (if either side is number),
// else as string.
func xpathEqual(l, r Object, forEquality bool) bool {
	if l.Kind == NodeSetKind && r.Kind == NodeSetKind {
		for _, ln := range l.Nodes {
			for _, rn := range r.Nodes {
				if stringValue(ln) == stringValue(rn) {
					return true
				}
			}
		}
		return false
	}
	if l.Kind == NodeSetKind || r.Kind == NodeSetKind {
		ns, other := l, r
		if r.Kind == NodeSetKind {
			ns, other = r, l
		}
		switch other.Kind {
		case NumberKind:
			for _, n := range ns.Nodes {
				if StringObject(stringValue(n)).ToNumber() == other.Number {
					return true
				}
			}
			return false
		case BoolKind:
			return ns.ToBool() == other.Bool
		default:
			for _, n := range ns.Nodes {
				if stringValue(n) == other.ToString() {
					return true
				}
			}
			return false
		}
	}
	if l.Kind == BoolKind || r.Kind == BoolKind {
		return l.ToBool() == r.ToBool()
	}
	if l.Kind == NumberKind || r.Kind == NumberKind {
		return l.ToNumber() == r.ToNumber()
	}
	return l.ToString() == r.ToString()
}

// xpathCompare implements "<"/"<="/">"/">=": every comparison other
// than "=" / "!=" is performed by converting both operands to number,
// except that a node-set operand contributes every member's number
// conversion, and the comparison holds if it holds for any pairing.
func xpathCompare(l, r Object, cmp func(a, b float64) bool) bool {
	if l.Kind == NodeSetKind && r.Kind == NodeSetKind {
		for _, ln := range l.Nodes {
			for _, rn := range r.Nodes {
				if cmp(StringObject(stringValue(ln)).ToNumber(), StringObject(stringValue(rn)).ToNumber()) {
					return true
				}
			}
		}
		return false
	}
	if l.Kind == NodeSetKind {
		for _, n := range l.Nodes {
			if cmp(StringObject(stringValue(n)).ToNumber(), r.ToNumber()) {
				return true
			}
		}
		return false
	}
	if r.Kind == NodeSetKind {
		for _, n := range r.Nodes {
			if cmp(l.ToNumber(), StringObject(stringValue(n)).ToNumber()) {
				return true
			}
		}
		return false
	}
	return cmp(l.ToNumber(), r.ToNumber())
}

func (f *filterExpr) eval(ctx *Context) (Object, error) {
	v, err := f.base.eval(ctx)
	if err != nil {
		return Object{}, err
	}
	if len(f.predicates) == 0 {
		return v, nil
	}
	if v.Kind != NodeSetKind {
		return Object{}, errXPathSyntax("predicate applied to a non-node-set value")
	}
	candidates := v.Nodes
	for _, pred := range f.predicates {
		var kept []*xmldom.Node
		for i, n := range candidates {
			pctx := ctx.withNode(n, i+1, candidates)
			pv, err := pred.eval(pctx)
			if err != nil {
				return Object{}, err
			}
			if predicateHolds(pv, i+1) {
				kept = append(kept, n)
			}
		}
		candidates = kept
	}
	return NodeSet(candidates), nil
}

func (p *locationPath) eval(ctx *Context) (Object, error) {
	var current []*xmldom.Node
	switch {
	case p.base != nil:
		base, err := p.base.eval(ctx)
		if err != nil {
			return Object{}, err
		}
		if base.Kind != NodeSetKind {
			return Object{}, errXPathSyntax("path expression base must be a node-set")
		}
		current = base.Nodes
	case p.absolute:
		current = []*xmldom.Node{docRoot(ctx.Node)}
	default:
		current = []*xmldom.Node{ctx.Node}
	}

	for _, st := range p.steps {
		next, err := evalStep(ctx, st, current)
		if err != nil {
			return Object{}, err
		}
		current = next
	}
	return NodeSet(current), nil
}

// evalStep applies one Step to every node in current. Per XPath 1.0's
// predicate semantics, position()/last() inside a step's predicates
// are relative to the candidate set produced from a single origin
// node, not to the union across every origin node in current — so
// each origin node's axis|NodeTest|predicates pipeline runs to
// completion independently, and only the already-filtered per-origin
// results are unioned together at the end. This is what makes
// "//a/e[1]" select the first e of *each* a rather than the first e
// overall.
func evalStep(ctx *Context, st step, current []*xmldom.Node) ([]*xmldom.Node, error) {
	var result []*xmldom.Node
	for _, n := range current {
		var group []*xmldom.Node
		for _, c := range axisNodes(st.axis, n) {
			if matchesNodeTest(st.test, st.axis, c) {
				group = append(group, c)
			}
		}
		group = sortDocumentOrderUnique(group)

		for _, pred := range st.predicates {
			var kept []*xmldom.Node
			for i, gn := range group {
				pctx := ctx.withNode(gn, i+1, group)
				v, err := pred.eval(pctx)
				if err != nil {
					return nil, err
				}
				if predicateHolds(v, i+1) {
					kept = append(kept, gn)
				}
			}
			group = kept
		}
		result = append(result, group...)
	}
	return sortDocumentOrderUnique(result), nil
}

// predicateHolds applies the special case of spec.md §4.I: a bare
// numeric predicate "[N]" selects the node at position N, while every
// other result type is coerced to boolean.
func predicateHolds(v Object, pos int) bool {
	if v.Kind == NumberKind {
		return v.Number == float64(pos)
	}
	return v.ToBool()
}

func matchesNodeTest(t nodeTest, ax axis, n *xmldom.Node) bool {
	switch t.kind {
	case testWildcard:
		return n.Kind == ax.principalKind()
	case testName:
		if n.Kind != ax.principalKind() {
			return false
		}
		return n.LocalName() == t.name
	case testNode:
		return true
	case testText:
		return n.Kind == xmldom.TextNode || n.Kind == xmldom.CDataNode
	case testComment:
		return n.Kind == xmldom.CommentNode
	case testPI:
		if n.Kind != xmldom.ProcessingInstructionNode {
			return false
		}
		return !t.hasPI || n.Target == t.piLit
	default:
		return false
	}
}
