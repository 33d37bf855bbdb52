package xpath

import "github.com/go-xmldom/xmldom"

// axisNodes returns every node an axis reaches from n, BEFORE NodeTest
// filtering. Per the deliberate simplification spec.md §4.I calls out
// explicitly ("results are collected preserving document order"),
// every axis — including the four reverse axes ancestor,
// ancestor-or-self, preceding and preceding-sibling — returns its
// candidates in forward document order rather than XPath 1.0's
// canonical reverse-axis proximity order. This only matters for
// position()/last() inside a predicate on a reverse-axis step: here
// position 1 is the member closest to the document root, not the
// member closest to the context node.
func axisNodes(ax axis, n *xmldom.Node) []*xmldom.Node {
	switch ax {
	case axisSelf:
		return []*xmldom.Node{n}

	case axisChild:
		return n.Nodes()

	case axisDescendant:
		var out []*xmldom.Node
		collectDescendants(n, &out)
		return out

	case axisDescendantOrSelf:
		out := []*xmldom.Node{n}
		collectDescendants(n, &out)
		return out

	case axisParent:
		if n.Parent == nil {
			return nil
		}
		return []*xmldom.Node{n.Parent}

	case axisAncestor:
		path := ancestorsOrSelf(n)
		if len(path) == 0 {
			return nil
		}
		return path[:len(path)-1]

	case axisAncestorOrSelf:
		return ancestorsOrSelf(n)

	case axisFollowingSibling:
		var out []*xmldom.Node
		for c := n.NextSibling; c != nil; c = c.NextSibling {
			out = append(out, c)
		}
		return out

	case axisPrecedingSibling:
		var out []*xmldom.Node
		for c := n.PrevSibling; c != nil; c = c.PrevSibling {
			out = append(out, c)
		}
		// PrevSibling walks nearest-first; reverse to document order.
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
		return out

	case axisFollowing:
		return followingOf(n)

	case axisPreceding:
		return precedingOf(n)

	case axisAttribute:
		attrs := n.Attributes()
		return attrs.All()

	case axisNamespace:
		// xmldom has no namespace-node representation; every
		// namespace in scope is reachable as an xmlns/xmlns:prefix
		// attribute via the attribute axis instead.
		return nil

	default:
		return nil
	}
}

func collectDescendants(n *xmldom.Node, out *[]*xmldom.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		*out = append(*out, c)
		collectDescendants(c, out)
	}
}

// preorderNonAttr returns every non-Document, non-Attribute node in
// root's subtree, in preorder (document order), for use by the
// following/preceding axes, which XPath 1.0 defines to never contain
// attribute or namespace nodes.
func preorderNonAttr(root *xmldom.Node) []*xmldom.Node {
	var out []*xmldom.Node
	var walk func(*xmldom.Node)
	walk = func(x *xmldom.Node) {
		if x.Kind != xmldom.DocumentNode {
			out = append(out, x)
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func followingOf(n *xmldom.Node) []*xmldom.Node {
	if n.Kind == xmldom.AttributeNode {
		n = n.Parent
		if n == nil {
			return nil
		}
	}
	list := preorderNonAttr(docRoot(n))
	_, end := subtreeRange(list, n)
	if end < 0 {
		return nil
	}
	return append([]*xmldom.Node(nil), list[end+1:]...)
}

func precedingOf(n *xmldom.Node) []*xmldom.Node {
	base := n
	if base.Kind == xmldom.AttributeNode {
		base = base.Parent
		if base == nil {
			return nil
		}
	}
	list := preorderNonAttr(docRoot(base))
	start, _ := subtreeRange(list, base)
	if start < 0 {
		return nil
	}
	ancestors := make(map[*xmldom.Node]bool)
	for _, a := range ancestorsOrSelf(base) {
		ancestors[a] = true
	}
	var out []*xmldom.Node
	for _, x := range list[:start] {
		if !ancestors[x] {
			out = append(out, x)
		}
	}
	return out
}

// subtreeRange finds n's contiguous [start, end] index range within a
// preorder listing of its tree, or (-1, -1) if n is absent (e.g. n is
// the Document node itself, which preorderNonAttr omits).
func subtreeRange(list []*xmldom.Node, n *xmldom.Node) (start, end int) {
	start = -1
	for i, x := range list {
		if x == n {
			start = i
			break
		}
	}
	if start < 0 {
		return -1, -1
	}
	subtreeLen := len(preorderNonAttr(n))
	return start, start + subtreeLen - 1
}
