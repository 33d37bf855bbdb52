package xpath

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-xmldom/xmldom"
	"github.com/samber/lo"
)

// stringValue computes an XPath string-value: the concatenation, in
// document order, of every descendant Text/CData node's character
// data for an Element or Document, the stored data for Text/CData/
// Comment/PI, and the value for an Attribute. Comments and processing
// instructions never contribute to an ancestor's string-value, unlike
// xmldom.Node.Str (used for reserialization), which is why this lives
// here rather than reusing Str.
func stringValue(n *xmldom.Node) string {
	switch n.Kind {
	case xmldom.TextNode, xmldom.CDataNode, xmldom.CommentNode, xmldom.ProcessingInstructionNode, xmldom.AttributeNode:
		return n.Data
	default:
		var b strings.Builder
		collectText(n, &b)
		return b.String()
	}
}

func collectText(n *xmldom.Node, b *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Kind {
		case xmldom.TextNode, xmldom.CDataNode:
			b.WriteString(c.Data)
		case xmldom.ElementNode:
			collectText(c, b)
		}
	}
}

// ancestorsOrSelf returns the path from the topmost ancestor of n down
// to n itself, inclusive. Since an attribute's Parent field names its
// owning element (see attribute.go's AttributeList.Set), this walk is
// uniform across every node kind.
func ancestorsOrSelf(n *xmldom.Node) []*xmldom.Node {
	var rev []*xmldom.Node
	for x := n; x != nil; x = x.Parent {
		rev = append(rev, x)
	}
	path := make([]*xmldom.Node, len(rev))
	for i, x := range rev {
		path[len(rev)-1-i] = x
	}
	return path
}

// docRoot returns the topmost ancestor of n: the owning Document's
// root node when n is attached to one, or the root of a detached
// subtree otherwise.
func docRoot(n *xmldom.Node) *xmldom.Node {
	x := n
	for x.Parent != nil {
		x = x.Parent
	}
	return x
}

// compareDocumentOrder returns -1 if a precedes b in document order,
// 1 if b precedes a, and 0 if a == b. It is undefined (but
// deterministic) across two nodes belonging to different trees.
func compareDocumentOrder(a, b *xmldom.Node) int {
	if a == b {
		return 0
	}
	pa, pb := ancestorsOrSelf(a), ancestorsOrSelf(b)
	i := 0
	for i < len(pa) && i < len(pb) && pa[i] == pb[i] {
		i++
	}
	switch {
	case i == len(pa):
		return -1 // a is an ancestor of b
	case i == len(pb):
		return 1 // b is an ancestor of a
	}
	var parent *xmldom.Node
	if i > 0 {
		parent = pa[i-1]
	}
	return siblingOrder(parent, pa[i], pb[i])
}

// siblingOrder orders two distinct children (or attribute nodes) of
// the same parent: every attribute node precedes every regular child,
// per the convention documented on attribute.go's AttributeList
// (attributes have no position in the sibling chain, so they are
// ordered amongst themselves by their index in the owning element's
// attribute list, and as a group before any element content).
func siblingOrder(parent *xmldom.Node, x, y *xmldom.Node) int {
	if parent == nil {
		return strings.Compare(fmt.Sprintf("%p", x), fmt.Sprintf("%p", y))
	}
	xAttr := x.Kind == xmldom.AttributeNode
	yAttr := y.Kind == xmldom.AttributeNode
	switch {
	case xAttr && !yAttr:
		return -1
	case !xAttr && yAttr:
		return 1
	case xAttr && yAttr:
		ix, iy := attrIndex(parent, x), attrIndex(parent, y)
		switch {
		case ix < iy:
			return -1
		case ix > iy:
			return 1
		default:
			return 0
		}
	default:
		for c := parent.FirstChild; c != nil; c = c.NextSibling {
			if c == x {
				return -1
			}
			if c == y {
				return 1
			}
		}
		return 0
	}
}

func attrIndex(parent, attr *xmldom.Node) int {
	attrs := parent.Attributes()
	for i := 0; i < attrs.Len(); i++ {
		if attrs.At(i) == attr {
			return i
		}
	}
	return -1
}

// sortDocumentOrderUnique sorts nodes into document order and removes
// duplicates, per the "a node-set's members are unique and ordered"
// rule every step/union result must uphold.
func sortDocumentOrderUnique(nodes []*xmldom.Node) []*xmldom.Node {
	out := lo.Uniq(nodes)
	sort.Slice(out, func(i, j int) bool {
		return compareDocumentOrder(out[i], out[j]) < 0
	})
	return out
}
