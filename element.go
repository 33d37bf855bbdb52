package xmldom

import "strings"

// GetContent concatenates the data of n's direct Text and CData
// children, in document order, ignoring any other node kinds
// (spec.md §4.C).
func (n *Node) GetContent() string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == TextNode || c.Kind == CDataNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// SetContent removes every direct Text/CData child of n and appends a
// single new Text child carrying s.
func (n *Node) SetContent(s string) {
	c := n.FirstChild
	for c != nil {
		next := c.NextSibling
		if c.Kind == TextNode || c.Kind == CDataNode {
			_ = n.RemoveChild(c)
		}
		c = next
	}
	text := &Node{Kind: TextNode, Data: s}
	_ = n.AppendChild(text)
}

// AddText appends s to n's trailing Text child, creating one if n's
// last child is not already a Text node.
func (n *Node) AddText(s string) {
	if n.LastChild != nil && n.LastChild.Kind == TextNode {
		n.LastChild.Data += s
		return
	}
	text := &Node{Kind: TextNode, Data: s}
	_ = n.AppendChild(text)
}

// FlattenText merges consecutive Text siblings under n into one node
// each, in place.
func (n *Node) FlattenText() {
	c := n.FirstChild
	for c != nil {
		if c.Kind != TextNode {
			c = c.NextSibling
			continue
		}
		next := c.NextSibling
		for next != nil && next.Kind == TextNode {
			c.Data += next.Data
			after := next.NextSibling
			_ = n.RemoveChild(next)
			next = after
		}
		c = c.NextSibling
	}
}

// Swap exchanges the child lists of two containers (both must be
// Element or Document nodes). The list heads are exchanged directly,
// then every reparented child's Parent pointer is updated to point at
// its new container, so the cost is linear in the number of direct
// children of a and b.
func Swap(a, b *Node) error {
	if !a.IsContainer() || !b.IsContainer() {
		return usageErrorf("Swap requires two containers")
	}
	a.FirstChild, b.FirstChild = b.FirstChild, a.FirstChild
	a.LastChild, b.LastChild = b.LastChild, a.LastChild
	for c := a.FirstChild; c != nil; c = c.NextSibling {
		c.Parent = a
	}
	for c := b.FirstChild; c != nil; c = c.NextSibling {
		c.Parent = b
	}
	return nil
}
