package xmldom

import "strings"

// AttributeList is an element's ordered set of attributes, keyed on
// qname. Inserting a duplicate key replaces the existing attribute's
// value in place, preserving its original position (spec.md §3,
// "Attributes").
type AttributeList struct {
	owner *Node
	items []*Node
	index map[string]int
}

func newAttributeList(owner *Node) *AttributeList {
	return &AttributeList{owner: owner, index: make(map[string]int)}
}

// Len returns the number of attributes.
func (a *AttributeList) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

// At returns the i'th attribute node, in insertion order.
func (a *AttributeList) At(i int) *Node {
	return a.items[i]
}

// All returns every attribute node, in insertion order. The returned
// slice is owned by the caller and safe to mutate.
func (a *AttributeList) All() []*Node {
	if a == nil {
		return nil
	}
	out := make([]*Node, len(a.items))
	copy(out, a.items)
	return out
}

// Get returns the value of the attribute named qname and whether it
// exists.
func (a *AttributeList) Get(qname string) (string, bool) {
	if a == nil {
		return "", false
	}
	if i, ok := a.index[qname]; ok {
		return a.items[i].Data, true
	}
	return "", false
}

// Node returns the attribute node named qname, or nil.
func (a *AttributeList) Node(qname string) *Node {
	if a == nil {
		return nil
	}
	if i, ok := a.index[qname]; ok {
		return a.items[i]
	}
	return nil
}

// Set inserts or replaces the attribute named qname with value. It
// reports true if a new attribute was inserted, false if an existing
// one was replaced in place (matching the "Attribute-set semantics"
// testable property: inserted returns false on replace).
func (a *AttributeList) Set(qname, value string) (inserted bool) {
	if i, ok := a.index[qname]; ok {
		a.items[i].Data = value
		return false
	}
	node := &Node{Kind: AttributeNode, QName: qname, Data: value, Parent: a.owner, owner: a.owner.owner}
	a.index[qname] = len(a.items)
	a.items = append(a.items, node)
	return true
}

// SetNode inserts or replaces using a pre-built attribute Node,
// preserving its IsID flag (used by the DTD-aware builder when
// defaulted/fixed attribute values are synthesized).
func (a *AttributeList) SetNode(node *Node) (inserted bool) {
	node.Kind = AttributeNode
	node.Parent = a.owner
	node.owner = a.owner.owner
	if i, ok := a.index[node.QName]; ok {
		a.items[i] = node
		return false
	}
	a.index[node.QName] = len(a.items)
	a.items = append(a.items, node)
	return true
}

// Remove deletes the attribute named qname, reporting whether it was
// present.
func (a *AttributeList) Remove(qname string) bool {
	i, ok := a.index[qname]
	if !ok {
		return false
	}
	a.items = append(a.items[:i], a.items[i+1:]...)
	delete(a.index, qname)
	for k, v := range a.index {
		if v > i {
			a.index[k] = v - 1
		}
	}
	return true
}

// GetAttribute returns the value of the attribute named qname on n,
// or "" if absent. Meaningful only for Element nodes.
func (n *Node) GetAttribute(qname string) string {
	v, _ := n.attrs.Get(qname)
	return v
}

// SetAttribute sets the named attribute's value, creating the
// attribute list lazily.
func (n *Node) SetAttribute(qname, value string) {
	n.ensureAttrs().Set(qname, value)
}

// RemoveAttribute removes the named attribute, if present.
func (n *Node) RemoveAttribute(qname string) bool {
	if n.attrs == nil {
		return false
	}
	return n.attrs.Remove(qname)
}

// IsNamespaceDeclaration reports whether n is an xmlns or xmlns:prefix
// attribute, per spec.md §3: "An attribute whose qname starts with
// xmlns (and whose 6th byte is end-of-string or :) is a namespace
// declaration."
func (n *Node) IsNamespaceDeclaration() bool {
	if n.Kind != AttributeNode {
		return false
	}
	return isNamespaceDeclQName(n.QName)
}

func isNamespaceDeclQName(qname string) bool {
	if !strings.HasPrefix(qname, "xmlns") {
		return false
	}
	if len(qname) == 5 {
		return true
	}
	return qname[5] == ':'
}

// NamespacePrefix returns the prefix being declared by an xmlns /
// xmlns:prefix attribute: "" for the default-namespace form. Returns a
// UsageError if n is not a namespace declaration; see spec.md §7 kind 5.
func (n *Node) NamespacePrefix() (string, error) {
	if !n.IsNamespaceDeclaration() {
		return "", usageErrorf("attribute %q is not a namespace declaration", n.QName)
	}
	if len(n.QName) == 5 {
		return "", nil
	}
	return n.QName[6:], nil
}

// attrLess implements the "Attributes compare by (qname, isId, value)
// lexicographically" ordering from spec.md §3, used by structural
// equality.
func attrLess(a, b *Node) bool {
	if a.QName != b.QName {
		return a.QName < b.QName
	}
	if a.IsID != b.IsID {
		return !a.IsID
	}
	return a.Data < b.Data
}
