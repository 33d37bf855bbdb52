// Package xmldom implements an in-memory XML Document Object Model:
// parsing (via the sibling parser and parser packages), DTD-aware
// validation (via the dtd package), XPath 1.0 querying (via the xpath
// package), and serialization back to bytes.
//
// A Node is the single representation for every kind of tree member —
// elements, text, CDATA sections, comments, processing instructions,
// attributes, and the document itself. The Kind field discriminates
// between them; most fields are meaningful only for a subset of kinds,
// documented alongside each accessor.
package xmldom

import "strings"

// Kind discriminates the seven node kinds the DOM supports.
type Kind uint8

const (
	// DocumentNode is the root container of a parsed document.
	DocumentNode Kind = iota
	// ElementNode is a tagged element, e.g. <item>.
	ElementNode
	// TextNode is character data outside of a CDATA section.
	TextNode
	// CDataNode is the content of a <![CDATA[ ... ]]> section, kept
	// as its own node kind only when the owning document was parsed
	// (or configured) to preserve CDATA sections.
	CDataNode
	// CommentNode is a <!-- ... --> comment.
	CommentNode
	// ProcessingInstructionNode is a <?target data?> instruction.
	ProcessingInstructionNode
	// AttributeNode is a single attribute of an element. Attribute
	// nodes are not part of any sibling chain; they live in their
	// owning element's attribute list and are reachable from it via
	// the attribute axis.
	AttributeNode
)

func (k Kind) String() string {
	switch k {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CDataNode:
		return "cdata"
	case CommentNode:
		return "comment"
	case ProcessingInstructionNode:
		return "processing-instruction"
	case AttributeNode:
		return "attribute"
	default:
		return "unknown"
	}
}

// Node is a single member of a document tree.
type Node struct {
	Kind Kind

	Parent                   *Node
	FirstChild, LastChild    *Node
	NextSibling, PrevSibling *Node

	// QName is the qualified name ("prefix:local" or "local") of an
	// Element or Attribute node.
	QName string

	// Target is the processing-instruction target. Meaningful only
	// when Kind == ProcessingInstructionNode.
	Target string

	// Data is the text content of a Text/CData/Comment/PI node, or
	// the value of an Attribute node. Unused for Element/Document.
	Data string

	// IsID is set on an Attribute node by DTD validation when its
	// declared type is ID.
	IsID bool

	attrs *AttributeList // non-nil only for Element nodes
	owner *Document       // nearest enclosing Document, propagated on insert
}

// IsContainer reports whether n may hold children, i.e. is an Element
// or the Document itself.
func (n *Node) IsContainer() bool {
	return n.Kind == ElementNode || n.Kind == DocumentNode
}

// OwnerDocument returns the Document that owns n, or nil if n has not
// been attached to one (a freshly constructed, unattached node).
func (n *Node) OwnerDocument() *Document { return n.owner }

// LocalName returns the local part of a "prefix:local" qname, or the
// whole qname if it is unprefixed.
func (n *Node) LocalName() string {
	if i := strings.IndexByte(n.QName, ':'); i >= 0 {
		return n.QName[i+1:]
	}
	return n.QName
}

// Prefix returns the prefix part of a "prefix:local" qname, or "" if
// the qname carries no prefix.
func (n *Node) Prefix() string {
	if i := strings.IndexByte(n.QName, ':'); i >= 0 {
		return n.QName[:i]
	}
	return ""
}

// NamespaceURI resolves n's namespace URI: for Element and Attribute
// nodes this walks up the ancestor chain looking for the nearest
// xmlns/xmlns:prefix declaration; for every other kind it is "".
func (n *Node) NamespaceURI() string {
	switch n.Kind {
	case ElementNode:
		uri, _ := n.NamespaceForPrefix(n.Prefix())
		return uri
	case AttributeNode:
		prefix := n.Prefix()
		if prefix == "" {
			// Unprefixed attributes never inherit the default
			// namespace (XML Namespaces 1.0 §5.2).
			return ""
		}
		if n.Parent == nil {
			return ""
		}
		uri, _ := n.Parent.NamespaceForPrefix(prefix)
		return uri
	default:
		return ""
	}
}

// Str renders the text value of n, as defined by spec.md §4.C: for an
// Element or Document it is the concatenation of each child's Str(),
// for Text/CData/Comment/PI it is the stored text, and for an
// Attribute it is its value.
func (n *Node) Str() string {
	switch n.Kind {
	case TextNode, CDataNode, CommentNode:
		return n.Data
	case ProcessingInstructionNode:
		return n.Data
	case AttributeNode:
		return n.Data
	default:
		var b strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b.WriteString(c.Str())
		}
		return b.String()
	}
}

// Name returns the node's XPath name(): the qname for Element and
// Attribute, the target for a processing instruction, and "" for
// every other kind.
func (n *Node) Name() string {
	switch n.Kind {
	case ElementNode, AttributeNode:
		return n.QName
	case ProcessingInstructionNode:
		return n.Target
	default:
		return ""
	}
}

// Attributes returns n's attribute list. It is nil unless
// n.Kind == ElementNode.
func (n *Node) Attributes() *AttributeList {
	return n.attrs
}

// ensureAttrs lazily allocates the attribute list for an Element node.
func (n *Node) ensureAttrs() *AttributeList {
	if n.attrs == nil {
		n.attrs = newAttributeList(n)
	}
	return n.attrs
}

// --- structural mutation -----------------------------------------------

// detached reports whether n is free to be inserted somewhere: it has
// no parent and no siblings, matching invariant 2 of spec.md §3.
func (n *Node) detached() bool {
	return n.Parent == nil && n.NextSibling == nil && n.PrevSibling == nil
}

// AppendChild appends child as the last child of n. n must be a
// container (Element or Document); child must not already be attached
// to a tree.
func (n *Node) AppendChild(child *Node) error {
	if !n.IsContainer() {
		return usageErrorf("cannot add children to a %s node", n.Kind)
	}
	if !child.detached() {
		return usageErrorf("node already has a parent or siblings")
	}
	if n.Kind == DocumentNode && child.Kind == ElementNode && n.hasElementChild() {
		return usageErrorf("document already has a root element")
	}
	child.Parent = n
	if n.LastChild == nil {
		n.FirstChild = child
		n.LastChild = child
	} else {
		n.LastChild.NextSibling = child
		child.PrevSibling = n.LastChild
		n.LastChild = child
	}
	n.adoptSubtree(child)
	return nil
}

// InsertBefore inserts child immediately before mark, which must
// already be a child of n. If mark is nil, child is appended at the
// end (same as AppendChild).
func (n *Node) InsertBefore(child, mark *Node) error {
	if mark == nil {
		return n.AppendChild(child)
	}
	if !n.IsContainer() {
		return usageErrorf("cannot add children to a %s node", n.Kind)
	}
	if mark.Parent != n {
		return usageErrorf("reference node is not a child of this container")
	}
	if !child.detached() {
		return usageErrorf("node already has a parent or siblings")
	}
	if n.Kind == DocumentNode && child.Kind == ElementNode && n.hasElementChild() {
		return usageErrorf("document already has a root element")
	}
	child.Parent = n
	child.NextSibling = mark
	child.PrevSibling = mark.PrevSibling
	if mark.PrevSibling != nil {
		mark.PrevSibling.NextSibling = child
	} else {
		n.FirstChild = child
	}
	mark.PrevSibling = child
	n.adoptSubtree(child)
	return nil
}

// RemoveChild detaches child from n, which must be child's parent. The
// removed subtree keeps its own internal structure but is no longer
// reachable from any document.
func (n *Node) RemoveChild(child *Node) error {
	if child.Parent != n {
		return usageErrorf("node is not a child of this container")
	}
	if child.PrevSibling != nil {
		child.PrevSibling.NextSibling = child.NextSibling
	} else {
		n.FirstChild = child.NextSibling
	}
	if child.NextSibling != nil {
		child.NextSibling.PrevSibling = child.PrevSibling
	} else {
		n.LastChild = child.PrevSibling
	}
	child.Parent = nil
	child.NextSibling = nil
	child.PrevSibling = nil
	unadoptSubtree(child)
	return nil
}

// Replace substitutes child in n's place with replacement.
func Replace(child, replacement *Node) error {
	parent := child.Parent
	if parent == nil {
		return usageErrorf("node has no parent to replace it within")
	}
	mark := child.NextSibling
	if err := parent.RemoveChild(child); err != nil {
		return err
	}
	return parent.InsertBefore(replacement, mark)
}

func (n *Node) hasElementChild() bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == ElementNode {
			return true
		}
	}
	return false
}

// adoptSubtree propagates n's owner Document to an entire freshly
// attached subtree (including attribute nodes).
func (n *Node) adoptSubtree(sub *Node) {
	var owner *Document
	if n.Kind == DocumentNode {
		owner = n.doc()
	} else {
		owner = n.owner
	}
	var walk func(*Node)
	walk = func(x *Node) {
		x.owner = owner
		if x.attrs != nil {
			for _, a := range x.attrs.items {
				a.owner = owner
			}
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(sub)
}

func unadoptSubtree(sub *Node) {
	var walk func(*Node)
	walk = func(x *Node) {
		x.owner = nil
		if x.attrs != nil {
			for _, a := range x.attrs.items {
				a.owner = nil
			}
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(sub)
}

// doc returns the *Document wrapping a DocumentNode Node. Valid only
// when n.Kind == DocumentNode; the Document stores a back-pointer to
// itself in its node's owner field at construction time.
func (n *Node) doc() *Document {
	return n.owner
}

// --- child views ---------------------------------------------------

// Elements returns n's direct Element children, in document order,
// skipping any interleaved text/comment/PI nodes. This is the
// "default iterator" described by spec.md §3.
func (n *Node) Elements() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Nodes returns every direct child of n, in document order, including
// non-element nodes. This is the "all-nodes" view from spec.md §3.
func (n *Node) Nodes() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// FirstElementChild returns n's first Element child, or nil.
func (n *Node) FirstElementChild() *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == ElementNode {
			return c
		}
	}
	return nil
}

// NextElementSibling returns n's next Element sibling, or nil.
func (n *Node) NextElementSibling() *Node {
	for c := n.NextSibling; c != nil; c = c.NextSibling {
		if c.Kind == ElementNode {
			return c
		}
	}
	return nil
}

// Child returns n's first Element child, matching the "root element"
// accessor idiom used pervasively by the corpus (e.g. antchfx's
// Node.FirstChild helpers and scenario 1 of spec.md §8: doc.child()).
func (n *Node) Child() *Node {
	return n.FirstElementChild()
}

// Depth returns the number of ancestor containers between n and the
// Document (0 for the root element, -1 for the Document itself).
func (n *Node) Depth() int {
	if n.Kind == DocumentNode {
		return -1
	}
	d := 0
	for p := n.Parent; p != nil && p.Kind != DocumentNode; p = p.Parent {
		d++
	}
	return d
}
