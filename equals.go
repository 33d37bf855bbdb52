package xmldom

import "sort"

// Equals reports whether a and b are structurally equal, per spec.md
// §4.C: elements compare by local name, resolved namespace URI, child
// sequence (with whitespace-only text nodes filtered out of both
// sides before the positional comparison), and attribute set
// (namespace declarations as an unordered set of URI values,
// non-namespace attributes as a multiset). Every other node kind
// compares by its own content.
func Equals(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case TextNode, CDataNode, CommentNode:
		return a.Data == b.Data
	case ProcessingInstructionNode:
		return a.Target == b.Target && a.Data == b.Data
	case AttributeNode:
		return a.QName == b.QName && a.IsID == b.IsID && a.Data == b.Data
	case ElementNode:
		return elementsEqual(a, b)
	case DocumentNode:
		return childSequencesEqual(a, b)
	default:
		return false
	}
}

func elementsEqual(a, b *Node) bool {
	if a.LocalName() != b.LocalName() {
		return false
	}
	if a.NamespaceURI() != b.NamespaceURI() {
		return false
	}
	if !attributeSetsEqual(a, b) {
		return false
	}
	return childSequencesEqual(a, b)
}

func isWhitespaceOnlyText(n *Node) bool {
	if n.Kind != TextNode {
		return false
	}
	for i := 0; i < len(n.Data); i++ {
		c := n.Data[i]
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			return false
		}
	}
	return true
}

func significantChildren(n *Node) []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isWhitespaceOnlyText(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func childSequencesEqual(a, b *Node) bool {
	ca, cb := significantChildren(a), significantChildren(b)
	if len(ca) != len(cb) {
		return false
	}
	for i := range ca {
		if !Equals(ca[i], cb[i]) {
			return false
		}
	}
	return true
}

func attributeSetsEqual(a, b *Node) bool {
	aNS, aOther := splitAttributes(a)
	bNS, bOther := splitAttributes(b)

	if !sameURISet(aNS, bNS) {
		return false
	}
	return sameMultiset(aOther, bOther)
}

// splitAttributes partitions an element's attributes into namespace
// declarations (by URI value) and ordinary attributes.
func splitAttributes(n *Node) (nsURIs []string, other []*Node) {
	if n.attrs == nil {
		return nil, nil
	}
	for _, attr := range n.attrs.items {
		if attr.IsNamespaceDeclaration() {
			nsURIs = append(nsURIs, attr.Data)
		} else {
			other = append(other, attr)
		}
	}
	return nsURIs, other
}

func sameURISet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]string(nil), a...)
	sb := append([]string(nil), b...)
	sort.Strings(sa)
	sort.Strings(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

func sameMultiset(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]*Node(nil), a...)
	sb := append([]*Node(nil), b...)
	sort.Slice(sa, func(i, j int) bool { return attrLess(sa[i], sa[j]) })
	sort.Slice(sb, func(i, j int) bool { return attrLess(sb[i], sb[j]) })
	for i := range sa {
		if sa[i].QName != sb[i].QName || sa[i].IsID != sb[i].IsID || sa[i].Data != sb[i].Data {
			return false
		}
	}
	return true
}
