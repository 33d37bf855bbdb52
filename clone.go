package xmldom

// Clone deep-clones n and its entire subtree, including attribute
// sets, as an unattached tree owned by no document (spec.md §3
// "Lifecycle"). Inserting the result under a node of a document
// (AppendChild, InsertBefore) gives it that document's ownership.
func Clone(n *Node) *Node {
	clone := &Node{
		Kind:   n.Kind,
		QName:  n.QName,
		Target: n.Target,
		Data:   n.Data,
		IsID:   n.IsID,
	}
	if n.attrs != nil {
		clone.attrs = newAttributeList(clone)
		for _, a := range n.attrs.items {
			ac := &Node{Kind: AttributeNode, QName: a.QName, Data: a.Data, IsID: a.IsID}
			clone.attrs.SetNode(ac)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		childClone := Clone(c)
		_ = clone.AppendChild(childClone)
	}
	return clone
}

// CloneDocument deep-clones an entire Document, preserving its
// version/encoding/doctype/format metadata.
func CloneDocument(doc *Document) *Document {
	out := NewDocument(doc.Version, doc.Encoding)
	out.Standalone = doc.Standalone
	out.Doctype = doc.Doctype
	out.PreserveCDATA = doc.PreserveCDATA
	out.Format = doc.Format
	for name, n := range doc.notations {
		out.notations[name] = n
	}
	for c := doc.Node.FirstChild; c != nil; c = c.NextSibling {
		childClone := Clone(c)
		_ = out.Node.AppendChild(childClone)
	}
	return out
}
