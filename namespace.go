package xmldom

// XMLNamespaceURI is the namespace bound by definition to the "xml"
// prefix, per the XML Namespaces recommendation.
const XMLNamespaceURI = "http://www.w3.org/XML/1998/namespace"

// NamespaceForPrefix resolves the namespace URI bound to prefix at
// n's position in the tree: it scans n's own attributes for
// xmlns/xmlns:prefix, then recurses to the parent (spec.md §4.C).
// The second return value is false if no binding exists anywhere in
// the ancestor chain.
func (n *Node) NamespaceForPrefix(prefix string) (string, bool) {
	if prefix == "xml" {
		return XMLNamespaceURI, true
	}
	for e := n; e != nil; e = e.Parent {
		if e.Kind != ElementNode {
			continue
		}
		qname := "xmlns"
		if prefix != "" {
			qname = "xmlns:" + prefix
		}
		if v, ok := e.attrs.Get(qname); ok {
			return v, true
		}
	}
	return "", false
}

// PrefixForNamespace is the inverse of NamespaceForPrefix: it returns
// the nearest-declared prefix bound to uri at n's position, and
// whether any such binding was found. The empty prefix is a legal
// result, hence the separate boolean.
func (n *Node) PrefixForNamespace(uri string) (string, bool) {
	if uri == XMLNamespaceURI {
		return "xml", true
	}
	seen := make(map[string]bool)
	for e := n; e != nil; e = e.Parent {
		if e.Kind != ElementNode || e.attrs == nil {
			continue
		}
		for _, attr := range e.attrs.items {
			if !attr.IsNamespaceDeclaration() {
				continue
			}
			prefix, _ := attr.NamespacePrefix()
			if seen[prefix] {
				continue
			}
			seen[prefix] = true
			if attr.Data == uri {
				return prefix, true
			}
		}
	}
	return "", false
}

// FixNamespaces walks the subtree rooted at e (freshly moved from
// source into dest, or about to be) and, for every namespace prefix
// used by a qname in the subtree, either confirms dest already binds
// that prefix to the same URI, or declares a new xmlns:prefix
// attribute on e so the subtree remains correctly scoped once
// detached from source (spec.md §4.C).
func FixNamespaces(e *Node, source, dest *Node) {
	if e.Kind != ElementNode {
		return
	}
	needed := map[string]string{} // prefix -> uri, as resolved under source
	collectPrefixes(e, source, needed)

	for prefix, uri := range needed {
		if resolved, ok := dest.NamespaceForPrefix(prefix); ok && resolved == uri {
			continue
		}
		qname := "xmlns"
		if prefix != "" {
			qname = "xmlns:" + prefix
		}
		e.SetAttribute(qname, uri)
	}
}

func collectPrefixes(n *Node, source *Node, out map[string]string) {
	if n.Kind == ElementNode {
		if uri, ok := n.NamespaceForPrefix(n.Prefix()); ok {
			out[n.Prefix()] = uri
		}
		if n.attrs != nil {
			for _, attr := range n.attrs.items {
				if attr.IsNamespaceDeclaration() {
					continue
				}
				if prefix := attr.Prefix(); prefix != "" {
					if uri, ok := n.NamespaceForPrefix(prefix); ok {
						out[prefix] = uri
					}
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectPrefixes(c, source, out)
	}
}
