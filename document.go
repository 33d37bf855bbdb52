package xmldom

// Doctype records the <!DOCTYPE root PUBLIC "pubid" "sysid"> a
// document was parsed with, or that a caller wants to serialize.
type Doctype struct {
	Name     string
	PublicID string
	SystemID string
}

// Notation is a single <!NOTATION name ...> declaration from the DTD.
type Notation struct {
	Name     string
	PublicID string
	SystemID string
}

// Document is the root container of a parsed or constructed XML tree.
// It wraps a DocumentNode Node and adds the document-level state
// spec.md §3 assigns to it: encoding, version, doctype, format
// options, the preserve-CDATA flag, and the notation table.
type Document struct {
	*Node

	Encoding      string
	Version       string // "1.0" or "1.1"
	Standalone    bool
	Doctype       Doctype
	PreserveCDATA bool
	Format        FormatOptions

	notations map[string]Notation
}

// NewDocument creates an empty Document with the given version and
// encoding (defaulting to "1.0" and "UTF-8" respectively if blank).
func NewDocument(version, encoding string) *Document {
	if version == "" {
		version = "1.0"
	}
	if encoding == "" {
		encoding = "UTF-8"
	}
	root := &Node{Kind: DocumentNode}
	doc := &Document{
		Node:      root,
		Encoding:  encoding,
		Version:   version,
		Format:    DefaultFormatOptions(),
		notations: make(map[string]Notation),
	}
	root.owner = doc
	return doc
}

// CreateElement builds a new, detached Element node owned by doc.
func (doc *Document) CreateElement(qname string) *Node {
	return &Node{Kind: ElementNode, QName: qname, owner: doc}
}

// CreateText builds a new, detached Text node owned by doc.
func (doc *Document) CreateText(data string) *Node {
	return &Node{Kind: TextNode, Data: data, owner: doc}
}

// CreateCData builds a new, detached CData node owned by doc.
func (doc *Document) CreateCData(data string) *Node {
	return &Node{Kind: CDataNode, Data: data, owner: doc}
}

// CreateComment builds a new, detached Comment node owned by doc.
func (doc *Document) CreateComment(data string) *Node {
	return &Node{Kind: CommentNode, Data: data, owner: doc}
}

// CreatePI builds a new, detached ProcessingInstruction node owned by
// doc.
func (doc *Document) CreatePI(target, data string) *Node {
	return &Node{Kind: ProcessingInstructionNode, Target: target, Data: data, owner: doc}
}

// RootElement returns the document's single root Element, or nil if
// none has been added yet.
func (doc *Document) RootElement() *Node {
	return doc.Node.FirstElementChild()
}

// AddNotation records a notation declared in the DTD.
func (doc *Document) AddNotation(n Notation) {
	if doc.notations == nil {
		doc.notations = make(map[string]Notation)
	}
	doc.notations[n.Name] = n
}

// Notation looks up a notation by name.
func (doc *Document) Notation(name string) (Notation, bool) {
	n, ok := doc.notations[name]
	return n, ok
}

// Notations returns every declared notation, in no particular order.
func (doc *Document) Notations() []Notation {
	out := make([]Notation, 0, len(doc.notations))
	for _, n := range doc.notations {
		out = append(out, n)
	}
	return out
}
