package parser

// Attr is a single attribute as delivered to Handler.StartElement,
// already normalized per spec.md §4.F ("Attribute normalization").
type Attr struct {
	QName string
	Value string
	// IsID is set once DTD validation (if enabled) has resolved this
	// attribute's declared type to ID.
	IsID bool
}

// Handler receives parse events in document order, mirroring the
// shape of moznion-helium's sax.ContentHandler/DTDHandler/
// LexicalHandler, collapsed into a single interface since this parser
// supports exactly one handler at a time (Builder, by default).
type Handler interface {
	StartDocument() error
	EndDocument() error

	XMLDecl(version, encoding string, standalone bool) error
	Doctype(name, publicID, systemID string) error

	StartElement(qname string, attrs []Attr, line, col int) error
	EndElement(qname string) error

	CharacterData(data string) error

	StartCDATA() error
	EndCDATA() error

	Comment(data string) error
	ProcessingInstruction(target, data string) error

	NotationDecl(name, publicID, systemID string) error

	StartNamespaceDecl(prefix, uri string) error
	EndNamespaceDecl(prefix string) error

	// ReportInvalidation is called for every validity violation found
	// while validation is enabled; it is never fatal.
	ReportInvalidation(msg string) error
}
