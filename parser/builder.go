package parser

import "github.com/go-xmldom/xmldom"

// Builder implements Handler by building an *xmldom.Document,
// following spec.md §4.G's document-builder rules one-for-one: it
// keeps a single insertion-pointer stack and appends each incoming
// node under its top.
type Builder struct {
	doc     *xmldom.Document
	stack   []*xmldom.Node // insertion pointer; stack[len-1] is current
	inCDATA bool
	cdata   *xmldom.Node
}

// NewBuilder returns a Builder that will build into doc.
func NewBuilder(doc *xmldom.Document) *Builder {
	return &Builder{doc: doc, stack: []*xmldom.Node{doc.Node}}
}

// Document returns the document under construction.
func (b *Builder) Document() *xmldom.Document { return b.doc }

func (b *Builder) top() *xmldom.Node { return b.stack[len(b.stack)-1] }

func (b *Builder) StartDocument() error { return nil }
func (b *Builder) EndDocument() error   { return nil }

func (b *Builder) XMLDecl(version, encoding string, standalone bool) error {
	if version != "" {
		b.doc.Version = version
	}
	if encoding != "" {
		b.doc.Encoding = encoding
	}
	b.doc.Standalone = standalone
	return nil
}

func (b *Builder) Doctype(name, publicID, systemID string) error {
	b.doc.Doctype = xmldom.Doctype{Name: name, PublicID: publicID, SystemID: systemID}
	return nil
}

func (b *Builder) StartElement(qname string, attrs []Attr, line, col int) error {
	el := b.doc.CreateElement(qname)
	for _, a := range attrs {
		el.SetAttribute(a.QName, a.Value)
		if a.IsID {
			if n := el.Attributes().Node(a.QName); n != nil {
				n.IsID = true
			}
		}
	}
	if err := b.top().AppendChild(el); err != nil {
		return err
	}
	b.stack = append(b.stack, el)
	return nil
}

func (b *Builder) EndElement(qname string) error {
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
	return nil
}

func (b *Builder) CharacterData(data string) error {
	if b.inCDATA && b.doc.PreserveCDATA {
		if b.cdata == nil {
			b.cdata = b.doc.CreateCData("")
			if err := b.top().AppendChild(b.cdata); err != nil {
				return err
			}
		}
		b.cdata.Data += data
		return nil
	}
	b.top().AddText(data)
	return nil
}

func (b *Builder) StartCDATA() error {
	b.inCDATA = true
	b.cdata = nil
	return nil
}

func (b *Builder) EndCDATA() error {
	b.inCDATA = false
	b.cdata = nil
	return nil
}

func (b *Builder) Comment(data string) error {
	return b.top().AppendChild(b.doc.CreateComment(data))
}

func (b *Builder) ProcessingInstruction(target, data string) error {
	return b.top().AppendChild(b.doc.CreatePI(target, data))
}

func (b *Builder) NotationDecl(name, publicID, systemID string) error {
	b.doc.AddNotation(xmldom.Notation{Name: name, PublicID: publicID, SystemID: systemID})
	return nil
}

func (b *Builder) StartNamespaceDecl(prefix, uri string) error { return nil }
func (b *Builder) EndNamespaceDecl(prefix string) error        { return nil }

func (b *Builder) ReportInvalidation(msg string) error { return nil }
