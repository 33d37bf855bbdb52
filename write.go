package xmldom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// WriteTo serializes doc according to opts, writing to w and
// returning the number of bytes written. Because it takes opts as a
// second argument, Document does not satisfy the io.WriterTo interface.
func (doc *Document) WriteTo(w io.Writer, opts FormatOptions) (int64, error) {
	var buf bytes.Buffer
	wr := &writer{opts: opts}
	wr.writeDocument(&buf, doc)
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// String serializes doc using its own Format settings and returns the
// result, mirroring antchfx/xmlquery's Format/FormatString helpers.
func (doc *Document) String() string {
	var buf bytes.Buffer
	wr := &writer{opts: doc.Format}
	wr.writeDocument(&buf, doc)
	return buf.String()
}

// writer holds the format options for one serialization pass; it is
// not safe for concurrent reuse across goroutines (mirrors the
// single-threaded contract in spec.md §5).
type writer struct {
	opts FormatOptions
}

func (wr *writer) writeDocument(buf *bytes.Buffer, doc *Document) {
	if wr.opts.WriteDeclaration {
		fmt.Fprintf(buf, `<?xml version="%s" encoding="%s"?>`, doc.Version, doc.Encoding)
		buf.WriteByte('\n')
		if doc.Doctype.Name != "" {
			wr.writeDoctype(buf, doc.Doctype)
			buf.WriteByte('\n')
		}
	}
	for c := doc.Node.FirstChild; c != nil; c = c.NextSibling {
		wr.writeNode(buf, c, 0)
	}
}

func (wr *writer) writeDoctype(buf *bytes.Buffer, dt Doctype) {
	buf.WriteString("<!DOCTYPE ")
	buf.WriteString(dt.Name)
	switch {
	case dt.PublicID != "" :
		fmt.Fprintf(buf, ` PUBLIC "%s" "%s"`, dt.PublicID, dt.SystemID)
	case dt.SystemID != "":
		fmt.Fprintf(buf, ` SYSTEM "%s"`, dt.SystemID)
	}
	buf.WriteByte('>')
}

// WriteNode serializes a single node (and its subtree, for
// containers) to w, using opts. It is the entry point used when
// writing a detached fragment rather than a whole Document.
func WriteNode(w io.Writer, n *Node, opts FormatOptions) (int64, error) {
	var buf bytes.Buffer
	wr := &writer{opts: opts}
	wr.writeNode(&buf, n, 0)
	k, err := w.Write(buf.Bytes())
	return int64(k), err
}

func (wr *writer) writeNode(buf *bytes.Buffer, n *Node, depth int) {
	switch n.Kind {
	case TextNode:
		wr.writeEscapedText(buf, n.Data)
	case CDataNode:
		buf.WriteString("<![CDATA[")
		buf.WriteString(n.Data)
		buf.WriteString("]]>")
	case CommentNode:
		if wr.opts.SuppressComments {
			return
		}
		buf.WriteString("<!--")
		buf.WriteString(escapeCommentBody(n.Data))
		buf.WriteString("-->")
	case ProcessingInstructionNode:
		buf.WriteString("<?")
		buf.WriteString(n.Target)
		if n.Data != "" {
			buf.WriteByte(' ')
			buf.WriteString(n.Data)
		}
		buf.WriteString("?>")
	case ElementNode:
		wr.writeElement(buf, n, depth)
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			wr.writeNode(buf, c, depth)
		}
	}
}

func (wr *writer) indent(buf *bytes.Buffer, depth int) {
	if !wr.opts.Indent {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", wr.opts.IndentWidth*depth))
}

func (wr *writer) writeElement(buf *bytes.Buffer, n *Node, depth int) {
	buf.WriteByte('<')
	buf.WriteString(n.QName)
	wr.writeAttributes(buf, n, depth)

	empty := n.FirstChild == nil
	if empty && wr.collapsible(n) {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')

	hasElementChild := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if wr.opts.Indent {
			wr.indent(buf, depth+1)
		}
		wr.writeNode(buf, c, depth+1)
		if c.Kind == ElementNode {
			hasElementChild = true
		}
	}
	if wr.opts.Indent && hasElementChild {
		wr.indent(buf, depth)
	}
	buf.WriteString("</")
	buf.WriteString(n.QName)
	buf.WriteByte('>')
}

// collapsible decides whether an empty element may be written as
// <x/>: always when CollapseTags is set outside HTML mode; in HTML
// mode only the 15 HTML void elements collapse (spec.md §6's open
// question on HTML void elements is resolved conservatively: a
// non-void HTML element always gets a separate closing tag even when
// empty).
func (wr *writer) collapsible(n *Node) bool {
	if wr.opts.HTML {
		return htmlVoidElements[strings.ToLower(n.LocalName())]
	}
	return wr.opts.CollapseTags
}

func (wr *writer) writeAttributes(buf *bytes.Buffer, n *Node, depth int) {
	if n.attrs == nil {
		return
	}
	for _, attr := range n.attrs.items {
		if wr.opts.IndentAttributes {
			buf.WriteByte('\n')
			buf.WriteString(strings.Repeat(" ", wr.opts.IndentWidth*depth+len(n.QName)+2))
		} else {
			buf.WriteByte(' ')
		}
		buf.WriteString(attr.QName)
		buf.WriteString(`="`)
		wr.writeEscapedAttrValue(buf, attr.Data)
		buf.WriteByte('"')
	}
}

func (wr *writer) writeEscapedText(buf *bytes.Buffer, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '\n', '\r', '\t':
			if wr.opts.EscapeWhiteSpace {
				fmt.Fprintf(buf, "&#%d;", c)
			} else {
				buf.WriteByte(c)
			}
		default:
			buf.WriteByte(c)
		}
	}
}

func (wr *writer) writeEscapedAttrValue(buf *bytes.Buffer, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			if wr.opts.EscapeDoubleQuote {
				buf.WriteString("&quot;")
			} else {
				buf.WriteByte(c)
			}
		case '\n', '\r', '\t':
			fmt.Fprintf(buf, "&#%d;", c)
		default:
			buf.WriteByte(c)
		}
	}
}

// escapeCommentBody splits any "--" run inside a comment body with a
// space, since "--" is illegal inside an XML comment (spec.md §6).
func escapeCommentBody(s string) string {
	if !strings.Contains(s, "--") {
		return s
	}
	return strings.ReplaceAll(s, "--", "- -")
}
