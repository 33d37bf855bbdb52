// Package parser implements the streaming XML/DTD parser: encoding
// detection, entity expansion, DTD-aware validation, and a document
// builder that assembles the result into an xmldom.Document.
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-xmldom/xmldom"
	"github.com/go-xmldom/xmldom/dtd"
	"github.com/go-xmldom/xmldom/internal/xmlchar"
)

// Parser drives a single top-to-bottom pass over a decoded document,
// dispatching events to a Handler (ordinarily a *Builder) as it goes.
// It is not safe for concurrent or repeated use; construct one per
// document via Parse.
type Parser struct {
	src  string
	pos  int
	line int
	col  int

	opts    Options
	handler Handler

	doc      *xmldom.Document
	dtdModel *dtd.DTD
	entities *entityStack
	ns       *namespaceStack

	elemStack  []string
	validators []*dtd.Validator
}

// Parse reads, decodes, and parses the document from r according to
// opts, returning the built DOM.
func Parse(r io.Reader, opts Options) (*xmldom.Document, error) {
	text, encodingName, err := detectAndDecode(r)
	if err != nil {
		return nil, err
	}
	return parseText(text, encodingName, opts)
}

// ParseString parses s as if it had already been decoded to UTF-8,
// skipping the byte-level encoding-detection pass.
func ParseString(s string, opts Options) (*xmldom.Document, error) {
	return parseText(s, "UTF-8", opts)
}

// MustParse parses s with default options and panics on error. It is
// the Go-native equivalent of spec.md §6's `""_xml` literal operator:
// "a parsed document equivalent to parsing the literal through a
// default parser with validation off."
func MustParse(s string) *xmldom.Document {
	doc, err := ParseString(s, Options{})
	if err != nil {
		panic(err)
	}
	return doc
}

func parseText(text, encodingName string, opts Options) (*xmldom.Document, error) {
	opts = opts.normalized()
	doc := xmldom.NewDocument("1.0", encodingName)
	doc.PreserveCDATA = opts.PreserveCDATA

	b := NewBuilder(doc)
	p := &Parser{
		src: text, line: 1, col: 1,
		opts: opts, handler: b, doc: doc,
		entities: newEntityStack(opts.MaxEntityDepth),
		ns:       newNamespaceStack(),
		dtdModel: opts.ExternalDTD,
	}

	if err := p.handler.StartDocument(); err != nil {
		return nil, err
	}
	if err := p.parseProlog(); err != nil {
		return nil, err
	}
	if err := p.parseElement(); err != nil {
		return nil, err
	}
	if err := p.parseMisc(); err != nil {
		return nil, err
	}
	if err := p.handler.EndDocument(); err != nil {
		return nil, err
	}
	if doc.RootElement() == nil {
		return nil, p.errf("document has no root element")
	}
	return doc, nil
}

// --- low-level cursor helpers ------------------------------------------

func (p *Parser) eof() bool { return p.pos >= len(p.src) }

func (p *Parser) peekByte() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *Parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

func (p *Parser) advance(n int) {
	for i := 0; i < n && p.pos < len(p.src); i++ {
		if p.src[p.pos] == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
		p.pos++
	}
}

func (p *Parser) skipSpace() {
	for !p.eof() && xmlchar.IsSpace(p.src[p.pos]) {
		p.advance(1)
	}
}

func (p *Parser) errf(format string, args ...any) error {
	return wellFormedErr(p.line, p.col, format, args...)
}

// validChar reports whether r satisfies the Char production for the
// document's declared XML version (1.1 additionally permits most
// C0/C1 controls), per spec.md's "every decoded codepoint must
// satisfy is_valid_xml_1_0_char (or 1.1...)" rule. CDATA section
// bodies are exempt from this check and never call it.
func (p *Parser) validChar(r rune) bool {
	if p.doc != nil && p.doc.Version == "1.1" {
		return xmlchar.IsValidXML11Char(r)
	}
	return xmlchar.IsValidXML10Char(r)
}

func (p *Parser) expect(tok string) error {
	if !p.hasPrefix(tok) {
		return p.errf("expected %q", tok)
	}
	p.advance(len(tok))
	return nil
}

func (p *Parser) readName() (string, error) {
	start := p.pos
	for !p.eof() {
		r, size, err := xmlchar.DecodeRune(p.src[p.pos:])
		if err != nil || size == 0 || !p.validChar(r) {
			break
		}
		if p.pos == start {
			if !xmlchar.IsNameStartChar(r) {
				break
			}
		} else if !xmlchar.IsNameChar(r) {
			break
		}
		p.advance(size)
	}
	if p.pos == start {
		return "", p.errf("expected a name")
	}
	return p.src[start:p.pos], nil
}

func (p *Parser) readQuoted() (string, error) {
	q := p.peekByte()
	if q != '\'' && q != '"' {
		return "", p.errf("expected quoted literal")
	}
	p.advance(1)
	start := p.pos
	end := strings.IndexByte(p.src[p.pos:], q)
	if end < 0 {
		return "", p.errf("unterminated quoted literal")
	}
	value := p.src[start : start+end]
	p.advance(end + 1)
	return value, nil
}

// --- prolog -------------------------------------------------------------

func (p *Parser) parseProlog() error {
	version, encoding, standalone, hasDecl, err := p.parseOptionalXMLDecl()
	if err != nil {
		return err
	}
	if hasDecl {
		if err := p.handler.XMLDecl(version, encoding, standalone); err != nil {
			return err
		}
	}
	if err := p.parseMisc(); err != nil {
		return err
	}
	if p.hasPrefix("<!DOCTYPE") {
		if err := p.parseDoctype(); err != nil {
			return err
		}
		if err := p.parseMisc(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseOptionalXMLDecl() (version, encoding string, standalone, has bool, err error) {
	if !p.hasPrefix("<?xml") {
		return "", "", false, false, nil
	}
	// Require a following space or '?' so "<?xml-stylesheet" isn't
	// mistaken for the declaration.
	if len(p.src) > p.pos+5 && !xmlchar.IsSpace(p.src[p.pos+5]) {
		return "", "", false, false, nil
	}
	p.advance(len("<?xml"))
	version = "1.0"
	for {
		p.skipSpace()
		if p.hasPrefix("?>") {
			p.advance(2)
			return version, encoding, standalone, true, nil
		}
		name, err := p.readName()
		if err != nil {
			return "", "", false, false, err
		}
		p.skipSpace()
		if err := p.expect("="); err != nil {
			return "", "", false, false, err
		}
		p.skipSpace()
		value, err := p.readQuoted()
		if err != nil {
			return "", "", false, false, err
		}
		switch name {
		case "version":
			version = value
		case "encoding":
			encoding = value
		case "standalone":
			standalone = value == "yes"
		}
	}
}

func (p *Parser) parseMisc() error {
	for {
		p.skipSpace()
		switch {
		case p.hasPrefix("<!--"):
			if err := p.parseComment(); err != nil {
				return err
			}
		case p.hasPrefix("<?"):
			if err := p.parsePI(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (p *Parser) parseComment() error {
	p.advance(len("<!--"))
	end := strings.Index(p.src[p.pos:], "-->")
	if end < 0 {
		return p.errf("unterminated comment")
	}
	body := p.src[p.pos : p.pos+end]
	if strings.Contains(body, "--") {
		return p.errf("comment body must not contain \"--\"")
	}
	p.advance(end + 3)
	return p.handler.Comment(body)
}

func (p *Parser) parsePI() error {
	p.advance(2)
	target, err := p.readName()
	if err != nil {
		return err
	}
	p.skipSpace()
	end := strings.Index(p.src[p.pos:], "?>")
	if end < 0 {
		return p.errf("unterminated processing instruction")
	}
	data := p.src[p.pos : p.pos+end]
	p.advance(end + 2)
	return p.handler.ProcessingInstruction(target, data)
}

// --- doctype / internal subset -------------------------------------------

func (p *Parser) parseDoctype() error {
	p.advance(len("<!DOCTYPE"))
	p.skipSpace()
	name, err := p.readName()
	if err != nil {
		return err
	}
	p.skipSpace()

	var publicID, systemID string
	switch {
	case p.hasPrefix("PUBLIC"):
		p.advance(len("PUBLIC"))
		p.skipSpace()
		publicID, err = p.readQuoted()
		if err != nil {
			return err
		}
		p.skipSpace()
		systemID, err = p.readQuoted()
		if err != nil {
			return err
		}
	case p.hasPrefix("SYSTEM"):
		p.advance(len("SYSTEM"))
		p.skipSpace()
		systemID, err = p.readQuoted()
		if err != nil {
			return err
		}
	}
	p.skipSpace()

	if p.dtdModel == nil {
		p.dtdModel = dtd.New(name)
	}

	if p.peekByte() == '[' {
		p.advance(1)
		end := findInternalSubsetEnd(p.src[p.pos:])
		if end < 0 {
			return p.errf("unterminated internal DTD subset")
		}
		body := p.src[p.pos : p.pos+end]
		p.advance(end + 1)
		sub := newDTDParser(p.dtdModel, false, p.opts.OnInvalidation)
		if err := sub.parse(body); err != nil {
			return err
		}
	}

	p.skipSpace()
	if err := p.expect(">"); err != nil {
		return err
	}

	if systemID != "" && p.opts.ExternalDTD == nil {
		data, loadErr := p.opts.EntityLoader(p.opts.BaseDir, publicID, systemID)
		if loadErr == nil {
			sub := newDTDParser(p.dtdModel, true, p.opts.OnInvalidation)
			_ = sub.parse(string(data))
		}
	}

	if err := p.handler.Doctype(name, publicID, systemID); err != nil {
		return err
	}
	for _, n := range p.dtdModel.Notations() {
		if err := p.handler.NotationDecl(n.Name, n.PublicID, n.SystemID); err != nil {
			return err
		}
	}
	return nil
}

// findInternalSubsetEnd finds the ']' closing an internal subset,
// ignoring any ']' that appears inside a quoted literal.
func findInternalSubsetEnd(s string) int {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case ']':
			return i
		}
	}
	return -1
}

// --- elements -------------------------------------------------------------

func (p *Parser) parseElement() error {
	if p.peekByte() != '<' {
		return p.errf("expected '<' to start the root element")
	}
	return p.parseElementNode(0)
}

func (p *Parser) parseElementNode(depth int) error {
	if depth > p.opts.MaxNestingDepth {
		return p.errf("element nesting exceeds max depth %d", p.opts.MaxNestingDepth)
	}
	startLine, startCol := p.line, p.col
	p.advance(1) // '<'
	qname, err := p.readName()
	if err != nil {
		return err
	}
	attrs, err := p.parseAttributes()
	if err != nil {
		return err
	}
	if p.opts.Validate && p.dtdModel != nil {
		attrs = p.normalizeAttributes(qname, attrs)
	}
	p.skipSpace()

	empty := p.hasPrefix("/>")
	if empty {
		p.advance(2)
	} else {
		if err := p.expect(">"); err != nil {
			return err
		}
	}

	validator := p.pushValidator(qname)
	bindings := p.ns.pushFrame(attrs)
	for _, nb := range bindings {
		if err := p.handler.StartNamespaceDecl(nb.prefix, nb.uri); err != nil {
			return err
		}
	}
	if err := p.handler.StartElement(qname, attrs, startLine, startCol); err != nil {
		return err
	}
	p.elemStack = append(p.elemStack, qname)

	if !empty {
		if err := p.parseContent(validator, depth); err != nil {
			return err
		}
		if err := p.expectEndTag(qname); err != nil {
			return err
		}
	}
	if p.opts.Validate && !validator.Done() {
		p.reportInvalidation("element %q ended without satisfying its content model", qname)
	}

	p.elemStack = p.elemStack[:len(p.elemStack)-1]
	p.popValidator()

	for _, nb := range bindings {
		if err := p.handler.EndNamespaceDecl(nb.prefix); err != nil {
			return err
		}
	}
	p.ns.popFrame()

	return p.handler.EndElement(qname)
}

func (p *Parser) expectEndTag(qname string) error {
	p.skipSpace()
	if !p.hasPrefix("</") {
		return p.errf("expected end tag </%s>", qname)
	}
	p.advance(2)
	name, err := p.readName()
	if err != nil {
		return err
	}
	if name != qname {
		return p.errf("mismatched end tag: expected </%s>, got </%s>", qname, name)
	}
	p.skipSpace()
	return p.expect(">")
}

func (p *Parser) parseAttributes() ([]Attr, error) {
	var attrs []Attr
	seen := map[string]bool{}
	for {
		p.skipSpace()
		c := p.peekByte()
		if c == '>' || c == '/' || c == 0 {
			return attrs, nil
		}
		name, err := p.readName()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect("="); err != nil {
			return nil, err
		}
		p.skipSpace()
		raw, err := p.readAttributeValue()
		if err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, p.errf("duplicate attribute %q", name)
		}
		seen[name] = true
		attrs = append(attrs, Attr{QName: name, Value: raw})
	}
}

func (p *Parser) readAttributeValue() (string, error) {
	q := p.peekByte()
	if q != '\'' && q != '"' {
		return "", p.errf("expected quoted attribute value")
	}
	p.advance(1)
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errf("unterminated attribute value")
		}
		c := p.peekByte()
		if c == q {
			p.advance(1)
			return b.String(), nil
		}
		if c == '<' {
			return "", p.errf("'<' is not allowed in an attribute value")
		}
		if c == '&' {
			expanded, err := p.expandReference()
			if err != nil {
				return "", err
			}
			b.WriteString(expanded)
			continue
		}
		if xmlchar.IsSpace(c) {
			b.WriteByte(' ')
			p.advance(1)
			continue
		}
		r, size, err := xmlchar.DecodeRune(p.src[p.pos:])
		if err != nil {
			return "", p.errf("invalid UTF-8 in attribute value")
		}
		if !p.validChar(r) {
			return "", p.errf("character U+%04X is not allowed in an attribute value", r)
		}
		b.WriteRune(r)
		p.advance(size)
	}
}

// expandReference expands a single "&...;" reference at the cursor —
// a character reference, a built-in entity, or a declared general
// entity — and returns its replacement text, recursively expanding
// any further references the replacement text itself contains.
func (p *Parser) expandReference() (string, error) {
	p.advance(1) // '&'
	if p.peekByte() == '#' {
		p.advance(1)
		hex := p.peekByte() == 'x'
		if hex {
			p.advance(1)
		}
		start := p.pos
		for !p.eof() && p.peekByte() != ';' {
			p.advance(1)
		}
		digits := p.src[start:p.pos]
		if err := p.expect(";"); err != nil {
			return "", err
		}
		base := 10
		if hex {
			base = 16
		}
		code, err := strconv.ParseInt(digits, base, 32)
		if err != nil {
			return "", p.errf("invalid character reference &#%s;", digits)
		}
		if !p.validChar(rune(code)) {
			return "", p.errf("character reference &#%s; does not denote a legal XML character", digits)
		}
		return string(rune(code)), nil
	}

	name, err := p.readName()
	if err != nil {
		return "", err
	}
	if err := p.expect(";"); err != nil {
		return "", err
	}
	value, _, err := resolveGeneral(name, p.entityTable())
	if err != nil {
		return "", p.errf("%v", err)
	}
	if err := p.entities.push(name, value); err != nil {
		return "", p.errf("%v", err)
	}
	defer p.entities.pop()

	return p.expandEntityText(value)
}

// expandEntityText recursively expands any further character and
// entity references inside an entity's own replacement text.
func (p *Parser) expandEntityText(text string) (string, error) {
	var b strings.Builder
	sub := &Parser{src: text, line: p.line, col: p.col, opts: p.opts, entities: p.entities, dtdModel: p.dtdModel, doc: p.doc}
	for !sub.eof() {
		if sub.peekByte() == '&' {
			expanded, err := sub.expandReference()
			if err != nil {
				return "", err
			}
			b.WriteString(expanded)
			continue
		}
		r, size, err := xmlchar.DecodeRune(sub.src[sub.pos:])
		if err != nil {
			return "", err
		}
		if !sub.validChar(r) {
			return "", sub.errf("character U+%04X is not allowed in entity replacement text", r)
		}
		b.WriteRune(r)
		sub.advance(size)
	}
	return b.String(), nil
}

func (p *Parser) entityTable() *dtd.EntityTable {
	if p.dtdModel == nil {
		return nil
	}
	return p.dtdModel.Entities
}

// --- content (between a start tag and its end tag) -------------------------

func (p *Parser) parseContent(validator *dtd.Validator, depth int) error {
	var textBuf strings.Builder
	flush := func() error {
		if textBuf.Len() == 0 {
			return nil
		}
		text := textBuf.String()
		textBuf.Reset()
		if p.opts.Validate && validator.ContentSpecKind() == dtd.ContentChildren && xmlchar.Trim(text) == "" {
			return nil
		}
		if p.opts.Validate && validator.ContentSpecKind() == dtd.ContentChildren && xmlchar.Trim(text) != "" {
			p.reportInvalidation("character data not allowed here")
		}
		return p.handler.CharacterData(text)
	}

	for {
		if p.eof() {
			return p.errf("unexpected end of input inside element content")
		}
		switch {
		case p.hasPrefix("</"):
			return flush()
		case p.hasPrefix("<!--"):
			if err := flush(); err != nil {
				return err
			}
			if err := p.parseComment(); err != nil {
				return err
			}
		case p.hasPrefix("<![CDATA["):
			if err := flush(); err != nil {
				return err
			}
			if err := p.parseCDATA(); err != nil {
				return err
			}
		case p.hasPrefix("<?"):
			if err := flush(); err != nil {
				return err
			}
			if err := p.parsePI(); err != nil {
				return err
			}
		case p.peekByte() == '<':
			if err := flush(); err != nil {
				return err
			}
			childName, err := p.peekStartTagName()
			if err == nil && p.opts.Validate {
				if !validator.Allow(childName) {
					p.reportInvalidation("element %q not allowed here", childName)
				}
			}
			if err := p.parseElementNode(depth + 1); err != nil {
				return err
			}
		case p.peekByte() == '&':
			expanded, err := p.expandReference()
			if err != nil {
				return err
			}
			textBuf.WriteString(expanded)
		default:
			r, size, err := xmlchar.DecodeRune(p.src[p.pos:])
			if err != nil {
				return p.errf("invalid UTF-8 in character data")
			}
			if !p.validChar(r) {
				return p.errf("character U+%04X is not allowed in character data", r)
			}
			textBuf.WriteRune(r)
			p.advance(size)
		}
	}
}

func (p *Parser) peekStartTagName() (string, error) {
	save := p.pos
	p.advance(1)
	name, err := p.readName()
	p.pos = save
	return name, err
}

func (p *Parser) parseCDATA() error {
	p.advance(len("<![CDATA["))
	end := strings.Index(p.src[p.pos:], "]]>")
	if end < 0 {
		return p.errf("unterminated CDATA section")
	}
	body := p.src[p.pos : p.pos+end]
	p.advance(end + 3)
	if err := p.handler.StartCDATA(); err != nil {
		return err
	}
	if err := p.handler.CharacterData(body); err != nil {
		return err
	}
	return p.handler.EndCDATA()
}

// --- validation bookkeeping -------------------------------------------------

func (p *Parser) pushValidator(qname string) *dtd.Validator {
	var v *dtd.Validator
	if p.opts.Validate && p.dtdModel != nil {
		v = p.dtdModel.ValidatorFor(qname)
	} else {
		v = dtd.NewValidator(nil)
	}
	p.validators = append(p.validators, v)
	return v
}

func (p *Parser) popValidator() {
	if len(p.validators) > 0 {
		p.validators = p.validators[:len(p.validators)-1]
	}
}

// normalizeAttributes applies spec.md §4.F/§4.E attribute
// normalization and validation: declared attributes are normalized
// and type-checked, missing #REQUIRED attributes are reported, and
// #FIXED/defaulted attributes absent from attrs are synthesized.
func (p *Parser) normalizeAttributes(qname string, attrs []Attr) []Attr {
	decl, ok := p.dtdModel.LookupElement(qname)
	if !ok || !decl.Declared {
		return attrs
	}

	present := make(map[string]int, len(attrs))
	for i, a := range attrs {
		present[a.QName] = i
	}

	for _, ad := range decl.Attributes() {
		idx, have := present[ad.Name]
		if have {
			norm, err := ad.Normalize(attrs[idx].Value, p.dtdModel.Entities)
			if err != nil {
				p.reportInvalidation("%s", err)
			}
			attrs[idx].Value = norm
			attrs[idx].IsID = ad.Type == dtd.AttrID
			continue
		}
		switch ad.DefaultKind {
		case dtd.DefaultRequired:
			p.reportInvalidation("element %q missing required attribute %q", qname, ad.Name)
		case dtd.DefaultFixed, dtd.DefaultLiteral:
			attrs = append(attrs, Attr{QName: ad.Name, Value: ad.DefaultValue, IsID: ad.Type == dtd.AttrID})
		}
	}
	return attrs
}

func (p *Parser) reportInvalidation(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.opts.OnInvalidation != nil {
		p.opts.OnInvalidation(msg)
	}
	_ = p.handler.ReportInvalidation(msg)
}
