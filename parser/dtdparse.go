package parser

import (
	"fmt"
	"strings"

	"github.com/go-xmldom/xmldom/dtd"
	"github.com/go-xmldom/xmldom/internal/xmlchar"
)

// dtdParser parses the internal and external DTD subsets into a
// *dtd.DTD, per spec.md §4.F's list of recognized markup declarations
// and §3's content-spec grammar. Parameter entity references are
// expanded textually as they're encountered between declarations,
// the common case the XML recommendation's DTD grammar is built
// around.
type dtdParser struct {
	src      string
	pos      int
	d        *dtd.DTD
	external bool
	onInvalid InvalidationHandler
}

func newDTDParser(d *dtd.DTD, external bool, onInvalid InvalidationHandler) *dtdParser {
	return &dtdParser{d: d, external: external, onInvalid: onInvalid}
}

func (p *dtdParser) parse(src string) error {
	p.src = src
	p.pos = 0
	for {
		p.skipSpaceAndExpandParams()
		if p.pos >= len(p.src) {
			return nil
		}
		if err := p.parseOneDecl(); err != nil {
			return err
		}
	}
}

// skipSpaceAndExpandParams skips XML whitespace, expanding any %name;
// parameter reference it encounters along the way by splicing the
// entity's replacement text directly into the remaining source. This
// is legal only in the external subset and inside entity/notation/
// attlist/element declarations between markup tokens, which is the
// only place this parser ever calls it.
func (p *dtdParser) skipSpaceAndExpandParams() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if xmlchar.IsSpace(c) {
			p.pos++
			continue
		}
		if c == '%' && p.external {
			end := strings.IndexByte(p.src[p.pos+1:], ';')
			if end < 0 {
				return
			}
			name := p.src[p.pos+1 : p.pos+1+end]
			if xmlchar.IsValidName(name) {
				if value, err := resolveParameter(name, p.d.Entities); err == nil {
					p.src = p.src[:p.pos] + value + p.src[p.pos+1+end+1:]
					continue
				}
			}
			return
		}
		return
	}
}

func (p *dtdParser) parseOneDecl() error {
	switch {
	case strings.HasPrefix(p.src[p.pos:], "<!--"):
		return p.skipComment()
	case strings.HasPrefix(p.src[p.pos:], "<?"):
		return p.skipPI()
	case strings.HasPrefix(p.src[p.pos:], "<!ELEMENT"):
		return p.parseElementDecl()
	case strings.HasPrefix(p.src[p.pos:], "<!ATTLIST"):
		return p.parseAttlistDecl()
	case strings.HasPrefix(p.src[p.pos:], "<!ENTITY"):
		return p.parseEntityDecl()
	case strings.HasPrefix(p.src[p.pos:], "<!NOTATION"):
		return p.parseNotationDecl()
	case p.external && strings.HasPrefix(p.src[p.pos:], "<!["):
		return p.parseConditionalSection()
	default:
		return fmt.Errorf("parser: unrecognized DTD markup at offset %d", p.pos)
	}
}

func (p *dtdParser) skipComment() error {
	end := strings.Index(p.src[p.pos:], "-->")
	if end < 0 {
		return fmt.Errorf("parser: unterminated comment in DTD")
	}
	p.pos += end + 3
	return nil
}

func (p *dtdParser) skipPI() error {
	end := strings.Index(p.src[p.pos:], "?>")
	if end < 0 {
		return fmt.Errorf("parser: unterminated processing instruction in DTD")
	}
	p.pos += end + 2
	return nil
}

// parseConditionalSection handles "<![INCLUDE[...]]>" and
// "<![IGNORE[...]]>", legal only in the external subset. IGNORE
// content is skipped verbatim to the matching "]]>"; INCLUDE content
// is recursively parsed as ordinary markup declarations.
func (p *dtdParser) parseConditionalSection() error {
	p.pos += len("<![")
	p.skipSpaceAndExpandParams()
	var keyword string
	switch {
	case strings.HasPrefix(p.src[p.pos:], "INCLUDE"):
		keyword = "INCLUDE"
	case strings.HasPrefix(p.src[p.pos:], "IGNORE"):
		keyword = "IGNORE"
	default:
		return fmt.Errorf("parser: expected INCLUDE or IGNORE in conditional section")
	}
	p.pos += len(keyword)
	p.skipSpaceAndExpandParams()
	if p.src[p.pos] != '[' {
		return fmt.Errorf("parser: expected '[' after %s", keyword)
	}
	p.pos++

	end := findMatchingConditionalEnd(p.src[p.pos:])
	if end < 0 {
		return fmt.Errorf("parser: unterminated conditional section")
	}
	body := p.src[p.pos : p.pos+end]
	p.pos += end + len("]]>")

	if keyword == "IGNORE" {
		return nil
	}
	sub := newDTDParser(p.d, p.external, p.onInvalid)
	return sub.parse(body)
}

// findMatchingConditionalEnd finds the "]]>" that matches the opening
// "[" already consumed, accounting for nested conditional sections.
func findMatchingConditionalEnd(s string) int {
	depth := 0
	for i := 0; i+2 < len(s)+1 && i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], "<!["):
			depth++
			i += 2
		case strings.HasPrefix(s[i:], "]]>"):
			if depth == 0 {
				return i
			}
			depth--
			i += 2
		}
	}
	return -1
}

func (p *dtdParser) readName() (string, error) {
	p.skipSpaceAndExpandParams()
	start := p.pos
	for p.pos < len(p.src) {
		r, size, err := xmlchar.DecodeRune(p.src[p.pos:])
		if err != nil || size == 0 {
			break
		}
		if p.pos == start {
			if !xmlchar.IsNameStartChar(r) {
				break
			}
		} else if !xmlchar.IsNameChar(r) {
			break
		}
		p.pos += size
	}
	if p.pos == start {
		return "", fmt.Errorf("parser: expected a name at offset %d", p.pos)
	}
	return p.src[start:p.pos], nil
}

func (p *dtdParser) expect(tok string) error {
	p.skipSpaceAndExpandParams()
	if !strings.HasPrefix(p.src[p.pos:], tok) {
		return fmt.Errorf("parser: expected %q at offset %d", tok, p.pos)
	}
	p.pos += len(tok)
	return nil
}

func (p *dtdParser) peekByte() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// readQuoted reads a single- or double-quoted literal.
func (p *dtdParser) readQuoted() (string, error) {
	p.skipSpaceAndExpandParams()
	if p.pos >= len(p.src) {
		return "", fmt.Errorf("parser: expected quoted literal")
	}
	q := p.src[p.pos]
	if q != '\'' && q != '"' {
		return "", fmt.Errorf("parser: expected quoted literal at offset %d", p.pos)
	}
	p.pos++
	start := p.pos
	end := strings.IndexByte(p.src[p.pos:], q)
	if end < 0 {
		return "", fmt.Errorf("parser: unterminated quoted literal")
	}
	p.pos += end + 1
	return p.src[start : start+end], nil
}

// --- <!ELEMENT> -------------------------------------------------------

func (p *dtdParser) parseElementDecl() error {
	p.pos += len("<!ELEMENT")
	name, err := p.readName()
	if err != nil {
		return err
	}
	spec, err := p.parseContentSpec()
	if err != nil {
		return err
	}
	if err := p.expect(">"); err != nil {
		return err
	}
	p.d.DeclareElement(name, spec, p.external)
	return nil
}

func (p *dtdParser) parseContentSpec() (*dtd.ContentSpec, error) {
	p.skipSpaceAndExpandParams()
	switch {
	case strings.HasPrefix(p.src[p.pos:], "EMPTY"):
		p.pos += len("EMPTY")
		return dtd.Empty(), nil
	case strings.HasPrefix(p.src[p.pos:], "ANY"):
		p.pos += len("ANY")
		return dtd.Any(), nil
	case p.peekByte() == '(':
		return p.parseParenContentSpec()
	default:
		return nil, fmt.Errorf("parser: expected EMPTY, ANY, or a content group at offset %d", p.pos)
	}
}

func (p *dtdParser) parseParenContentSpec() (*dtd.ContentSpec, error) {
	start := p.pos
	p.pos++ // '('
	p.skipSpaceAndExpandParams()
	if strings.HasPrefix(p.src[p.pos:], "#PCDATA") {
		return p.parseMixedContent()
	}
	p.pos = start
	return p.parseChildrenCP()
}

func (p *dtdParser) parseMixedContent() (*dtd.ContentSpec, error) {
	p.pos += len("#PCDATA")
	var names []*dtd.ContentSpec
	for {
		p.skipSpaceAndExpandParams()
		if p.peekByte() == ')' {
			p.pos++
			break
		}
		if err := p.expect("|"); err != nil {
			return nil, err
		}
		name, err := p.readName()
		if err != nil {
			return nil, err
		}
		names = append(names, dtd.Element(name))
	}
	if p.peekByte() == '*' {
		p.pos++
	}
	return dtd.Choice(true, names...), nil
}

// parseChildrenCP parses one cp (content particle): a name, or a
// parenthesized choice/seq group, each optionally suffixed by a
// '?'/'*'/'+' quantifier.
func (p *dtdParser) parseChildrenCP() (*dtd.ContentSpec, error) {
	var base *dtd.ContentSpec
	var err error
	p.skipSpaceAndExpandParams()
	if p.peekByte() == '(' {
		base, err = p.parseGroup()
	} else {
		var name string
		name, err = p.readName()
		if err == nil {
			base = dtd.Element(name)
		}
	}
	if err != nil {
		return nil, err
	}
	return p.applyQuantifier(base), nil
}

func (p *dtdParser) applyQuantifier(base *dtd.ContentSpec) *dtd.ContentSpec {
	switch p.peekByte() {
	case '?':
		p.pos++
		return dtd.Repeated(base, dtd.QuantOptional)
	case '*':
		p.pos++
		return dtd.Repeated(base, dtd.QuantZeroOrMore)
	case '+':
		p.pos++
		return dtd.Repeated(base, dtd.QuantOneOrMore)
	default:
		return base
	}
}

// parseGroup parses "( cp (sep cp)* )" where sep is consistently
// either "," (a Seq) or "|" (a Choice, never mixed with ",").
func (p *dtdParser) parseGroup() (*dtd.ContentSpec, error) {
	p.pos++ // '('
	first, err := p.parseChildrenCP()
	if err != nil {
		return nil, err
	}
	children := []*dtd.ContentSpec{first}
	p.skipSpaceAndExpandParams()

	var sep byte
	isGroup := false
	for {
		p.skipSpaceAndExpandParams()
		if p.peekByte() == ')' {
			p.pos++
			break
		}
		c := p.peekByte()
		if c != ',' && c != '|' {
			return nil, fmt.Errorf("parser: expected ',' or '|' or ')' at offset %d", p.pos)
		}
		if isGroup && c != sep {
			return nil, fmt.Errorf("parser: cannot mix ',' and '|' in one content group")
		}
		sep = c
		isGroup = true
		p.pos++
		next, err := p.parseChildrenCP()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}

	if sep == '|' {
		return dtd.Choice(false, children...), nil
	}
	return dtd.Seq(children...), nil
}

// --- <!ATTLIST> -------------------------------------------------------

func (p *dtdParser) parseAttlistDecl() error {
	p.pos += len("<!ATTLIST")
	ename, err := p.readName()
	if err != nil {
		return err
	}
	elem := p.d.Element(ename)

	for {
		p.skipSpaceAndExpandParams()
		if p.peekByte() == '>' {
			p.pos++
			return nil
		}
		attr, err := p.parseAttDef()
		if err != nil {
			return err
		}
		attr.External = p.external
		elem.AddAttribute(attr)
	}
}

func (p *dtdParser) parseAttDef() (*dtd.AttributeDecl, error) {
	name, err := p.readName()
	if err != nil {
		return nil, err
	}
	a := &dtd.AttributeDecl{Name: name}

	p.skipSpaceAndExpandParams()
	switch {
	case strings.HasPrefix(p.src[p.pos:], "CDATA"):
		a.Type = dtd.AttrCDATA
		p.pos += len("CDATA")
	case strings.HasPrefix(p.src[p.pos:], "IDREFS"):
		a.Type = dtd.AttrIDREFS
		p.pos += len("IDREFS")
	case strings.HasPrefix(p.src[p.pos:], "IDREF"):
		a.Type = dtd.AttrIDREF
		p.pos += len("IDREF")
	case strings.HasPrefix(p.src[p.pos:], "ID"):
		a.Type = dtd.AttrID
		p.pos += len("ID")
	case strings.HasPrefix(p.src[p.pos:], "ENTITIES"):
		a.Type = dtd.AttrEntities
		p.pos += len("ENTITIES")
	case strings.HasPrefix(p.src[p.pos:], "ENTITY"):
		a.Type = dtd.AttrEntity
		p.pos += len("ENTITY")
	case strings.HasPrefix(p.src[p.pos:], "NMTOKENS"):
		a.Type = dtd.AttrNMTokens
		p.pos += len("NMTOKENS")
	case strings.HasPrefix(p.src[p.pos:], "NMTOKEN"):
		a.Type = dtd.AttrNMToken
		p.pos += len("NMTOKEN")
	case strings.HasPrefix(p.src[p.pos:], "NOTATION"):
		a.Type = dtd.AttrNotation
		p.pos += len("NOTATION")
		enum, err := p.parseEnumeration()
		if err != nil {
			return nil, err
		}
		a.Enum = enum
	case p.peekByte() == '(':
		a.Type = dtd.AttrEnumerated
		enum, err := p.parseEnumeration()
		if err != nil {
			return nil, err
		}
		a.Enum = enum
	default:
		return nil, fmt.Errorf("parser: unrecognized attribute type at offset %d", p.pos)
	}

	p.skipSpaceAndExpandParams()
	switch {
	case strings.HasPrefix(p.src[p.pos:], "#REQUIRED"):
		a.DefaultKind = dtd.DefaultRequired
		p.pos += len("#REQUIRED")
	case strings.HasPrefix(p.src[p.pos:], "#IMPLIED"):
		a.DefaultKind = dtd.DefaultImplied
		p.pos += len("#IMPLIED")
	case strings.HasPrefix(p.src[p.pos:], "#FIXED"):
		p.pos += len("#FIXED")
		v, err := p.readQuoted()
		if err != nil {
			return nil, err
		}
		a.DefaultKind = dtd.DefaultFixed
		a.DefaultValue = v
	default:
		v, err := p.readQuoted()
		if err != nil {
			return nil, err
		}
		a.DefaultKind = dtd.DefaultLiteral
		a.DefaultValue = v
	}
	return a, nil
}

func (p *dtdParser) parseEnumeration() ([]string, error) {
	p.skipSpaceAndExpandParams()
	if p.peekByte() != '(' {
		return nil, fmt.Errorf("parser: expected '(' to start enumeration at offset %d", p.pos)
	}
	p.pos++
	var names []string
	for {
		name, err := p.readName()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		p.skipSpaceAndExpandParams()
		if p.peekByte() == ')' {
			p.pos++
			return names, nil
		}
		if err := p.expect("|"); err != nil {
			return nil, err
		}
	}
}

// --- <!ENTITY> and <!NOTATION> ----------------------------------------

func (p *dtdParser) parseEntityDecl() error {
	p.pos += len("<!ENTITY")
	p.skipSpaceAndExpandParams()

	isParam := false
	if p.peekByte() == '%' {
		isParam = true
		p.pos++
	}
	name, err := p.readName()
	if err != nil {
		return err
	}

	p.skipSpaceAndExpandParams()
	var publicID, systemID, ndata, value string
	external := false
	switch {
	case strings.HasPrefix(p.src[p.pos:], "PUBLIC"):
		p.pos += len("PUBLIC")
		publicID, err = p.readQuoted()
		if err != nil {
			return err
		}
		systemID, err = p.readQuoted()
		if err != nil {
			return err
		}
		external = true
	case strings.HasPrefix(p.src[p.pos:], "SYSTEM"):
		p.pos += len("SYSTEM")
		systemID, err = p.readQuoted()
		if err != nil {
			return err
		}
		external = true
	default:
		value, err = p.readQuoted()
		if err != nil {
			return err
		}
	}

	if external && !isParam {
		p.skipSpaceAndExpandParams()
		if strings.HasPrefix(p.src[p.pos:], "NDATA") {
			p.pos += len("NDATA")
			ndata, err = p.readName()
			if err != nil {
				return err
			}
		}
	}

	if err := p.expect(">"); err != nil {
		return err
	}

	if isParam {
		p.d.Entities.DeclareParameter(&dtd.ParameterEntity{
			Name: name, Value: value, External: external,
			PublicID: publicID, SystemID: systemID, ExternallyDefined: p.external,
		})
		return nil
	}
	p.d.Entities.DeclareGeneral(&dtd.GeneralEntity{
		Name: name, Value: value, External: external, Parsed: ndata == "",
		NData: ndata, PublicID: publicID, SystemID: systemID, ExternallyDefined: p.external,
	})
	return nil
}

func (p *dtdParser) parseNotationDecl() error {
	p.pos += len("<!NOTATION")
	name, err := p.readName()
	if err != nil {
		return err
	}
	p.skipSpaceAndExpandParams()
	var publicID, systemID string
	switch {
	case strings.HasPrefix(p.src[p.pos:], "PUBLIC"):
		p.pos += len("PUBLIC")
		publicID, err = p.readQuoted()
		if err != nil {
			return err
		}
		p.skipSpaceAndExpandParams()
		if p.peekByte() == '\'' || p.peekByte() == '"' {
			systemID, _ = p.readQuoted()
		}
	case strings.HasPrefix(p.src[p.pos:], "SYSTEM"):
		p.pos += len("SYSTEM")
		systemID, err = p.readQuoted()
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("parser: expected PUBLIC or SYSTEM in NOTATION declaration")
	}
	if err := p.expect(">"); err != nil {
		return err
	}
	p.d.AddNotation(&dtd.Notation{Name: name, PublicID: publicID, SystemID: systemID})
	return nil
}
