package dtd

// ElementDecl is a single <!ELEMENT name content-spec> declaration.
type ElementDecl struct {
	Name string
	// Declared is true if the DTD actually carried an ELEMENT
	// declaration for Name, false if this decl was synthesized as a
	// placeholder (e.g. referenced by an ATTLIST before its ELEMENT
	// declaration was seen).
	Declared bool
	// External is true if this declaration came from the external
	// subset rather than the internal one.
	External bool
	// Content is nil only for a non-Declared placeholder; a
	// genuinely declared element always has a ContentSpec (Empty and
	// Any are themselves valid specs).
	Content *ContentSpec

	attrs      []*AttributeDecl
	attrByName map[string]*AttributeDecl
}

// AddAttribute registers an attribute declaration, ignoring a later
// declaration of an attribute name already declared for this element
// (first ATTLIST wins, per the XML recommendation).
func (e *ElementDecl) AddAttribute(a *AttributeDecl) {
	if e.attrByName == nil {
		e.attrByName = make(map[string]*AttributeDecl)
	}
	if _, exists := e.attrByName[a.Name]; exists {
		return
	}
	e.attrByName[a.Name] = a
	e.attrs = append(e.attrs, a)
}

// Attribute looks up a declared attribute by name.
func (e *ElementDecl) Attribute(name string) *AttributeDecl {
	return e.attrByName[name]
}

// Attributes returns every declared attribute, in declaration order.
func (e *ElementDecl) Attributes() []*AttributeDecl {
	return e.attrs
}
