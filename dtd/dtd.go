package dtd

// Notation is a <!NOTATION name PUBLIC/SYSTEM "..."> declaration.
type Notation struct {
	Name     string
	PublicID string
	SystemID string
}

// DTD is the fully assembled declaration set for a document: every
// element, attribute-list, entity, and notation declaration collected
// from the internal and external subsets, per spec.md §3 "DTD model".
type DTD struct {
	Name     string // the document element name named by DOCTYPE
	PublicID string
	SystemID string

	Entities *EntityTable

	elements  map[string]*ElementDecl
	order     []string
	notations map[string]*Notation
}

// New returns an empty DTD for the given DOCTYPE name.
func New(name string) *DTD {
	return &DTD{
		Name:      name,
		Entities:  NewEntityTable(),
		elements:  make(map[string]*ElementDecl),
		notations: make(map[string]*Notation),
	}
}

// Element returns the declaration for name, declaring a placeholder
// (Declared == false) on first reference so that an ATTLIST seen
// before its ELEMENT declaration still has somewhere to attach, per
// the XML recommendation's "it is not an error" allowance.
func (d *DTD) Element(name string) *ElementDecl {
	if e, ok := d.elements[name]; ok {
		return e
	}
	e := &ElementDecl{Name: name}
	d.elements[name] = e
	d.order = append(d.order, name)
	return e
}

// DeclareElement registers decl's content spec for name, replacing any
// placeholder created by an earlier ATTLIST reference. A second
// genuine ELEMENT declaration for the same name is rejected by
// returning false (XML recommendation: element types must not be
// declared more than once).
func (d *DTD) DeclareElement(name string, content *ContentSpec, external bool) bool {
	e := d.Element(name)
	if e.Declared {
		return false
	}
	e.Declared = true
	e.External = external
	e.Content = content
	return true
}

// LookupElement returns the declaration for name if the DTD ever
// referenced or declared it, and whether it exists at all.
func (d *DTD) LookupElement(name string) (*ElementDecl, bool) {
	e, ok := d.elements[name]
	return e, ok
}

// Elements returns every referenced-or-declared element, in first
// reference order.
func (d *DTD) Elements() []*ElementDecl {
	out := make([]*ElementDecl, len(d.order))
	for i, name := range d.order {
		out[i] = d.elements[name]
	}
	return out
}

// AddNotation registers n, unless a notation of that name is already
// declared (first declaration wins).
func (d *DTD) AddNotation(n *Notation) bool {
	if _, exists := d.notations[n.Name]; exists {
		return false
	}
	d.notations[n.Name] = n
	return true
}

// Notations returns every declared notation, in no particular order.
func (d *DTD) Notations() []*Notation {
	out := make([]*Notation, 0, len(d.notations))
	for _, n := range d.notations {
		out = append(out, n)
	}
	return out
}

// Notation looks up a declared notation by name.
func (d *DTD) Notation(name string) (*Notation, bool) {
	n, ok := d.notations[name]
	return n, ok
}

// ValidatorFor compiles a Validator for element name's content model.
// A nil *ElementDecl (never referenced) or an undeclared placeholder
// both compile to an Any validator, matching NewValidator's own
// nil-tolerant behavior.
func (d *DTD) ValidatorFor(name string) *Validator {
	e, ok := d.elements[name]
	if !ok || !e.Declared {
		return NewValidator(nil)
	}
	return NewValidator(e)
}
