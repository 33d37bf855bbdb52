package dtd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/go-xmldom/xmldom/internal/xmlchar"
)

// AttrType is the declared type of an ATTLIST attribute, per the XML
// recommendation's production [54] AttType.
type AttrType uint8

const (
	AttrCDATA AttrType = iota
	AttrID
	AttrIDREF
	AttrIDREFS
	AttrEntity
	AttrEntities
	AttrNMToken
	AttrNMTokens
	AttrNotation
	AttrEnumerated
)

func (t AttrType) String() string {
	switch t {
	case AttrCDATA:
		return "CDATA"
	case AttrID:
		return "ID"
	case AttrIDREF:
		return "IDREF"
	case AttrIDREFS:
		return "IDREFS"
	case AttrEntity:
		return "ENTITY"
	case AttrEntities:
		return "ENTITIES"
	case AttrNMToken:
		return "NMTOKEN"
	case AttrNMTokens:
		return "NMTOKENS"
	case AttrNotation:
		return "NOTATION"
	case AttrEnumerated:
		return "ENUMERATED"
	default:
		return "UNKNOWN"
	}
}

// Tokenized reports whether t is one of the types normalized by
// collapsing internal whitespace runs to a single space and trimming
// leading/trailing whitespace, per the XML recommendation §3.3.3.
// CDATA is the only declared type excluded from this treatment.
func (t AttrType) Tokenized() bool { return t != AttrCDATA }

// AttrDefaultKind is the "#REQUIRED" / "#IMPLIED" / "#FIXED" / literal
// default marker of an ATTLIST declaration.
type AttrDefaultKind uint8

const (
	DefaultNone AttrDefaultKind = iota
	DefaultRequired
	DefaultImplied
	DefaultFixed
	DefaultLiteral
)

// AttributeDecl is a single attribute declared in an ATTLIST for some
// element, per spec.md §3 "Attribute declarations".
type AttributeDecl struct {
	Name         string
	Type         AttrType
	DefaultKind  AttrDefaultKind
	DefaultValue string   // set when DefaultKind is DefaultFixed or DefaultLiteral
	Enum         []string // the NMTOKEN set, valid for AttrNotation/AttrEnumerated
	External     bool
}

// Normalize applies the attribute-value normalization and validation
// rules of spec.md §4.E to raw, given the entity table used to resolve
// ENTITY/ENTITIES references. It returns the normalized value and a
// non-nil error describing the first rule raw violates.
func (a *AttributeDecl) Normalize(raw string, entities *EntityTable) (string, error) {
	value := raw
	if a.Type.Tokenized() {
		value = xmlchar.CollapseSpace(xmlchar.Trim(value))
	}

	switch a.Type {
	case AttrCDATA:
		// no further validation

	case AttrID, AttrIDREF:
		if !xmlchar.IsValidName(value) {
			return value, fmt.Errorf("dtd: %s value %q is not a valid XML name", a.Type, value)
		}

	case AttrIDREFS:
		if err := validateNameList(value); err != nil {
			return value, fmt.Errorf("dtd: IDREFS attribute %q: %w", a.Name, err)
		}

	case AttrEntity:
		if !xmlchar.IsValidName(value) {
			return value, fmt.Errorf("dtd: ENTITY value %q is not a valid XML name", value)
		}
		if entities != nil && !entities.IsUnparsedEntity(value) {
			return value, fmt.Errorf("dtd: ENTITY attribute %q references undeclared or non-unparsed entity %q", a.Name, value)
		}

	case AttrEntities:
		names := strings.Fields(value)
		if len(names) == 0 {
			return value, fmt.Errorf("dtd: ENTITIES attribute %q must name at least one entity", a.Name)
		}
		for _, n := range names {
			if !xmlchar.IsValidName(n) {
				return value, fmt.Errorf("dtd: ENTITIES attribute %q contains invalid name %q", a.Name, n)
			}
			if entities != nil && !entities.IsUnparsedEntity(n) {
				return value, fmt.Errorf("dtd: ENTITIES attribute %q references undeclared or non-unparsed entity %q", a.Name, n)
			}
		}

	case AttrNMToken:
		if !xmlchar.IsValidNmtoken(value) {
			return value, fmt.Errorf("dtd: NMTOKEN value %q is not a valid nmtoken", value)
		}

	case AttrNMTokens:
		toks := strings.Fields(value)
		if len(toks) == 0 {
			return value, fmt.Errorf("dtd: NMTOKENS attribute %q must have at least one token", a.Name)
		}
		for _, tok := range toks {
			if !xmlchar.IsValidNmtoken(tok) {
				return value, fmt.Errorf("dtd: NMTOKENS attribute %q contains invalid token %q", a.Name, tok)
			}
		}

	case AttrNotation, AttrEnumerated:
		if !lo.Contains(a.Enum, value) {
			return value, fmt.Errorf("dtd: %s attribute %q value %q is not one of %v", a.Type, a.Name, value, a.Enum)
		}
	}

	if a.DefaultKind == DefaultFixed && value != a.DefaultValue {
		return value, fmt.Errorf("dtd: #FIXED attribute %q must equal %q, got %q", a.Name, a.DefaultValue, value)
	}

	return value, nil
}

// validateNameList checks a whitespace-separated list of at least one
// XML name, the shape shared by IDREFS (and, element-wise, ENTITIES).
func validateNameList(value string) error {
	names := strings.Fields(value)
	if len(names) == 0 {
		return fmt.Errorf("must name at least one id")
	}
	for _, n := range names {
		if !xmlchar.IsValidName(n) {
			return fmt.Errorf("invalid name %q", n)
		}
	}
	return nil
}
