package parser

import "github.com/go-xmldom/xmldom/dtd"

// EntityLoader resolves an external entity (the external DTD subset,
// or an externally-defined general entity) to its byte content, given
// the base URI it was referenced from and its public/system
// identifiers. A nil loader falls back to DefaultEntityLoader.
type EntityLoader func(base, publicID, systemID string) ([]byte, error)

// InvalidationHandler receives a human-readable message for every
// validity (not well-formedness) violation encountered while
// Options.Validate is set. It is never fatal to parsing.
type InvalidationHandler func(msg string)

// Options configures one Parse call, mirroring antchfx/xmlquery's
// plain-struct ParserOptions rather than a functional-options chain.
type Options struct {
	// Validate enables DTD validation: content models and attribute
	// value types are checked against the DOCTYPE's declarations.
	Validate bool
	// PreserveCDATA keeps CDATA sections as their own node kind
	// instead of folding them into adjacent text (spec.md §8 Scenario 6).
	PreserveCDATA bool
	// MaxEntityDepth bounds general/parameter entity expansion nesting,
	// the billion-laughs mitigation described in spec.md §5. Zero
	// selects DefaultMaxEntityDepth.
	MaxEntityDepth int
	// MaxNestingDepth bounds element nesting depth. Zero selects
	// DefaultMaxNestingDepth.
	MaxNestingDepth int
	// BaseDir is the directory external system identifiers without a
	// scheme are resolved against, used by DefaultEntityLoader.
	BaseDir string
	// EntityLoader resolves external entities; nil uses
	// DefaultEntityLoader.
	EntityLoader EntityLoader
	// OnInvalidation, if set, is called for every validity violation
	// found while Validate is set, instead of the default which
	// discards them.
	OnInvalidation InvalidationHandler
	// WithLineNumbers is accepted but not read by the parser: built
	// nodes carry no line or column information whether or not it is set.
	WithLineNumbers bool
	// ExternalDTD, if non-nil, is used instead of fetching the
	// DOCTYPE's external subset via EntityLoader — useful for tests
	// and for documents validated against a DTD held separately from
	// their SYSTEM identifier.
	ExternalDTD *dtd.DTD
}

// DefaultMaxEntityDepth is the entity-expansion nesting cap used when
// Options.MaxEntityDepth is zero.
const DefaultMaxEntityDepth = 20

// DefaultMaxNestingDepth is the element-nesting cap used when
// Options.MaxNestingDepth is zero, matching spec.md §9's suggested 1024.
const DefaultMaxNestingDepth = 1024

func (o Options) normalized() Options {
	if o.MaxEntityDepth <= 0 {
		o.MaxEntityDepth = DefaultMaxEntityDepth
	}
	if o.MaxNestingDepth <= 0 {
		o.MaxNestingDepth = DefaultMaxNestingDepth
	}
	if o.EntityLoader == nil {
		o.EntityLoader = DefaultEntityLoader
	}
	return o
}
