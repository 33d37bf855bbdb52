package dtd

// ContentSpecKind classifies a compiled Validator's content model, and
// drives how the parser normalizes whitespace between elements
// (spec.md §4.D/E).
type ContentSpecKind uint8

const (
	ContentEmpty ContentSpecKind = iota
	ContentAny
	ContentMixed
	ContentChildren
)

// cursor is the interpreter for one compiled content-spec node. Every
// ContentSpec kind has a cursor implementation; Repeated and Choice
// cursors hold references to further cursors that are compiled lazily
// as new iterations/alternatives are attempted.
type cursor interface {
	allow(name string) bool
	done() bool
}

// Validator incrementally checks a sequence of child element names
// against a compiled content spec, per spec.md §4.D/E.
type Validator struct {
	decl *ElementDecl
	root cursor
	kind ContentSpecKind
}

// NewValidator compiles a Validator from decl. A nil decl behaves as
// an Any validator: every child name is accepted and the content is
// always done, matching a reference to an element the DTD never
// declared.
func NewValidator(decl *ElementDecl) *Validator {
	v := &Validator{decl: decl}
	if decl == nil || decl.Content == nil {
		v.root = anyCursor{}
		v.kind = ContentAny
		return v
	}
	v.root = compile(decl.Content)
	v.kind = classify(decl.Content)
	return v
}

// Allow reports whether name is a legal next child given everything
// fed to the validator so far, and advances its internal state when
// it is.
func (v *Validator) Allow(name string) bool {
	return v.root.allow(name)
}

// Done reports whether the element could legally end its content now.
func (v *Validator) Done() bool {
	return v.root.done()
}

// ContentSpecKind reports the model's static classification, used by
// the parser to decide how whitespace-only text between children
// should be treated.
func (v *Validator) ContentSpecKind() ContentSpecKind {
	return v.kind
}

func classify(spec *ContentSpec) ContentSpecKind {
	switch spec.Kind {
	case SpecEmpty:
		return ContentEmpty
	case SpecAny:
		return ContentAny
	case SpecChoice:
		if spec.Mixed {
			return ContentMixed
		}
		return ContentChildren
	default:
		return ContentChildren
	}
}

func compile(spec *ContentSpec) cursor {
	switch spec.Kind {
	case SpecEmpty:
		return emptyCursor{}
	case SpecAny:
		return anyCursor{}
	case SpecElement:
		return &elementCursor{name: spec.Name}
	case SpecRepeated:
		return &repeatedCursor{spec: spec.Child, quant: spec.Quant}
	case SpecSeq:
		c := &seqCursor{cursors: make([]cursor, len(spec.Children))}
		for i, child := range spec.Children {
			c.cursors[i] = compile(child)
		}
		return c
	case SpecChoice:
		return &choiceCursor{specs: spec.Children, mixed: spec.Mixed, chosen: -1}
	default:
		return emptyCursor{}
	}
}

// --- Empty -----------------------------------------------------------

type emptyCursor struct{}

func (emptyCursor) allow(string) bool { return false }
func (emptyCursor) done() bool        { return true }

// --- Any --------------------------------------------------------------

type anyCursor struct{}

func (anyCursor) allow(string) bool { return true }
func (anyCursor) done() bool        { return true }

// --- Element(n) --------------------------------------------------------

type elementCursor struct {
	name    string
	matched bool
}

func (c *elementCursor) allow(name string) bool {
	if c.matched {
		return false
	}
	if name == c.name {
		c.matched = true
		return true
	}
	return false
}

func (c *elementCursor) done() bool { return c.matched }

// --- Repeated(?, *, +) ---------------------------------------------------

type repeatedCursor struct {
	spec       *ContentSpec
	quant      Quantifier
	cur        cursor
	iterations int
}

func (c *repeatedCursor) allow(name string) bool {
	if c.cur != nil {
		if c.cur.allow(name) {
			return true
		}
		if !c.cur.done() {
			return false
		}
	}
	if c.quant == QuantOptional && c.iterations >= 1 {
		return false
	}
	next := compile(c.spec)
	if next.allow(name) {
		c.cur = next
		c.iterations++
		return true
	}
	return false
}

func (c *repeatedCursor) done() bool {
	switch c.quant {
	case QuantOneOrMore:
		if c.iterations == 0 {
			return false
		}
		return c.cur == nil || c.cur.done()
	default: // '?' and '*'
		return c.cur == nil || c.cur.done()
	}
}

// --- Seq ----------------------------------------------------------------

type seqCursor struct {
	cursors []cursor
	pos     int
}

func (c *seqCursor) allow(name string) bool {
	for c.pos < len(c.cursors) {
		cur := c.cursors[c.pos]
		if cur.allow(name) {
			return true
		}
		if cur.done() {
			c.pos++
			continue
		}
		return false
	}
	return false
}

func (c *seqCursor) done() bool {
	for i := c.pos; i < len(c.cursors); i++ {
		if !c.cursors[i].done() {
			return false
		}
	}
	return true
}

// --- Choice(children, mixed) ---------------------------------------------

type choiceCursor struct {
	specs  []*ContentSpec
	mixed  bool
	chosen int
	cur    cursor
}

func (c *choiceCursor) allow(name string) bool {
	if c.chosen >= 0 {
		return c.cur.allow(name)
	}
	for i, spec := range c.specs {
		candidate := compile(spec)
		if candidate.allow(name) {
			c.chosen = i
			c.cur = candidate
			return true
		}
	}
	return false
}

func (c *choiceCursor) done() bool {
	if c.mixed {
		return true
	}
	if c.chosen < 0 {
		for _, spec := range c.specs {
			if compile(spec).done() {
				return true
			}
		}
		return false
	}
	return c.cur.done()
}
