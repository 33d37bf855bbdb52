package parser

import (
	"fmt"

	"github.com/go-xmldom/xmldom/dtd"
)

// entityFrame is one level of the entity-expansion stack: the
// replacement text for a general or parameter entity reference, plus
// a read cursor into it. The parser "pushes a new input source" onto
// this stack on every reference, per spec.md §4.F.
type entityFrame struct {
	name string
	text string
	pos  int
}

// entityStack expands general and parameter entity references,
// detecting self-reference and cycles per spec.md §4.F, and enforcing
// Options.MaxEntityDepth as the billion-laughs mitigation spec.md §5
// calls for.
type entityStack struct {
	frames   []entityFrame
	open     map[string]bool
	maxDepth int
}

func newEntityStack(maxDepth int) *entityStack {
	return &entityStack{open: make(map[string]bool), maxDepth: maxDepth}
}

// push begins expanding the entity named name with replacement text.
// It returns an error if name is already open (a cycle) or the stack
// would exceed maxDepth.
func (s *entityStack) push(name, text string) error {
	if s.open[name] {
		return fmt.Errorf("parser: entity %q is self-referential or part of a cycle", name)
	}
	if len(s.frames) >= s.maxDepth {
		return fmt.Errorf("parser: entity expansion exceeds max depth %d", s.maxDepth)
	}
	s.frames = append(s.frames, entityFrame{name: name, text: text})
	s.open[name] = true
	return nil
}

// pop closes the innermost frame once its replacement text has been
// fully consumed.
func (s *entityStack) pop() {
	if len(s.frames) == 0 {
		return
	}
	top := s.frames[len(s.frames)-1]
	delete(s.open, top.name)
	s.frames = s.frames[:len(s.frames)-1]
}

// depth reports how many entity frames are currently open.
func (s *entityStack) depth() int { return len(s.frames) }

// resolveGeneral looks up name first among the five built-in general
// entities, then in table, returning its replacement text.
func resolveGeneral(name string, table *dtd.EntityTable) (string, bool, error) {
	if v, ok := dtd.PredefinedEntity(name); ok {
		return v, false, nil
	}
	if table == nil {
		return "", false, fmt.Errorf("parser: undeclared entity %q", name)
	}
	e, ok := table.General(name)
	if !ok {
		return "", false, fmt.Errorf("parser: undeclared entity %q", name)
	}
	if e.Unparsed() {
		return "", false, fmt.Errorf("parser: entity %q is unparsed and cannot appear in content", name)
	}
	return e.Value, e.External, nil
}

// resolveParameter looks up a %name; reference, legal only inside DTD
// markup.
func resolveParameter(name string, table *dtd.EntityTable) (string, error) {
	if table == nil {
		return "", fmt.Errorf("parser: undeclared parameter entity %q", name)
	}
	e, ok := table.Parameter(name)
	if !ok {
		return "", fmt.Errorf("parser: undeclared parameter entity %q", name)
	}
	return e.Value, nil
}
