package parser

import "strings"

// nsBinding is one (prefix, uri) pair pushed by a start-tag's xmlns
// attributes.
type nsBinding struct {
	prefix string
	uri    string
}

// namespaceStack tracks the bindings introduced by each open element,
// per spec.md §4.F's "stack of (prefix, uri) bindings".
type namespaceStack struct {
	frames [][]nsBinding
}

func newNamespaceStack() *namespaceStack {
	return &namespaceStack{}
}

// pushFrame extracts xmlns/xmlns:p declarations from attrs, returning
// them as bindings to fire StartNamespaceDecl for, and records the
// frame so popFrame can fire the matching EndNamespaceDecl calls.
func (s *namespaceStack) pushFrame(attrs []Attr) []nsBinding {
	var bindings []nsBinding
	for _, a := range attrs {
		switch {
		case a.QName == "xmlns":
			bindings = append(bindings, nsBinding{prefix: "", uri: a.Value})
		case strings.HasPrefix(a.QName, "xmlns:"):
			bindings = append(bindings, nsBinding{prefix: a.QName[len("xmlns:"):], uri: a.Value})
		}
	}
	s.frames = append(s.frames, bindings)
	return bindings
}

// popFrame returns the bindings pushed by the most recent pushFrame,
// so the caller can fire EndNamespaceDecl for each, then discards the
// frame.
func (s *namespaceStack) popFrame() []nsBinding {
	if len(s.frames) == 0 {
		return nil
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top
}
