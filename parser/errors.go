package parser

import "fmt"

// ErrorKind distinguishes syntax errors from DTD violations. Parse
// returns only NotWellFormed errors: DTD violations found while
// Options.Validate is set go to Options.OnInvalidation instead, and
// nothing in this package constructs a NotValid error.
type ErrorKind uint8

const (
	// NotWellFormed is a syntax error: malformed markup, an unclosed
	// tag, an undeclared or cyclic entity reference, and so on.
	NotWellFormed ErrorKind = iota
	// NotValid classifies a DTD content-model or attribute-value
	// violation.
	NotValid
)

func (k ErrorKind) String() string {
	if k == NotValid {
		return "not valid"
	}
	return "not well-formed"
}

// Error is a fatal parse error, carrying the line and column of the
// offending input. Error() omits the position when Line is zero.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parser: %s at line %d, column %d: %s", e.Kind, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parser: %s: %s", e.Kind, e.Message)
}

func wellFormedErr(line, col int, format string, args ...any) *Error {
	return &Error{Kind: NotWellFormed, Message: fmt.Sprintf(format, args...), Line: line, Column: col}
}
