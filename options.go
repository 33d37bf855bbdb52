package xmldom

// FormatOptions controls how a Document is serialized back to bytes,
// matching the table in spec.md §6.
type FormatOptions struct {
	// Indent, when true, writes a newline plus IndentWidth spaces per
	// level before each child element.
	Indent bool
	// IndentWidth is the number of spaces per indentation level.
	IndentWidth int
	// IndentAttributes breaks each attribute onto its own line,
	// aligned to the tag name, when true.
	IndentAttributes bool
	// CollapseTags writes an empty element as <x/> rather than
	// <x></x>. Defaults to true.
	CollapseTags bool
	// HTML switches to HTML void-element handling: only the 15 HTML
	// void elements collapse; everything else always gets a separate
	// closing tag.
	HTML bool
	// SuppressComments omits comment nodes from the output entirely.
	SuppressComments bool
	// EscapeWhiteSpace writes \n\r\t in text nodes as numeric
	// character references instead of literal bytes.
	EscapeWhiteSpace bool
	// EscapeDoubleQuote writes '"' in attribute values as &quot;.
	// Defaults to true.
	EscapeDoubleQuote bool
	// WriteDeclaration, when true, emits the <?xml version="1.0"
	// encoding="..."?> prolog (and doctype, if present) before the
	// document's children.
	WriteDeclaration bool
}

// DefaultFormatOptions returns the library's default serialization
// settings: collapsed empty tags, escaped double quotes, no prolog, no
// indentation — matching the minimal scenario 1 expectation in
// spec.md §8 ("serializing with collapse_tags = true produces
// <root a="1"><child/></root>, prolog optional").
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		CollapseTags:      true,
		EscapeDoubleQuote: true,
	}
}

// htmlVoidElements is the fixed set of HTML5 elements that never have
// content or a closing tag, used when FormatOptions.HTML is set
// (spec.md §6).
var htmlVoidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}
