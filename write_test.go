package xmldom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-xmldom/xmldom"
	"github.com/go-xmldom/xmldom/parser"
)

func TestSerializeScenario1CollapsedTags(t *testing.T) {
	doc, err := parser.ParseString(`<?xml version="1.0"?><root a="1"><child/></root>`, parser.Options{})
	require.NoError(t, err)
	doc.Format.CollapseTags = true
	assert.Equal(t, `<root a="1"><child/></root>`, doc.String())
}

func TestSerializeHTMLModeOnlyCollapsesVoidElements(t *testing.T) {
	doc, err := parser.ParseString(`<r><br/><div></div></r>`, parser.Options{})
	require.NoError(t, err)
	doc.Format.HTML = true
	doc.Format.CollapseTags = false
	assert.Equal(t, `<r><br/><div></div></r>`, doc.String())
}

func TestSerializeEscapesReservedCharactersInTextAndAttributes(t *testing.T) {
	doc, err := parser.ParseString(`<r a="x"><b>y</b></r>`, parser.Options{})
	require.NoError(t, err)
	doc.Child().SetAttribute("a", `1 < 2 & "q"`)
	doc.Child().Child().SetContent("<tag> & more")

	out := doc.String()
	assert.Contains(t, out, `a="1 &lt; 2 &amp; &quot;q&quot;"`)
	assert.Contains(t, out, `&lt;tag&gt; &amp; more`)
}

func TestSerializeSuppressesCommentsWhenConfigured(t *testing.T) {
	doc, err := parser.ParseString(`<r><!--hidden--><a/></r>`, parser.Options{})
	require.NoError(t, err)
	doc.Format.SuppressComments = true
	assert.NotContains(t, doc.String(), "hidden")
}

func TestSerializeIndentedTree(t *testing.T) {
	doc, err := parser.ParseString(`<root a="1"><child><leaf/></child><child/></root>`, parser.Options{})
	require.NoError(t, err)
	doc.Format.Indent = true
	doc.Format.IndentWidth = 2
	doc.Format.CollapseTags = true

	want := "<root a=\"1\">\n  <child>\n    <leaf/>\n  </child>\n  <child/>\n</root>"
	assert.Equal(t, want, doc.String())
}

func TestWriteNodeSerializesDetachedFragment(t *testing.T) {
	doc := xmldom.NewDocument("", "")
	el := doc.CreateElement("a")
	el.SetAttribute("x", "1")

	var buf []byte
	w := &sliceWriter{&buf}
	n, err := xmldom.WriteNode(w, el, xmldom.FormatOptions{CollapseTags: true, EscapeDoubleQuote: true})
	require.NoError(t, err)
	assert.Equal(t, int64(len(buf)), n)
	assert.Equal(t, `<a x="1"/>`, string(buf))
}

type sliceWriter struct {
	buf *[]byte
}

func (w *sliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}
