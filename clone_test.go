package xmldom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-xmldom/xmldom"
	"github.com/go-xmldom/xmldom/parser"
)

func TestCloneProducesStructurallyEqualDetachedSubtree(t *testing.T) {
	doc := parser.MustParse(`<r a="1"><c>text</c></r>`)
	root := doc.Child()

	clone := xmldom.Clone(root)
	assert.Nil(t, clone.Parent)
	assert.Nil(t, clone.OwnerDocument())
	assert.True(t, xmldom.Equals(root, clone))
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	doc := parser.MustParse(`<r a="1"/>`)
	root := doc.Child()
	clone := xmldom.Clone(root)

	root.SetAttribute("a", "2")
	assert.Equal(t, "1", clone.GetAttribute("a"))
}

func TestCloneDocumentCopiesMetadataAndNotations(t *testing.T) {
	doc := xmldom.NewDocument("1.0", "UTF-8")
	doc.Doctype = xmldom.Doctype{Name: "r"}
	doc.AddNotation(xmldom.Notation{Name: "png", SystemID: "image/png"})
	require.NoError(t, doc.AppendChild(doc.CreateElement("r")))

	clone := xmldom.CloneDocument(doc)
	assert.Equal(t, "r", clone.Doctype.Name)
	n, ok := clone.Notation("png")
	require.True(t, ok)
	assert.Equal(t, "image/png", n.SystemID)
	assert.NotSame(t, doc.RootElement(), clone.RootElement())
	assert.True(t, xmldom.Equals(doc.RootElement(), clone.RootElement()))
}
