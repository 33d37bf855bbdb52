package xmldom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-xmldom/xmldom"
)

func TestNewDocumentDefaultsVersionAndEncoding(t *testing.T) {
	doc := xmldom.NewDocument("", "")
	assert.Equal(t, "1.0", doc.Version)
	assert.Equal(t, "UTF-8", doc.Encoding)
}

func TestRootElementIsNilUntilAppended(t *testing.T) {
	doc := xmldom.NewDocument("", "")
	assert.Nil(t, doc.RootElement())

	root := doc.CreateElement("root")
	require.NoError(t, doc.AppendChild(root))
	assert.Same(t, root, doc.RootElement())
}

func TestCreatedNodesAreOwnedButDetached(t *testing.T) {
	doc := xmldom.NewDocument("", "")
	el := doc.CreateElement("a")
	assert.Same(t, doc, el.OwnerDocument())
	assert.Nil(t, el.Parent)
}

func TestNotationTable(t *testing.T) {
	doc := xmldom.NewDocument("", "")
	doc.AddNotation(xmldom.Notation{Name: "png", SystemID: "image/png"})

	n, ok := doc.Notation("png")
	require.True(t, ok)
	assert.Equal(t, "image/png", n.SystemID)

	_, ok = doc.Notation("missing")
	assert.False(t, ok)

	assert.Len(t, doc.Notations(), 1)
}
