package xmldom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-xmldom/xmldom"
)

func TestAttributeSetReportsInsertedVersusReplaced(t *testing.T) {
	doc := xmldom.NewDocument("", "")
	root := doc.CreateElement("root")
	require.NoError(t, doc.AppendChild(root))

	root.SetAttribute("a", "1")
	attrs := root.Attributes()
	require.Equal(t, 1, attrs.Len())

	inserted := attrs.Set("a", "2")
	assert.False(t, inserted, "replacing an existing attribute must not report inserted")
	v, ok := attrs.Get("a")
	require.True(t, ok)
	assert.Equal(t, "2", v)

	inserted = attrs.Set("b", "3")
	assert.True(t, inserted)
	assert.Equal(t, 2, attrs.Len())
}

func TestAttributeSetPreservesPositionOnReplace(t *testing.T) {
	doc := xmldom.NewDocument("", "")
	root := doc.CreateElement("root")
	require.NoError(t, doc.AppendChild(root))

	root.SetAttribute("a", "1")
	root.SetAttribute("b", "2")
	root.SetAttribute("c", "3")
	root.SetAttribute("a", "9")

	names := []string{}
	for _, a := range root.Attributes().All() {
		names = append(names, a.Name())
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
	assert.Equal(t, "9", root.GetAttribute("a"))
}

func TestRemoveAttributeReindexesRemaining(t *testing.T) {
	doc := xmldom.NewDocument("", "")
	root := doc.CreateElement("root")
	require.NoError(t, doc.AppendChild(root))

	root.SetAttribute("a", "1")
	root.SetAttribute("b", "2")
	root.SetAttribute("c", "3")

	assert.True(t, root.RemoveAttribute("a"))
	assert.False(t, root.RemoveAttribute("a"))
	assert.Equal(t, "2", root.GetAttribute("b"))
	assert.Equal(t, "3", root.GetAttribute("c"))
}

func TestIsNamespaceDeclarationAndPrefix(t *testing.T) {
	doc := xmldom.NewDocument("", "")
	root := doc.CreateElement("root")
	require.NoError(t, doc.AppendChild(root))

	root.SetAttribute("xmlns", "urn:default")
	root.SetAttribute("xmlns:x", "urn:x")
	root.SetAttribute("id", "1")

	def := root.Attributes().Node("xmlns")
	require.True(t, def.IsNamespaceDeclaration())
	prefix, err := def.NamespacePrefix()
	require.NoError(t, err)
	assert.Equal(t, "", prefix)

	x := root.Attributes().Node("xmlns:x")
	require.True(t, x.IsNamespaceDeclaration())
	prefix, err = x.NamespacePrefix()
	require.NoError(t, err)
	assert.Equal(t, "x", prefix)

	id := root.Attributes().Node("id")
	assert.False(t, id.IsNamespaceDeclaration())
	_, err = id.NamespacePrefix()
	assert.Error(t, err)
}
