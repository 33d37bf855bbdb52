package xmldom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-xmldom/xmldom"
	"github.com/go-xmldom/xmldom/parser"
)

func TestNodeNameAccessorsSplitQName(t *testing.T) {
	doc := parser.MustParse(`<r xmlns:x="urn:x"><x:a/></r>`)
	a := doc.Child().Child()

	assert.Equal(t, "x:a", a.Name())
	assert.Equal(t, "a", a.LocalName())
	assert.Equal(t, "x", a.Prefix())
	assert.Equal(t, "urn:x", a.NamespaceURI())
}

func TestNodeStrConcatenatesEveryChildKindIncludingComments(t *testing.T) {
	doc := parser.MustParse(`<r>a<b>b</b><![CDATA[c]]><!--d--></r>`)
	assert.Equal(t, "abcd", doc.Child().Str())
}

func TestAppendChildRejectsAlreadyAttachedNode(t *testing.T) {
	doc := xmldom.NewDocument("", "")
	root := doc.CreateElement("root")
	require.NoError(t, doc.AppendChild(root))

	child := doc.CreateElement("child")
	require.NoError(t, root.AppendChild(child))

	err := root.AppendChild(child)
	assert.Error(t, err)
}

func TestAppendChildRejectsSecondRootElement(t *testing.T) {
	doc := xmldom.NewDocument("", "")
	require.NoError(t, doc.AppendChild(doc.CreateElement("a")))
	err := doc.AppendChild(doc.CreateElement("b"))
	assert.Error(t, err)
}

func TestInsertBeforeAndRemoveChildMaintainSiblingLinks(t *testing.T) {
	doc := xmldom.NewDocument("", "")
	root := doc.CreateElement("root")
	require.NoError(t, doc.AppendChild(root))

	first := doc.CreateElement("first")
	last := doc.CreateElement("last")
	middle := doc.CreateElement("middle")
	require.NoError(t, root.AppendChild(first))
	require.NoError(t, root.AppendChild(last))
	require.NoError(t, root.InsertBefore(middle, last))

	names := []string{}
	for _, c := range root.Elements() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"first", "middle", "last"}, names)

	require.NoError(t, root.RemoveChild(middle))
	assert.Nil(t, middle.Parent)
	names = names[:0]
	for _, c := range root.Elements() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"first", "last"}, names)
}

func TestReplaceSwapsNodeInPlace(t *testing.T) {
	doc := xmldom.NewDocument("", "")
	root := doc.CreateElement("root")
	require.NoError(t, doc.AppendChild(root))

	old := doc.CreateElement("old")
	require.NoError(t, root.AppendChild(old))
	next := doc.CreateElement("after")
	require.NoError(t, root.AppendChild(next))

	replacement := doc.CreateElement("new")
	require.NoError(t, xmldom.Replace(old, replacement))

	names := []string{}
	for _, c := range root.Elements() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"new", "after"}, names)
}

func TestOwnerDocumentPropagatesOnInsertAndClearsOnRemove(t *testing.T) {
	doc := xmldom.NewDocument("", "")
	root := doc.CreateElement("root")
	require.NoError(t, doc.AppendChild(root))

	other := xmldom.NewDocument("", "")
	child := other.CreateElement("child")
	require.NoError(t, root.AppendChild(child))
	assert.Same(t, doc, child.OwnerDocument())

	require.NoError(t, root.RemoveChild(child))
	assert.Nil(t, child.OwnerDocument())
}

func TestElementsViewSkipsNonElementChildren(t *testing.T) {
	doc := parser.MustParse(`<r>text<a/>more<b/></r>`)
	root := doc.Child()

	assert.Len(t, root.Elements(), 2)
	assert.Len(t, root.Nodes(), 4)
}
