package xmldom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-xmldom/xmldom"
	"github.com/go-xmldom/xmldom/parser"
)

func TestEqualsIgnoresAttributeOrder(t *testing.T) {
	a := parser.MustParse(`<r a="1" b="2"/>`)
	b := parser.MustParse(`<r b="2" a="1"/>`)
	assert.True(t, xmldom.Equals(a.Child(), b.Child()))
}

func TestEqualsIgnoresWhitespaceOnlyTextBetweenElements(t *testing.T) {
	a := parser.MustParse("<r>\n  <a/>\n  <b/>\n</r>")
	b := parser.MustParse("<r><a/><b/></r>")
	assert.True(t, xmldom.Equals(a.Child(), b.Child()))
}

func TestEqualsComparesNamespaceDeclarationsByURISetNotPrefix(t *testing.T) {
	a := parser.MustParse(`<r xmlns:x="urn:u"/>`)
	b := parser.MustParse(`<r xmlns:y="urn:u"/>`)
	assert.True(t, xmldom.Equals(a.Child(), b.Child()))
}

func TestEqualsRejectsDifferentChildOrder(t *testing.T) {
	a := parser.MustParse(`<r><a/><b/></r>`)
	b := parser.MustParse(`<r><b/><a/></r>`)
	assert.False(t, xmldom.Equals(a.Child(), b.Child()))
}

func TestEqualsRejectsDifferentLocalName(t *testing.T) {
	a := parser.MustParse(`<r/>`)
	b := parser.MustParse(`<s/>`)
	assert.False(t, xmldom.Equals(a.Child(), b.Child()))
}

func TestEqualsOnNilNodes(t *testing.T) {
	assert.True(t, xmldom.Equals(nil, nil))
	a := parser.MustParse(`<r/>`)
	assert.False(t, xmldom.Equals(a.Child(), nil))
}
