package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-xmldom/xmldom"
	"github.com/go-xmldom/xmldom/parser"
)

// TestParseAndReserializeScenario1 exercises spec.md §8 Scenario 1:
// parsing a simple prolog+root+child document and reserializing it
// with collapsed tags.
func TestParseAndReserializeScenario1(t *testing.T) {
	doc, err := parser.ParseString(`<?xml version="1.0"?><root a="1"><child/></root>`, parser.Options{})
	require.NoError(t, err)

	root := doc.Child()
	require.NotNil(t, root)
	assert.Equal(t, "root", root.Name())
	assert.Equal(t, "1", root.GetAttribute("a"))

	child := root.Child()
	require.NotNil(t, child)
	assert.Equal(t, "child", child.Name())

	doc.Format.CollapseTags = true
	assert.Equal(t, `<root a="1"><child/></root>`, doc.String())
}

func TestParseRejectsMismatchedEndTag(t *testing.T) {
	_, err := parser.ParseString(`<root><child></root>`, parser.Options{})
	assert.Error(t, err)
}

func TestParseRejectsMissingRootElement(t *testing.T) {
	_, err := parser.ParseString(`<?xml version="1.0"?>`, parser.Options{})
	assert.Error(t, err)
}

// TestEntityExpansionScenario2 exercises spec.md §8 Scenario 2: an
// internal-subset general entity expanded in element content.
func TestEntityExpansionScenario2(t *testing.T) {
	doc, err := parser.ParseString(`<!DOCTYPE r [<!ENTITY e "hi">]><r>&e;</r>`, parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, "hi", doc.Child().Str())
}

func TestPredefinedEntitiesAlwaysResolve(t *testing.T) {
	doc, err := parser.ParseString(`<r>&lt;&amp;&gt;</r>`, parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, "<&>", doc.Child().Str())
}

func TestCharacterReferenceExpansion(t *testing.T) {
	doc, err := parser.ParseString(`<r>&#65;&#x42;</r>`, parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, "AB", doc.Child().Str())
}

func TestParseRejectsIllegalControlCharacterInContent(t *testing.T) {
	_, err := parser.ParseString("<r>\x01</r>", parser.Options{})
	assert.Error(t, err)
}

func TestParseRejectsIllegalControlCharacterInAttributeValue(t *testing.T) {
	_, err := parser.ParseString("<r a=\"\x01\"/>", parser.Options{})
	assert.Error(t, err)
}

func TestParseRejectsIllegalCharacterReference(t *testing.T) {
	_, err := parser.ParseString(`<r>&#1;</r>`, parser.Options{})
	assert.Error(t, err)
}

func TestParseRejectsIllegalCharacterInEntityReplacementText(t *testing.T) {
	_, err := parser.ParseString(`<!DOCTYPE r [<!ENTITY e "`+"\x01"+`">]><r>&e;</r>`, parser.Options{})
	assert.Error(t, err)
}

func TestParseAllowsDeclaredXML11DocumentToContainC0Control(t *testing.T) {
	doc, err := parser.ParseString("<?xml version=\"1.1\"?><r>\x01</r>", parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, "\x01", doc.Child().Str())
}

func TestCDATASectionIsExemptFromCharacterValidation(t *testing.T) {
	doc, err := parser.ParseString("<r><![CDATA[\x01]]></r>", parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, "\x01", doc.Child().Str())
}

func TestNestedEntityExpansion(t *testing.T) {
	doc, err := parser.ParseString(
		`<!DOCTYPE r [<!ENTITY inner "world"><!ENTITY outer "hello &inner;">]><r>&outer;</r>`,
		parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, "hello world", doc.Child().Str())
}

func TestCyclicEntityIsRejected(t *testing.T) {
	_, err := parser.ParseString(
		`<!DOCTYPE r [<!ENTITY a "&b;"><!ENTITY b "&a;">]><r>&a;</r>`,
		parser.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestSelfReferentialEntityIsRejected(t *testing.T) {
	_, err := parser.ParseString(
		`<!DOCTYPE r [<!ENTITY a "&a;">]><r>&a;</r>`,
		parser.Options{})
	require.Error(t, err)
}

func TestUndeclaredEntityIsRejected(t *testing.T) {
	_, err := parser.ParseString(`<r>&nope;</r>`, parser.Options{})
	assert.Error(t, err)
}

// TestContentModelValidationScenario3 exercises spec.md §8 Scenario 3
// end to end through the streaming parser, with Validate set.
func TestContentModelValidationScenario3(t *testing.T) {
	dtdDecl := `<!DOCTYPE a [<!ELEMENT a (b, c?, d+)><!ELEMENT b EMPTY><!ELEMENT c EMPTY><!ELEMENT d EMPTY>]>`

	cases := []struct {
		name    string
		doc     string
		invalid bool
	}{
		{"b then d validates", dtdDecl + `<a><b/><d/></a>`, false},
		{"b c d validates", dtdDecl + `<a><b/><c/><d/></a>`, false},
		{"missing d fails", dtdDecl + `<a><b/></a>`, true},
		{"missing b fails", dtdDecl + `<a><c/><d/></a>`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotInvalidation bool
			_, err := parser.ParseString(tc.doc, parser.Options{
				Validate:       true,
				OnInvalidation: func(string) { gotInvalidation = true },
			})
			require.NoError(t, err, "content-model failures are reported, not fatal")
			assert.Equal(t, tc.invalid, gotInvalidation)
		})
	}
}

func TestRequiredAttributeMissingIsReported(t *testing.T) {
	src := `<!DOCTYPE a [<!ELEMENT a EMPTY><!ATTLIST a id ID #REQUIRED>]><a/>`
	var msgs []string
	_, err := parser.ParseString(src, parser.Options{
		Validate:       true,
		OnInvalidation: func(m string) { msgs = append(msgs, m) },
	})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "id")
}

func TestFixedAttributeIsSynthesizedWhenAbsent(t *testing.T) {
	src := `<!DOCTYPE a [<!ELEMENT a EMPTY><!ATTLIST a v CDATA #FIXED "1.0">]><a/>`
	doc, err := parser.ParseString(src, parser.Options{Validate: true})
	require.NoError(t, err)
	assert.Equal(t, "1.0", doc.Child().GetAttribute("v"))
}

func TestFixedAttributeMismatchIsReported(t *testing.T) {
	src := `<!DOCTYPE a [<!ELEMENT a EMPTY><!ATTLIST a v CDATA #FIXED "1.0">]><a v="2.0"/>`
	var msgs []string
	_, err := parser.ParseString(src, parser.Options{
		Validate:       true,
		OnInvalidation: func(m string) { msgs = append(msgs, m) },
	})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
}

// TestCDATAPreservationScenario6 exercises spec.md §8 Scenario 6 for
// both settings of PreserveCDATA.
func TestCDATAPreservationScenario6(t *testing.T) {
	src := `<r><![CDATA[<raw>]]></r>`

	t.Run("preserve_cdata false yields a text node", func(t *testing.T) {
		doc, err := parser.ParseString(src, parser.Options{PreserveCDATA: false})
		require.NoError(t, err)
		child := doc.Child().FirstChild
		require.NotNil(t, child)
		assert.Equal(t, xmldom.TextNode, child.Kind)
		assert.Equal(t, "<raw>", child.Str())
	})

	t.Run("preserve_cdata true yields a cdata node that reserializes", func(t *testing.T) {
		doc, err := parser.ParseString(src, parser.Options{PreserveCDATA: true})
		require.NoError(t, err)
		child := doc.Child().FirstChild
		require.NotNil(t, child)
		assert.Equal(t, xmldom.CDataNode, child.Kind)
		assert.Equal(t, "<raw>", child.Str())

		doc.Format.CollapseTags = true
		assert.Equal(t, `<r><![CDATA[<raw>]]></r>`, doc.String())
	})
}

func TestNamespaceDeclarationResolvesOnChild(t *testing.T) {
	doc, err := parser.ParseString(`<r xmlns:x="urn:example"><x:a/></r>`, parser.Options{})
	require.NoError(t, err)
	child := doc.Child().Child()
	require.NotNil(t, child)
	assert.Equal(t, "urn:example", child.NamespaceURI())
}

func TestMustParsePanicsOnMalformedInput(t *testing.T) {
	assert.Panics(t, func() {
		parser.MustParse(`<r><unclosed></r>`)
	})
}

func TestMustParseReturnsDocument(t *testing.T) {
	doc := parser.MustParse(`<r a="1"/>`)
	assert.Equal(t, "1", doc.Child().GetAttribute("a"))
}
