package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-xmldom/xmldom/parser"
)

func TestEnumeratedAttributeValidation(t *testing.T) {
	src := `<!DOCTYPE a [<!ELEMENT a EMPTY><!ATTLIST a color (red|green|blue) "red">]><a color="green"/>`
	doc, err := parser.ParseString(src, parser.Options{Validate: true})
	require.NoError(t, err)
	assert.Equal(t, "green", doc.Child().GetAttribute("color"))
}

func TestEnumeratedAttributeRejectsOutsideValue(t *testing.T) {
	src := `<!DOCTYPE a [<!ELEMENT a EMPTY><!ATTLIST a color (red|green|blue) "red">]><a color="purple"/>`
	var msgs []string
	_, err := parser.ParseString(src, parser.Options{
		Validate:       true,
		OnInvalidation: func(m string) { msgs = append(msgs, m) },
	})
	require.NoError(t, err)
	assert.NotEmpty(t, msgs)
}

func TestNMTokensAttributeIsCollapsed(t *testing.T) {
	src := `<!DOCTYPE a [<!ELEMENT a EMPTY><!ATTLIST a kinds NMTOKENS #IMPLIED>]><a kinds="  one   two  "/>`
	doc, err := parser.ParseString(src, parser.Options{Validate: true})
	require.NoError(t, err)
	assert.Equal(t, "one two", doc.Child().GetAttribute("kinds"))
}

func TestExternalSubsetConditionalIncludeSection(t *testing.T) {
	doc, err := parser.ParseString(
		`<!DOCTYPE a SYSTEM "ignored.dtd"><a><b/></a>`,
		parser.Options{
			Validate: true,
			EntityLoader: func(base, publicID, systemID string) ([]byte, error) {
				return []byte(`<![INCLUDE[<!ELEMENT a (b)><!ELEMENT b EMPTY>]]>`), nil
			},
			OnInvalidation: func(string) { t.Fatal("unexpected invalidation") },
		})
	require.NoError(t, err)
	assert.Equal(t, "b", doc.Child().Child().Name())
}

func TestExternalSubsetConditionalIgnoreSection(t *testing.T) {
	var msgs []string
	doc, err := parser.ParseString(
		`<!DOCTYPE a SYSTEM "ignored.dtd"><a><b/></a>`,
		parser.Options{
			Validate: true,
			EntityLoader: func(base, publicID, systemID string) ([]byte, error) {
				return []byte(`<![IGNORE[<!ELEMENT a (c)>]]><!ELEMENT a (b)><!ELEMENT b EMPTY>`), nil
			},
			OnInvalidation: func(m string) { msgs = append(msgs, m) },
		})
	require.NoError(t, err)
	assert.Empty(t, msgs, "the IGNOREd content-model must not apply")
	assert.Equal(t, "b", doc.Child().Child().Name())
}

func TestParameterEntityExpansionInExternalSubset(t *testing.T) {
	doc, err := parser.ParseString(
		`<!DOCTYPE a SYSTEM "ignored.dtd"><a><b/></a>`,
		parser.Options{
			Validate: true,
			EntityLoader: func(base, publicID, systemID string) ([]byte, error) {
				return []byte(`<!ENTITY % contentModel "(b)"><!ELEMENT a %contentModel;><!ELEMENT b EMPTY>`), nil
			},
			OnInvalidation: func(m string) { t.Fatalf("unexpected invalidation: %s", m) },
		})
	require.NoError(t, err)
	assert.Equal(t, "b", doc.Child().Child().Name())
}

func TestNotationDeclarationReachesDocument(t *testing.T) {
	src := `<!DOCTYPE a [<!NOTATION png SYSTEM "image/png"><!ELEMENT a EMPTY>]><a/>`
	doc, err := parser.ParseString(src, parser.Options{})
	require.NoError(t, err)
	n, ok := doc.Notation("png")
	require.True(t, ok)
	assert.Equal(t, "image/png", n.SystemID)
}

func TestUnparsedEntityAttributeRequiresNotation(t *testing.T) {
	src := `<!DOCTYPE a [` +
		`<!NOTATION png SYSTEM "image/png">` +
		`<!ENTITY logo SYSTEM "logo.png" NDATA png>` +
		`<!ELEMENT a EMPTY>` +
		`<!ATTLIST a icon ENTITY #IMPLIED>` +
		`]><a icon="logo"/>`
	doc, err := parser.ParseString(src, parser.Options{Validate: true})
	require.NoError(t, err)
	assert.Equal(t, "logo", doc.Child().GetAttribute("icon"))
}

func TestMixedContentElementDeclaration(t *testing.T) {
	src := `<!DOCTYPE a [<!ELEMENT a (#PCDATA|b)*><!ELEMENT b EMPTY>]><a>text<b/>more</a>`
	var msgs []string
	doc, err := parser.ParseString(src, parser.Options{
		Validate:       true,
		OnInvalidation: func(m string) { msgs = append(msgs, m) },
	})
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.Equal(t, "b", doc.Child().Child().Name())
}
