package dtd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-xmldom/xmldom/dtd"
)

func TestDTDElementPlaceholderThenDeclare(t *testing.T) {
	d := dtd.New("doc")

	placeholder := d.Element("a")
	assert.False(t, placeholder.Declared)

	ok := d.DeclareElement("a", dtd.Empty(), false)
	assert.True(t, ok)

	e, found := d.LookupElement("a")
	require.True(t, found)
	assert.True(t, e.Declared)
	assert.Same(t, placeholder, e, "placeholder identity is preserved across declaration")
}

func TestDTDDeclareElementTwiceFails(t *testing.T) {
	d := dtd.New("doc")
	assert.True(t, d.DeclareElement("a", dtd.Empty(), false))
	assert.False(t, d.DeclareElement("a", dtd.Any(), false))
}

func TestDTDValidatorForUndeclaredIsAny(t *testing.T) {
	d := dtd.New("doc")
	v := d.ValidatorFor("never-mentioned")
	assert.Equal(t, dtd.ContentAny, v.ContentSpecKind())
}

func TestDTDNotations(t *testing.T) {
	d := dtd.New("doc")
	ok := d.AddNotation(&dtd.Notation{Name: "png", SystemID: "image/png"})
	assert.True(t, ok)
	assert.False(t, d.AddNotation(&dtd.Notation{Name: "png", SystemID: "other"}))

	n, found := d.Notation("png")
	require.True(t, found)
	assert.Equal(t, "image/png", n.SystemID)
}

func TestDTDElementsOrder(t *testing.T) {
	d := dtd.New("doc")
	d.Element("b")
	d.Element("a")
	d.Element("b")

	names := []string{}
	for _, e := range d.Elements() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"b", "a"}, names)
}
