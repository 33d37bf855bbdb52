package dtd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-xmldom/xmldom/dtd"
)

func TestNormalizeCDATALeavesValueAlone(t *testing.T) {
	a := &dtd.AttributeDecl{Name: "title", Type: dtd.AttrCDATA}
	v, err := a.Normalize("  spaced   out  ", nil)
	assert.NoError(t, err)
	assert.Equal(t, "  spaced   out  ", v)
}

func TestNormalizeNMTokenCollapsesAndValidates(t *testing.T) {
	a := &dtd.AttributeDecl{Name: "kind", Type: dtd.AttrNMToken}
	v, err := a.Normalize("  foo  ", nil)
	assert.NoError(t, err)
	assert.Equal(t, "foo", v)

	_, err = a.Normalize("not valid", nil)
	assert.Error(t, err)
}

func TestNormalizeNMTokensCollapsesRuns(t *testing.T) {
	a := &dtd.AttributeDecl{Name: "classes", Type: dtd.AttrNMTokens}
	v, err := a.Normalize("  a   b  c ", nil)
	assert.NoError(t, err)
	assert.Equal(t, "a b c", v)
}

func TestNormalizeIDRejectsInvalidName(t *testing.T) {
	a := &dtd.AttributeDecl{Name: "id", Type: dtd.AttrID}
	_, err := a.Normalize("1bad", nil)
	assert.Error(t, err)

	v, err := a.Normalize("good-id", nil)
	assert.NoError(t, err)
	assert.Equal(t, "good-id", v)
}

func TestNormalizeEnumeratedChecksMembership(t *testing.T) {
	a := &dtd.AttributeDecl{Name: "color", Type: dtd.AttrEnumerated, Enum: []string{"red", "green", "blue"}}
	v, err := a.Normalize("green", nil)
	assert.NoError(t, err)
	assert.Equal(t, "green", v)

	_, err = a.Normalize("purple", nil)
	assert.Error(t, err)
}

func TestNormalizeFixedMustMatchDefault(t *testing.T) {
	a := &dtd.AttributeDecl{Name: "version", Type: dtd.AttrCDATA, DefaultKind: dtd.DefaultFixed, DefaultValue: "1.0"}
	_, err := a.Normalize("1.0", nil)
	assert.NoError(t, err)

	_, err = a.Normalize("2.0", nil)
	assert.Error(t, err)
}

func TestNormalizeEntityRequiresUnparsedEntity(t *testing.T) {
	entities := dtd.NewEntityTable()
	entities.DeclareGeneral(&dtd.GeneralEntity{Name: "logo", NData: "png", External: true})
	entities.DeclareGeneral(&dtd.GeneralEntity{Name: "greeting", Value: "hi"})

	a := &dtd.AttributeDecl{Name: "src", Type: dtd.AttrEntity}

	v, err := a.Normalize("logo", entities)
	assert.NoError(t, err)
	assert.Equal(t, "logo", v)

	_, err = a.Normalize("greeting", entities)
	assert.Error(t, err, "greeting is parsed, not unparsed")

	_, err = a.Normalize("missing", entities)
	assert.Error(t, err)
}

func TestNormalizeEntitiesListEachMustBeUnparsed(t *testing.T) {
	entities := dtd.NewEntityTable()
	entities.DeclareGeneral(&dtd.GeneralEntity{Name: "a", NData: "png"})
	entities.DeclareGeneral(&dtd.GeneralEntity{Name: "b", NData: "png"})

	attr := &dtd.AttributeDecl{Name: "refs", Type: dtd.AttrEntities}
	v, err := attr.Normalize(" a  b ", entities)
	assert.NoError(t, err)
	assert.Equal(t, "a b", v)
}
