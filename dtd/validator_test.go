package dtd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-xmldom/xmldom/dtd"
)

// buildDecl constructs the ElementDecl for <!ELEMENT a (b, c?, d+)>,
// the content model exercised by spec.md §8 Scenario 3.
func buildDecl() *dtd.ElementDecl {
	spec := dtd.Seq(
		dtd.Element("b"),
		dtd.Repeated(dtd.Element("c"), dtd.QuantOptional),
		dtd.Repeated(dtd.Element("d"), dtd.QuantOneOrMore),
	)
	return &dtd.ElementDecl{Name: "a", Declared: true, Content: spec}
}

func runSequence(names ...string) (ok bool) {
	v := dtd.NewValidator(buildDecl())
	for _, n := range names {
		if !v.Allow(n) {
			return false
		}
	}
	return v.Done()
}

func TestContentSpecScenario3(t *testing.T) {
	assert.True(t, runSequence("b", "d"), "<a><b/><d/></a> should validate")
	assert.True(t, runSequence("b", "c", "d"), "<a><b/><c/><d/></a> should validate")
	assert.False(t, runSequence("b"), "<a><b/></a> should fail: needs at least one d")
	assert.False(t, runSequence("c", "d"), "<a><c/><d/></a> should fail: missing b")
}

func TestContentSpecRejectsUnknownChild(t *testing.T) {
	v := dtd.NewValidator(buildDecl())
	assert.False(t, v.Allow("z"))
}

func TestContentSpecRepeatsD(t *testing.T) {
	v := dtd.NewValidator(buildDecl())
	require.True(t, v.Allow("b"))
	require.True(t, v.Allow("d"))
	require.True(t, v.Allow("d"))
	require.True(t, v.Allow("d"))
	assert.True(t, v.Done())
}

func TestContentSpecCOnlyOnce(t *testing.T) {
	v := dtd.NewValidator(buildDecl())
	require.True(t, v.Allow("b"))
	require.True(t, v.Allow("c"))
	assert.False(t, v.Allow("c"), "c is optional, not repeatable")
	assert.True(t, v.Allow("d"))
}

func TestEmptyContentSpec(t *testing.T) {
	decl := &dtd.ElementDecl{Name: "empty", Declared: true, Content: dtd.Empty()}
	v := dtd.NewValidator(decl)
	assert.Equal(t, dtd.ContentEmpty, v.ContentSpecKind())
	assert.True(t, v.Done())
	assert.False(t, v.Allow("anything"))
}

func TestAnyContentSpec(t *testing.T) {
	decl := &dtd.ElementDecl{Name: "any", Declared: true, Content: dtd.Any()}
	v := dtd.NewValidator(decl)
	assert.Equal(t, dtd.ContentAny, v.ContentSpecKind())
	assert.True(t, v.Allow("whatever"))
	assert.True(t, v.Done())
}

func TestMixedContentSpec(t *testing.T) {
	spec := dtd.Choice(true, dtd.Element("b"), dtd.Element("i"))
	decl := &dtd.ElementDecl{Name: "p", Declared: true, Content: spec}
	v := dtd.NewValidator(decl)
	assert.Equal(t, dtd.ContentMixed, v.ContentSpecKind())
	assert.True(t, v.Allow("b"))
	assert.True(t, v.Done())
}

func TestUndeclaredElementValidatesAsAny(t *testing.T) {
	v := dtd.NewValidator(nil)
	assert.True(t, v.Allow("x"))
	assert.True(t, v.Done())
}

func TestChoiceContentSpec(t *testing.T) {
	spec := dtd.Choice(false, dtd.Element("b"), dtd.Element("c"))
	decl := &dtd.ElementDecl{Name: "a", Declared: true, Content: spec}

	v := dtd.NewValidator(decl)
	assert.True(t, v.Allow("b"))
	assert.False(t, v.Allow("c"), "choice is locked onto its first match")
	assert.True(t, v.Done())

	v2 := dtd.NewValidator(decl)
	assert.True(t, v2.Allow("c"))
	assert.True(t, v2.Done())
}
