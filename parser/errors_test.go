package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-xmldom/xmldom/parser"
)

func TestNotWellFormedErrorCarriesLineAndColumn(t *testing.T) {
	_, err := parser.ParseString("<r>\n  <child>\n</r>", parser.Options{})
	require.Error(t, err)

	var perr *parser.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, parser.NotWellFormed, perr.Kind)
	assert.Greater(t, perr.Line, 0)
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "not well-formed", parser.NotWellFormed.String())
	assert.Equal(t, "not valid", parser.NotValid.String())
}
