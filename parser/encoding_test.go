package parser_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/go-xmldom/xmldom/parser"
)

func TestParseDetectsUTF8BOM(t *testing.T) {
	src := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<r>hi</r>`)...)
	doc, err := parser.Parse(bytes.NewReader(src), parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", doc.Encoding)
	assert.Equal(t, "hi", doc.Child().Str())
}

func TestParseDetectsUTF16LEBOM(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	encoded, err := enc.NewEncoder().Bytes([]byte(`<r>hi</r>`))
	require.NoError(t, err)

	doc, err := parser.Parse(bytes.NewReader(encoded), parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, "UTF-16LE", doc.Encoding)
	assert.Equal(t, "hi", doc.Child().Str())
}

func TestParseDetectsUTF16BEBOM(t *testing.T) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	encoded, err := enc.NewEncoder().Bytes([]byte(`<r>hi</r>`))
	require.NoError(t, err)

	doc, err := parser.Parse(bytes.NewReader(encoded), parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, "UTF-16BE", doc.Encoding)
	assert.Equal(t, "hi", doc.Child().Str())
}

func TestParseHonorsDeclaredISO88591Encoding(t *testing.T) {
	src := []byte(`<?xml version="1.0" encoding="ISO-8859-1"?><r>caf` + "\xe9" + `</r>`)
	doc, err := parser.Parse(bytes.NewReader(src), parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, "ISO-8859-1", doc.Encoding)
	assert.Equal(t, "café", doc.Child().Str())
}

func TestParseDefaultsToUTF8WithoutDeclaration(t *testing.T) {
	doc, err := parser.Parse(bytes.NewReader([]byte(`<r>hi</r>`)), parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", doc.Encoding)
}
