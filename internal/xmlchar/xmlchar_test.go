package xmlchar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNameStartChar(t *testing.T) {
	for _, r := range []rune{':', '_', 'A', 'z', 0xC0, 0x370, 0x10000} {
		assert.Truef(t, IsNameStartChar(r), "expected %U to start a name", r)
	}
	for _, r := range []rune{'-', '.', '0', ' ', 0xB7} {
		assert.Falsef(t, IsNameStartChar(r), "expected %U not to start a name", r)
	}
}

func TestIsNameChar(t *testing.T) {
	for _, r := range []rune{'-', '.', '0', 'a', 0xB7} {
		assert.Truef(t, IsNameChar(r), "expected %U to continue a name", r)
	}
	assert.False(t, IsNameChar(' '))
}

func TestValidXMLChar(t *testing.T) {
	assert.True(t, IsValidXML10Char('\t'))
	assert.True(t, IsValidXML10Char('A'))
	assert.False(t, IsValidXML10Char(0x1))
	assert.False(t, IsValidXML10Char(0xFFFE))

	assert.True(t, IsValidXML11Char(0x1))
	assert.False(t, IsValidXML11Char(0x0))
}

func TestTrimAndCollapse(t *testing.T) {
	assert.Equal(t, "foo", Trim("  \t foo\r\n"))
	assert.Equal(t, "a b c", CollapseSpace("  a   b\t\tc  "))
	assert.Equal(t, "", CollapseSpace("   "))
}

func TestCursor(t *testing.T) {
	c := NewCursor([]byte("aéb"))
	r, err := c.Advance()
	require.NoError(t, err)
	assert.Equal(t, 'a', r)

	r, err = c.Advance()
	require.NoError(t, err)
	assert.Equal(t, 'é', r)

	r, err = c.Advance()
	require.NoError(t, err)
	assert.Equal(t, 'b', r)

	assert.Equal(t, 0, c.Len())
}

func TestCursorInvalidUTF8(t *testing.T) {
	c := NewCursor([]byte{0xff, 0xfe})
	_, err := c.Advance()
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestAppendPopRune(t *testing.T) {
	var buf []byte
	buf = AppendRune(buf, 'x')
	buf = AppendRune(buf, 'é')
	assert.Equal(t, "xé", string(buf))

	buf = PopRune(buf)
	assert.Equal(t, "x", string(buf))
	buf = PopRune(buf)
	assert.Equal(t, "", string(buf))
	buf = PopRune(buf)
	assert.Equal(t, "", string(buf))
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("foo"))
	assert.True(t, IsValidName("x:foo-bar.2"))
	assert.False(t, IsValidName(""))
	assert.False(t, IsValidName("2foo"))
	assert.True(t, IsValidNmtoken("2foo"))
	assert.False(t, IsValidNmtoken(""))
}
