package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cedartree/cedar/pkg/text"
)

func readerFor(s string) ReadFunc {
	b := []byte(s)
	return func(byteOffset int) ([]byte, bool) {
		if byteOffset >= len(b) {
			return nil, false
		}
		return b[byteOffset:], true
	}
}

func TestCursorAdvanceCountsCharsNotBytes(t *testing.T) {
	c := New(readerFor("aéb"), text.Point{}) // 'a', 'é' (2 bytes), 'b'

	first, ok := c.Current()
	require.True(t, ok)
	require.Equal(t, byte('a'), first)
	c.Advance()
	require.Equal(t, text.Point{Byte: 1, Char: 1}, c.Position())

	// é is 0xC3 0xA9: lead byte advances char, continuation doesn't.
	lead, _ := c.Current()
	require.Equal(t, byte(0xC3), lead)
	c.Advance()
	require.Equal(t, text.Point{Byte: 2, Char: 2}, c.Position())

	cont, _ := c.Current()
	require.Equal(t, byte(0xA9), cont)
	c.Advance()
	require.Equal(t, text.Point{Byte: 3, Char: 2}, c.Position())

	last, ok := c.Current()
	require.True(t, ok)
	require.Equal(t, byte('b'), last)
	c.Advance()
	require.True(t, c.AtEOF())
}

func TestCursorMarkReset(t *testing.T) {
	c := New(readerFor("hello"), text.Point{})
	c.Advance()
	c.Advance()
	m := c.Mark()
	c.Advance()
	c.Advance()
	require.Equal(t, text.Point{Byte: 4, Char: 4}, c.Position())

	c.Reset(m)
	require.Equal(t, text.Point{Byte: 2, Char: 2}, c.Position())
	b, ok := c.Current()
	require.True(t, ok)
	require.Equal(t, byte('l'), b)
}

func TestCursorReadsLazily(t *testing.T) {
	reads := 0
	read := func(byteOffset int) ([]byte, bool) {
		reads++
		b := []byte("hello")
		if byteOffset >= len(b) {
			return nil, false
		}
		return b[byteOffset:], true
	}

	c := New(read, text.Point{})
	require.Equal(t, 0, reads)

	// Jumping around without touching bytes never invokes the reader.
	c.Reset(MarkAt(text.Point{Byte: 3, Char: 3}))
	c.Reset(MarkAt(text.Point{Byte: 1, Char: 1}))
	require.Equal(t, 0, reads)

	_, ok := c.Current()
	require.True(t, ok)
	require.Equal(t, 1, reads)
}

func TestCursorEmptyInput(t *testing.T) {
	c := New(readerFor(""), text.Point{})
	require.True(t, c.AtEOF())
	_, ok := c.Current()
	require.False(t, ok)
}
