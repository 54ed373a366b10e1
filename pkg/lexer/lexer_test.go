package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cedartree/cedar/pkg/cursor"
	"github.com/cedartree/cedar/pkg/langtable"
	"github.com/cedartree/cedar/pkg/text"
)

func readerFor(s string) cursor.ReadFunc {
	b := []byte(s)
	return func(off int) ([]byte, bool) {
		if off >= len(b) {
			return nil, false
		}
		return b[off:], true
	}
}

func newLexer(src string) *Lexer {
	c := cursor.New(readerFor(src), text.Point{})
	return New(langtable.Arithmetic, c)
}

func symName(t langtable.Table, sym langtable.SymbolID) string { return t.SymbolName(sym) }

func TestLexerSkipsPaddingAndReportsNumbers(t *testing.T) {
	l := newLexer("  12 + 3")
	state := langtable.Arithmetic.StartState()

	tok := l.Next(state)
	require.True(t, tok.Valid)
	require.Equal(t, "number", symName(langtable.Arithmetic, tok.Symbol))
	require.Equal(t, text.Extent{Bytes: 2, Chars: 2}, tok.Padding)
	require.Equal(t, text.Point{Byte: 2, Char: 2}, tok.Start)
	require.Equal(t, text.Extent{Bytes: 2, Chars: 2}, tok.Size)

	tok = l.Next(state)
	require.True(t, tok.Valid)
	require.Equal(t, "+", symName(langtable.Arithmetic, tok.Symbol))

	tok = l.Next(state)
	require.True(t, tok.Valid)
	require.Equal(t, "number", symName(langtable.Arithmetic, tok.Symbol))

	tok = l.Next(state)
	require.True(t, tok.Valid)
	require.Equal(t, langtable.Arithmetic.EndSymbol(), tok.Symbol)
	require.True(t, tok.Size.IsZero())
}

func TestLexerUnicodeVariable(t *testing.T) {
	l := newLexer("α + 1") // "α + 1"
	state := langtable.Arithmetic.StartState()

	tok := l.Next(state)
	require.True(t, tok.Valid)
	require.Equal(t, "variable", symName(langtable.Arithmetic, tok.Symbol))
	require.Equal(t, text.Extent{Bytes: 2, Chars: 1}, tok.Size)
}

func TestLexerInvalidTokenSpansWholeWord(t *testing.T) {
	c := cursor.New(readerFor("faaaaalse"), text.Point{})
	l := New(langtable.JSON, c)

	tok := l.Next(langtable.JSON.StartState())
	require.False(t, tok.Valid)
	require.Equal(t, text.Extent{Bytes: 9, Chars: 9}, tok.Size)
	// The DFA dies on the third byte, after consuming the "fa" prefix of
	// "false"; that lookahead is the character error reporting shows.
	require.Equal(t, 'a', tok.Display)
}

func TestLexerCollectsUbiquitousPieces(t *testing.T) {
	l := newLexer("1 # note\n+ 2")
	state := langtable.Arithmetic.StartState()

	tok := l.Next(state)
	require.Equal(t, "number", symName(langtable.Arithmetic, tok.Symbol))

	tok = l.Next(state)
	require.Equal(t, "+", symName(langtable.Arithmetic, tok.Symbol))
	require.Len(t, tok.Ubiquitous, 3) // " ", "# note", "\n"
	require.Equal(t, text.Extent{Bytes: 8, Chars: 8}, tok.Padding)
	require.Equal(t, text.Point{Byte: 1, Char: 1}, tok.PaddingStart)
	require.Equal(t, "COMMENT", symName(langtable.Arithmetic, tok.Ubiquitous[1].Symbol))
	require.Equal(t, text.Extent{Bytes: 6, Chars: 6}, tok.Ubiquitous[1].Size)
}

func TestLexerCommentRunsToEOF(t *testing.T) {
	l := newLexer("1 # trailing comment, no newline")
	state := langtable.Arithmetic.StartState()

	tok := l.Next(state)
	require.True(t, tok.Valid)
	require.Equal(t, "number", symName(langtable.Arithmetic, tok.Symbol))

	tok = l.Next(state)
	require.True(t, tok.Valid)
	require.Equal(t, langtable.Arithmetic.EndSymbol(), tok.Symbol)
	require.Greater(t, tok.Padding.Bytes, 0)
}
