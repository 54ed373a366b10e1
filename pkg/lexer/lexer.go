// Package lexer implements the table-driven, longest-match tokenizer that
// sits under pkg/parser and pkg/incremental. It never inspects grammar
// source — everything it needs (the DFA, which symbols are ubiquitous) comes
// from a langtable.Table treated as opaque precompiled data.
package lexer

import (
	"unicode/utf8"

	"github.com/cedartree/cedar/pkg/cursor"
	"github.com/cedartree/cedar/pkg/langtable"
	"github.com/cedartree/cedar/pkg/text"
)

// Piece is one ubiquitous token (whitespace, comment) matched while looking
// for a real token. Pieces are returned attached to the following Token, in
// source order; the parser turns each into a leaf node in the tree so every
// input byte ends up owned by exactly one leaf.
type Piece struct {
	Symbol langtable.SymbolID
	Size   text.Extent
}

// Token is one lexical result: either a recognized symbol, the end-of-input
// marker, or an invalid span the parser's error recovery must deal with.
type Token struct {
	Symbol langtable.SymbolID

	// Ubiquitous holds the whitespace/comment tokens skipped immediately
	// before this token; Padding is their total extent and PaddingStart is
	// where the first of them begins.
	Ubiquitous   []Piece
	Padding      text.Extent
	PaddingStart text.Point

	Start text.Point // content start, after padding
	Size  text.Extent

	// Display is the character error reporting shows if this token turns
	// out to be unparseable: the first content character for a valid token,
	// or, for an invalid token, the character at which the DFA stopped.
	Display rune

	Valid bool
}

// End reports the position immediately after the token's content.
func (t Token) End() text.Point { return t.Start.Add(t.Size) }

// IsEnd reports whether t is the end-of-input marker for table.
func (t Token) IsEnd(table langtable.Table) bool {
	return t.Valid && t.Symbol == table.EndSymbol()
}

// Lexer scans Tokens off a cursor.Cursor using a langtable.Table's DFA.
type Lexer struct {
	table langtable.Table
	cur   *cursor.Cursor
}

// New creates a Lexer reading from cur using table's lexical rules.
func New(table langtable.Table, cur *cursor.Cursor) *Lexer {
	return &Lexer{table: table, cur: cur}
}

// Position returns the underlying cursor's current position.
func (l *Lexer) Position() text.Point { return l.cur.Position() }

// Seek repositions the lexer to resume scanning from p. The caller (the
// incremental reparser) is responsible for p corresponding to a byte
// boundary the cursor's ReadFunc can serve.
func (l *Lexer) Seek(p text.Point) { l.cur.Reset(cursor.MarkAt(p)) }

// Next returns the next non-ubiquitous token, collecting any ubiquitous
// (whitespace/comment) tokens found first. At end of input it returns a
// Token for table.EndSymbol() with zero size; trailing ubiquitous content
// arrives as that token's padding.
func (l *Lexer) Next(state langtable.ParseState) Token {
	paddingStart := l.cur.Position()
	var (
		pieces  []Piece
		padding text.Extent
	)
	for {
		start := l.cur.Position()
		if l.cur.AtEOF() {
			return Token{
				Symbol:     l.table.EndSymbol(),
				Ubiquitous: pieces, Padding: padding, PaddingStart: paddingStart,
				Start: start, Size: text.Zero, Valid: true,
			}
		}

		sym, size, display, ok := l.scanOne(state)
		if !ok {
			return Token{
				Ubiquitous: pieces, Padding: padding, PaddingStart: paddingStart,
				Start: start, Size: size, Display: display, Valid: false,
			}
		}
		if l.table.IsUbiquitous(sym) {
			pieces = append(pieces, Piece{Symbol: sym, Size: size})
			padding = padding.Add(size)
			continue
		}
		return Token{
			Symbol:     sym,
			Ubiquitous: pieces, Padding: padding, PaddingStart: paddingStart,
			Start: start, Size: size, Display: display, Valid: true,
		}
	}
}

// scanOne runs the DFA once from the cursor's current position, applying
// maximal-munch with backtracking to the last accepting state. If no
// accepting state is ever reached it falls back to a word-boundary scan
// (see scanInvalid) so an error region built around the result spans the
// whole malformed token rather than a single byte.
func (l *Lexer) scanOne(state langtable.ParseState) (langtable.SymbolID, text.Extent, rune, bool) {
	dfa := l.table.DFA()
	dfaState := l.table.LexState(state)

	start := l.cur.Mark()
	var (
		acceptMark cursor.Mark
		acceptSym  langtable.SymbolID
		accepted   bool
		firstBytes []byte // first scalar of the token, for Display
	)

	for {
		b, ok := l.cur.Current()
		if !ok {
			break
		}
		next, ok := dfa.Step(dfaState, b)
		if !ok {
			if !accepted {
				// The token never matched; the character the DFA stopped at
				// is what error recovery reports.
				l.cur.Reset(start)
				size := l.scanInvalid()
				return langtable.InvalidSymbol, size, displayRune([]byte{b}), false
			}
			break
		}
		if len(firstBytes) < utf8.UTFMax {
			firstBytes = append(firstBytes, b)
		}
		l.cur.Advance()
		dfaState = next
		if sym, isAccept := dfa.Accepting(dfaState); isAccept {
			acceptSym, acceptMark, accepted = sym, l.cur.Mark(), true
		}
	}

	if accepted {
		l.cur.Reset(acceptMark)
		return acceptSym, text.Between(start.Point(), acceptMark.Point()), displayRune(firstBytes), true
	}

	l.cur.Reset(start)
	size := l.scanInvalid()
	return langtable.InvalidSymbol, size, displayRune(firstBytes), false
}

// scanInvalid consumes a maximal run of "word" bytes (ASCII letters/digits/
// underscore, or any UTF-8 continuation/lead byte) starting at the cursor's
// current position, or exactly one byte if the first byte isn't a word
// byte. This is what lets an error like "faaaaalse" (no grammar symbol ever
// matches a 9-byte run that merely starts like the "false" keyword) surface
// as one 9-byte ERROR instead of nine single-byte ones.
func (l *Lexer) scanInvalid() text.Extent {
	start := l.cur.Mark()
	b, ok := l.cur.Current()
	if !ok {
		return text.Zero
	}
	if !isWordByte(b) {
		l.cur.Advance()
		return text.Between(start.Point(), l.cur.Position())
	}
	for {
		b, ok := l.cur.Current()
		if !ok || !isWordByte(b) {
			break
		}
		l.cur.Advance()
	}
	return text.Between(start.Point(), l.cur.Position())
}

func isWordByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9', b == '_':
		return true
	case b >= 0x80:
		return true
	default:
		return false
	}
}

func displayRune(b []byte) rune {
	if len(b) == 0 {
		return 0
	}
	r, _ := utf8.DecodeRune(b)
	return r
}
