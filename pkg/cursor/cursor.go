// Package cursor implements the byte-oriented input cursor the lexer reads
// from: a small chunk cache over a caller-supplied read callback, with
// UTF-8-aware (byte, char) position tracking and cheap mark/reset so the
// lexer can backtrack to its last accepting position without re-decoding
// anything it has already seen.
package cursor

import "github.com/cedartree/cedar/pkg/text"

// ReadFunc returns the next chunk of input starting at byteOffset. It
// returns a zero-length chunk (and ok=false) at end of input. Callers
// implementing this over an in-memory buffer (the common case for
// pkg/document) simply slice; callers backed by a file or rope may fetch a
// bounded window per call.
type ReadFunc func(byteOffset int) (chunk []byte, ok bool)

// Cursor walks a ReadFunc one byte at a time while tracking the current
// (byte, char) position. It caches the chunk most recently returned by
// ReadFunc so repeated single-byte Advance calls don't re-invoke it.
type Cursor struct {
	read ReadFunc

	chunk      []byte
	chunkStart int // byte offset of chunk[0]

	pos text.Point // current logical position
	eof bool
}

// New creates a cursor positioned at the given starting point. start must be
// a position previously produced by this package (or the zero Point) —
// callers resuming a cursor mid-document (e.g. incremental reparse seeding
// the lexer at a reused node's boundary) pass that node's end point.
//
// No read is issued until the first byte is needed: a cursor that only ever
// jumps (incremental reparse splicing over reused subtrees) never touches
// the regions it jumped across.
func New(read ReadFunc, start text.Point) *Cursor {
	return &Cursor{read: read, pos: start, chunkStart: start.Byte}
}

func (c *Cursor) fill(byteOffset int) {
	chunk, ok := c.read(byteOffset)
	if !ok || len(chunk) == 0 {
		c.chunk = nil
		c.chunkStart = byteOffset
		c.eof = true
		return
	}
	c.chunk = chunk
	c.chunkStart = byteOffset
	c.eof = false
}

// Position returns the cursor's current (byte, char) position.
func (c *Cursor) Position() text.Point { return c.pos }

// AtEOF reports whether the cursor has reached the end of input.
func (c *Cursor) AtEOF() bool {
	_, ok := c.Current()
	return !ok
}

// Current returns the byte at the cursor's position, or (0, false) at EOF.
func (c *Cursor) Current() (byte, bool) {
	idx := c.pos.Byte - c.chunkStart
	for idx >= len(c.chunk) && !c.eof {
		c.fill(c.chunkStart + len(c.chunk))
		idx = c.pos.Byte - c.chunkStart
	}
	if idx >= len(c.chunk) {
		return 0, false
	}
	return c.chunk[idx], true
}

// Advance consumes the current byte and moves the position forward by one
// byte. Char only advances on UTF-8 lead bytes (bytes that are not
// continuation bytes, 0x80-0xBF), so a multi-byte scalar counts as one char
// the way text.Extent expects.
func (c *Cursor) Advance() {
	b, ok := c.Current()
	if !ok {
		return
	}
	c.pos.Byte++
	if b&0xC0 != 0x80 {
		c.pos.Char++
	}
}

// Mark is an opaque, cheap-to-copy cursor snapshot.
type Mark struct {
	pos text.Point
}

// Mark snapshots the cursor's current position.
func (c *Cursor) Mark() Mark { return Mark{pos: c.pos} }

// Point returns the position a Mark was taken at.
func (m Mark) Point() text.Point { return m.pos }

// MarkAt builds a Mark for an arbitrary position, for seeking a cursor to a
// point it didn't derive itself (e.g. a reused subtree's boundary).
func MarkAt(p text.Point) Mark { return Mark{pos: p} }

// Reset moves the cursor to a previously taken Mark. If the mark's byte
// offset falls outside the cached chunk, the chunk is dropped and the next
// read happens lazily, when (and if) a byte is actually needed.
func (c *Cursor) Reset(m Mark) {
	c.pos = m.pos
	if m.pos.Byte < c.chunkStart || m.pos.Byte >= c.chunkStart+len(c.chunk) {
		c.chunk = nil
		c.chunkStart = m.pos.Byte
	}
	c.eof = false
}
