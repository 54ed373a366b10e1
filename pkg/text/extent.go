// Package text holds the small position and edit value types shared by the
// lexer, tree, and incremental reparser: every byte-length in this module is
// paired with the corresponding Unicode scalar count.
package text

// Extent is a (bytes, chars) pair. Bytes counts UTF-8 code units; Chars
// counts Unicode scalar values. Every length and offset the core exposes
// carries both.
type Extent struct {
	Bytes int
	Chars int
}

// Zero is the empty extent.
var Zero = Extent{}

// Add returns the element-wise sum of e and o.
func (e Extent) Add(o Extent) Extent {
	return Extent{Bytes: e.Bytes + o.Bytes, Chars: e.Chars + o.Chars}
}

// Sub returns the element-wise difference e - o.
func (e Extent) Sub(o Extent) Extent {
	return Extent{Bytes: e.Bytes - o.Bytes, Chars: e.Chars - o.Chars}
}

// IsZero reports whether the extent has zero byte length.
func (e Extent) IsZero() bool {
	return e.Bytes == 0
}

// Sum adds up a slice of extents.
func Sum(extents []Extent) Extent {
	var total Extent
	for _, e := range extents {
		total = total.Add(e)
	}
	return total
}

// Point is an absolute (byte, char) document offset, derived by walking the
// tree from the root; it is never stored on a Node.
type Point struct {
	Byte int
	Char int
}

// Add advances a point by an extent.
func (p Point) Add(e Extent) Point {
	return Point{Byte: p.Byte + e.Bytes, Char: p.Char + e.Chars}
}

// Contains reports whether p lies within [start, start+size).
func Contains(start Point, size Extent, p Point) bool {
	end := start.Add(size)
	return p.Byte >= start.Byte && p.Byte < end.Byte
}

// Between returns the extent spanning [a, b]. b must not precede a.
func Between(a, b Point) Extent {
	return Extent{Bytes: b.Byte - a.Byte, Chars: b.Char - a.Char}
}
