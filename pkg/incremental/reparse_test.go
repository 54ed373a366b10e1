package incremental

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cedartree/cedar/pkg/cst"
	"github.com/cedartree/cedar/pkg/langtable"
	"github.com/cedartree/cedar/pkg/text"
)

// spyReader serves the whole tail of the content per read call and records
// the offset of every read that returned bytes, so tests can assert which
// regions of the input a reparse actually touched.
type spyReader struct {
	content []byte
	offsets []int
}

func (s *spyReader) read(byteOffset int) ([]byte, bool) {
	if byteOffset >= len(s.content) {
		return nil, false
	}
	s.offsets = append(s.offsets, byteOffset)
	return s.content[byteOffset:], true
}

func parseFull(t *testing.T, table langtable.Table, arena *cst.Arena, src string) cst.Handle {
	t.Helper()
	r := New(table, arena, nil)
	spy := &spyReader{content: []byte(src)}
	root, _, err := r.Reparse(cst.NilHandle, text.Edit{BytesAdded: uint32(len(src))}, spy.read)
	require.NoError(t, err)
	return root
}

func TestNoopEditReturnsIdenticalRoot(t *testing.T) {
	arena := cst.NewArena()
	root := parseFull(t, langtable.Arithmetic, arena, "1 + 2")

	r := New(langtable.Arithmetic, arena, nil)
	spy := &spyReader{content: []byte("1 + 2")}
	again, _, err := r.Reparse(root, text.Edit{StartByte: 3}, spy.read)
	require.NoError(t, err)
	require.Equal(t, root, again)
	require.Empty(t, spy.offsets)
}

func TestIncrementalInsertRereadsOnlyDirtyTail(t *testing.T) {
	arena := cst.NewArena()
	root := parseFull(t, langtable.Arithmetic, arena, "x ^ (100 + abc)")
	require.Equal(t,
		"(DOCUMENT (exponent (variable) (group (sum (number) (variable)))))",
		cst.Stringify(langtable.Arithmetic, root))

	// Insert " * 5" at offset 14, just before the closing paren.
	r := New(langtable.Arithmetic, arena, nil)
	spy := &spyReader{content: []byte("x ^ (100 + abc * 5)")}
	newRoot, reused, err := r.Reparse(root, text.Edit{StartByte: 14, BytesAdded: 4}, spy.read)
	require.NoError(t, err)
	require.Equal(t,
		"(DOCUMENT (exponent (variable) (group (sum (number) (product (variable) (number))))))",
		cst.Stringify(langtable.Arithmetic, newRoot))

	// Everything before "abc" and the closing paren were spliced; the only
	// read served starts at the " abc * 5)" region.
	require.Equal(t, []int{10}, spy.offsets)
	require.Equal(t, 6, reused)
}

func TestInsertIntoExistingToken(t *testing.T) {
	arena := cst.NewArena()
	root := parseFull(t, langtable.Arithmetic, arena, "abc * 123")

	r := New(langtable.Arithmetic, arena, nil)
	spy := &spyReader{content: []byte("abXYZc * 123")}
	newRoot, _, err := r.Reparse(root, text.Edit{StartByte: 2, BytesAdded: 3}, spy.read)
	require.NoError(t, err)
	require.Equal(t,
		"(DOCUMENT (product (variable) (number)))",
		cst.Stringify(langtable.Arithmetic, newRoot))

	n, _ := cst.FindForPoint(newRoot, text.Point{Byte: 1, Char: 1})
	require.Equal(t, 6, n.Size().Bytes)

	// The edit stayed inside one token; its right-hand siblings are reused
	// by identity.
	oldProduct, newProduct := root.Child(0), newRoot.Child(0)
	require.Equal(t, oldProduct.Child(1), newProduct.Child(1)) // "*"
	require.Equal(t, oldProduct.Child(2), newProduct.Child(2)) // "123"
}

func TestCriticalDeletionProducesError(t *testing.T) {
	arena := cst.NewArena()
	root := parseFull(t, langtable.Arithmetic, arena, "123 * 456")

	r := New(langtable.Arithmetic, arena, nil)
	spy := &spyReader{content: []byte("123 456")}
	newRoot, _, err := r.Reparse(root, text.Edit{StartByte: 4, BytesRemoved: 2}, spy.read)
	require.NoError(t, err)
	require.Equal(t, "(DOCUMENT (number) (ERROR '4'))", cst.Stringify(langtable.Arithmetic, newRoot))
}

func TestNonASCIIInsertKeepsCharCounts(t *testing.T) {
	arena := cst.NewArena()
	root := parseFull(t, langtable.Arithmetic, arena, "αβδ + 1")

	// Insert "ψ" (2 bytes) before the "1", turning it into the identifier
	// "ψ1".
	r := New(langtable.Arithmetic, arena, nil)
	spy := &spyReader{content: []byte("αβδ + ψ1")}
	newRoot, _, err := r.Reparse(root, text.Edit{StartByte: 9, BytesAdded: 2}, spy.read)
	require.NoError(t, err)
	require.Equal(t,
		"(DOCUMENT (sum (variable) (variable)))",
		cst.Stringify(langtable.Arithmetic, newRoot))
	require.Equal(t, text.Extent{Bytes: 12, Chars: 8}, newRoot.Size())
}

func TestNonTerminalSubtreesSpliceAcrossEdit(t *testing.T) {
	arena := cst.NewArena()
	src := `[[1, 2], {"a": 3}, [4]]`
	root := parseFull(t, langtable.JSON, arena, src)

	// Replace the "4" with "42".
	r := New(langtable.JSON, arena, nil)
	spy := &spyReader{content: []byte(`[[1, 2], {"a": 3}, [42]]`)}
	newRoot, reused, err := r.Reparse(root, text.Edit{StartByte: 20, BytesRemoved: 1, BytesAdded: 2}, spy.read)
	require.NoError(t, err)
	require.Equal(t,
		"(DOCUMENT (array (array (number) (number)) (object (pair (string) (number))) (array (number))))",
		cst.Stringify(langtable.JSON, newRoot))
	require.Greater(t, reused, 3)

	// The untouched first array and the object are shared with the old
	// tree by reference.
	oldArray, newArray := root.Child(0), newRoot.Child(0)
	require.Equal(t, oldArray.Child(1), newArray.Child(1)) // [1, 2]
	require.Equal(t, oldArray.Child(3), newArray.Child(3)) // {"a": 3}
}

func TestEditBeforeFirstTokenStillParses(t *testing.T) {
	arena := cst.NewArena()
	root := parseFull(t, langtable.Arithmetic, arena, "  1 + 2")

	// Insert into the leading whitespace, before any real token.
	r := New(langtable.Arithmetic, arena, nil)
	spy := &spyReader{content: []byte("    1 + 2")}
	newRoot, _, err := r.Reparse(root, text.Edit{StartByte: 1, BytesAdded: 2}, spy.read)
	require.NoError(t, err)
	require.Equal(t, "(DOCUMENT (sum (number) (number)))", cst.Stringify(langtable.Arithmetic, newRoot))
	require.Equal(t, text.Extent{Bytes: 9, Chars: 9}, newRoot.Size())
}
