package cst

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cedartree/cedar/pkg/langtable"
	"github.com/cedartree/cedar/pkg/text"
)

func symID(t *testing.T, table langtable.Table, name string) langtable.SymbolID {
	t.Helper()
	for id := langtable.SymbolID(0); id < 64; id++ {
		if table.SymbolName(id) == name {
			return id
		}
	}
	t.Fatalf("symbol %q not found", name)
	return langtable.InvalidSymbol
}

// buildSumTree constructs "1 + 2" by hand: sum(number, PLUS, number).
func buildSumTree(t *testing.T) (*Arena, Handle, []byte) {
	t.Helper()
	a := NewArena()
	numberSym := symID(t, langtable.Arithmetic, "number")
	plusSym := symID(t, langtable.Arithmetic, "+")

	one := a.NewLeaf(numberSym, "number", text.Zero, text.Extent{Bytes: 1, Chars: 1})
	plus := a.NewLeaf(plusSym, "+", text.Extent{Bytes: 1, Chars: 1}, text.Extent{Bytes: 1, Chars: 1})
	two := a.NewLeaf(numberSym, "number", text.Extent{Bytes: 1, Chars: 1}, text.Extent{Bytes: 1, Chars: 1})

	sumSize := text.Sum([]text.Extent{one.Size(), plus.Padding(), plus.Size(), two.Padding(), two.Size()})
	sum := a.New(langtable.InvalidSymbol, "sum", text.Zero, sumSize, []Handle{one, plus, two})
	return a, sum, []byte("1 + 2")
}

func TestTreeCursorDerivesPositions(t *testing.T) {
	_, root, _ := buildSumTree(t)

	c := NewTreeCursor(root)
	require.Equal(t, text.Point{}, c.StartPoint())
	require.Equal(t, text.Point{Byte: 5, Char: 5}, c.EndPoint())

	require.True(t, c.GotoFirstChild())
	require.Equal(t, text.Point{}, c.StartPoint())
	require.Equal(t, text.Point{Byte: 1, Char: 1}, c.EndPoint())

	require.True(t, c.GotoNextSibling())
	require.Equal(t, text.Point{Byte: 2, Char: 2}, c.StartPoint()) // after "1 " padding
	require.Equal(t, text.Point{Byte: 3, Char: 3}, c.EndPoint())

	require.True(t, c.GotoNextSibling())
	require.Equal(t, text.Point{Byte: 4, Char: 4}, c.StartPoint())
	require.Equal(t, text.Point{Byte: 5, Char: 5}, c.EndPoint())

	require.False(t, c.GotoNextSibling())
	require.True(t, c.GotoParent())
	require.Equal(t, text.Point{}, c.StartPoint())
}

func TestStringifySkipsAnonymousAndPadding(t *testing.T) {
	_, root, _ := buildSumTree(t)
	s := Stringify(langtable.Arithmetic, root)
	require.Equal(t, "(sum (number) (number))", s)
}

func TestFindForPointResolvesDeepestLeaf(t *testing.T) {
	_, root, _ := buildSumTree(t)

	n, start := FindForPoint(root, text.Point{Byte: 4, Char: 4})
	require.False(t, n.IsNil())
	require.Equal(t, "number", n.Name())
	require.Equal(t, text.Point{Byte: 4, Char: 4}, start)

	n, _ = FindForPoint(root, text.Point{Byte: 2, Char: 2})
	require.Equal(t, "+", n.Name())

	n, _ = FindForPoint(root, text.Point{Byte: 9, Char: 9})
	require.True(t, n.IsNil())
}

func TestArenaRefcountingFreesOnRelease(t *testing.T) {
	a := NewArena()
	numberSym := symID(t, langtable.Arithmetic, "number")
	leaf := a.NewLeaf(numberSym, "number", text.Zero, text.Extent{Bytes: 1, Chars: 1})
	require.EqualValues(t, 1, leaf.RefCount())

	kept := leaf.Retain()
	require.EqualValues(t, 2, leaf.RefCount())

	wrapper := a.New(langtable.InvalidSymbol, "group", text.Zero, leaf.Size(), []Handle{leaf})
	wrapper.Release() // releases leaf's reference held by wrapper
	require.EqualValues(t, 1, kept.RefCount())

	kept.Release()
}

func TestErrorNodeStringifiesWithRepresentativeChar(t *testing.T) {
	a := NewArena()
	errNode := a.NewError('#', text.Zero, text.Extent{Bytes: 1, Chars: 1}, nil)
	s := Stringify(langtable.Arithmetic, errNode)
	require.Equal(t, `(ERROR '#')`, s)
}
