package document

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cedartree/cedar/pkg/langtable"
	"github.com/cedartree/cedar/pkg/text"
)

func newDoc(t *testing.T, table langtable.Table, src string) (*Document, *[]byte) {
	t.Helper()
	content := []byte(src)
	d := New()
	require.NoError(t, d.SetLanguage(table))
	require.NoError(t, d.SetInput(Input{Read: func(off int) ([]byte, bool) {
		if off >= len(content) {
			return nil, false
		}
		return content[off:], true
	}}))
	return d, &content
}

func TestDocumentParsesOnSetInput(t *testing.T) {
	d, _ := newDoc(t, langtable.JSON, `{"a": [1, 2]}`)
	defer d.Close()

	root := d.RootNode()
	require.NotNil(t, root)
	defer root.Close()

	require.Equal(t, "DOCUMENT", root.Name())
	require.Equal(t, `(DOCUMENT (object (pair (string) (array (number) (number)))))`, root.String())
	require.Equal(t, text.Point{}, root.Pos())
	require.Equal(t, text.Extent{Bytes: 13, Chars: 13}, root.Size())
}

func TestNodeAccessorsDerivePositions(t *testing.T) {
	d, _ := newDoc(t, langtable.Arithmetic, "1 + 23")
	defer d.Close()
	root := d.RootNode()
	defer root.Close()

	sum := root.Child(0)
	require.Equal(t, "sum", sum.Name())
	require.Equal(t, 3, sum.ChildCount())

	rhs := sum.Child(2)
	require.Equal(t, "number", rhs.Name())
	require.Equal(t, text.Point{Byte: 4, Char: 4}, rhs.Pos())
	require.Equal(t, text.Extent{Bytes: 2, Chars: 2}, rhs.Size())
	require.Equal(t, text.Extent{Bytes: 1, Chars: 1}, rhs.Padding())
}

func TestFindForPosReturnsDeepestNode(t *testing.T) {
	d, _ := newDoc(t, langtable.Arithmetic, "abc * 123")
	defer d.Close()
	root := d.RootNode()
	defer root.Close()

	n := root.FindForPos(text.Point{Byte: 7, Char: 7})
	require.NotNil(t, n)
	require.Equal(t, "number", n.Name())
	require.Equal(t, text.Point{Byte: 6, Char: 6}, n.Pos())

	require.Nil(t, root.FindForPos(text.Point{Byte: 40, Char: 40}))
}

func TestEditReparsesIncrementally(t *testing.T) {
	d, content := newDoc(t, langtable.Arithmetic, "abc * 123")
	defer d.Close()

	*content = []byte("abXYZc * 123")
	require.NoError(t, d.Edit(text.Edit{StartByte: 2, BytesAdded: 3}))

	root := d.RootNode()
	defer root.Close()
	require.Equal(t, "(DOCUMENT (product (variable) (number)))", root.String())

	n := root.FindForPos(text.Point{Byte: 1, Char: 1})
	require.Equal(t, 6, n.Size().Bytes)
}

func TestHandlesSurviveEdits(t *testing.T) {
	d, content := newDoc(t, langtable.JSON, `[1, 2]`)
	defer d.Close()

	before := d.RootNode()
	defer before.Close()
	require.Equal(t, "(DOCUMENT (array (number) (number)))", before.String())

	*content = []byte(`[1, 2, 3]`)
	require.NoError(t, d.Edit(text.Edit{StartByte: 5, BytesAdded: 3}))

	// The old handle still reads the old tree; a fresh handle sees the new.
	require.Equal(t, "(DOCUMENT (array (number) (number)))", before.String())
	after := d.RootNode()
	defer after.Close()
	require.Equal(t, "(DOCUMENT (array (number) (number) (number)))", after.String())
}

func TestSetLanguageRebuildsTree(t *testing.T) {
	d, _ := newDoc(t, langtable.JSON, `123`)
	defer d.Close()

	root := d.RootNode()
	require.Equal(t, "(DOCUMENT (number))", root.String())
	root.Close()

	require.NoError(t, d.SetLanguage(langtable.Arithmetic))
	root = d.RootNode()
	defer root.Close()
	require.Equal(t, "(DOCUMENT (number))", root.String())
}

func TestSetInputRejectsUTF16(t *testing.T) {
	d := New()
	require.NoError(t, d.SetLanguage(langtable.JSON))
	err := d.SetInput(Input{Encoding: EncodingUTF16, Read: func(int) ([]byte, bool) { return nil, false }})
	require.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestParseBeforeLanguageFails(t *testing.T) {
	d := New()
	err := d.SetInput(BytesInput([]byte("1")))
	require.ErrorIs(t, err, ErrNoLanguage)
}
