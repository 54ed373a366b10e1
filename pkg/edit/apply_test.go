package edit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedartree/cedar/pkg/edit"
)

func TestApplyEdits_Empty(t *testing.T) {
	t.Parallel()

	content := []byte("unchanged")
	result := edit.ApplyEdits(content, nil)
	assert.Equal(t, content, result)
}

func TestApplyEdits_SingleReplacement(t *testing.T) {
	t.Parallel()

	content := []byte("abc * 123")
	edits := []edit.TextEdit{{StartOffset: 0, EndOffset: 3, NewText: "xyz"}}

	result := edit.ApplyEdits(content, edits)
	assert.Equal(t, "xyz * 123", string(result))
}

func TestApplyEdits_Insertion(t *testing.T) {
	t.Parallel()

	content := []byte("abc * 123")
	edits := []edit.TextEdit{{StartOffset: 2, EndOffset: 2, NewText: "XYZ"}}

	result := edit.ApplyEdits(content, edits)
	assert.Equal(t, "abXYZc * 123", string(result))
}

func TestApplyEdits_Deletion(t *testing.T) {
	t.Parallel()

	content := []byte("123 * 456")
	edits := []edit.TextEdit{{StartOffset: 4, EndOffset: 6, NewText: ""}}

	result := edit.ApplyEdits(content, edits)
	assert.Equal(t, "123 456", string(result))
}

func TestApplyEdits_MultipleSorted(t *testing.T) {
	t.Parallel()

	content := []byte("[1, 2, 3]")
	edits := []edit.TextEdit{
		{StartOffset: 1, EndOffset: 2, NewText: "10"},
		{StartOffset: 4, EndOffset: 5, NewText: "20"},
		{StartOffset: 7, EndOffset: 8, NewText: "30"},
	}

	prepared, err := edit.PrepareEdits(edits, len(content))
	require.NoError(t, err)
	result := edit.ApplyEdits(content, prepared)
	assert.Equal(t, "[10, 20, 30]", string(result))
}

func TestApplyEdits_GrowsAndShrinks(t *testing.T) {
	t.Parallel()

	content := []byte("aaaa")
	edits := []edit.TextEdit{
		{StartOffset: 0, EndOffset: 2, NewText: ""},
		{StartOffset: 2, EndOffset: 4, NewText: "bbbbbb"},
	}

	prepared, err := edit.PrepareEdits(edits, len(content))
	require.NoError(t, err)
	result := edit.ApplyEdits(content, prepared)
	assert.Equal(t, "bbbbbb", string(result))
}
