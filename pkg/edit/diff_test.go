package edit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedartree/cedar/pkg/edit"
)

func TestGenerateDiff_NoChanges(t *testing.T) {
	t.Parallel()

	content := []byte("same\ncontent\n")
	d := edit.GenerateDiff("file.json", content, content)
	assert.Nil(t, d)
	assert.False(t, d.HasChanges())
	assert.Equal(t, "", d.String())
}

func TestGenerateDiff_Empty(t *testing.T) {
	t.Parallel()

	d := edit.GenerateDiff("file.json", nil, nil)
	assert.Nil(t, d)
}

func TestGenerateDiff_SingleLineChange(t *testing.T) {
	t.Parallel()

	original := []byte("[1,\n2,\n3]\n")
	modified := []byte("[1,\n42,\n3]\n")

	d := edit.GenerateDiff("data.json", original, modified)
	require.NotNil(t, d)
	assert.True(t, d.HasChanges())
	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 1, d.Deletions)

	out := d.String()
	assert.Contains(t, out, "--- a/data.json")
	assert.Contains(t, out, "+++ b/data.json")
	assert.Contains(t, out, "-2,")
	assert.Contains(t, out, "+42,")
}

func TestGenerateDiff_AdditionOnly(t *testing.T) {
	t.Parallel()

	original := []byte("line1\nline2\n")
	modified := []byte("line1\nline2\nline3\n")

	d := edit.GenerateDiff("f", original, modified)
	require.NotNil(t, d)
	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 0, d.Deletions)
	assert.Contains(t, d.String(), "+line3")
}

func TestGenerateDiff_GitHeader(t *testing.T) {
	t.Parallel()

	d := edit.GenerateDiff("/abs/path.json", []byte("a\n"), []byte("b\n"))
	require.NotNil(t, d)
	assert.Equal(t, "diff --git a/abs/path.json b/abs/path.json", d.GitHeader())
	assert.True(t, strings.HasPrefix(d.FullString(), "diff --git"))
}

func TestGenerateDiff_HunkHeaders(t *testing.T) {
	t.Parallel()

	// Two widely separated changes produce two hunks.
	var orig, mod strings.Builder
	for i := 0; i < 20; i++ {
		orig.WriteString("ctx\n")
		mod.WriteString("ctx\n")
		if i == 2 {
			orig.WriteString("old-a\n")
			mod.WriteString("new-a\n")
		}
		if i == 17 {
			orig.WriteString("old-b\n")
			mod.WriteString("new-b\n")
		}
	}

	d := edit.GenerateDiff("f", []byte(orig.String()), []byte(mod.String()))
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 2)
	assert.Contains(t, d.String(), "@@")
}
