package edit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedartree/cedar/pkg/edit"
	"github.com/cedartree/cedar/pkg/text"
)

func TestDescriptor(t *testing.T) {
	t.Parallel()

	e := edit.TextEdit{StartOffset: 4, EndOffset: 6, NewText: "hello"}
	d := e.Descriptor()
	assert.Equal(t, text.Edit{StartByte: 4, BytesRemoved: 2, BytesAdded: 5}, d)
}

func TestMinimal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		old, new string
		want     text.Edit
	}{
		{
			name: "identical is noop",
			old:  "abc * 123",
			new:  "abc * 123",
			want: text.Edit{StartByte: 9},
		},
		{
			name: "insertion",
			old:  "abc * 123",
			new:  "abXYZc * 123",
			want: text.Edit{StartByte: 2, BytesRemoved: 0, BytesAdded: 3},
		},
		{
			name: "deletion",
			old:  "123 * 456",
			new:  "123 456",
			want: text.Edit{StartByte: 4, BytesRemoved: 2, BytesAdded: 0},
		},
		{
			name: "replacement",
			old:  "[1, 2]",
			new:  "[1, 42]",
			want: text.Edit{StartByte: 4, BytesRemoved: 0, BytesAdded: 1},
		},
		{
			name: "append",
			old:  "x",
			new:  "x + y",
			want: text.Edit{StartByte: 1, BytesRemoved: 0, BytesAdded: 4},
		},
		{
			name: "everything changes",
			old:  "abc",
			new:  "xyz",
			want: text.Edit{StartByte: 0, BytesRemoved: 3, BytesAdded: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := edit.Minimal([]byte(tt.old), []byte(tt.new))
			assert.Equal(t, tt.want, got)

			// The descriptor must reproduce new when applied to old.
			applied := edit.ApplyEdits([]byte(tt.old), []edit.TextEdit{{
				StartOffset: int(got.StartByte),
				EndOffset:   int(got.StartByte + got.BytesRemoved),
				NewText:     tt.new[got.StartByte : got.StartByte+got.BytesAdded],
			}})
			assert.Equal(t, tt.new, string(applied))
		})
	}
}

func TestMinimalNoopIsNoop(t *testing.T) {
	t.Parallel()

	d := edit.Minimal([]byte("same"), []byte("same"))
	assert.True(t, d.IsNoop())
}

func TestEditBuilder(t *testing.T) {
	t.Parallel()

	b := edit.NewEditBuilder()
	b.Insert(0, "start ")
	b.Delete(2, 4)
	b.ReplaceRange(5, 6, "X")

	require.Len(t, b.Edits, 3)
	assert.Equal(t, edit.TextEdit{StartOffset: 0, EndOffset: 0, NewText: "start "}, b.Edits[0])
	assert.Equal(t, edit.TextEdit{StartOffset: 2, EndOffset: 4, NewText: ""}, b.Edits[1])
	assert.Equal(t, edit.TextEdit{StartOffset: 5, EndOffset: 6, NewText: "X"}, b.Edits[2])
}
