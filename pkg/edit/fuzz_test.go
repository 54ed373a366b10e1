package edit_test

import (
	"bytes"
	"testing"

	"github.com/cedartree/cedar/pkg/edit"
)

// FuzzMinimalRoundTrip checks that the minimal descriptor derived from any
// (old, new) pair actually transforms old into new when applied.
func FuzzMinimalRoundTrip(f *testing.F) {
	f.Add([]byte("abc * 123"), []byte("abXYZc * 123"))
	f.Add([]byte(""), []byte("x"))
	f.Add([]byte("x"), []byte(""))
	f.Add([]byte("same"), []byte("same"))
	f.Add([]byte("αβδ + 1"), []byte("αβδ + ψ1"))

	f.Fuzz(func(t *testing.T, oldContent, newContent []byte) {
		d := edit.Minimal(oldContent, newContent)

		if int(d.StartByte+d.BytesRemoved) > len(oldContent) {
			t.Fatalf("descriptor %+v removes past end of old content (%d bytes)", d, len(oldContent))
		}
		if int(d.StartByte+d.BytesAdded) > len(newContent) {
			t.Fatalf("descriptor %+v adds past end of new content (%d bytes)", d, len(newContent))
		}

		applied := edit.ApplyEdits(oldContent, []edit.TextEdit{{
			StartOffset: int(d.StartByte),
			EndOffset:   int(d.StartByte + d.BytesRemoved),
			NewText:     string(newContent[d.StartByte : d.StartByte+d.BytesAdded]),
		}})
		if !bytes.Equal(applied, newContent) {
			t.Fatalf("applying %+v to %q gave %q, want %q", d, oldContent, applied, newContent)
		}
	})
}

// FuzzGenerateDiffNeverPanics drives the diff generator with arbitrary
// content pairs.
func FuzzGenerateDiffNeverPanics(f *testing.F) {
	f.Add([]byte("a\nb\nc\n"), []byte("a\nx\nc\n"))
	f.Add([]byte(""), []byte("line\n"))

	f.Fuzz(func(t *testing.T, oldContent, newContent []byte) {
		d := edit.GenerateDiff("fuzz", oldContent, newContent)
		if d != nil {
			_ = d.String()
			_ = d.FullString()
		}
	})
}
