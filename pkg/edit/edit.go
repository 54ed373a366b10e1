// Package edit provides the caller-facing text-edit helpers that sit in
// front of the incremental reparser: building and applying byte-range
// replacements, deriving the minimal edit descriptor a Document.Edit call
// needs, and rendering unified diffs of the outcome.
package edit

import "github.com/cedartree/cedar/pkg/text"

// TextEdit represents a single text replacement in a file.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Descriptor converts a TextEdit into the edit descriptor the incremental
// reparser consumes.
func (e TextEdit) Descriptor() text.Edit {
	return text.Edit{
		StartByte:    uint32(e.StartOffset),
		BytesRemoved: uint32(e.EndOffset - e.StartOffset),
		BytesAdded:   uint32(len(e.NewText)),
	}
}

// Minimal computes the smallest single edit descriptor that turns old into
// new, by trimming the longest common prefix and suffix. An identical pair
// yields a no-op descriptor.
func Minimal(oldContent, newContent []byte) text.Edit {
	prefix := 0
	for prefix < len(oldContent) && prefix < len(newContent) && oldContent[prefix] == newContent[prefix] {
		prefix++
	}

	oldEnd, newEnd := len(oldContent), len(newContent)
	for oldEnd > prefix && newEnd > prefix && oldContent[oldEnd-1] == newContent[newEnd-1] {
		oldEnd--
		newEnd--
	}

	return text.Edit{
		StartByte:    uint32(prefix),
		BytesRemoved: uint32(oldEnd - prefix),
		BytesAdded:   uint32(newEnd - prefix),
	}
}

// EditBuilder accumulates text edits for a file.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates a new EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{
		Edits: make([]TextEdit, 0),
	}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Insert adds an edit that inserts text at the given offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}
