package text

// Edit describes a single text-replacement that has already happened to an
// input: BytesRemoved bytes starting at StartByte were replaced by
// BytesAdded bytes. Point fields are not tracked at this layer — callers
// that need line/column extents derive them from their own copy of the
// previous content.
type Edit struct {
	StartByte    uint32
	BytesRemoved uint32
	BytesAdded   uint32
}

// IsNoop reports whether the edit changes nothing.
func (e Edit) IsNoop() bool {
	return e.BytesRemoved == 0 && e.BytesAdded == 0
}

// OldEnd is the byte offset one past the removed region in the pre-edit text.
func (e Edit) OldEnd() uint32 {
	return e.StartByte + e.BytesRemoved
}

// NewEnd is the byte offset one past the inserted region in the post-edit text.
func (e Edit) NewEnd() uint32 {
	return e.StartByte + e.BytesAdded
}

// Delta is the net change in document length caused by the edit.
func (e Edit) Delta() int64 {
	return int64(e.BytesAdded) - int64(e.BytesRemoved)
}

// DirtyRange returns the [start, end) byte interval of the edit, per
// spec.md's Glossary: the wider of the removed and added span.
func (e Edit) DirtyRange() (start, end uint32) {
	start = e.StartByte
	removedEnd := e.StartByte + e.BytesRemoved
	addedEnd := e.StartByte + e.BytesAdded
	if removedEnd > addedEnd {
		return start, removedEnd
	}
	return start, addedEnd
}

// ShiftByte translates a pre-edit byte offset to its post-edit position,
// given the offset lies entirely before or entirely after the dirty range.
// Offsets inside the dirty range have no stable post-edit position and
// ShiftByte should not be called for them.
func (e Edit) ShiftByte(offset uint32) uint32 {
	if offset <= e.StartByte {
		return offset
	}
	if offset >= e.OldEnd() {
		return uint32(int64(offset) + e.Delta())
	}
	return e.NewEnd()
}
