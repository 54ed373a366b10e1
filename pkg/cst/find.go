package cst

import "github.com/cedartree/cedar/pkg/text"

// FindForPoint returns the deepest node whose content span [pos, pos+size)
// contains p, along with that node's absolute content start. Bytes inside a
// token's padding resolve to the ubiquitous leaf covering them. Returns
// NilHandle if p lies outside root entirely.
func FindForPoint(root Handle, p text.Point) (Handle, text.Point) {
	c := NewTreeCursor(root)
	if !pointInside(c, p) {
		return NilHandle, text.Point{}
	}
	for {
		if !c.GotoFirstChild() {
			return c.Node(), c.StartPoint()
		}
		found := false
		for {
			if pointInside(c, p) {
				found = true
				break
			}
			if !c.GotoNextSibling() {
				break
			}
		}
		if !found {
			// p falls in the current node's own content, between or past its
			// children (e.g. an ERROR node's skipped bytes).
			c.GotoParent()
			return c.Node(), c.StartPoint()
		}
	}
}

func pointInside(c *TreeCursor, p text.Point) bool {
	start := c.PaddingStartPoint()
	end := c.EndPoint()
	return p.Byte >= start.Byte && p.Byte < end.Byte
}
