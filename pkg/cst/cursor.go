package cst

import "github.com/cedartree/cedar/pkg/text"

// TreeCursor walks a tree while deriving each visited node's absolute
// position from scratch: a node's own data never stores where it lives, so
// the cursor tracks it by summing preceding siblings' padding+size and
// ancestors' padding as it moves. This mirrors tree-sitter's TSTreeCursor.
type TreeCursor struct {
	frames []frame
}

type frame struct {
	node  Handle
	start text.Point // position of node.Padding's start (i.e. before padding)
}

// NewTreeCursor creates a cursor positioned at root.
func NewTreeCursor(root Handle) *TreeCursor {
	return &TreeCursor{frames: []frame{{node: root, start: text.Point{}}}}
}

func (c *TreeCursor) top() frame { return c.frames[len(c.frames)-1] }

// Node returns the node the cursor currently points at.
func (c *TreeCursor) Node() Handle { return c.top().node }

// StartPoint returns the position of the current node's first content byte,
// i.e. immediately after its padding.
func (c *TreeCursor) StartPoint() text.Point {
	f := c.top()
	return f.start.Add(f.node.Padding())
}

// EndPoint returns the position immediately after the current node.
func (c *TreeCursor) EndPoint() text.Point {
	return c.StartPoint().Add(c.Node().Size())
}

// PaddingStartPoint returns the position where the current node's leading
// padding (if any) begins.
func (c *TreeCursor) PaddingStartPoint() text.Point { return c.top().start }

// GotoFirstChild moves to the first child of the current node, if any.
//
// A node's children begin at its padding start, not its content start: an
// internal node's padding is its first child's padding bubbled up, and a
// token node's leading ubiquitous leaves occupy exactly its padding region.
func (c *TreeCursor) GotoFirstChild() bool {
	n := c.Node()
	if n.NumChildren() == 0 {
		return false
	}
	child := n.Child(0)
	c.frames = append(c.frames, frame{node: child, start: c.top().start})
	return true
}

// GotoNextSibling moves to the next sibling of the current node, if any.
func (c *TreeCursor) GotoNextSibling() bool {
	if len(c.frames) < 2 {
		return false
	}
	cur := c.frames[len(c.frames)-1]
	parent := c.frames[len(c.frames)-2]
	idx := indexOfChild(parent.node, cur.node)
	if idx < 0 || idx+1 >= parent.node.NumChildren() {
		return false
	}
	next := parent.node.Child(idx + 1)
	nextStart := cur.start.Add(cur.node.Padding()).Add(cur.node.Size())
	c.frames[len(c.frames)-1] = frame{node: next, start: nextStart}
	return true
}

// GotoParent moves to the parent of the current node, if the cursor isn't
// already at the root it was created with.
func (c *TreeCursor) GotoParent() bool {
	if len(c.frames) < 2 {
		return false
	}
	c.frames = c.frames[:len(c.frames)-1]
	return true
}

// Depth returns how many GotoFirstChild calls separate the cursor from its
// root.
func (c *TreeCursor) Depth() int { return len(c.frames) - 1 }

func indexOfChild(parent, child Handle) int {
	for i := 0; i < parent.NumChildren(); i++ {
		if sameNode(parent.Child(i), child) {
			return i
		}
	}
	return -1
}

func sameNode(a, b Handle) bool { return a.arena == b.arena && a.id == b.id }
