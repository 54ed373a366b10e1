package document

import (
	"github.com/cedartree/cedar/pkg/cst"
	"github.com/cedartree/cedar/pkg/langtable"
	"github.com/cedartree/cedar/pkg/text"
)

// Node is an external, read-only view of a tree node. The Node returned by
// Document.RootNode holds a reference that keeps its whole tree alive;
// Nodes reached through Child and FindForPos borrow that reference and are
// valid until the root Node's Close.
//
// Absolute positions are not stored in the tree — each Node carries the
// position derived while navigating to it.
type Node struct {
	table  langtable.Table
	anchor cst.Handle // retained tree root; zero for borrowed child views
	h      cst.Handle

	padStart text.Point // where this node's padding begins
}

func newRootNode(table langtable.Table, retained cst.Handle) *Node {
	return &Node{table: table, anchor: retained, h: retained}
}

// Close releases the tree reference held by a Node obtained from
// Document.RootNode. It is a no-op on borrowed child views.
func (n *Node) Close() {
	if !n.anchor.IsNil() {
		n.anchor.Release()
		n.anchor = cst.NilHandle
	}
}

// Name returns the node's display name: the production or symbol name from
// the grammar, or "ERROR" for error nodes.
func (n *Node) Name() string {
	if n.h.IsError() {
		return "ERROR"
	}
	if name := n.h.Name(); name != "" {
		return name
	}
	return n.table.SymbolName(n.h.Symbol())
}

// IsError reports whether the node is an ERROR region.
func (n *Node) IsError() bool { return n.h.IsError() }

// Pos returns the absolute position of the node's first content byte.
func (n *Node) Pos() text.Point { return n.padStart.Add(n.h.Padding()) }

// Size returns the node's own content extent, excluding leading padding.
func (n *Node) Size() text.Extent { return n.h.Size() }

// Padding returns the extent of ubiquitous content leading the node.
func (n *Node) Padding() text.Extent { return n.h.Padding() }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return n.h.NumChildren() }

// Child returns the i'th direct child as a borrowed view.
func (n *Node) Child(i int) *Node {
	start := n.padStart
	for j := 0; j < i; j++ {
		c := n.h.Child(j)
		start = start.Add(c.Padding()).Add(c.Size())
	}
	return &Node{table: n.table, h: n.h.Child(i), padStart: start}
}

// FindForPos returns the deepest node whose span contains p, or nil if p
// lies outside this node.
func (n *Node) FindForPos(p text.Point) *Node {
	h, start := cst.FindForPoint(n.h, text.Point{
		Byte: p.Byte - n.padStart.Byte,
		Char: p.Char - n.padStart.Char,
	})
	if h.IsNil() {
		return nil
	}
	return &Node{table: n.table, h: h, padStart: text.Point{
		Byte: start.Byte - h.Padding().Bytes + n.padStart.Byte,
		Char: start.Char - h.Padding().Chars + n.padStart.Char,
	}}
}

// String renders the subtree as an S-expression.
func (n *Node) String() string { return cst.Stringify(n.table, n.h) }
