// Package cst implements the concrete syntax tree: an immutable,
// arena-allocated, reference-counted DAG of Nodes. A Node stores only its
// own size and the padding (ubiquitous content) that precedes it, never an
// absolute position — absolute positions are derived by walking from the
// root and summing preceding siblings' sizes and paddings. This is what
// lets an unaffected subtree from a previous parse be spliced, unchanged,
// into a tree rooted somewhere else after an edit: nothing inside the
// subtree encodes where it used to live.
//
// Nodes also carry no parent pointer, for the same reason: a subtree can be
// referenced by more than one tree (the old one and the new one, during an
// incremental reparse) without the two trees fighting over a single
// parent link.
package cst

import (
	"sync/atomic"

	"github.com/cedartree/cedar/pkg/langtable"
	"github.com/cedartree/cedar/pkg/text"
)

// Handle is a reference to a node living in an Arena. The zero Handle is
// invalid; NilHandle names it explicitly.
type Handle struct {
	arena *Arena
	id    uint32
}

// NilHandle is the invalid handle.
var NilHandle = Handle{}

// IsNil reports whether h refers to no node.
func (h Handle) IsNil() bool { return h.arena == nil }

type nodeData struct {
	refs int32

	symbol  langtable.SymbolID
	name    string // display name; empty for ERROR nodes
	isError bool
	errChar rune // for ERROR nodes, the character at which recovery began

	padding text.Extent // ubiquitous content consumed immediately before this node
	size    text.Extent // this node's own span, including all descendants, excluding padding

	children []Handle
}

// Arena owns a pool of nodes and hands out reference-counted Handles into
// it. A Handle's node is freed back to the pool the moment its refcount
// drops to zero; an Arena never needs a separate sweep pass because every
// Handle obtained from it (via New, NewError, or Retain) must be balanced
// by exactly one Release.
type Arena struct {
	nodes []nodeData
	free  []uint32
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) alloc(n nodeData) Handle {
	n.refs = 1
	var id uint32
	if len(a.free) > 0 {
		id = a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		a.nodes[id] = n
	} else {
		id = uint32(len(a.nodes))
		a.nodes = append(a.nodes, n)
	}
	return Handle{arena: a, id: id}
}

func (a *Arena) get(h Handle) *nodeData {
	if h.arena != a {
		panic("cst: handle does not belong to this arena")
	}
	return &a.nodes[h.id]
}

// New allocates an internal node for production name/symbol, wrapping
// children (already-retained handles; New takes ownership of the slice and
// of one reference on each child — callers that keep their own copy of a
// child handle must Retain it first). size is the node's own span excluding
// padding; padding is the ubiquitous content immediately preceding it.
func (a *Arena) New(symbol langtable.SymbolID, name string, padding, size text.Extent, children []Handle) Handle {
	return a.alloc(nodeData{symbol: symbol, name: name, padding: padding, size: size, children: children})
}

// NewLeaf allocates a childless token node.
func (a *Arena) NewLeaf(symbol langtable.SymbolID, name string, padding, size text.Extent) Handle {
	return a.alloc(nodeData{symbol: symbol, name: name, padding: padding, size: size})
}

// NewError allocates an ERROR node spanning an unparseable region. errChar
// is the character at which recovery began (the lexer's failing lookahead,
// or the first character of the offending token); it is what stringify shows
// as the node's display string. children may be empty (a pure lexical error)
// or hold the ubiquitous leaves swallowed into the error's padding.
func (a *Arena) NewError(errChar rune, padding, size text.Extent, children []Handle) Handle {
	return a.alloc(nodeData{isError: true, errChar: errChar, padding: padding, size: size, children: children})
}

// Retain increments h's refcount and returns h, so callers can write
// `child := parent.Child(0).Retain()` to keep a handle alive past the
// lifetime of the tree it was found in.
func (h Handle) Retain() Handle {
	if h.IsNil() {
		return h
	}
	atomic.AddInt32(&h.arena.get(h).refs, 1)
	return h
}

// Release decrements h's refcount, recursively releasing children and
// freeing the slot once it reaches zero. Calling Release on a Handle that
// has already been fully released is a bug in the caller (use-after-free);
// it is not guarded against, the same way releasing an already-freed
// pointer isn't in a manually-managed arena.
func (h Handle) Release() {
	if h.IsNil() {
		return
	}
	n := h.arena.get(h)
	if atomic.AddInt32(&n.refs, -1) > 0 {
		return
	}
	children := n.children
	arena := h.arena
	*n = nodeData{}
	arena.free = append(arena.free, h.id)
	for _, c := range children {
		c.Release()
	}
}

// Symbol returns the node's grammar symbol. It is meaningless for an ERROR
// node (use IsError).
func (h Handle) Symbol() langtable.SymbolID { return h.arena.get(h).symbol }

// Name returns the node's display name, as set at construction time.
func (h Handle) Name() string { return h.arena.get(h).name }

// IsError reports whether h is an ERROR node.
func (h Handle) IsError() bool {
	if h.IsNil() {
		return false
	}
	return h.arena.get(h).isError
}

// ErrorChar returns the character at which recovery began, for ERROR nodes.
func (h Handle) ErrorChar() rune { return h.arena.get(h).errChar }

// IsLeaf reports whether h has no children.
func (h Handle) IsLeaf() bool { return len(h.arena.get(h).children) == 0 }

// Padding returns the ubiquitous content consumed immediately before h.
func (h Handle) Padding() text.Extent { return h.arena.get(h).padding }

// Size returns h's own span, including descendants, excluding padding.
func (h Handle) Size() text.Extent { return h.arena.get(h).size }

// NumChildren returns the number of direct children.
func (h Handle) NumChildren() int { return len(h.arena.get(h).children) }

// Child returns the i'th direct child.
func (h Handle) Child(i int) Handle { return h.arena.get(h).children[i] }

// RefCount returns the current reference count, for tests and diagnostics.
func (h Handle) RefCount() int32 { return atomic.LoadInt32(&h.arena.get(h).refs) }

// Live reports how many nodes are currently allocated and not yet released,
// for tests and diagnostics.
func (a *Arena) Live() int { return len(a.nodes) - len(a.free) }
