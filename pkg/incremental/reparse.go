// Package incremental re-parses a document after an edit while reusing, by
// reference, every subtree the edit could not have changed. Nodes store
// only relative extents (pkg/cst), so "shifting" the unaffected parts of
// the tree costs nothing: the work here is deciding which old subtrees are
// safe to offer the parser as splice candidates, and where they will live
// in the edited text.
package incremental

import (
	"github.com/charmbracelet/log"

	"github.com/cedartree/cedar/internal/logging"
	"github.com/cedartree/cedar/pkg/cst"
	"github.com/cedartree/cedar/pkg/cursor"
	"github.com/cedartree/cedar/pkg/langtable"
	"github.com/cedartree/cedar/pkg/lexer"
	"github.com/cedartree/cedar/pkg/parser"
	"github.com/cedartree/cedar/pkg/text"
)

// Reparser re-parses edited documents against one language table, sharing
// the owning document's arena so old and new trees can share subtrees.
type Reparser struct {
	table langtable.Table
	arena *cst.Arena
	log   *log.Logger
}

// New creates a Reparser allocating into arena.
func New(table langtable.Table, arena *cst.Arena, logger *log.Logger) *Reparser {
	if logger == nil {
		logger = logging.Default()
	}
	return &Reparser{table: table, arena: arena, log: logger}
}

// Reparse builds the tree for the post-edit text read through read. The
// returned root is a new reference; oldRoot is left retained and still
// describes the pre-edit text. Subtrees reused from oldRoot are shared
// between the two trees by reference. reused reports how many subtrees
// were spliced without re-reading their bytes.
//
// A no-op edit returns oldRoot itself (retained again), pointer-identical.
func (r *Reparser) Reparse(oldRoot cst.Handle, edit text.Edit, read cursor.ReadFunc) (root cst.Handle, reused int, err error) {
	if edit.IsNoop() && !oldRoot.IsNil() {
		return oldRoot.Retain(), 0, nil
	}

	var candidates []parser.ReuseCandidate
	if !oldRoot.IsNil() {
		pre, suf := r.collect(oldRoot, 0, int(edit.StartByte), int(edit.OldEnd()), int(edit.Delta()))
		candidates = append(pre, suf...)
	}

	r.log.Debug("incremental reparse",
		logging.FieldEditStart, edit.StartByte,
		logging.FieldBytesRemoved, edit.BytesRemoved,
		logging.FieldBytesAdded, edit.BytesAdded)

	cur := cursor.New(read, text.Point{})
	p := parser.New(r.table, lexer.New(r.table, cur), r.arena,
		parser.WithReuse(candidates), parser.WithLogger(r.log))
	root, err = p.Parse()
	if err != nil {
		return cst.NilHandle, 0, err
	}
	return root, p.SplicedCount(), nil
}

// collect walks the old tree and splits each level's children into the
// reusable prefix (ends strictly before the edit — a node merely touching
// the edit point is suspect, its last token could have grown) and the
// reusable suffix (starts at or after the removed range, offered at its
// shifted position). The one child containing or straddling the edit is
// descended into; an ERROR region or a single token is re-parsed whole.
//
// Prefix candidates of outer levels come before inner ones, suffix
// candidates after, which yields all candidates in source order — the
// order the parser consumes them in.
func (r *Reparser) collect(n cst.Handle, nodeStart, dirtyStart, oldEnd, delta int) (pre, suf []parser.ReuseCandidate) {
	if n.IsError() || n.NumChildren() == 0 || r.isTokenNode(n) {
		return nil, nil
	}

	pos := nodeStart
	straddle := cst.NilHandle
	straddleStart := 0
	var levelPre, levelSuf []parser.ReuseCandidate
	for i := 0; i < n.NumChildren(); i++ {
		ch := n.Child(i)
		ext := ch.Padding().Add(ch.Size())
		chStart, chEnd := pos, pos+ext.Bytes
		pos = chEnd

		switch {
		case straddle.IsNil() && chEnd < dirtyStart:
			levelPre = append(levelPre, parser.ReuseCandidate{Node: ch, StartByte: chStart})
		case straddle.IsNil():
			straddle, straddleStart = ch, chStart
		case chStart >= oldEnd:
			levelSuf = append(levelSuf, parser.ReuseCandidate{Node: ch, StartByte: chStart + delta})
		}
	}

	if straddle.IsNil() {
		return levelPre, levelSuf
	}
	childPre, childSuf := r.collect(straddle, straddleStart, dirtyStart, oldEnd, delta)
	pre = append(levelPre, childPre...)
	suf = append(childSuf, levelSuf...)
	return pre, suf
}

// isTokenNode reports whether n is a token leaf whose only children are its
// ubiquitous prelude. Such a node re-lexes as a unit; there is nothing
// inside it to reuse separately.
func (r *Reparser) isTokenNode(n cst.Handle) bool {
	for i := 0; i < n.NumChildren(); i++ {
		ch := n.Child(i)
		if ch.IsError() || !r.table.IsUbiquitous(ch.Symbol()) {
			return false
		}
	}
	return true
}
