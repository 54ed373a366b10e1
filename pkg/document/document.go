// Package document ties the core together: a Document owns a language
// table, an input callback, a node arena, and the current tree root, and
// re-parses incrementally as the text underneath it changes.
//
// A Document is single-writer: SetInput, SetLanguage, and Edit must not be
// called concurrently. Published trees are immutable, so any number of
// readers may hold Node handles — including handles into roots that have
// since been replaced — while the writer keeps editing.
package document

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/cedartree/cedar/internal/logging"
	"github.com/cedartree/cedar/pkg/cst"
	"github.com/cedartree/cedar/pkg/cursor"
	"github.com/cedartree/cedar/pkg/incremental"
	"github.com/cedartree/cedar/pkg/langtable"
	"github.com/cedartree/cedar/pkg/parser"
	"github.com/cedartree/cedar/pkg/text"
)

var (
	// ErrNoLanguage is returned when parsing is requested before SetLanguage.
	ErrNoLanguage = errors.New("document: no language set")

	// ErrNoInput is returned when parsing is requested before SetInput.
	ErrNoInput = errors.New("document: no input set")

	// ErrUnsupportedEncoding is returned for input encodings this core does
	// not decode.
	ErrUnsupportedEncoding = errors.New("document: unsupported input encoding")

	// ErrInvalidTable mirrors the parser's fatal table-corruption error.
	ErrInvalidTable = parser.ErrInvalidTable
)

// Encoding declares how the input callback's bytes are to be decoded.
type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingUTF16
)

// Input is the caller-supplied text source. Read must tolerate being
// re-invoked at arbitrary byte offsets (the incremental reparser seeks
// backward once per edit, and the lexer rewinds to its last accepting
// position), and must reflect the post-edit text by the time Edit is
// called.
type Input struct {
	Read     cursor.ReadFunc
	Encoding Encoding

	// MeasureColumnsInBytes selects byte rather than character columns in
	// point records derived by callers; the core itself always tracks both
	// counts.
	MeasureColumnsInBytes bool
}

// BytesInput adapts an in-memory buffer into an Input.
func BytesInput(b []byte) Input {
	return Input{Read: func(byteOffset int) ([]byte, bool) {
		if byteOffset >= len(b) {
			return nil, false
		}
		return b[byteOffset:], true
	}}
}

// Document owns one parsed text and its tree.
type Document struct {
	id    uuid.UUID
	log   *log.Logger
	arena *cst.Arena

	table langtable.Table
	input Input
	ready bool

	root cst.Handle
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger parse traces are written to.
func WithLogger(l *log.Logger) Option {
	return func(d *Document) { d.log = l }
}

// New creates an empty Document. SetLanguage and SetInput must both be
// called before a tree exists.
func New(opts ...Option) *Document {
	d := &Document{
		id:    uuid.New(),
		log:   logging.Default(),
		arena: cst.NewArena(),
	}
	for _, o := range opts {
		o(d)
	}
	d.log = d.log.With(logging.FieldDocumentID, d.id.String())
	return d
}

// ID returns the document's identity, used to correlate log lines across a
// parse/edit/reparse cycle.
func (d *Document) ID() uuid.UUID { return d.id }

// SetLanguage installs the language table. Any existing tree is discarded
// and, if input is present, rebuilt under the new language.
func (d *Document) SetLanguage(table langtable.Table) error {
	d.table = table
	if !d.ready {
		return nil
	}
	return d.parseFull()
}

// SetInput installs the text source and builds the initial tree.
func (d *Document) SetInput(in Input) error {
	if in.Encoding != EncodingUTF8 {
		return fmt.Errorf("%w: only UTF-8 input is decoded", ErrUnsupportedEncoding)
	}
	if in.Read == nil {
		return ErrNoInput
	}
	d.input = in
	d.ready = true
	return d.parseFull()
}

func (d *Document) parseFull() error {
	if d.table == nil {
		return ErrNoLanguage
	}
	if !d.ready {
		return ErrNoInput
	}
	r := incremental.New(d.table, d.arena, d.log)
	root, _, err := r.Reparse(cst.NilHandle, text.Edit{}, d.input.Read)
	if err != nil {
		return err
	}
	d.publish(root)
	d.log.Debug("parsed",
		logging.FieldLanguage, d.table.Name(),
		logging.FieldByteOffset, root.Size().Bytes)
	return nil
}

// Edit re-parses after the text behind the input callback changed per e,
// reusing every subtree outside the dirty range. The previous root stays
// alive for exactly as long as external handles refer to it.
func (d *Document) Edit(e text.Edit) error {
	if d.table == nil {
		return ErrNoLanguage
	}
	if !d.ready {
		return ErrNoInput
	}
	r := incremental.New(d.table, d.arena, d.log)
	root, reused, err := r.Reparse(d.root, e, d.input.Read)
	if err != nil {
		return err
	}
	d.publish(root)
	d.log.Debug("edited",
		logging.FieldEditStart, e.StartByte,
		logging.FieldBytesRemoved, e.BytesRemoved,
		logging.FieldBytesAdded, e.BytesAdded,
		logging.FieldReused, reused)
	return nil
}

// publish swaps the current root. Releasing the old root is what sweeps
// nodes no longer reachable from any tree or handle.
func (d *Document) publish(root cst.Handle) {
	old := d.root
	d.root = root
	if !old.IsNil() {
		old.Release()
	}
}

// RootNode returns a handle to the current root. The handle keeps the
// whole tree alive until its Close, independent of later edits to the
// Document. Returns nil if no tree has been built yet.
func (d *Document) RootNode() *Node {
	if d.root.IsNil() {
		return nil
	}
	return newRootNode(d.table, d.root.Retain())
}

// Close releases the document's tree. Outstanding Node handles remain
// valid; the arena frees each node once the last reference is gone.
func (d *Document) Close() {
	if !d.root.IsNil() {
		d.root.Release()
		d.root = cst.NilHandle
	}
	d.ready = false
}
