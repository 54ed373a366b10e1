// Package parser implements the table-driven shift/reduce machine that
// turns the lexer's token stream into a concrete syntax tree. It is driven
// entirely by a langtable.Table: every decision is a lookup into the table's
// action and goto arrays, never a dispatch on grammar-specific code.
//
// The parse stack holds (state, nodes) pairs rather than (state, node): a
// hidden (chain) reduction re-pushes the popped nodes without wrapping them,
// so one stack slot can carry several already-built siblings. That is what
// flattens left-recursive list rules into their enclosing node and what lets
// error recovery thread popped-but-valid nodes past an ERROR region.
package parser

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cedartree/cedar/internal/logging"
	"github.com/cedartree/cedar/pkg/cst"
	"github.com/cedartree/cedar/pkg/langtable"
	"github.com/cedartree/cedar/pkg/lexer"
	"github.com/cedartree/cedar/pkg/text"
)

// ErrInvalidTable reports a parse table whose action and goto arrays
// disagree (a reduce with no goto for its LHS). The table is precompiled
// data, so this is corruption or a generator bug, never a property of the
// input; the caller's previous tree remains valid.
var ErrInvalidTable = errors.New("parser: invalid parse table")

// RootName is the display name of every tree's root node, regardless of the
// grammar's own start-symbol name.
const RootName = "DOCUMENT"

// ReuseCandidate is a subtree from a previous parse that may be spliced
// into the new tree if the parse reaches StartByte (the post-edit byte
// offset of the node's padding start) in a state that can consume the
// node's symbol. Candidates must be supplied in source order.
type ReuseCandidate struct {
	Node      cst.Handle
	StartByte int
}

type entry struct {
	state langtable.ParseState
	nodes []cst.Handle
}

// Parser runs one parse to completion over a lexer's token stream.
type Parser struct {
	table langtable.Table
	lex   *lexer.Lexer
	arena *cst.Arena
	log   *log.Logger

	reuse []ReuseCandidate

	stack   []entry
	pending []cst.Handle // nodes carried over a recovery, attached to the next shift
	tail    []cst.Handle // error-to-EOF nodes, attached to the root at accept

	eofRecovered bool
	spliced      int
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for debug-level parse traces.
func WithLogger(l *log.Logger) Option {
	return func(p *Parser) { p.log = l }
}

// WithReuse supplies subtrees from a previous tree for incremental reuse.
// The parser retains each candidate it splices; unspliced candidates are
// left untouched.
func WithReuse(candidates []ReuseCandidate) Option {
	return func(p *Parser) { p.reuse = candidates }
}

// New creates a Parser reading tokens from lex and allocating nodes in arena.
func New(table langtable.Table, lex *lexer.Lexer, arena *cst.Arena, opts ...Option) *Parser {
	p := &Parser{table: table, lex: lex, arena: arena, log: logging.Default()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// SplicedCount reports how many subtrees were reused from a previous tree
// during the last Parse call.
func (p *Parser) SplicedCount() int { return p.spliced }

// Parse runs the machine until the grammar accepts (or the input ends) and
// returns the new root. Syntax errors never fail a parse — they become
// ERROR nodes in the tree. A non-nil error means the parse table itself is
// unusable; no tree is returned and nothing leaks from the arena.
func (p *Parser) Parse() (cst.Handle, error) {
	p.stack = []entry{{state: p.table.StartState()}}
	p.pending, p.tail = nil, nil
	p.eofRecovered = false
	p.spliced = 0

	for {
		if err := p.splice(); err != nil {
			p.releaseAll()
			return cst.NilHandle, err
		}
		tok := p.lex.Next(p.topState())
		root, done, err := p.step(tok)
		if err != nil {
			p.releaseAll()
			return cst.NilHandle, err
		}
		if done {
			return root, nil
		}
	}
}

// step applies actions for tok until the machine shifts, accepts, or needs
// more input.
func (p *Parser) step(tok lexer.Token) (cst.Handle, bool, error) {
	for {
		if !tok.Valid {
			tok = p.recover(tok)
			continue
		}

		act := p.table.Action(p.topState(), tok.Symbol)
		switch act.Kind {
		case langtable.ActionShift:
			p.shift(tok, act.Next)
			return cst.NilHandle, false, nil

		case langtable.ActionReduce:
			if err := p.reduce(act.Prod); err != nil {
				return cst.NilHandle, false, err
			}

		case langtable.ActionAccept:
			return p.finish(tok), true, nil

		case langtable.ActionError:
			if tok.IsEnd(p.table) && p.eofRecovered {
				// Recovery already ran to EOF and the remaining stack still
				// cannot accept; publish what was built.
				return p.finish(tok), true, nil
			}
			tok = p.recover(tok)
		}
	}
}

func (p *Parser) topState() langtable.ParseState {
	return p.stack[len(p.stack)-1].state
}

// push adds a stack slot.
func (p *Parser) push(state langtable.ParseState, nodes []cst.Handle) {
	p.stack = append(p.stack, entry{state: state, nodes: nodes})
}

// pushConsumed adds a stack slot for freshly consumed input (a shifted
// token or a spliced subtree), prepending any nodes pending from a
// recovery. Reduce pushes never go through here: their nodes precede the
// pending error region in the source, so attaching pending content to them
// would reorder the tree.
func (p *Parser) pushConsumed(state langtable.ParseState, nodes []cst.Handle) {
	if len(p.pending) > 0 {
		nodes = append(p.pending, nodes...)
		p.pending = nil
	}
	p.push(state, nodes)
}

// shift turns tok into a leaf node (with its ubiquitous prelude as leading
// children) and pushes it under the shift's target state.
func (p *Parser) shift(tok lexer.Token, next langtable.ParseState) {
	leaf := p.arena.New(tok.Symbol, "", tok.Padding, tok.Size, p.ubiquitousLeaves(tok))
	p.pushConsumed(next, []cst.Handle{leaf})
	p.log.Debug("shift",
		logging.FieldSymbol, p.table.SymbolName(tok.Symbol),
		logging.FieldState, next,
		logging.FieldByteOffset, tok.Start.Byte)
}

// ubiquitousLeaves materializes tok's whitespace/comment prelude as leaf
// nodes, in source order. They occupy exactly the token's padding region.
func (p *Parser) ubiquitousLeaves(tok lexer.Token) []cst.Handle {
	if len(tok.Ubiquitous) == 0 {
		return nil
	}
	leaves := make([]cst.Handle, len(tok.Ubiquitous))
	for i, piece := range tok.Ubiquitous {
		leaves[i] = p.arena.NewLeaf(piece.Symbol, "", text.Zero, piece.Size)
	}
	return leaves
}

// reduce pops the production's RHS, flattens the popped nodes, and pushes
// the result under the goto state — wrapped in a new node unless the
// production is hidden.
func (p *Parser) reduce(id langtable.ProductionID) error {
	prod := p.table.Production(id)
	top := len(p.stack)
	if prod.RHSLen > top-1 {
		return fmt.Errorf("reduce %q pops %d of %d stack slots: %w", prod.Name, prod.RHSLen, top-1, ErrInvalidTable)
	}

	var nodes []cst.Handle
	for _, e := range p.stack[top-prod.RHSLen:] {
		nodes = append(nodes, e.nodes...)
	}
	p.stack = p.stack[:top-prod.RHSLen]

	next, ok := p.table.Goto(p.topState(), prod.LHS)
	if !ok {
		for _, n := range nodes {
			n.Release()
		}
		return fmt.Errorf("no goto for %q from state %d: %w", p.table.SymbolName(prod.LHS), p.topState(), ErrInvalidTable)
	}

	if prod.Hidden {
		p.push(next, nodes)
		return nil
	}

	padding, size := spanOf(nodes)
	node := p.arena.New(prod.LHS, prod.Name, padding, size, nodes)
	p.push(next, []cst.Handle{node})
	p.log.Debug("reduce",
		logging.FieldProduction, prod.Name,
		logging.FieldState, next,
		logging.FieldNode, prod.Name)
	return nil
}

// spanOf computes a wrapper node's padding and size over its children: the
// first child's padding bubbles up, everything else is content.
func spanOf(nodes []cst.Handle) (padding, size text.Extent) {
	if len(nodes) == 0 {
		return text.Zero, text.Zero
	}
	padding = nodes[0].Padding()
	for _, n := range nodes {
		size = size.Add(n.Padding()).Add(n.Size())
	}
	return padding, size.Sub(padding)
}

// splice consumes reuse candidates whose post-edit position coincides with
// the cursor: each one is pushed as a pre-parsed unit and the cursor jumps
// past it, so its bytes are never re-read.
//
// Before a candidate can be pushed, any reductions the grammar would
// perform at this point must run — exactly the reductions a normal parse
// would make with the candidate's first token as lookahead. That leading
// terminal is the genuine next input (the candidate starts at the cursor
// and its bytes are unchanged), so these reductions are the same ones a
// from-scratch parse of the edited text would perform.
func (p *Parser) splice() error {
	for len(p.reuse) > 0 {
		c := p.reuse[0]
		pos := p.lex.Position()
		if c.StartByte < pos.Byte {
			// The re-parse consumed past this candidate's start; its old
			// tokenization no longer lines up.
			p.reuse = p.reuse[1:]
			continue
		}
		if c.StartByte > pos.Byte {
			return nil
		}

		if c.Node.IsError() || p.table.IsUbiquitous(c.Node.Symbol()) {
			p.reuse = p.reuse[1:]
			return nil
		}

		look := p.leadingTerminal(c.Node)
		for {
			act := p.table.Action(p.topState(), look)
			if act.Kind != langtable.ActionReduce {
				break
			}
			if err := p.reduce(act.Prod); err != nil {
				return err
			}
		}

		sym := c.Node.Symbol()
		var next langtable.ParseState
		if act := p.table.Action(p.topState(), sym); act.Kind == langtable.ActionShift {
			next = act.Next
		} else if st, ok := p.table.Goto(p.topState(), sym); ok {
			next = st
		} else {
			p.reuse = p.reuse[1:]
			return nil
		}

		p.pushConsumed(next, []cst.Handle{c.Node.Retain()})
		end := pos.Add(c.Node.Padding()).Add(c.Node.Size())
		p.lex.Seek(end)
		p.reuse = p.reuse[1:]
		p.spliced++
		p.log.Debug("splice",
			logging.FieldSymbol, p.table.SymbolName(sym),
			logging.FieldByteOffset, pos.Byte,
			logging.FieldReused, true)
	}
	return nil
}

// leadingTerminal returns the symbol of n's first real token, descending
// past ubiquitous leaves. For a token node (whose only children are its
// ubiquitous prelude) that is the node's own symbol.
func (p *Parser) leadingTerminal(n cst.Handle) langtable.SymbolID {
	for i := 0; i < n.NumChildren(); i++ {
		c := n.Child(i)
		if c.IsError() || p.table.IsUbiquitous(c.Symbol()) {
			continue
		}
		return p.leadingTerminal(c)
	}
	return n.Symbol()
}

// finish assembles the root from whatever the stack holds. On a clean
// accept that is the single fully-reduced document slot; after an
// unrecoverable error it is the flattened remains of the stack. Trailing
// ubiquitous content (tok's padding, at EOF) attaches directly to the root.
func (p *Parser) finish(tok lexer.Token) cst.Handle {
	var children []cst.Handle
	for _, e := range p.stack[1:] {
		children = append(children, e.nodes...)
	}
	children = append(children, p.pending...)
	children = append(children, p.tail...)
	children = append(children, p.ubiquitousLeaves(tok)...)
	p.stack = p.stack[:1]
	p.pending, p.tail = nil, nil

	_, size := spanOf(children)
	if len(children) > 0 {
		size = size.Add(children[0].Padding())
	}
	return p.arena.New(p.table.StartSymbol(), RootName, text.Zero, size, children)
}

// releaseAll drops every node the parse built so far, for the fatal-error
// path: the arena must come out of a failed Parse exactly as it went in.
func (p *Parser) releaseAll() {
	for _, e := range p.stack {
		for _, n := range e.nodes {
			n.Release()
		}
	}
	for _, n := range p.pending {
		n.Release()
	}
	for _, n := range p.tail {
		n.Release()
	}
	p.stack, p.pending, p.tail = nil, nil, nil
}
