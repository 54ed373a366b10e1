package parser

import (
	"github.com/cedartree/cedar/internal/logging"
	"github.com/cedartree/cedar/pkg/cst"
	"github.com/cedartree/cedar/pkg/langtable"
	"github.com/cedartree/cedar/pkg/lexer"
	"github.com/cedartree/cedar/pkg/text"
)

// recover handles a token the current state has no action for — either a
// lexically invalid span or a valid token in the wrong place. It skips
// tokens until one of them has a non-error action in some state on the
// stack, pops down to that state, and records everything skipped as an
// ERROR node. The popped-but-valid nodes and the ERROR ride in p.pending
// until the next shift re-attaches them, which keeps every skipped byte in
// exactly one leaf. If the input ends first, the ERROR extends to EOF and is
// held in p.tail for the root.
//
// The returned token is the one to resume parsing with; at EOF it is the
// end marker with its trailing padding stripped (those bytes now belong to
// the ERROR).
func (p *Parser) recover(tok lexer.Token) lexer.Token {
	display := tok.Display
	errStart := tok.Start
	errEnd := tok.Start
	errPadding := tok.Padding
	errUbiq := p.ubiquitousLeaves(tok)

	// The offending token's padding now belongs to the ERROR region; make
	// sure a zero-length recovery doesn't attach it a second time.
	cur := tok
	cur.Ubiquitous, cur.Padding, cur.PaddingStart = nil, text.Zero, cur.Start

	for {
		if cur.Valid && cur.IsEnd(p.table) {
			errEnd = cur.Start
			errNode := p.arena.NewError(display, errPadding, text.Between(errStart, errEnd), errUbiq)
			p.tail = append(p.tail, errNode)
			p.eofRecovered = true
			p.log.Debug("error recovery reached end of input",
				logging.FieldByteOffset, errStart.Byte,
				logging.FieldSkipped, errEnd.Byte-errStart.Byte)
			return cur
		}

		if cur.Valid {
			if idx, ok := p.findRecoveryState(cur.Symbol); ok {
				var popped []cst.Handle
				for _, e := range p.stack[idx+1:] {
					popped = append(popped, e.nodes...)
				}
				p.stack = p.stack[:idx+1]

				errNode := p.arena.NewError(display, errPadding, text.Between(errStart, errEnd), errUbiq)
				p.pending = append(popped, errNode)
				p.log.Debug("error recovery resynchronized",
					logging.FieldByteOffset, errStart.Byte,
					logging.FieldSkipped, errEnd.Byte-errStart.Byte,
					logging.FieldSymbol, p.table.SymbolName(cur.Symbol),
					logging.FieldState, p.topState())
				return cur
			}
		}

		// Swallow cur (content and any padding before it) into the error.
		errEnd = cur.End()
		cur = p.lex.Next(p.topState())
	}
}

// findRecoveryState returns the index of the topmost stack slot whose state
// has a non-error action for sym. The bottom slot is the pre-input
// sentinel: recovering there would mean pretending the document started
// over, so it is never a candidate and exhausting the stack sends the
// ERROR to EOF instead.
func (p *Parser) findRecoveryState(sym langtable.SymbolID) (int, bool) {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.table.Action(p.stack[i].state, sym).Kind != langtable.ActionError {
			return i, true
		}
	}
	return 0, false
}
