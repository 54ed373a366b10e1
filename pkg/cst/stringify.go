package cst

import (
	"fmt"
	"strings"

	"github.com/cedartree/cedar/pkg/langtable"
)

// Stringify renders root as an S-expression the way spec tooling expects to
// see trees: anonymous terminals (table.IsAnonymous) and ubiquitous leaves
// (table.IsUbiquitous) are omitted entirely, a leaf shows only its
// parenthesized name (e.g. "(number)"), an internal node wraps its visible
// children (e.g. "(sum (number) (number))"), and an ERROR node shows the
// quoted character at which recovery began, e.g. "(ERROR 'a')".
func Stringify(table langtable.Table, root Handle) string {
	var sb strings.Builder
	writeNode(&sb, table, root)
	return sb.String()
}

func writeNode(sb *strings.Builder, table langtable.Table, n Handle) {
	if n.IsError() {
		fmt.Fprintf(sb, "(ERROR %q", n.ErrorChar())
		writeVisibleChildren(sb, table, n)
		sb.WriteByte(')')
		return
	}

	sb.WriteByte('(')
	sb.WriteString(displayName(table, n))
	writeVisibleChildren(sb, table, n)
	sb.WriteByte(')')
}

func writeVisibleChildren(sb *strings.Builder, table langtable.Table, n Handle) {
	for i := 0; i < n.NumChildren(); i++ {
		c := n.Child(i)
		if !c.IsError() && (table.IsAnonymous(c.Symbol()) || table.IsUbiquitous(c.Symbol())) {
			continue
		}
		sb.WriteByte(' ')
		writeNode(sb, table, c)
	}
}

func displayName(table langtable.Table, n Handle) string {
	if n.Name() != "" {
		return n.Name()
	}
	return table.SymbolName(n.Symbol())
}
