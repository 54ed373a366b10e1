package runner

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/cedartree/cedar/pkg/document"
)

// collectDiagnostics walks the tree under root and returns a Diagnostic for
// every ERROR region, in source order.
func collectDiagnostics(path string, content []byte, root *document.Node) []Diagnostic {
	var diags []Diagnostic
	walkErrors(root, func(n *document.Node) {
		pos := n.Pos()
		line, col := lineColumn(content, pos.Byte)
		d := Diagnostic{
			FilePath:   path,
			Line:       line,
			Column:     col,
			ByteOffset: pos.Byte,
			CharOffset: pos.Char,
			SizeBytes:  n.Size().Bytes,
			Message:    "syntax error",
		}
		if pos.Byte < len(content) {
			d.Display, _ = utf8.DecodeRune(content[pos.Byte:])
		}
		if n.Size().Bytes > 0 {
			d.Message = fmt.Sprintf("unparseable region of %d bytes", n.Size().Bytes)
		} else {
			d.Message = fmt.Sprintf("unexpected %q", d.Display)
		}
		diags = append(diags, d)
	})
	return diags
}

// walkErrors visits every ERROR node under n in depth-first source order.
func walkErrors(n *document.Node, visit func(*document.Node)) {
	if n.IsError() {
		visit(n)
	}
	for i := 0; i < n.ChildCount(); i++ {
		walkErrors(n.Child(i), visit)
	}
}

// lineColumn converts a byte offset into 1-based line and byte-column.
func lineColumn(content []byte, offset int) (line, col int) {
	if offset > len(content) {
		offset = len(content)
	}
	prefix := content[:offset]
	line = bytes.Count(prefix, []byte{'\n'}) + 1
	lastNL := bytes.LastIndexByte(prefix, '\n')
	col = offset - lastNL // lastNL is -1 on the first line, giving offset+1
	return line, col
}
