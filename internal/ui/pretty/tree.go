package pretty

import "strings"

// ColorizeSExpr highlights a stringified parse tree: node names in the tree
// style, ERROR nodes in the error style, quoted display chars as literals.
// The input format is the stable S-expression shape produced by the tree
// stringifier, e.g. "(DOCUMENT (array (number) (ERROR 'a')))".
func (s *Styles) ColorizeSExpr(expr string) string {
	var builder strings.Builder
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == '(' || c == ')':
			builder.WriteString(s.Dim.Render(string(c)))
			i++
		case c == '\'':
			// quoted display char, e.g. 'a' (possibly escaped)
			end := strings.IndexByte(expr[i+1:], '\'')
			if end < 0 {
				builder.WriteByte(c)
				i++
				continue
			}
			literal := expr[i : i+end+2]
			builder.WriteString(s.TreeLiteral.Render(literal))
			i += end + 2
		case c == ' ':
			builder.WriteByte(c)
			i++
		default:
			end := strings.IndexAny(expr[i:], " ()")
			if end < 0 {
				end = len(expr) - i
			}
			name := expr[i : i+end]
			if name == "ERROR" {
				builder.WriteString(s.TreeError.Render(name))
			} else {
				builder.WriteString(s.TreeNode.Render(name))
			}
			i += end
		}
	}
	return builder.String()
}
