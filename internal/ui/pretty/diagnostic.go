package pretty

import (
	"fmt"
	"strings"

	"github.com/cedartree/cedar/pkg/analysis"
)

// FormatDiagnostic formats a single syntax-error entry for terminal output.
func (s *Styles) FormatDiagnostic(diag *analysis.DiagnosticEntry, showContext bool, sourceLine string) string {
	var builder strings.Builder

	// Location: path:line:col
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.Line,
		diag.Column,
	)

	// Main line: location  error  message  (language)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Error.Render("error"),
		s.Message.Render(diag.Message),
		s.Language.Render("("+diag.Language+")"),
	))

	// Source context
	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Column))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with diagnostic output
	const indent = "        "

	// Source line
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	// Caret marker
	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, errorCount int) string {
	header := s.FilePath.Render(path)
	if errorCount > 0 {
		word := "errors"
		if errorCount == 1 {
			word = "error"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", errorCount, word))
	}
	return header
}
