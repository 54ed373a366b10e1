package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cedartree/cedar/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 syntax errors in 2 files (12 files parsed)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.ErrorsTotal == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("No syntax errors") +
			s.Dim.Render(fmt.Sprintf(" (%d files parsed)", stats.FilesProcessed)) + "\n"
	}

	var parts []string

	errorWord := "syntax errors"
	if stats.ErrorsTotal == 1 {
		errorWord = "syntax error"
	}
	parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", stats.ErrorsTotal, errorWord)))

	fileWord := wordFiles
	if stats.FilesWithErrors == 1 {
		fileWord = wordFile
	}
	parts = append(parts, fmt.Sprintf("in %d %s", stats.FilesWithErrors, fileWord))

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}

	parts = append(parts, s.Dim.Render(fmt.Sprintf("(%d files parsed)", stats.FilesProcessed)))

	return strings.Join(parts, " ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files parsed:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesWithErrors > 0 {
		builder.WriteString("  Files with errors: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithErrors)) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files unreadable:  " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Syntax errors:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.ErrorsTotal)) + "\n")

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Parse failed for some files"))
	case stats.ErrorsTotal > 0:
		builder.WriteString(s.Warning.Render("Parse completed with syntax errors"))
	default:
		builder.WriteString(s.Success.Render("Parse clean"))
	}
	builder.WriteString("\n")

	return builder.String()
}
