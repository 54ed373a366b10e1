package pretty

import (
	"fmt"
	"strings"

	"github.com/cedartree/cedar/pkg/analysis"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFileWidth     = 20
	minLocWidth      = 8
	minMessageWidth  = 30
	minLangWidth     = 8
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow represents a single row in the diagnostics table.
type TableRow struct {
	File     string
	Location string
	Message  string
	Language string
}

type columnWidths struct {
	file    int
	loc     int
	message int
	lang    int
}

// TableFormatter formats syntax errors as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatTable formats a report's diagnostics as a styled table, grouped by
// file with light separators between groups.
func (t *TableFormatter) FormatTable(report *analysis.Report) string {
	if report == nil || len(report.Diagnostics) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(report.Diagnostics))
	for _, diag := range report.Diagnostics {
		rows = append(rows, TableRow{
			File:     diag.FilePath,
			Location: fmt.Sprintf("%d:%d", diag.Line, diag.Column),
			Message:  diag.Message,
			Language: diag.Language,
		})
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	prevFile := ""
	for i, row := range rows {
		if i > 0 && row.File != prevFile {
			builder.WriteString(t.formatSeparator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		prevFile = row.File
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	return builder.String()
}

// calculateColumnWidths sizes columns to content, then shrinks only the
// message column (never below minMessageWidth) to fit the terminal width.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:    minFileWidth,
		loc:     minLocWidth,
		message: minMessageWidth,
		lang:    minLangWidth,
	}

	for _, row := range rows {
		if len(row.File) > widths.file {
			widths.file = len(row.File)
		}
		if len(row.Location) > widths.loc {
			widths.loc = len(row.Location)
		}
		if len(row.Message) > widths.message {
			widths.message = len(row.Message)
		}
		if len(row.Language) > widths.lang {
			widths.lang = len(row.Language)
		}
	}

	total := widths.file + widths.loc + widths.message + widths.lang + 3*tablePadding
	if total > t.termWidth {
		excess := total - t.termWidth
		widths.message -= excess
		if widths.message < minMessageWidth {
			widths.message = minMessageWidth
		}
	}

	return widths
}

func (t *TableFormatter) formatHeader(w columnWidths) string {
	pad := strings.Repeat(" ", tablePadding)
	return t.styles.TableHeader.Render(padRight("FILE", w.file)) + pad +
		t.styles.TableHeader.Render(padRight("LOC", w.loc)) + pad +
		t.styles.TableHeader.Render(padRight("MESSAGE", w.message)) + pad +
		t.styles.TableHeader.Render(padRight("LANG", w.lang))
}

func (t *TableFormatter) formatSeparator(w columnWidths, sep string) string {
	total := w.file + w.loc + w.message + w.lang + 3*tablePadding
	return t.styles.TableSeparator.Render(strings.Repeat(sep, total))
}

func (t *TableFormatter) formatRow(row TableRow, w columnWidths) string {
	pad := strings.Repeat(" ", tablePadding)

	message := row.Message
	if len(message) > w.message {
		message = message[:w.message-1] + "…"
	}

	return t.styles.TableErrorRow.Render(padRight(truncateLeft(row.File, w.file), w.file)) + pad +
		padRight(row.Location, w.loc) + pad +
		padRight(message, w.message) + pad +
		t.styles.Dim.Render(padRight(row.Language, w.lang))
}

// truncateLeft keeps the tail of a path that exceeds width.
func truncateLeft(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return "…" + s[len(s)-(width-1):]
}

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
