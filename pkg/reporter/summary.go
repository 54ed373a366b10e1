package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cedartree/cedar/internal/ui/pretty"
	"github.com/cedartree/cedar/pkg/analysis"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90 // Width of table separators (same for both tables).
	langColWidth      = 30 // Width of the language column.
	fileColWidth      = 60 // Width of the file path column (wider for relative paths).
	numColWidth       = 7  // Width of numeric columns.
	maxFilePathLength = 58 // Maximum characters for file path before truncation.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Clean() {
		fmt.Fprintln(r.out, r.styles.Success.Render("No syntax errors found"))
		return nil
	}

	r.renderLanguageTable(report.ByLanguage)
	fmt.Fprintln(r.out)
	r.renderFileTable(report.ByFile)

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) renderLanguageTable(languages []analysis.LanguageAnalysis) {
	if len(languages) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Languages Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("Language", langColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, lang := range languages {
		paddedName := padRight(lang.Language, langColWidth)
		styledName := paddedName
		if lang.Errors > 0 {
			styledName = r.styles.TableErrorRow.Render(paddedName)
		}

		fmt.Fprintf(r.out, "%s %s %s\n",
			styledName,
			padLeft(strconv.Itoa(lang.Files), numColWidth),
			padLeft(strconv.Itoa(lang.Errors), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		paddedPath := padRight(path, fileColWidth)
		styledPath := paddedPath
		if file.Failed || file.Errors > 0 {
			styledPath = r.styles.TableErrorRow.Render(paddedPath)
		}

		count := strconv.Itoa(file.Errors)
		if file.Failed {
			count = "—"
		}

		fmt.Fprintf(r.out, "%s %s\n",
			styledPath,
			padLeft(count, numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	errorWord := "syntax errors"
	if totals.Errors == 1 {
		errorWord = "syntax error"
	}
	fileWord := "files"
	if totals.FilesWithErrors == 1 {
		fileWord = "file"
	}

	line := fmt.Sprintf("%s in %d %s",
		r.styles.Error.Render(fmt.Sprintf("%d %s", totals.Errors, errorWord)),
		totals.FilesWithErrors, fileWord)
	if totals.FilesFailed > 0 {
		line += r.styles.Failure.Render(fmt.Sprintf(", %d unreadable", totals.FilesFailed))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}
