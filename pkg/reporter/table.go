package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/cedartree/cedar/internal/ui/pretty"
	"github.com/cedartree/cedar/pkg/analysis"
	"github.com/cedartree/cedar/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableRenderer formats reports as a styled table with color-coded rows.
type TableRenderer struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableRenderer creates a new table renderer.
func NewTableRenderer(opts Options) *TableRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	termWidth := getTerminalWidth(opts.Writer)

	return &TableRenderer{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, termWidth),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Render implements Renderer.
func (r *TableRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	table := r.formatter.FormatTable(report)
	if table == "" {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No syntax errors"))
		}
		return nil
	}

	fmt.Fprint(r.bw, table)

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(runner.Stats{
			FilesProcessed:  report.Totals.Files - report.Totals.FilesFailed,
			FilesWithErrors: report.Totals.FilesWithErrors,
			FilesErrored:    report.Totals.FilesFailed,
			ErrorsTotal:     report.Totals.Errors,
		}))
	}

	return nil
}

// getTerminalWidth returns the width of the terminal behind w, or the
// default for non-terminal writers.
func getTerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}
