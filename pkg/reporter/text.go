package reporter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cedartree/cedar/internal/ui/pretty"
	"github.com/cedartree/cedar/pkg/analysis"
	"github.com/cedartree/cedar/pkg/runner"
)

// TextRenderer formats reports as styled terminal output, grouped by file.
type TextRenderer struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer

	// lineCache memoizes file contents for source-context lines.
	lineCache map[string][][]byte
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextRenderer{
		opts:      opts,
		styles:    pretty.NewStyles(colorEnabled),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
		lineCache: make(map[string][][]byte),
	}
}

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report == nil || report.Totals.Files == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to parse."))
		}
		return nil
	}

	// Failed files first, so they are never buried under diagnostics.
	for _, file := range report.ByFile {
		if file.Failed {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render("could not be parsed"),
			)
		}
	}

	currentFile := ""
	for i := range report.Diagnostics {
		diag := &report.Diagnostics[i]
		if diag.FilePath != currentFile {
			if currentFile != "" {
				fmt.Fprintln(r.bw)
			}
			currentFile = diag.FilePath
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(diag.FilePath, countForFile(report, diag.FilePath)))
		}

		var sourceLine string
		if r.opts.ShowContext {
			sourceLine = r.sourceLine(diag.FilePath, diag.Line)
		}
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(diag, r.opts.ShowContext, sourceLine))
	}
	if currentFile != "" {
		fmt.Fprintln(r.bw)
	}

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

func countForFile(report *analysis.Report, path string) int {
	for _, f := range report.ByFile {
		if f.Path == path {
			return f.Errors
		}
	}
	return 0
}

// sourceLine returns the given 1-based line of a file, reading and caching
// the file on first use. Returns "" when the file cannot be read (paths in
// the report may be relative to WorkingDir).
func (r *TextRenderer) sourceLine(path string, line int) string {
	lines, ok := r.lineCache[path]
	if !ok {
		full := path
		if r.opts.WorkingDir != "" && !filepath.IsAbs(path) {
			full = filepath.Join(r.opts.WorkingDir, path)
		}
		content, err := os.ReadFile(full)
		if err != nil {
			r.lineCache[path] = nil
			return ""
		}
		lines = bytes.Split(content, []byte{'\n'})
		r.lineCache[path] = lines
	}
	if line < 1 || line > len(lines) {
		return ""
	}
	return string(lines[line-1])
}
