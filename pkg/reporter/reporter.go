// Package reporter formats parse results for terminals and machine
// consumers. Every format is a Renderer over a pre-computed
// analysis.Report; the Reporter interface bridges raw runner results to a
// renderer.
package reporter

import (
	"context"
	"fmt"

	"github.com/cedartree/cedar/pkg/analysis"
	"github.com/cedartree/cedar/pkg/runner"
)

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes parse results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of syntax errors reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Errors, nil
}

// newRendererFacade creates a facade wrapping a Renderer.
func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	return &reporterFacade{
		renderer: renderer,
		analysisOpts: analysis.Options{
			IncludeDiagnostics: true,
			IncludeByFile:      true,
			IncludeByLanguage:  true,
			SortBy:             analysis.SortByCount,
			SortDesc:           true,
			WorkingDir:         opts.WorkingDir,
		},
	}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	// Default writer to stdout if not specified
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	var renderer Renderer
	switch format {
	case FormatJSON:
		renderer = NewJSONRenderer(opts)
	case FormatSARIF:
		renderer = NewSARIFRenderer(opts)
	case FormatTable:
		renderer = NewTableRenderer(opts)
	case FormatSummary:
		renderer = NewSummaryRenderer(opts)
	case FormatText:
		renderer = NewTextRenderer(opts)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return newRendererFacade(renderer, opts), nil
}
