package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedartree/cedar/pkg/runner"
)

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:      "/work/bad.json",
				Language:  "json",
				SizeBytes: 24,
				Diagnostics: []runner.Diagnostic{
					{FilePath: "/work/bad.json", Line: 1, Column: 9, ByteOffset: 8, SizeBytes: 9, Display: 'a', Message: "unparseable region of 9 bytes"},
					{FilePath: "/work/bad.json", Line: 2, Column: 3, ByteOffset: 30, SizeBytes: 0, Display: ',', Message: `unexpected ','`},
				},
			},
			{
				Path:      "/work/ok.json",
				Language:  "json",
				SizeBytes: 10,
			},
			{
				Path:      "/work/app.js",
				Language:  "javascript",
				SizeBytes: 18,
				Diagnostics: []runner.Diagnostic{
					{FilePath: "/work/app.js", Line: 1, Column: 1, Message: "unexpected '/'"},
				},
			},
			{
				Path:  "/work/unreadable.json",
				Error: errors.New("permission denied"),
			},
		},
	}
}

func TestAnalyze_EmptyResult(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{},
	}

	report := Analyze(result, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, 0, report.Totals.Errors)
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByLanguage)
	assert.True(t, report.Totals.Clean())
}

func TestAnalyze_NilResult(t *testing.T) {
	t.Parallel()

	report := Analyze(nil, DefaultOptions())
	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)
}

func TestAnalyze_CountsTotals(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	assert.Equal(t, 4, report.Totals.Files)
	assert.Equal(t, 2, report.Totals.FilesWithErrors)
	assert.Equal(t, 1, report.Totals.FilesFailed)
	assert.Equal(t, 3, report.Totals.Errors)
	assert.Equal(t, 52, report.Totals.BytesParsed)
	assert.True(t, report.Totals.HasErrors())
	assert.False(t, report.Totals.Clean())
}

func TestAnalyze_RelativizesPaths(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/work"
	report := Analyze(sampleResult(), opts)

	require.NotEmpty(t, report.Diagnostics)
	assert.Equal(t, "bad.json", report.Diagnostics[0].FilePath)
}

func TestAnalyze_ByLanguage(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.SortBy = SortByAlpha
	report := Analyze(sampleResult(), opts)

	require.Len(t, report.ByLanguage, 2)
	assert.Equal(t, "javascript", report.ByLanguage[0].Language)
	assert.Equal(t, 1, report.ByLanguage[0].Errors)
	assert.Equal(t, "json", report.ByLanguage[1].Language)
	assert.Equal(t, 2, report.ByLanguage[1].Files)
	assert.Equal(t, 2, report.ByLanguage[1].Errors)
}

func TestAnalyze_ByFileSortedByCount(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	require.NotEmpty(t, report.ByFile)
	// Descending error count puts bad.json first.
	assert.Equal(t, "/work/bad.json", report.ByFile[0].Path)
	assert.Equal(t, 2, report.ByFile[0].Errors)
}

func TestAnalyze_DiagnosticEntryFields(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	require.NotEmpty(t, report.Diagnostics)
	first := report.Diagnostics[0]
	assert.Equal(t, "json", first.Language)
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, 9, first.Column)
	assert.Equal(t, 8, first.ByteOffset)
	assert.Equal(t, 9, first.SizeBytes)
	assert.Equal(t, "a", first.Display)
}

func TestAnalyze_ExcludesViewsWhenDisabled(t *testing.T) {
	t.Parallel()

	opts := Options{SortBy: SortByCount}
	report := Analyze(sampleResult(), opts)

	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByLanguage)
	assert.Equal(t, 3, report.Totals.Errors)
}
