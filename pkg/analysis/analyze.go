// Package analysis transforms raw runner results into the pre-computed
// report views (flat, per-file, per-language) the reporters render.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/cedartree/cedar/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	langMap   map[string]*LanguageAnalysis
	langFiles map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		langMap:   make(map[string]*LanguageAnalysis),
		langFiles: make(map[string]map[string]bool),
	}
}

// getOrCreateLanguageAnalysis returns existing or creates new LanguageAnalysis.
func (ctx *analysisContext) getOrCreateLanguageAnalysis(lang string) *LanguageAnalysis {
	if _, ok := ctx.langMap[lang]; !ok {
		ctx.langMap[lang] = &LanguageAnalysis{Language: lang}
		ctx.langFiles[lang] = make(map[string]bool)
	}
	return ctx.langMap[lang]
}

// createDiagnosticEntry builds a DiagnosticEntry from a runner diagnostic.
func createDiagnosticEntry(path, language string, diag runner.Diagnostic) DiagnosticEntry {
	entry := DiagnosticEntry{
		FilePath:   path,
		Language:   language,
		Line:       diag.Line,
		Column:     diag.Column,
		ByteOffset: diag.ByteOffset,
		SizeBytes:  diag.SizeBytes,
		Message:    diag.Message,
	}
	if diag.Display != 0 {
		entry.Display = string(diag.Display)
	}
	return entry
}

// buildByLanguage constructs the ByLanguage slice from accumulated data.
func (ctx *analysisContext) buildByLanguage(opts Options) []LanguageAnalysis {
	result := make([]LanguageAnalysis, 0, len(ctx.langMap))
	for lang, la := range ctx.langMap {
		for f := range ctx.langFiles[lang] {
			la.Paths = append(la.Paths, f)
		}
		slices.Sort(la.Paths)
		la.Files = len(la.Paths)
		result = append(result, *la)
	}
	sortLanguageAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through outcomes to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()
	var byFile []FileAnalysis

	for _, file := range result.Files {
		report.Totals.Files++
		displayPath := makeRelativePath(file.Path, opts.WorkingDir)

		if file.Error != nil {
			report.Totals.FilesFailed++
			byFile = append(byFile, FileAnalysis{Path: displayPath, Language: file.Language, Failed: true})
			continue
		}

		report.Totals.BytesParsed += file.SizeBytes

		la := ctx.getOrCreateLanguageAnalysis(file.Language)
		ctx.langFiles[file.Language][displayPath] = true

		if len(file.Diagnostics) == 0 {
			continue
		}
		report.Totals.FilesWithErrors++
		report.Totals.Errors += len(file.Diagnostics)
		la.Errors += len(file.Diagnostics)

		byFile = append(byFile, FileAnalysis{
			Path:     displayPath,
			Language: file.Language,
			Errors:   len(file.Diagnostics),
		})

		if opts.IncludeDiagnostics {
			for _, diag := range file.Diagnostics {
				report.Diagnostics = append(report.Diagnostics, createDiagnosticEntry(displayPath, file.Language, diag))
			}
		}
	}

	if opts.IncludeByFile {
		sortFileAnalysis(byFile, opts.SortBy, opts.SortDesc)
		report.ByFile = byFile
	}
	if opts.IncludeByLanguage {
		report.ByLanguage = ctx.buildByLanguage(opts)
	}

	return report
}

func sortLanguageAnalysis(languages []LanguageAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(languages, func(left, right LanguageAnalysis) int {
		if sortBy == SortByAlpha {
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.Language, right.Language)
		}
		result := cmp.Compare(left.Errors, right.Errors)
		if desc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(left.Language, right.Language)
		}
		return result
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(left.Path, right.Path)
		}
		result := cmp.Compare(left.Errors, right.Errors)
		if desc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(left.Path, right.Path)
		}
		return result
	})
}
