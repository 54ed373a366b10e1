package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cedartree/cedar/internal/ui/pretty"
	"github.com/cedartree/cedar/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:  10,
		FilesWithErrors: 3,
		ErrorsTotal:     15,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files parsed:")
	assert.Contains(t, result, "10")
	assert.Contains(t, result, "Files with errors:")
	assert.Contains(t, result, "3")
	assert.Contains(t, result, "Syntax errors:")
	assert.Contains(t, result, "15")
	assert.Contains(t, result, "Parse completed with syntax errors")
}

func TestFormatSummary_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{FilesProcessed: 5}
	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Parse clean")
	assert.NotContains(t, result, "Files with errors:")
}

func TestFormatSummaryOneLine_NoErrors(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{FilesProcessed: 7}
	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "No syntax errors")
	assert.Contains(t, result, "(7 files parsed)")
}

func TestFormatSummaryOneLine_WithErrors(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:  4,
		FilesWithErrors: 1,
		ErrorsTotal:     1,
	}
	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "1 syntax error")
	assert.Contains(t, result, "in 1 file")
}

func TestFormatSummaryOneLine_UnreadableFiles(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed: 2,
		FilesErrored:   1,
	}
	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "1 unreadable")
}
