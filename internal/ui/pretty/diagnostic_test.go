package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cedartree/cedar/internal/ui/pretty"
	"github.com/cedartree/cedar/pkg/analysis"
)

func TestFormatDiagnostic_Basic(t *testing.T) {
	styles := pretty.NewStyles(false) // No colors for easier testing

	diag := &analysis.DiagnosticEntry{
		FilePath:   "bad.json",
		Language:   "json",
		Line:       1,
		Column:     9,
		ByteOffset: 8,
		SizeBytes:  9,
		Display:    "a",
		Message:    "unparseable region of 9 bytes",
	}

	result := styles.FormatDiagnostic(diag, false, "")

	assert.Contains(t, result, "bad.json:1:9")
	assert.Contains(t, result, "error")
	assert.Contains(t, result, "unparseable region of 9 bytes")
	assert.Contains(t, result, "(json)")
}

func TestFormatDiagnostic_WithContext(t *testing.T) {
	styles := pretty.NewStyles(false)

	diag := &analysis.DiagnosticEntry{
		FilePath: "bad.json",
		Language: "json",
		Line:     1,
		Column:   9,
		Message:  "unparseable region of 9 bytes",
	}

	result := styles.FormatDiagnostic(diag, true, "  [123, faaaaalse, true]")

	assert.Contains(t, result, "  [123, faaaaalse, true]")
	// Caret under column 9.
	lines := strings.Split(result, "\n")
	var caretLine string
	for _, line := range lines {
		if strings.Contains(line, "^") {
			caretLine = line
		}
	}
	assert.NotEmpty(t, caretLine)
	assert.Equal(t, "^", strings.TrimSpace(caretLine))
}

func TestFormatSourceContext_NoCaretForZeroColumn(t *testing.T) {
	styles := pretty.NewStyles(false)
	result := styles.FormatSourceContext("line content", 0)
	assert.Contains(t, result, "line content")
	assert.NotContains(t, result, "^")
}

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "clean.json", styles.FormatFileHeader("clean.json", 0))
	assert.Equal(t, "bad.json (2 errors)", styles.FormatFileHeader("bad.json", 2))
	assert.Equal(t, "bad.json (1 error)", styles.FormatFileHeader("bad.json", 1))
}
