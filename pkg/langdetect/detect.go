// Package langdetect guesses which registered language a file is written
// in, so the CLI can pick a parse table when --language is not given. It
// uses go-enry for filename- and classifier-based detection, narrowed to
// the languages this module actually ships tables for.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names as registered in pkg/langtable.
const (
	LangJSON       = "json"
	LangJavaScript = "javascript"
	LangArithmetic = "arithmetic"
)

// enryCandidates restricts the classifier to languages cedar can parse.
//
//nolint:gochecknoglobals // Read-only lookup table.
var enryCandidates = []string{"JSON", "JavaScript"}

// DetectFile returns the registered language name for a file, or "" when
// nothing matches confidently. path may be empty when only content is known.
func DetectFile(path string, content []byte) string {
	// Strategy 1: filename/extension, the cheapest and most reliable signal.
	if path != "" {
		if lang := byFilename(path); lang != "" {
			return lang
		}
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return ""
	}

	// Strategy 2: content shapes that are near-certain.
	if lang := byPattern(content); lang != "" {
		return lang
	}

	// Strategy 3: enry's classifier over the supported candidates. Only
	// trust it when it reports a safe match.
	if lang, safe := enry.GetLanguageByClassifier(content, enryCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return ""
}

// byFilename maps a file's name or extension to a registered language.
func byFilename(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LangJSON
	case ".js", ".mjs", ".cjs":
		return LangJavaScript
	case ".calc", ".expr":
		return LangArithmetic
	}

	if lang := enry.GetLanguage(filepath.Base(path), nil); lang != "" {
		return normalize(lang)
	}
	return ""
}

// byPattern checks for content shapes that identify a language outright.
func byPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)

	// A JSON document starts with a brace/bracket and quotes its keys.
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return LangJSON
	}

	s := string(trimmed)
	if strings.Contains(s, "=>") ||
		strings.Contains(s, "const ") ||
		strings.Contains(s, "function ") ||
		strings.Contains(s, "console.log") {
		return LangJavaScript
	}

	if isArithmetic(trimmed) {
		return LangArithmetic
	}

	return ""
}

// isArithmetic reports whether content consists solely of the arithmetic
// grammar's alphabet: identifiers, numbers, operators, parens, comments.
func isArithmetic(content []byte) bool {
	sawOperator := false
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		for _, b := range line {
			if b == '#' {
				break // rest of line is comment
			}
			switch {
			case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
			case b == '_' || b == ' ' || b == '\t' || b == '(' || b == ')':
			case b == '+' || b == '*' || b == '^':
				sawOperator = true
			default:
				return false
			}
		}
	}
	return sawOperator
}

// normalize converts go-enry language names to registered table names.
func normalize(lang string) string {
	switch lang {
	case "JSON":
		return LangJSON
	case "JavaScript", "TypeScript":
		return LangJavaScript
	default:
		return ""
	}
}
