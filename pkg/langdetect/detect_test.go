package langdetect_test

import (
	"testing"

	"github.com/cedartree/cedar/pkg/langdetect"
)

func TestDetectFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected string
	}{
		{
			name:     "json extension",
			path:     "data.json",
			expected: "json",
		},
		{
			name:     "javascript extension",
			path:     "app.js",
			expected: "javascript",
		},
		{
			name:     "mjs extension",
			path:     "mod.mjs",
			expected: "javascript",
		},
		{
			name:     "calc extension",
			path:     "formula.calc",
			expected: "arithmetic",
		},
		{
			name:     "json content",
			content:  `{"key": [1, 2, 3]}`,
			expected: "json",
		},
		{
			name:     "json array content",
			content:  `["a", "b"]`,
			expected: "json",
		},
		{
			name:     "javascript content",
			content:  "const x = () => console.log(x);",
			expected: "javascript",
		},
		{
			name:     "arithmetic content",
			content:  "x ^ (100 + abc) # power\n",
			expected: "arithmetic",
		},
		{
			name:     "empty content unknown",
			content:  "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := langdetect.DetectFile(tt.path, []byte(tt.content))
			if got != tt.expected {
				t.Errorf("DetectFile(%q, %q) = %q, want %q", tt.path, tt.content, got, tt.expected)
			}
		})
	}
}
