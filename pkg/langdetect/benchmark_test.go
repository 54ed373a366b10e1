package langdetect

import (
	"testing"
)

func BenchmarkDetectJSON(b *testing.B) {
	content := []byte(`{"users": [{"id": 1, "name": "ada"}, {"id": 2, "name": "grace"}]}`)
	b.ResetTimer()
	for range b.N {
		DetectFile("", content)
	}
}

func BenchmarkDetectJavaScript(b *testing.B) {
	content := []byte(`const greet = (name) => console.log("hello " + name);`)
	b.ResetTimer()
	for range b.N {
		DetectFile("", content)
	}
}

func BenchmarkDetectByExtension(b *testing.B) {
	content := []byte(`{"key": true}`)
	b.ResetTimer()
	for range b.N {
		DetectFile("data.json", content)
	}
}
