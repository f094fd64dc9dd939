package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes URLs",
			input:    "Read more at https://example.com/article-42 today",
			expected: "Read more at today",
		},
		{
			name:     "removes URLs with paths and query strings",
			input:    "Source: http://news.example.com/esg/report?id=42&ref=home for details",
			expected: "Source: for details",
		},
		{
			name:     "strips special characters",
			input:    "Profit up 20% — shares rally #winning",
			expected: "Profit up 20 shares rally winning",
		},
		{
			name:     "keeps allowed punctuation",
			input:    "Strong results, analysts say: buy! Really? Yes; indeed.",
			expected: "Strong results, analysts say: buy! Really? Yes; indeed.",
		},
		{
			name:     "collapses whitespace",
			input:    "too   many\t\tspaces\n\nhere",
			expected: "too many spaces here",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "  padded text  ",
			expected: "padded text",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "URL-only input collapses to empty",
			input:    "https://example.com",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Preprocess(tt.input))
		})
	}
}
