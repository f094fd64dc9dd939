package sentiment

import (
	"regexp"
	"strings"
)

var (
	// The $-_ range covers the URL punctuation between 0x24 and 0x5F,
	// including /, =, ? and ;.
	urlPattern = regexp.MustCompile(`http[s]?://(?:[a-zA-Z0-9]|[$-_@.&+]|[!*(),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)
	// Keep word characters, whitespace and a small punctuation allow-list.
	nonTextPattern = regexp.MustCompile(`[^\w\s.,!?;:\-]`)
	spacesPattern  = regexp.MustCompile(`\s+`)
)

// Preprocess normalizes raw article text for scoring: URLs are removed,
// characters outside the allow-list are stripped and whitespace runs are
// collapsed to single spaces. The result may be empty.
func Preprocess(text string) string {
	if text == "" {
		return ""
	}
	text = urlPattern.ReplaceAllString(text, "")
	text = nonTextPattern.ReplaceAllString(text, "")
	text = spacesPattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
