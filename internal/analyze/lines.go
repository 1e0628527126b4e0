package analyze

import "strings"

// NormalizeNewlines collapses "\r\n" and bare "\r" line endings to "\n".
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// CountLines counts the newline-delimited segments of text after newline
// normalization. A trailing newline still contributes a final empty segment,
// so "a\n" counts as 2. Empty content counts as 0.
func CountLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(NormalizeNewlines(text), "\n") + 1
}
