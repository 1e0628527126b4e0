package analyze

import "strings"

// SplitPath splits a raw archive entry path into its non-empty segments.
// Backslashes are treated as forward slashes so that windows-style and
// mixed-delimiter entries normalize to the same segments, and empty segments
// from leading, trailing, or doubled delimiters are dropped. "." and ".."
// are kept as literal names; archives are trusted not to carry traversal
// segments.
func SplitPath(raw string) []string {
	raw = strings.ReplaceAll(raw, `\`, "/")

	segments := make([]string, 0, strings.Count(raw, "/")+1)
	for _, s := range strings.Split(raw, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
