package analyze

import "strings"

// analyzableExts is the fixed set of extensions whose files are decoded as
// text and line-counted. Everything else is opaque.
var analyzableExts = map[string]struct{}{
	"java": {},
	"txt":  {},
	"md":   {},
	"html": {},
	"css":  {},
	"js":   {},
}

// Classify derives the lowercase extension of a filename (the substring
// after the last dot; empty when there is no dot or nothing follows it) and
// reports whether files with that extension are analyzable.
func Classify(name string) (ext string, analyzable bool) {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		ext = strings.ToLower(name[i+1:])
	}
	_, analyzable = analyzableExts[ext]
	return ext, analyzable
}
