package model

import "encoding/json"

// RootName is the display name of the synthetic root directory. The root is
// never listed by an archive; it exists so that every other node has a parent.
const RootName = "root"

// Node is one entry in the reconstructed archive tree: either a *Dir or a
// *File. The two cases carry different attribute sets and are dispatched by
// type switch.
type Node interface {
	node()
}

// Dir is a directory node. The root Dir has an empty Path; every other node's
// Path is its parent's Path + "/" + its Name.
type Dir struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Children []Node `json:"children"`
}

// File is a leaf node. LineCount is only meaningful when Analyzable is true;
// opaque files are never decoded.
type File struct {
	Name       string
	Path       string
	Ext        string // lowercase, "" when the name has no extension
	Analyzable bool
	LineCount  int
	Size       int64 // uncompressed size in bytes

	// Preview holds the first few decoded lines of an analyzable file for
	// display purposes. Always nil for opaque files.
	Preview []string
}

func (d *Dir) node()  {}
func (f *File) node() {}

// MarshalJSON tags the node with its variant and guarantees a non-null
// children array for empty directories.
func (d *Dir) MarshalJSON() ([]byte, error) {
	children := d.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(struct {
		Type     string `json:"type"`
		Name     string `json:"name"`
		Path     string `json:"path"`
		Children []Node `json:"children"`
	}{"directory", d.Name, d.Path, children})
}

// MarshalJSON emits lineCount as null for opaque files, matching the
// "non-null iff analyzable" shape consumers rely on.
func (f *File) MarshalJSON() ([]byte, error) {
	var lines *int
	if f.Analyzable {
		lines = &f.LineCount
	}
	return json.Marshal(struct {
		Type       string   `json:"type"`
		Name       string   `json:"name"`
		Path       string   `json:"path"`
		Extension  string   `json:"extension"`
		Analyzable bool     `json:"analyzable"`
		LineCount  *int     `json:"lineCount"`
		Size       int64    `json:"sizeBytes"`
		Preview    []string `json:"preview,omitempty"`
	}{"file", f.Name, f.Path, f.Ext, f.Analyzable, lines, f.Size, f.Preview})
}

// Summary aggregates the file statistics of one analysis run.
// TotalFiles is always AnalyzableFiles + OpaqueFiles, and TotalLines is the
// sum of LineCount over analyzable files.
type Summary struct {
	TotalFiles      int   `json:"totalFiles"`
	AnalyzableFiles int   `json:"analyzableFileCount"`
	OpaqueFiles     int   `json:"opaqueFileCount"`
	TotalLines      int   `json:"totalLineCount"`
	TotalSize       int64 `json:"totalSizeBytes"`
}

// Result is the complete outcome of analyzing one archive: the root of the
// content tree plus the aggregate statistics. Results fully replace each
// other between runs; nothing is cached across analyses.
type Result struct {
	ArchiveName string  `json:"archiveName"`
	Tree        *Dir    `json:"tree"`
	Summary     Summary `json:"summary"`
}

// Empty reports whether the analyzed archive contained no entries at all.
// This is the degenerate success case ("no files found"), distinct from a
// failure to read the archive.
func (r Result) Empty() bool {
	return r.Tree == nil || len(r.Tree.Children) == 0
}
