package analyze

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"lszip/internal/archive"
	"lszip/internal/model"
)

// DecodeError reports that an analyzable entry's contents could not be
// decoded. It aborts the whole run: a tree missing one file's lines would
// still present its totals as if they were complete.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf(`decode entry "%s" error: %v`, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// previewLines is how many leading lines of an analyzable file are retained
// for display in the details panes.
const previewLines = 8

type builder struct {
	root    *model.Dir
	dirs    map[string]*model.Dir
	summary model.Summary
}

// Build consumes the full set of archive entries and produces the sorted
// content tree plus its summary. Entries may arrive in any order: they are
// processed in ascending raw-path order, missing ancestor directories are
// synthesized on demand, and the final sibling order comes from SortTree
// alone. An error decoding any analyzable entry, or context cancellation,
// abandons the run with no partial result.
func Build(ctx context.Context, entries []archive.Entry) (*model.Dir, model.Summary, error) {
	root := &model.Dir{Name: model.RootName, Path: ""}
	b := &builder{
		root: root,
		dirs: map[string]*model.Dir{"": root},
	}

	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b archive.Entry) int { return strings.Compare(a.Name(), b.Name()) })

	for _, e := range sorted {
		if err := ctx.Err(); err != nil {
			return nil, model.Summary{}, err
		}
		if err := b.add(e); err != nil {
			return nil, model.Summary{}, err
		}
	}

	SortTree(b.root)
	return b.root, b.summary, nil
}

// ensureDir returns the directory node for the given normalized path,
// materializing it and any missing ancestors first. Repeated calls for the
// same path always return the same node, so a directory reachable both
// explicitly and as an implied ancestor exists exactly once. Recursion depth
// is bounded by the path's segment count.
func (b *builder) ensureDir(path string) *model.Dir {
	if d, ok := b.dirs[path]; ok {
		return d
	}

	parentPath, name := "", path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		parentPath, name = path[:i], path[i+1:]
	}

	parent := b.ensureDir(parentPath)
	d := &model.Dir{Name: name, Path: path}
	parent.Children = append(parent.Children, d)
	b.dirs[path] = d
	return d
}

func (b *builder) add(e archive.Entry) error {
	segments := SplitPath(e.Name())
	if len(segments) == 0 {
		// an entry naming the root itself; nothing to attach.
		return nil
	}

	path := strings.Join(segments, "/")
	if e.IsDir() {
		b.ensureDir(path)
		return nil
	}

	parent := b.ensureDir(strings.Join(segments[:len(segments)-1], "/"))
	name := segments[len(segments)-1]
	ext, analyzable := Classify(name)

	f := &model.File{
		Name:       name,
		Path:       path,
		Ext:        ext,
		Analyzable: analyzable,
		Size:       e.Size(),
	}
	if analyzable {
		text, err := decodeText(e)
		if err != nil {
			return &DecodeError{Path: path, Err: err}
		}
		f.LineCount = CountLines(text)
		f.Preview = previewOf(text)
	}
	parent.Children = append(parent.Children, f)

	b.summary.TotalFiles++
	if analyzable {
		b.summary.AnalyzableFiles++
		b.summary.TotalLines += f.LineCount
	} else {
		b.summary.OpaqueFiles++
	}
	b.summary.TotalSize += e.Size()
	return nil
}

func decodeText(e archive.Entry) (string, error) {
	rc, err := e.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func previewOf(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(NormalizeNewlines(text), "\n")
	if len(lines) > previewLines {
		lines = lines[:previewLines]
	}
	return lines
}
