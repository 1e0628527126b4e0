package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lszip/internal/archive"
	"lszip/internal/model"
)

// fakeEntry implements archive.Entry for builder tests.
type fakeEntry struct {
	name string
	dir  bool
	text string
	err  error
}

func (e fakeEntry) Name() string { return e.name }
func (e fakeEntry) IsDir() bool  { return e.dir }
func (e fakeEntry) Size() int64  { return int64(len(e.text)) }

func (e fakeEntry) Open() (io.ReadCloser, error) {
	if e.err != nil {
		return nil, e.err
	}
	return io.NopCloser(strings.NewReader(e.text)), nil
}

func file(name, text string) fakeEntry { return fakeEntry{name: name, text: text} }
func dir(name string) fakeEntry        { return fakeEntry{name: name, dir: true} }

func TestBuildEndToEnd(t *testing.T) {
	entries := []archive.Entry{
		file("src/Main.java", "a\nb\n"),
		dir("src/util/"),
		file("README.bin", "\x00\x01\x02"),
	}

	root, summary, err := Build(context.Background(), entries)
	require.NoError(t, err)

	assert.Equal(t, model.RootName, root.Name)
	assert.Equal(t, "", root.Path)
	require.Len(t, root.Children, 2)

	src, ok := root.Children[0].(*model.Dir)
	require.True(t, ok, "directories sort before files")
	assert.Equal(t, "src", src.Name)
	assert.Equal(t, "src", src.Path)

	readme, ok := root.Children[1].(*model.File)
	require.True(t, ok)
	assert.Equal(t, "README.bin", readme.Name)
	assert.Equal(t, "bin", readme.Ext)
	assert.False(t, readme.Analyzable)

	require.Len(t, src.Children, 2)

	util, ok := src.Children[0].(*model.Dir)
	require.True(t, ok)
	assert.Equal(t, "util", util.Name)
	assert.Equal(t, "src/util", util.Path)
	assert.Empty(t, util.Children)

	mainJava, ok := src.Children[1].(*model.File)
	require.True(t, ok)
	assert.Equal(t, "Main.java", mainJava.Name)
	assert.Equal(t, "src/Main.java", mainJava.Path)
	assert.Equal(t, "java", mainJava.Ext)
	assert.True(t, mainJava.Analyzable)
	assert.Equal(t, 3, mainJava.LineCount)

	assert.Equal(t, model.Summary{
		TotalFiles:      2,
		AnalyzableFiles: 1,
		OpaqueFiles:     1,
		TotalLines:      3,
		TotalSize:       7,
	}, summary)
}

func TestBuildEmptyArchive(t *testing.T) {
	root, summary, err := Build(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, root.Children)
	assert.Equal(t, model.Summary{}, summary)
	assert.True(t, model.Result{Tree: root, Summary: summary}.Empty())
}

func TestBuildDirectoryMaterializedOnce(t *testing.T) {
	// "a" and "a/b" are reachable both explicitly and as implied ancestors.
	entries := []archive.Entry{
		dir("a/"),
		dir("a/b/"),
		file("a/b/c.txt", "x"),
		file("a/b/d.txt", "y"),
	}

	root, _, err := Build(context.Background(), entries)
	require.NoError(t, err)

	counts := map[string]int{}
	var walk func(d *model.Dir)
	walk = func(d *model.Dir) {
		for _, child := range d.Children {
			if sub, ok := child.(*model.Dir); ok {
				counts[sub.Path]++
				walk(sub)
			}
		}
	}
	walk(root)

	assert.Equal(t, map[string]int{"a": 1, "a/b": 1}, counts)
}

func TestBuildSynthesizesAncestors(t *testing.T) {
	entries := []archive.Entry{
		file("x/y/z/deep.txt", "line"),
	}

	root, _, err := Build(context.Background(), entries)
	require.NoError(t, err)

	// every node's path must be parent path + "/" + name (root's "/" omitted).
	var walk func(d *model.Dir)
	walk = func(d *model.Dir) {
		for _, child := range d.Children {
			prefix := ""
			if d.Path != "" {
				prefix = d.Path + "/"
			}
			switch v := child.(type) {
			case *model.Dir:
				assert.Equal(t, prefix+v.Name, v.Path)
				walk(v)
			case *model.File:
				assert.Equal(t, prefix+v.Name, v.Path)
			}
		}
	}
	walk(root)

	require.Len(t, root.Children, 1)
	x := root.Children[0].(*model.Dir)
	assert.Equal(t, "x", x.Path)
	require.Len(t, x.Children, 1)
	y := x.Children[0].(*model.Dir)
	assert.Equal(t, "x/y", y.Path)
	require.Len(t, y.Children, 1)
	z := y.Children[0].(*model.Dir)
	assert.Equal(t, "x/y/z", z.Path)
	require.Len(t, z.Children, 1)
}

func TestBuildOrderIndependent(t *testing.T) {
	forward := []archive.Entry{
		dir("src/"),
		file("src/a.txt", "1\n2"),
		file("src/b.js", "x"),
		dir("src/sub/"),
		file("top.md", "hi"),
	}
	reversed := make([]archive.Entry, len(forward))
	for i, e := range forward {
		reversed[len(forward)-1-i] = e
	}

	rootA, sumA, err := Build(context.Background(), forward)
	require.NoError(t, err)
	rootB, sumB, err := Build(context.Background(), reversed)
	require.NoError(t, err)

	assert.Equal(t, sumA, sumB)

	jsonA, err := json.Marshal(rootA)
	require.NoError(t, err)
	jsonB, err := json.Marshal(rootB)
	require.NoError(t, err)
	assert.JSONEq(t, string(jsonA), string(jsonB))
}

func TestBuildBackslashPaths(t *testing.T) {
	root, summary, err := Build(context.Background(), []archive.Entry{
		file(`src\util\Helper.java`, "a\nb"),
	})
	require.NoError(t, err)

	src := root.Children[0].(*model.Dir)
	util := src.Children[0].(*model.Dir)
	helper := util.Children[0].(*model.File)
	assert.Equal(t, "src/util/Helper.java", helper.Path)
	assert.Equal(t, 2, summary.TotalLines)
}

func TestBuildDecodeFailureAbortsRun(t *testing.T) {
	boom := errors.New("corrupt stream")
	entries := []archive.Entry{
		file("good.txt", "fine"),
		fakeEntry{name: "bad.txt", err: boom},
	}

	root, summary, err := Build(context.Background(), entries)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "bad.txt", decodeErr.Path)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, root, "no partial tree on failure")
	assert.Equal(t, model.Summary{}, summary)
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root, _, err := Build(ctx, []archive.Entry{file("a.txt", "x")})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, root)
}

func TestBuildOpaqueFilesNeverOpened(t *testing.T) {
	// an opaque entry whose Open would fail must not be touched.
	entries := []archive.Entry{
		fakeEntry{name: "blob.bin", err: errors.New("must not be opened")},
	}

	root, summary, err := Build(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	assert.Equal(t, 1, summary.OpaqueFiles)
}

func TestSummaryMatchesWalk(t *testing.T) {
	entries := []archive.Entry{
		file("a/one.java", "l1\nl2\nl3"),
		file("a/two.bin", "\x00"),
		file("b/three.md", "x\n"),
		dir("c/"),
	}

	root, incremental, err := Build(context.Background(), entries)
	require.NoError(t, err)

	assert.Equal(t, incremental, Summarize(root),
		"incremental summary and post-hoc walk must agree exactly")
	assert.Equal(t, incremental.TotalFiles, incremental.AnalyzableFiles+incremental.OpaqueFiles)
}

func TestBuildPreview(t *testing.T) {
	long := strings.Repeat("line\n", 20)
	root, _, err := Build(context.Background(), []archive.Entry{file("big.txt", long)})
	require.NoError(t, err)

	f := root.Children[0].(*model.File)
	assert.Len(t, f.Preview, previewLines)
	assert.Equal(t, "line", f.Preview[0])
}
