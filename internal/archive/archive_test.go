package archive_test

import (
	gotar "archive/tar"
	gozip "archive/zip"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lszip/internal/analyze"
	"lszip/internal/archive"
)

// writeZip creates a small test archive with a nested analyzable file, an
// explicit directory entry, and an opaque file.
func writeZip(t *testing.T) string {
	t.Helper()

	name := filepath.Join(t.TempDir(), "demo.zip")
	f, err := os.Create(name)
	require.NoError(t, err)

	zw := gozip.NewWriter(f)

	w, err := zw.Create("src/Main.java")
	require.NoError(t, err)
	_, err = w.Write([]byte("a\nb\n"))
	require.NoError(t, err)

	_, err = zw.Create("src/util/")
	require.NoError(t, err)

	w, err = zw.Create("README.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte{0x00, 0x01, 0x02})
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return name
}

func writeTarGz(t *testing.T) string {
	t.Helper()

	name := filepath.Join(t.TempDir(), "demo.tar.gz")
	f, err := os.Create(name)
	require.NoError(t, err)

	gw := gzip.NewWriter(f)
	tw := gotar.NewWriter(gw)

	require.NoError(t, tw.WriteHeader(&gotar.Header{
		Name:     "docs/",
		Typeflag: gotar.TypeDir,
		Mode:     0755,
	}))
	content := []byte("one\ntwo")
	require.NoError(t, tw.WriteHeader(&gotar.Header{
		Name:     "docs/guide.md",
		Typeflag: gotar.TypeReg,
		Mode:     0644,
		Size:     int64(len(content)),
	}))
	_, err = tw.Write(content)
	require.NoError(t, err)

	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())
	return name
}

func TestOpenZip(t *testing.T) {
	a, err := archive.Open(context.Background(), writeZip(t))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "demo.zip", a.Name)

	byName := map[string]archive.Entry{}
	for _, e := range a.Entries() {
		byName[e.Name()] = e
	}
	require.Len(t, byName, 3)

	main := byName["src/Main.java"]
	require.NotNil(t, main)
	assert.False(t, main.IsDir())
	assert.Equal(t, int64(4), main.Size())

	rc, err := main.Open()
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "a\nb\n", string(data))

	util := byName["src/util/"]
	require.NotNil(t, util)
	assert.True(t, util.IsDir())
}

func TestOpenTarGz(t *testing.T) {
	a, err := archive.Open(context.Background(), writeTarGz(t))
	require.NoError(t, err)
	// tar contents are buffered, so entries survive closing the archive.
	require.NoError(t, a.Close())

	require.Len(t, a.Entries(), 2)
	assert.True(t, a.Entries()[0].IsDir())

	guide := a.Entries()[1]
	assert.Equal(t, "docs/guide.md", guide.Name())
	assert.Equal(t, int64(7), guide.Size())

	rc, err := guide.Open()
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo", string(data))
}

func TestOpenUnsupported(t *testing.T) {
	for _, name := range []string{"x.rar", "x.gz", "plain", "x.docx"} {
		t.Run(name, func(t *testing.T) {
			_, err := archive.Open(context.Background(), name)
			assert.ErrorIs(t, err, archive.ErrUnsupported)
		})
	}
}

func TestOpenCorruptZip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "broken.zip")
	require.NoError(t, os.WriteFile(name, []byte("this is not a zip"), 0644))

	_, err := archive.Open(context.Background(), name)
	assert.Error(t, err)
}

func TestExt(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"demo.zip", ".zip"},
		{"DEMO.ZIP", ".zip"},
		{"demo.7z", ".7z"},
		{"demo.tar", ".tar"},
		{"demo.tar.gz", ".tar.gz"},
		{"demo.tgz", ".tgz"},
		{"demo.tar.xz", ".tar.xz"},
		{"demo.tar.zst", ".tar.zst"},
		{"demo.gz", ".gz"},
		{"path/to/demo.tar.gz", ".tar.gz"},
		{"noext", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, archive.Ext(tc.input))
		})
	}
}

// TestRunZip exercises the whole pipeline: open, build, summarize.
func TestRunZip(t *testing.T) {
	res, err := analyze.Run(context.Background(), writeZip(t))
	require.NoError(t, err)

	assert.Equal(t, "demo.zip", res.ArchiveName)
	assert.Equal(t, 2, res.Summary.TotalFiles)
	assert.Equal(t, 1, res.Summary.AnalyzableFiles)
	assert.Equal(t, 1, res.Summary.OpaqueFiles)
	assert.Equal(t, 3, res.Summary.TotalLines)
	require.Len(t, res.Tree.Children, 2)
}

func TestRunUnsupportedInput(t *testing.T) {
	_, err := analyze.Run(context.Background(), "whatever.rar")
	assert.ErrorIs(t, err, archive.ErrUnsupported)
}
