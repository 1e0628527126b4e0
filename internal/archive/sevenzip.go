package archive

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

func open7z(name string) (*Archive, error) {
	zr, err := sevenzip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf(`open 7z file "%s" error: %w`, name, err)
	}

	entries := make([]Entry, 0, len(zr.File))
	for _, f := range zr.File {
		entries = append(entries, &sevenZipEntry{f})
	}
	return &Archive{Name: filepath.Base(name), entries: entries, close: zr.Close}, nil
}

type sevenZipEntry struct {
	f *sevenzip.File
}

var _ Entry = &sevenZipEntry{}

func (e *sevenZipEntry) Name() string {
	return e.f.Name
}

func (e *sevenZipEntry) IsDir() bool {
	return e.f.FileInfo().IsDir()
}

func (e *sevenZipEntry) Size() int64 {
	if fi := e.f.FileInfo(); !fi.IsDir() {
		return fi.Size()
	}
	return 0
}

func (e *sevenZipEntry) Open() (io.ReadCloser, error) {
	return e.f.Open()
}
