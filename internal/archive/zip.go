package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
)

func openZip(name string) (*Archive, error) {
	zr, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf(`open zip file "%s" error: %w`, name, err)
	}

	entries := make([]Entry, 0, len(zr.File))
	for _, f := range zr.File {
		entries = append(entries, &zipEntry{f})
	}
	return &Archive{Name: filepath.Base(name), entries: entries, close: zr.Close}, nil
}

type zipEntry struct {
	f *zip.File
}

var _ Entry = &zipEntry{}

func (e *zipEntry) Name() string {
	return e.f.Name
}

func (e *zipEntry) IsDir() bool {
	return e.f.FileInfo().IsDir()
}

func (e *zipEntry) Size() int64 {
	return int64(e.f.UncompressedSize64)
}

func (e *zipEntry) Open() (io.ReadCloser, error) {
	return e.f.Open()
}
