// Package archive opens archive files and enumerates their contents as a
// flat list of entries. Formats are selected by file extension: zip, 7z,
// and tar (plain or gzip/xz/zstd compressed). Nested archives are not
// descended into; an archive inside an archive is just an opaque file.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned by Open when the named file does not have a
// recognized archive extension.
var ErrUnsupported = errors.New("unsupported archive format")

// Entry is one record from an archive's flat listing: a path plus either a
// directory flag or readable file contents. Entries are enumerated in
// whatever order the archive stores them.
type Entry interface {
	// Name returns the full, possibly backslash-delimited path of the entry
	// within the archive.
	Name() string
	// IsDir reports whether the entry names a directory.
	IsDir() bool
	// Size returns the uncompressed size in bytes, 0 for directories.
	Size() int64
	// Open opens the entry's decoded contents for reading. The archive must
	// not be closed while readers are in use.
	Open() (io.ReadCloser, error)
}

// Archive is an opened archive whose entries can be enumerated and read.
type Archive struct {
	// Name is the base name of the archive file.
	Name string

	entries []Entry
	close   func() error
}

// Entries returns the archive's flat listing in storage order.
func (a *Archive) Entries() []Entry {
	return a.entries
}

// Close releases the underlying file. Entries must not be opened afterwards.
func (a *Archive) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// Open opens the named archive file, selecting the decoder by extension.
// A file that is not a recognized archive yields ErrUnsupported; a file
// with a recognized extension but undecodable contents yields the decoder's
// error. Both mean the input as a whole cannot be read.
func Open(ctx context.Context, name string) (*Archive, error) {
	switch ext := Ext(name); ext {
	case ".zip":
		return openZip(name)
	case ".7z":
		return open7z(name)
	case ".tar":
		return openTar(ctx, name, nil)
	case ".tar.gz", ".tgz":
		return openTar(ctx, name, gzipDecoder)
	case ".tar.xz", ".txz":
		return openTar(ctx, name, xzDecoder)
	case ".tar.zst":
		return openTar(ctx, name, zstdDecoder)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// Ext returns the lowercase archive extension of name, keeping the ".tar"
// prefix of double extensions such as ".tar.gz" intact.
func Ext(name string) string {
	lower := strings.ToLower(filepath.Base(name))
	ext := filepath.Ext(lower)
	switch ext {
	case ".gz", ".xz", ".zst":
		if strings.HasSuffix(lower, ".tar"+ext) {
			return ".tar" + ext
		}
	}
	return ext
}
