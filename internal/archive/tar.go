package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

func openTar(ctx context.Context, name string, decFn func(io.Reader) (io.ReadCloser, error)) (*Archive, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf(`open file "%s" error: %w`, name, err)
	}
	defer f.Close()

	var src io.Reader = f
	if decFn != nil {
		dec, err := decFn(f)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		src = dec
	}

	// tar is a pure stream, so file contents are buffered up front: entries
	// must stay readable after the archive file is closed.
	var entries []Entry
	for tr := tar.NewReader(src); ; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf(`read tar "%s" error: %w`, name, err)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			entries = append(entries, dirEntry(hdr.Name))
		case tar.TypeReg:
			data, err := io.ReadAll(tr)
			if err != nil {
				return nil, fmt.Errorf(`read tar entry "%s" error: %w`, hdr.Name, err)
			}
			entries = append(entries, &memEntry{name: hdr.Name, data: data})
		}
	}

	return &Archive{Name: filepath.Base(name), entries: entries}, nil
}

func gzipDecoder(src io.Reader) (io.ReadCloser, error) {
	r, err := gzip.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("create gzip reader error: %w", err)
	}
	return r, nil
}

func xzDecoder(src io.Reader) (io.ReadCloser, error) {
	r, err := xz.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("create xz reader error: %w", err)
	}
	return io.NopCloser(r), nil
}

func zstdDecoder(src io.Reader) (io.ReadCloser, error) {
	r, err := zstd.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader error: %w", err)
	}
	return &zstdDecoderCloser{r}, nil
}

type zstdDecoderCloser struct {
	*zstd.Decoder
}

func (z *zstdDecoderCloser) Close() error {
	z.Decoder.Close()
	return nil
}

type dirEntry string

var _ Entry = dirEntry("")

func (e dirEntry) Name() string { return string(e) }
func (e dirEntry) IsDir() bool  { return true }
func (e dirEntry) Size() int64  { return 0 }

func (e dirEntry) Open() (io.ReadCloser, error) {
	return nil, errors.New("entry is a directory")
}

type memEntry struct {
	name string
	data []byte
}

var _ Entry = &memEntry{}

func (e *memEntry) Name() string { return e.name }
func (e *memEntry) IsDir() bool  { return false }
func (e *memEntry) Size() int64  { return int64(len(e.data)) }

func (e *memEntry) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(e.data)), nil
}
