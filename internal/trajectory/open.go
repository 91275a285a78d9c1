package trajectory

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Open returns a reader over the decoded contents of path. "-" reads
// standard input.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		d, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &zstdFile{Decoder: d, f: f}, nil
	case ".gz":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &gzipFile{Reader: gz, f: f}, nil
	}
	return openMapped(path)
}

// zstd.Decoder has a Close without an error result.
type zstdFile struct {
	*zstd.Decoder
	f *os.File
}

func (z *zstdFile) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	err := g.Reader.Close()
	if cerr := g.f.Close(); err == nil {
		err = cerr
	}
	return err
}

type mappedFile struct {
	*bytes.Reader
	m mmap.MMap
	f *os.File
}

func (m *mappedFile) Close() error {
	err := m.m.Unmap()
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}

func openMapped(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	// mmap of a zero-length file fails; there is nothing to map anyway.
	if fi.Size() == 0 || !fi.Mode().IsRegular() {
		return f, nil
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &mappedFile{Reader: bytes.NewReader(m), m: m, f: f}, nil
}
