package trajectory

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Create opens path for writing, compressing by extension the same way Open
// decompresses. "-" writes to standard output.
func Create(path string) (io.WriteCloser, error) {
	if path == "-" {
		return stdout{}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		e, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &compressedFile{WriteCloser: e, f: f}, nil
	case ".gz":
		return &compressedFile{WriteCloser: gzip.NewWriter(f), f: f}, nil
	}
	return f, nil
}

type stdout struct{}

func (stdout) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdout) Close() error                { return nil }

// compressedFile flushes the encoder before closing the file under it.
type compressedFile struct {
	io.WriteCloser
	f *os.File
}

func (c *compressedFile) Close() error {
	err := c.WriteCloser.Close()
	if cerr := c.f.Close(); err == nil {
		err = cerr
	}
	return err
}
