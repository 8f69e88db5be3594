package obj

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects a compression format for files.
type Compression int

// Supported compressions. Auto selects by file name suffix: .gz, .zst and
// .lz4 are decompressed/compressed, anything else is plain text.
const (
	Auto Compression = iota
	None
	Gzip
	Zstd
	LZ4
)

func (c Compression) String() string {
	switch c {
	case Auto:
		return "auto"
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	}
	return "unknown"
}

// resolve replaces Auto by the compression indicated by path.
func (c Compression) resolve(path string) Compression {
	if c != Auto {
		return c
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return Gzip
	case ".zst":
		return Zstd
	case ".lz4":
		return LZ4
	}
	return None
}

// readCloser closes a decompressor and the file below it.
type readCloser struct {
	io.Reader
	closers []io.Closer // closed in order
}

func (rc readCloser) Close() error {
	var errs []error
	for _, c := range rc.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// openFile opens path for reading, decompressing if requested.
func openFile(path string, c Compression) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch c.resolve(path) {
	case Gzip:
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return readCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case Zstd:
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		zr := dec.IOReadCloser()
		return readCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case LZ4:
		return readCloser{Reader: lz4.NewReader(f), closers: []io.Closer{f}}, nil
	}
	return f, nil
}

// writeFile creates (or truncates) path and writes data to it, compressing
// if requested. The file is closed on every path.
func writeFile(path string, data []byte, c Compression) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	var w io.WriteCloser
	switch c.resolve(path) {
	case Gzip:
		w = gzip.NewWriter(f)
	case Zstd:
		if w, err = zstd.NewWriter(f); err != nil {
			return err
		}
	case LZ4:
		w = lz4.NewWriter(f)
	default:
		_, err = f.Write(data)
		return err
	}
	if _, err = w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
