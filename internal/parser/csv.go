package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz"
)

// timestampField is the zero-based CSV column holding the record timestamp
const timestampField = 1

// ErrMissingField is returned for records with no timestamp column
var ErrMissingField = errors.New("record has no timestamp field")

// ParseError reports a record that could not be turned into a timestamp
type ParseError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %q: %v", e.Path, e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseTimestamp extracts the integer timestamp from a comma-separated record.
// Fields other than the timestamp are ignored.
func ParseTimestamp(line string) (int64, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) <= timestampField {
		return 0, ErrMissingField
	}
	return strconv.ParseInt(strings.TrimSpace(fields[timestampField]), 10, 64)
}

// Lines calls fn for every line of r, in order, with its 1-based line number
func Lines(r io.Reader, fn func(lineNo int, line string) error) error {
	scanner := bufio.NewScanner(r)

	// Increase buffer size for large lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := fn(lineNo, scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// stackedReader closes a decompressor and the file underneath it
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open opens an input log for reading. "-" reads stdin. Files ending in
// .gz, .zst or .xz are decompressed on the fly.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var r io.Reader
	var closers []io.Closer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gz, err := pgzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		r, closers = gz, []io.Closer{gz}
	case ".zst":
		dec, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("zstd %s: %w", path, err)
		}
		rc := dec.IOReadCloser()
		r, closers = rc, []io.Closer{rc}
	case ".xz":
		xr, err := xz.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("xz %s: %w", path, err)
		}
		r = xr
	default:
		return file, nil
	}

	return &stackedReader{Reader: r, closers: append(closers, file)}, nil
}
