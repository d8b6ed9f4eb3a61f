package parser

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    int64
		wantErr error
	}{
		{name: "two fields", line: "42,7", want: 7},
		{name: "extra fields ignored", line: "1,12,foo,bar", want: 12},
		{name: "surrounding whitespace", line: "  5, 3 \r\n", want: 3},
		{name: "negative", line: "x,-4", want: -4},
		{name: "no comma", line: "12345", wantErr: ErrMissingField},
		{name: "empty line", line: "", wantErr: ErrMissingField},
		{name: "float timestamp", line: "1,2.5", wantErr: strconv.ErrSyntax},
		{name: "empty field", line: "1,", wantErr: strconv.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.line)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	err := error(&ParseError{Path: "run.csv", Line: 3, Text: "oops", Err: ErrMissingField})

	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Equal(t, `run.csv:3: "oops": record has no timestamp field`, err.Error())
}

func TestLinesNumbersEveryLine(t *testing.T) {
	var got []string
	err := Lines(strings.NewReader("a,0\n\nb,1\nc,2"), func(n int, line string) error {
		got = append(got, strconv.Itoa(n)+":"+line)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"1:a,0", "2:", "3:b,1", "4:c,2"}, got)
}

func TestLinesStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := Lines(strings.NewReader("a\nb\nc\n"), func(int, string) error {
		calls++
		return stop
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOpenDecompresses(t *testing.T) {
	const content = "r,0\nr,0\nr,1\n"

	compressors := map[string]func(io.Writer) (io.WriteCloser, error){
		"run.csv": func(w io.Writer) (io.WriteCloser, error) {
			return nopWriteCloser{w}, nil
		},
		"run.csv.gz": func(w io.Writer) (io.WriteCloser, error) {
			return pgzip.NewWriter(w), nil
		},
		"run.csv.zst": func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		},
		"run.csv.xz": func(w io.Writer) (io.WriteCloser, error) {
			return xz.NewWriter(w)
		},
	}

	for name, compress := range compressors {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			w, err := compress(&buf)
			require.NoError(t, err)
			_, err = io.WriteString(w, content)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

			rc, err := Open(path)
			require.NoError(t, err)
			defer rc.Close()

			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, content, string(data))
		})
	}
}

func TestOpenCorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.csv.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
