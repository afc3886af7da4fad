// Package golden compares generated output with golden files.
package golden

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Compare reports the first line where got differs from the golden
// file at path. If update is set, the golden file is replaced with
// got instead. Paths ending in ".gz" are gzip compressed.
func Compare(path string, update bool, got []byte) error {
	gz := strings.HasSuffix(path, ".gz")
	if update {
		if !gz {
			return os.WriteFile(path, got, 0o640)
		}
		buf := new(bytes.Buffer)
		w, err := gzip.NewWriterLevel(buf, gzip.BestCompression)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		w.Write(got)
		if err := w.Close(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return os.WriteFile(path, buf.Bytes(), 0o640)
	}
	want, err := read(path, gz)
	if err != nil {
		return err
	}
	if bytes.Equal(got, want) {
		return nil
	}
	gotLines := bytes.Split(got, []byte("\n"))
	wantLines := bytes.Split(want, []byte("\n"))
	for i := 0; i < min(len(gotLines), len(wantLines)); i++ {
		if g, w := gotLines[i], wantLines[i]; !bytes.Equal(g, w) {
			return fmt.Errorf("%s:%d: got %q, expected %q", path, i+1, g, w)
		}
	}
	return fmt.Errorf("%s: got %d lines, expected %d", path, len(gotLines), len(wantLines))
}

func read(path string, gz bool) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if gz {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		r = zr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}
