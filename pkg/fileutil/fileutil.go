// Package fileutil provides small filesystem helpers for logs and paths.
package fileutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Option adjusts how files are read.
type Option func(*readConfig)

type readConfig struct {
	encoding encoding.Encoding
}

// WithEncoding decodes the file through the given text encoding instead of
// treating it as UTF-8.
func WithEncoding(enc encoding.Encoding) Option {
	return func(cfg *readConfig) {
		cfg.encoding = enc
	}
}

// ReadTail returns the last n lines of the file at path. A missing file
// yields no lines and no error, matching how log inspection treats files
// that were never written. n of zero or less yields no lines.
func ReadTail(path string, n int, opts ...Option) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	cfg := readConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fileutil: open %s: %w", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if cfg.encoding != nil {
		reader = transform.NewReader(file, cfg.encoding.NewDecoder())
	}

	lines := make([]string, 0, n)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(lines) < n {
			lines = append(lines, scanner.Text())
			continue
		}
		copy(lines, lines[1:])
		lines[n-1] = scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fileutil: read %s: %w", path, err)
	}
	return lines, nil
}

// RenameSegment replaces the path component up levels above the last one.
// Zero renames the final component, one renames its parent directory, and
// so on. Levels beyond the start of the path leave it unchanged.
func RenameSegment(path, name string, up int) string {
	if up < 0 {
		return path
	}
	segments := strings.Split(filepath.ToSlash(path), "/")
	idx := len(segments) - 1 - up
	if idx < 0 || segments[idx] == "" {
		return path
	}
	segments[idx] = name
	return filepath.FromSlash(strings.Join(segments, "/"))
}
