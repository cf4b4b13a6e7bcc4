package docfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-jsondata/document"
)

const (
	defaultIndent = "    "

	dirMode  = 0o755
	fileMode = 0o644
)

// Source moves whole documents between storage and memory. Read reports
// absence through ok rather than an error; Write fully replaces previous
// content.
type Source interface {
	Read(path string) (doc document.Value, ok bool, err error)
	Write(path string, doc document.Value) error
	Exists(path string) bool
}

// ParseError reports a document that exists but does not parse as JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("docfile: malformed document %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Option configures a FileSource.
type Option func(*FileSource)

// WithIndent sets the indent string used when writing documents.
func WithIndent(indent string) Option {
	return func(s *FileSource) {
		s.indent = indent
	}
}

// WithHTMLEscaping toggles escaping of <, >, and & in written documents.
// Off by default so text is emitted literally.
func WithHTMLEscaping(escape bool) Option {
	return func(s *FileSource) {
		s.escapeHTML = escape
	}
}

// FileSource reads and writes documents as UTF-8 JSON files, pretty-printed
// with four-space indentation.
type FileSource struct {
	indent     string
	escapeHTML bool
}

// NewFileSource constructs a FileSource with the default formatting.
func NewFileSource(opts ...Option) *FileSource {
	s := &FileSource{indent: defaultIndent}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Read parses the document at path. A missing file reports ok=false with a
// nil error; unparsable content reports *ParseError.
func (s *FileSource) Read(path string) (document.Value, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return document.Null(), false, nil
		}
		return document.Null(), false, fmt.Errorf("docfile: read %s: %w", path, err)
	}
	doc, err := document.Decode(raw)
	if err != nil {
		return document.Null(), false, &ParseError{Path: path, Err: err}
	}
	return doc, true, nil
}

// Write replaces the file at path with the encoded document, creating parent
// directories as needed.
func (s *FileSource) Write(path string, doc document.Value) error {
	data, err := encode(doc, s.indent, s.escapeHTML)
	if err != nil {
		return fmt.Errorf("docfile: encode %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return fmt.Errorf("docfile: create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return fmt.Errorf("docfile: write %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a regular file is present at path.
func (s *FileSource) Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Format renders a document the way FileSource writes it, without the
// trailing newline. Useful for logs and debugging output.
func Format(doc document.Value, opts ...Option) (string, error) {
	s := NewFileSource(opts...)
	data, err := encode(doc, s.indent, s.escapeHTML)
	if err != nil {
		return "", fmt.Errorf("docfile: format: %w", err)
	}
	return string(bytes.TrimRight(data, "\n")), nil
}

func encode(doc document.Value, indent string, escapeHTML bool) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", indent)
	encoder.SetEscapeHTML(escapeHTML)
	if err := encoder.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
