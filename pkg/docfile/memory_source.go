package docfile

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-jsondata/document"
)

// MemorySource is a Source keeping encoded documents in a map, intended for
// tests and examples. Documents round-trip through their encoded form so
// readers never share state with writers.
type MemorySource struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySource constructs an empty MemorySource.
func NewMemorySource() *MemorySource {
	return &MemorySource{files: map[string][]byte{}}
}

// Read decodes the stored document at path. Missing paths report ok=false
// with a nil error; unparsable seeded content reports *ParseError.
func (s *MemorySource) Read(path string) (document.Value, bool, error) {
	s.mu.RLock()
	raw, ok := s.files[path]
	s.mu.RUnlock()
	if !ok {
		return document.Null(), false, nil
	}
	doc, err := document.Decode(raw)
	if err != nil {
		return document.Null(), false, &ParseError{Path: path, Err: err}
	}
	return doc, true, nil
}

// Write stores the encoded document at path.
func (s *MemorySource) Write(path string, doc document.Value) error {
	data, err := encode(doc, defaultIndent, false)
	if err != nil {
		return fmt.Errorf("docfile: encode %s: %w", path, err)
	}
	s.mu.Lock()
	s.files[path] = data
	s.mu.Unlock()
	return nil
}

// Exists reports whether a document is stored at path.
func (s *MemorySource) Exists(path string) bool {
	s.mu.RLock()
	_, ok := s.files[path]
	s.mu.RUnlock()
	return ok
}

// Put seeds raw bytes at path, valid JSON or not. Tests use it to stage
// malformed documents.
func (s *MemorySource) Put(path string, raw []byte) {
	s.mu.Lock()
	s.files[path] = append([]byte(nil), raw...)
	s.mu.Unlock()
}

// Bytes returns a copy of the stored bytes at path.
func (s *MemorySource) Bytes(path string) ([]byte, bool) {
	s.mu.RLock()
	raw, ok := s.files[path]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return append([]byte(nil), raw...), true
}

// Remove deletes the document at path if present.
func (s *MemorySource) Remove(path string) {
	s.mu.Lock()
	delete(s.files, path)
	s.mu.Unlock()
}
