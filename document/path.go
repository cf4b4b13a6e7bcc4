package document

import (
	"errors"
	"strings"
)

// ErrEmptyPath reports a key path with no segments. A store cannot address
// anything with it, so operations that receive one refuse to run.
var ErrEmptyPath = errors.New("document: empty key path")

// Path is an ordered sequence of string keys locating one value inside
// nested objects. Segments are opaque; a dot inside a segment is part of the
// key, not a separator.
type Path []string

// NewPath builds a path from the given segments.
func NewPath(keys ...string) Path {
	p := make(Path, len(keys))
	copy(p, keys)
	return p
}

// Validate reports whether the path can address a value.
func (p Path) Validate() error {
	if len(p) == 0 {
		return ErrEmptyPath
	}
	return nil
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// String joins the segments with dots for display and event payloads.
func (p Path) String() string {
	return strings.Join(p, ".")
}
