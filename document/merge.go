package document

import "fmt"

// ConflictError reports a merge that found a non-object value where the key
// path required an object to descend into. Depth is the number of leading
// path segments resolved before the conflict; zero means the document root
// itself is not an object.
type ConflictError struct {
	Path  Path
	Depth int
}

func (e *ConflictError) Error() string {
	location := "document root"
	if e.Depth > 0 {
		location = fmt.Sprintf("%q", e.Path[:e.Depth].String())
	}
	return fmt.Sprintf("document: merge conflict at %s: existing value is not an object", location)
}

// Merge writes value into doc at the key path and returns the resulting
// document, leaving doc untouched. Missing intermediate keys become empty
// objects; every other key in the document survives unchanged. An existing
// non-object value along the path aborts with *ConflictError instead of
// overwriting data the path does not address.
func Merge(doc Value, path Path, value Value) (Value, error) {
	if err := path.Validate(); err != nil {
		return Value{}, err
	}
	if doc.kind != KindObject {
		return Value{}, &ConflictError{Path: path.Clone(), Depth: 0}
	}

	result := doc.Clone()
	if result.fields == nil {
		result.fields = map[string]Value{}
	}

	fields := result.fields
	for i, key := range path[:len(path)-1] {
		child, ok := fields[key]
		if !ok {
			child = Value{kind: KindObject, fields: map[string]Value{}}
			fields[key] = child
		}
		if child.kind != KindObject {
			return Value{}, &ConflictError{Path: path.Clone(), Depth: i + 1}
		}
		if child.fields == nil {
			child.fields = map[string]Value{}
			fields[key] = child
		}
		fields = child.fields
	}
	fields[path[len(path)-1]] = value.Clone()
	return result, nil
}
