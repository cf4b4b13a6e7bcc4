package document

// Lookup walks the key path through the document one segment at a time.
// Any absent key, and any non-object value encountered before the path is
// exhausted, resolves to not-found rather than an error. An empty path
// resolves to the document itself.
func Lookup(doc Value, path Path) (Value, bool) {
	current := doc
	for _, key := range path {
		if current.kind != KindObject {
			return Value{}, false
		}
		next, ok := current.fields[key]
		if !ok {
			return Value{}, false
		}
		current = next
	}
	return current, true
}
