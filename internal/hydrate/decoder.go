// Package hydrate normalizes arbitrary Go values through their JSON
// representation so callers receive plain trees of map[string]any, []any,
// json.Number, string, bool, and nil.
package hydrate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Normalize round-trips v through JSON. Numbers come back as json.Number so
// integer and float literals keep their exact form. Values that cannot be
// marshaled (channels, functions, cycles) fail with the encoder's error.
func Normalize(v any) (any, error) {
	buffer, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("hydrate: marshal %T: %w", v, err)
	}
	decoder := json.NewDecoder(bytes.NewReader(buffer))
	decoder.UseNumber()
	var tree any
	if err := decoder.Decode(&tree); err != nil {
		return nil, fmt.Errorf("hydrate: decode %T: %w", v, err)
	}
	return tree, nil
}
