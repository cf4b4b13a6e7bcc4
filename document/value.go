// Package document models JSON documents as an explicit variant type plus the
// pure operations the store needs: key-path lookup and sibling-preserving
// nested merge. Nothing in this package performs I/O.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/goliatone/go-jsondata/internal/hydrate"
)

// Kind identifies which JSON shape a Value holds.
type Kind int

const (
	// KindNull is the zero kind; a zero Value renders as JSON null.
	KindNull Kind = iota
	// KindBool holds true or false.
	KindBool
	// KindNumber holds a numeric literal, integer or floating point.
	KindNumber
	// KindString holds a text value.
	KindString
	// KindArray holds an ordered sequence of values.
	KindArray
	// KindObject holds a string-keyed mapping of values.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the JSON kinds. The zero Value is null.
// Construct values through the package constructors and inspect them through
// the As* accessors; the concrete representation is not exposed.
type Value struct {
	kind    Kind
	boolean bool
	number  json.Number
	text    string
	items   []Value
	fields  map[string]Value
}

// Null returns the JSON null value.
func Null() Value {
	return Value{}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Int returns an integer number value.
func Int(i int64) Value {
	return Value{kind: KindNumber, number: json.Number(strconv.FormatInt(i, 10))}
}

// Float returns a floating point number value.
func Float(f float64) Value {
	return Value{kind: KindNumber, number: json.Number(strconv.FormatFloat(f, 'g', -1, 64))}
}

// Number returns a number value holding the given literal. The literal is
// validated when the value is encoded.
func Number(n json.Number) Value {
	return Value{kind: KindNumber, number: n}
}

// String returns a text value.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Array returns an array value holding copies of the given elements.
func Array(items ...Value) Value {
	copied := make([]Value, len(items))
	for i, item := range items {
		copied[i] = item.Clone()
	}
	return Value{kind: KindArray, items: copied}
}

// Object returns an object value holding copies of the given fields. A nil
// map yields an empty object.
func Object(fields map[string]Value) Value {
	copied := make(map[string]Value, len(fields))
	for key, field := range fields {
		copied[key] = field.Clone()
	}
	return Value{kind: KindObject, fields: copied}
}

// FromGo converts an arbitrary Go value into a Value by normalizing it
// through its JSON representation. Structs, maps, slices, and primitives are
// all accepted; numbers keep their literal form.
func FromGo(v any) (Value, error) {
	if existing, ok := v.(Value); ok {
		return existing.Clone(), nil
	}
	normalized, err := hydrate.Normalize(v)
	if err != nil {
		return Value{}, fmt.Errorf("document: convert %T: %w", v, err)
	}
	return fromDecoded(normalized)
}

// Kind reports which JSON shape the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean payload when the value is a bool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.boolean, true
}

// AsInt returns the payload as int64 when the value is a number with an
// integral literal.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	i, err := v.number.Int64()
	if err != nil {
		return 0, false
	}
	return i, true
}

// AsFloat returns the payload as float64 when the value is a number.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := v.number.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// AsNumber returns the numeric literal when the value is a number.
func (v Value) AsNumber() (json.Number, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.number, true
}

// AsString returns the text payload when the value is a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// AsArray returns a copy of the elements when the value is an array.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	items := make([]Value, len(v.items))
	for i, item := range v.items {
		items[i] = item.Clone()
	}
	return items, true
}

// AsObject returns a copy of the fields when the value is an object.
func (v Value) AsObject() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	fields := make(map[string]Value, len(v.fields))
	for key, field := range v.fields {
		fields[key] = field.Clone()
	}
	return fields, true
}

// Field returns the named entry of an object value.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	field, ok := v.fields[key]
	return field, ok
}

// Index returns the i-th element of an array value.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Len returns the element count for arrays and the field count for objects,
// and zero for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.fields)
	default:
		return 0
	}
}

// Interface returns the value as plain Go data: nil, bool, json.Number,
// string, []any, or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindNumber:
		return v.number
	case KindString:
		return v.text
	case KindArray:
		items := make([]any, len(v.items))
		for i, item := range v.items {
			items[i] = item.Interface()
		}
		return items
	case KindObject:
		fields := make(map[string]any, len(v.fields))
		for key, field := range v.fields {
			fields[key] = field.Interface()
		}
		return fields
	default:
		return nil
	}
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.Clone()
		}
		return Value{kind: KindArray, items: items}
	case KindObject:
		fields := make(map[string]Value, len(v.fields))
		for key, field := range v.fields {
			fields[key] = field.Clone()
		}
		return Value{kind: KindObject, fields: fields}
	default:
		return v
	}
}

// Equal reports deep equality. Numbers compare numerically, so 5 and 5.0 are
// equal even though their literals differ.
func (v Value) Equal(o Value) bool {
	if v.kind == KindNumber && o.kind == KindNumber {
		return numberEqual(v.number, o.number)
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.boolean == o.boolean
	case KindString:
		return v.text == o.text
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for key, field := range v.fields {
			other, ok := o.fields[key]
			if !ok || !field.Equal(other) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// validNumberLiteral accepts exactly the JSON number grammar, so NaN, Inf,
// hex floats, and non-number text are rejected before they can reach a
// document on disk.
func validNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	if s[0] != '-' && (s[0] < '0' || s[0] > '9') {
		return false
	}
	return json.Valid([]byte(s))
}

func numberEqual(a, b json.Number) bool {
	ai, aerr := a.Int64()
	bi, berr := b.Int64()
	if aerr == nil && berr == nil {
		return ai == bi
	}
	af, aerr := a.Float64()
	bf, berr := b.Float64()
	if aerr == nil && berr == nil {
		return af == bf
	}
	return a == b
}

// MarshalJSON renders the value as compact JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return strconv.AppendBool(nil, v.boolean), nil
	case KindNumber:
		if !validNumberLiteral(string(v.number)) {
			return nil, fmt.Errorf("document: invalid number literal %q", string(v.number))
		}
		return []byte(v.number), nil
	case KindString:
		return marshalLiteral(v.text)
	case KindArray:
		if v.items == nil {
			return []byte("[]"), nil
		}
		return marshalLiteral(v.items)
	case KindObject:
		if v.fields == nil {
			return []byte("{}"), nil
		}
		return marshalLiteral(v.fields)
	default:
		return nil, fmt.Errorf("document: unsupported kind %v", v.kind)
	}
}

// marshalLiteral encodes without HTML escaping so text reaches the document
// exactly as written; escaping stays a choice of the writing layer.
func marshalLiteral(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON replaces the value with the decoded content. Numbers keep
// their literal form.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// Decode parses JSON text into a Value. The text must hold exactly one
// document; anything but whitespace after it is an error.
func Decode(data []byte) (Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var tree any
	if err := decoder.Decode(&tree); err != nil {
		return Value{}, fmt.Errorf("document: decode: %w", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return Value{}, errors.New("document: decode: trailing data after document")
	}
	return fromDecoded(tree)
}

func fromDecoded(tree any) (Value, error) {
	switch t := tree.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Value{kind: KindNumber, number: t}, nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case []any:
		items := make([]Value, len(t))
		for i, elem := range t {
			decoded, err := fromDecoded(elem)
			if err != nil {
				return Value{}, err
			}
			items[i] = decoded
		}
		return Value{kind: KindArray, items: items}, nil
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for key, elem := range t {
			decoded, err := fromDecoded(elem)
			if err != nil {
				return Value{}, err
			}
			fields[key] = decoded
		}
		return Value{kind: KindObject, fields: fields}, nil
	default:
		return Value{}, fmt.Errorf("document: unsupported value of type %T", tree)
	}
}

// String renders the value as compact JSON, falling back to the kind name
// when the value cannot be encoded.
func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return "<" + v.kind.String() + ">"
	}
	return string(data)
}

// Keys returns the sorted field names of an object value.
func (v Value) Keys() []string {
	if v.kind != KindObject || len(v.fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(v.fields))
	for key := range v.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
