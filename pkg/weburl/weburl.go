// Package weburl models URLs as immutable values with ordered query
// parameters. Unlike net/url it keeps parameters in insertion order and
// renders Go values (booleans included) the way query strings expect,
// which makes composed URLs stable enough to compare and store.
package weburl

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Param is one query parameter. Values render via fmt, with booleans
// lowercased.
type Param struct {
	Key   string
	Value any
}

// URL is a base address plus ordered query parameters. Methods return
// modified copies; the zero value is empty.
type URL struct {
	base   string
	params []Param
}

// New constructs a URL from a base address without parameters.
func New(base string) URL {
	return URL{base: base}
}

// Parse splits a raw URL into base and parameters. It fails when more than
// one query separator is present or a parameter is not exactly key=value.
// A trailing separator with no parameters is tolerated. A repeated key keeps
// its first position with the last value winning.
func Parse(raw string) (URL, error) {
	parts := strings.Split(raw, "?")
	if len(parts) > 2 {
		return URL{}, fmt.Errorf("weburl: parse %q: more than one query separator", raw)
	}
	u := URL{base: parts[0]}
	if len(parts) == 1 || parts[1] == "" {
		return u, nil
	}
	for _, row := range strings.Split(parts[1], "&") {
		kv := strings.Split(row, "=")
		if len(kv) != 2 {
			return URL{}, fmt.Errorf("weburl: parse %q: malformed parameter %q", raw, row)
		}
		u.params = setParam(u.params, kv[0], kv[1])
	}
	return u, nil
}

// Base returns the address without its query string.
func (u URL) Base() string {
	return u.base
}

// Name returns the last path component of the base address.
func (u URL) Name() string {
	trimmed := strings.TrimSuffix(u.base, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// Parent returns the URL one path component up, parameters intact. The
// scheme marker survives, so the parent of a bare host keeps its
// "scheme://" prefix.
func (u URL) Parent() URL {
	base := strings.TrimSuffix(u.base, "/")
	scheme := ""
	rest := base
	if i := strings.Index(base, "://"); i >= 0 {
		scheme = base[:i+3]
		rest = base[i+3:]
	}
	if j := strings.LastIndex(rest, "/"); j >= 0 {
		return URL{base: scheme + rest[:j], params: cloneParams(u.params)}
	}
	return URL{base: scheme, params: cloneParams(u.params)}
}

// Join appends one path component, stripping any leading slashes on it.
// Parameters carry over unchanged.
func (u URL) Join(component string) URL {
	return URL{base: u.base + "/" + strings.TrimLeft(component, "/"), params: cloneParams(u.params)}
}

// WithName returns the URL with its last path component replaced.
func (u URL) WithName(name string) URL {
	return u.Parent().Join(name)
}

// WithParam returns the URL with key set to value. An existing parameter is
// replaced in place so ordering stays stable.
func (u URL) WithParam(key string, value any) URL {
	return URL{base: u.base, params: setParam(cloneParams(u.params), key, value)}
}

func setParam(params []Param, key string, value any) []Param {
	for i := range params {
		if params[i].Key == key {
			params[i].Value = value
			return params
		}
	}
	return append(params, Param{Key: key, Value: value})
}

// WithoutParam returns the URL with key removed. Absent keys are a no-op.
func (u URL) WithoutParam(key string) URL {
	var params []Param
	for _, p := range u.params {
		if p.Key != key {
			params = append(params, p)
		}
	}
	return URL{base: u.base, params: params}
}

// Param returns the value stored for key.
func (u URL) Param(key string) (any, bool) {
	for _, p := range u.params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (u URL) Has(key string) bool {
	_, ok := u.Param(key)
	return ok
}

// Params returns a copy of the ordered parameters.
func (u URL) Params() []Param {
	return cloneParams(u.params)
}

// IsZero reports whether the URL is empty.
func (u URL) IsZero() bool {
	return u.base == "" && len(u.params) == 0
}

// String renders the URL with its query string in parameter order.
func (u URL) String() string {
	if len(u.params) == 0 {
		return u.base
	}
	var b strings.Builder
	b.WriteString(u.base)
	for i, p := range u.params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(renderValue(p.Value))
	}
	return b.String()
}

func renderValue(v any) string {
	if b, ok := v.(bool); ok {
		return strconv.FormatBool(b)
	}
	return fmt.Sprint(v)
}

// MarshalJSON renders the URL as its string form.
func (u URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON parses a string form URL.
func (u *URL) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("weburl: decode: %w", err)
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func cloneParams(params []Param) []Param {
	if len(params) == 0 {
		return nil
	}
	return append([]Param{}, params...)
}
