// Package query translates URL query strings to and from an ordered,
// possibly nested mapping of parameters.
//
// It understands the bracket convention browsers and most query-string
// libraries use:
//
//	a=1          -> {"a": "1"}
//	a[b]=1       -> {"a": {"b": "1"}}
//	a[]=1&a[]=2  -> {"a": ["1", "2"]}
//	flag         -> {"flag": nil}
//
// Parsing is permissive. Malformed fragments are dropped and Decode never
// returns an error, so UI navigation code can feed it whatever the browser
// location holds.
package query

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Values is an ordered mapping of query parameters.
//
// A value is one of:
//   - string      plain parameter (a=1)
//   - []string    repeated bracket parameter (a[]=1&a[]=2)
//   - *Values     nested parameter (a[b]=1)
//   - nil         bare key without "=" (flag)
//
// Keys are unique at each level. Insertion order is kept so Encode output
// is deterministic.
type Values struct {
	keys []string
	vals map[string]any
}

// New returns an empty Values.
func New() *Values {
	return &Values{vals: make(map[string]any)}
}

// Len reports the number of top-level keys.
func (v *Values) Len() int {
	if v == nil {
		return 0
	}
	return len(v.keys)
}

// Keys returns the top-level keys in insertion order.
func (v *Values) Keys() []string {
	if v == nil {
		return nil
	}
	return slices.Clone(v.keys)
}

// Get returns the value stored under key.
func (v *Values) Get(key string) (any, bool) {
	if v == nil {
		return nil, false
	}
	val, ok := v.vals[key]
	return val, ok
}

// Has reports whether key is present, even when it holds nil.
func (v *Values) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Set stores value under key. An existing key keeps its position. The zero
// Values is ready to use.
func (v *Values) Set(key string, value any) {
	if v.vals == nil {
		v.vals = make(map[string]any)
	}
	if _, ok := v.vals[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.vals[key] = value
}

// Del removes key. Missing keys are a no-op.
func (v *Values) Del(key string) {
	if _, ok := v.vals[key]; !ok {
		return
	}
	delete(v.vals, key)
	v.keys = slices.DeleteFunc(v.keys, func(k string) bool { return k == key })
}

// Clone returns a deep copy.
func (v *Values) Clone() *Values {
	out := New()
	if v == nil {
		return out
	}
	for _, k := range v.keys {
		switch val := v.vals[k].(type) {
		case *Values:
			out.Set(k, val.Clone())
		case []string:
			out.Set(k, slices.Clone(val))
		default:
			out.Set(k, val)
		}
	}
	return out
}

// Equal reports whether v and o hold the same keys and values.
// Key order is not compared.
func (v *Values) Equal(o *Values) bool {
	if v.Len() != o.Len() {
		return false
	}
	for _, k := range v.Keys() {
		a, _ := v.Get(k)
		b, ok := o.Get(k)
		if !ok || !equalValue(a, b) {
			return false
		}
	}
	return true
}

func equalValue(a, b any) bool {
	if isNull(a) || isNull(b) {
		return isNull(a) && isNull(b)
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case []string:
		y, ok := b.([]string)
		return ok && slices.Equal(x, y)
	case *Values:
		y, ok := b.(*Values)
		return ok && x.Equal(y)
	default:
		return a == b
	}
}

// isNull treats untyped nil and a nil *Values alike.
func isNull(val any) bool {
	if val == nil {
		return true
	}
	nested, ok := val.(*Values)
	return ok && nested == nil
}

// Map converts v into plain maps, which is handy for templates and callers
// that do not care about ordering.
func (v *Values) Map() map[string]any {
	out := make(map[string]any, v.Len())
	for _, k := range v.Keys() {
		val, _ := v.Get(k)
		if nested, ok := val.(*Values); ok && nested != nil {
			out[k] = nested.Map()
			continue
		}
		out[k] = val
	}
	return out
}

// MarshalJSON writes v as a JSON object, keeping insertion order.
func (v *Values) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range v.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, _ := v.Get(k)
		encoded, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
