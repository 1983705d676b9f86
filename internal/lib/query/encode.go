package query

import (
	"fmt"
	"net/url"
	"strings"
)

// EncodeOptions tunes Encode.
type EncodeOptions struct {
	// SkipNulls omits keys whose value is nil instead of writing a bare key.
	SkipNulls bool
}

// Encode serializes v into a query string without a leading "?".
//
// Keys are written in insertion order. Sequences use the "a[]=x" form and
// nested mappings use "a[b]=x", so Decode(Encode(v)) equals v for any
// mapping built from strings, non-empty sequences and non-empty nested
// mappings.
func Encode(v *Values, opts EncodeOptions) string {
	var b strings.Builder
	encodeInto(&b, v, "", opts)
	return b.String()
}

func encodeInto(b *strings.Builder, v *Values, prefix string, opts EncodeOptions) {
	for _, k := range v.Keys() {
		name := url.QueryEscape(k)
		if prefix != "" {
			name = prefix + "[" + name + "]"
		}

		val, _ := v.Get(k)
		if isNull(val) {
			if !opts.SkipNulls {
				writePair(b, name, nil)
			}
			continue
		}

		switch val := val.(type) {
		case string:
			writePair(b, name, &val)
		case []string:
			for _, s := range val {
				writePair(b, name+"[]", &s)
			}
		case *Values:
			encodeInto(b, val, name, opts)
		default:
			s := fmt.Sprint(val)
			writePair(b, name, &s)
		}
	}
}

func writePair(b *strings.Builder, name string, value *string) {
	if b.Len() > 0 {
		b.WriteByte('&')
	}
	b.WriteString(name)
	if value != nil {
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(*value))
	}
}
