package query

import (
	"net/url"
	"strings"
)

// maxDepth bounds how many bracket groups are expanded into nested
// mappings. Groups past the limit collapse into one final key.
const maxDepth = 5

// segment is one step of a bracketed key. list marks "[]" or "[<digits>]".
type segment struct {
	name string
	list bool
}

// Decode parses a query string, with or without a leading "?".
//
// Rules:
//   - pairs are separated by "&"; empty pairs are skipped
//   - keys are split on literal brackets first, then each part is
//     percent-decoded, so an escaped bracket (%5B) stays part of a name
//   - values are percent-decoded, "+" is a space
//   - "key" without "=" decodes to nil, "key=" decodes to ""
//   - repeated plain keys keep the last value seen
//   - bracket keys build nested mappings and sequences
//
// A pair whose key or value cannot be decoded is dropped.
func Decode(raw string) *Values {
	out := New()
	raw = strings.TrimPrefix(raw, "?")

	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}

		rawKey, rawVal, hasValue := strings.Cut(part, "=")
		segs, ok := splitKey(rawKey)
		if !ok {
			continue
		}

		var val any
		if hasValue {
			s, err := url.QueryUnescape(rawVal)
			if err != nil {
				continue
			}
			val = s
		}

		out.assign(segs, val)
	}

	return out
}

// splitKey breaks the still-escaped key "a[b][c]" into its segments and
// decodes each one. Keys with unbalanced or stray brackets are kept whole.
//
// After maxDepth groups the remainder becomes the final segment: the content
// of a single remaining group, or the literal remainder when several are
// left. Encode escapes that literal, so a decoded mapping re-encodes to the
// same shape.
func splitKey(rawKey string) ([]segment, bool) {
	segs := splitRaw(rawKey)
	for i := range segs {
		name, err := url.QueryUnescape(segs[i].name)
		if err != nil {
			return nil, false
		}
		segs[i].name = name
	}
	if segs[0].name == "" {
		return nil, false
	}
	return segs, true
}

func splitRaw(key string) []segment {
	literal := []segment{{name: key}}

	open := strings.IndexByte(key, '[')
	if open <= 0 {
		return literal
	}

	segs := []segment{{name: key[:open]}}
	rest := key[open:]
	for rest != "" && len(segs) <= maxDepth {
		inner, tail, ok := cutGroup(rest)
		if !ok {
			return literal
		}
		segs = append(segs, segment{name: inner, list: isIndex(inner)})
		rest = tail
	}

	if rest == "" {
		return segs
	}
	if inner, tail, ok := cutGroup(rest); ok && tail == "" {
		return append(segs, segment{name: inner, list: isIndex(inner)})
	}
	if !wellFormed(rest) {
		return literal
	}
	return append(segs, segment{name: rest})
}

// cutGroup splits "[x]tail" into x and tail.
func cutGroup(s string) (inner, tail string, ok bool) {
	if s == "" || s[0] != '[' {
		return "", "", false
	}
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return "", "", false
	}
	inner = s[1:end]
	if strings.ContainsRune(inner, '[') {
		return "", "", false
	}
	return inner, s[end+1:], true
}

func wellFormed(s string) bool {
	for s != "" {
		_, tail, ok := cutGroup(s)
		if !ok {
			return false
		}
		s = tail
	}
	return true
}

func isIndex(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// assign stores val at the path described by segs. A trailing list segment
// appends to a sequence; a list segment anywhere else is unsupported and
// the pair is dropped. Type conflicts resolve to the last value seen.
func (v *Values) assign(segs []segment, val any) {
	appendTo := false
	if n := len(segs); n > 1 && segs[n-1].list {
		appendTo = true
		segs = segs[:n-1]
	}
	for _, seg := range segs {
		if seg.list {
			return
		}
	}

	cur := v
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur.vals[seg.name].(*Values)
		if !ok || next == nil {
			next = New()
			cur.Set(seg.name, next)
		}
		cur = next
	}

	name := segs[len(segs)-1].name
	if !appendTo {
		cur.Set(name, val)
		return
	}

	s, _ := val.(string)
	list, _ := cur.vals[name].([]string)
	cur.Set(name, append(list, s))
}
