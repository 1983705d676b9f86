package utils

import (
	"fmt"
	"slices"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/spf13/cast"
)

// ClassNames combines class inputs into one class string.
//
// Accepted inputs:
//   - string            used as-is
//   - []string, []any   flattened recursively
//   - map[string]bool   keys whose value is true, in sorted order
//   - map[string]any    same, with values read as booleans
//   - nil, false        ignored
//
// Anything else is formatted with fmt. Conflicting Tailwind utilities are
// resolved by tailwind-merge, the later class wins ("p-2", "p-4" -> "p-4").
// Surviving classes keep the order they were given in; a repeated class
// sits where it last appeared.
func ClassNames(inputs ...any) string {
	var classes []string
	for _, in := range inputs {
		classes = appendClasses(classes, in)
	}
	tokens := strings.Fields(strings.Join(classes, " "))

	survivors := make(map[string]bool, len(tokens))
	for _, class := range strings.Fields(twmerge.Merge(strings.Join(tokens, " "))) {
		survivors[class] = true
	}

	out := make([]string, 0, len(survivors))
	seen := make(map[string]bool, len(survivors))
	for i := len(tokens) - 1; i >= 0; i-- {
		class := tokens[i]
		if survivors[class] && !seen[class] {
			seen[class] = true
			out = append(out, class)
		}
	}
	slices.Reverse(out)
	return strings.Join(out, " ")
}

func appendClasses(dst []string, in any) []string {
	switch v := in.(type) {
	case nil:
		return dst
	case bool:
		return dst
	case string:
		if s := strings.TrimSpace(v); s != "" {
			dst = append(dst, s)
		}
		return dst
	case []string:
		for _, s := range v {
			dst = appendClasses(dst, s)
		}
		return dst
	case []any:
		for _, item := range v {
			dst = appendClasses(dst, item)
		}
		return dst
	case map[string]bool:
		keys := make([]string, 0, len(v))
		for k, on := range v {
			if on {
				keys = append(keys, k)
			}
		}
		slices.Sort(keys)
		return append(dst, keys...)
	case map[string]any:
		// Decoded JSON objects: {"hidden": false, "flex": true}.
		flags := make(map[string]bool, len(v))
		for k, val := range v {
			flags[k] = cast.ToBool(val)
		}
		return appendClasses(dst, flags)
	default:
		return append(dst, fmt.Sprint(v))
	}
}
