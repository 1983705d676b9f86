// Package merge combines nested configuration mappings.
//
// It is used to lay user-supplied transformation settings over defaults
// (and the other way round). The precedence is base-wins: on any conflict
// that is not mapping-vs-mapping, the first argument's value is kept. Callers
// pick the argument order that matches the precedence they want.
package merge

import "maps"

// Deep merges base and overlay into a new map.
//
//  1. The result starts as a shallow copy of overlay.
//  2. For every key in base: when overlay holds the key too and both values
//     are non-nil map[string]any, the two are merged recursively. Otherwise
//     base's value overwrites whatever overlay had, nil included.
//  3. Keys only in overlay are kept untouched.
//
// A nil overlay returns a shallow copy of base. Neither input is modified.
func Deep(base, overlay map[string]any) map[string]any {
	if overlay == nil {
		return cloneMap(base)
	}

	result := cloneMap(overlay)
	for key, baseVal := range base {
		overlayVal, ok := overlay[key]
		if ok {
			baseMap, baseIsMap := asMap(baseVal)
			overlayMap, overlayIsMap := asMap(overlayVal)
			if baseIsMap && overlayIsMap {
				result[key] = Deep(baseMap, overlayMap)
				continue
			}
		}
		result[key] = baseVal
	}

	return result
}

// DeepAll folds Deep from left to right, so maps[0] has the highest
// precedence.
func DeepAll(maps ...map[string]any) map[string]any {
	result := map[string]any{}
	for i := len(maps) - 1; i >= 0; i-- {
		result = Deep(maps[i], result)
	}
	return result
}

// asMap reports whether v is a structured record. Sequences, scalars and
// nil maps are not.
func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return maps.Clone(m)
}
