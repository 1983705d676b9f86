package merge

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeepBaseWinsOnScalars(t *testing.T) {
	base := map[string]any{"width": 1000, "fit": "fill"}
	overlay := map[string]any{"width": 500, "quality": 80}

	got := Deep(base, overlay)

	assert.Equal(t, map[string]any{"width": 1000, "fit": "fill", "quality": 80}, got)
}

func TestDeepRecursesIntoMaps(t *testing.T) {
	base := map[string]any{
		"restore": map[string]any{"enabled": true},
		"remove":  map[string]any{"prompt": "car", "removeShadow": true},
	}
	overlay := map[string]any{
		"remove": map[string]any{"prompt": "tree", "multiple": true},
	}

	got := Deep(base, overlay)

	assert.Equal(t, map[string]any{
		"restore": map[string]any{"enabled": true},
		"remove":  map[string]any{"prompt": "car", "removeShadow": true, "multiple": true},
	}, got)
	assert.Equal(t, Deep(base["remove"].(map[string]any), overlay["remove"].(map[string]any)), got["remove"])
}

func TestDeepTypeConflicts(t *testing.T) {
	tests := []struct {
		name    string
		base    any
		overlay any
	}{
		{"map over scalar", map[string]any{"a": 1}, "x"},
		{"scalar over map", "x", map[string]any{"a": 1}},
		{"slice is not a map", []any{1, 2}, map[string]any{"a": 1}},
		{"nil base value still wins", nil, map[string]any{"a": 1}},
		{"nil map is not a map", map[string]any(nil), map[string]any{"a": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deep(map[string]any{"k": tt.base}, map[string]any{"k": tt.overlay})
			assert.Equal(t, tt.base, got["k"])
		})
	}
}

func TestDeepNilOverlay(t *testing.T) {
	base := map[string]any{"a": 1}
	assert.Equal(t, base, Deep(base, nil))
	assert.Equal(t, map[string]any{}, Deep(nil, nil))
	assert.Equal(t, map[string]any{"b": 2}, Deep(nil, map[string]any{"b": 2}))
}

func TestDeepUnionOfKeys(t *testing.T) {
	base := map[string]any{"a": 1, "b": map[string]any{"x": 1}}
	overlay := map[string]any{"b": map[string]any{"y": 2}, "c": 3}

	got := Deep(base, overlay)

	want := []string{"a", "b", "c"}
	assert.Equal(t, want, slices.Sorted(maps.Keys(got)))
}

func TestDeepDoesNotMutateInputs(t *testing.T) {
	base := map[string]any{"a": 1, "n": map[string]any{"x": 1}}
	overlay := map[string]any{"a": 2, "n": map[string]any{"y": 2}}

	got := Deep(base, overlay)
	got["a"] = 99
	got["n"].(map[string]any)["z"] = 3

	assert.Equal(t, map[string]any{"a": 1, "n": map[string]any{"x": 1}}, base)
	assert.Equal(t, map[string]any{"a": 2, "n": map[string]any{"y": 2}}, overlay)
}

func TestDeepAll(t *testing.T) {
	got := DeepAll(
		map[string]any{"a": 1},
		map[string]any{"a": 2, "b": 2},
		map[string]any{"b": 3, "c": 3},
	)

	assert.Equal(t, map[string]any{"a": 1, "b": 2, "c": 3}, got)
	assert.Equal(t, map[string]any{}, DeepAll())
}
