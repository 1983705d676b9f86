package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nested(pairs ...any) *Values {
	v := New()
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i].(string), pairs[i+1])
	}
	return v
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *Values
	}{
		{
			name: "plain pairs with leading question mark",
			raw:  "?page=1&sort=asc",
			want: nested("page", "1", "sort", "asc"),
		},
		{
			name: "bracket nesting",
			raw:  "filter[type]=png&filter[size]=lg",
			want: nested("filter", nested("type", "png", "size", "lg")),
		},
		{
			name: "empty brackets build a sequence",
			raw:  "tags[]=x&tags[]=y",
			want: nested("tags", []string{"x", "y"}),
		},
		{
			name: "indexed brackets build a sequence",
			raw:  "tags[0]=x&tags[1]=y",
			want: nested("tags", []string{"x", "y"}),
		},
		{
			name: "bare key is nil and empty value is empty string",
			raw:  "flag&x=",
			want: nested("flag", nil, "x", ""),
		},
		{
			name: "literal null stays a string",
			raw:  "q=null",
			want: nested("q", "null"),
		},
		{
			name: "duplicate plain keys keep the last value",
			raw:  "a=1&b=2&a=3",
			want: nested("a", "3", "b", "2"),
		},
		{
			name: "percent and plus decoding",
			raw:  "name=John+Doe&city=S%C3%A3o",
			want: nested("name", "John Doe", "city", "São"),
		},
		{
			name: "malformed escapes are dropped",
			raw:  "bad=%zz&%zz=1&ok=1",
			want: nested("ok", "1"),
		},
		{
			name: "empty keys and pairs are dropped",
			raw:  "=1&&",
			want: New(),
		},
		{
			name: "unbalanced bracket keeps the key literal",
			raw:  "a[b=1",
			want: nested("a[b", "1"),
		},
		{
			name: "later nested value replaces scalar",
			raw:  "a=1&a[b]=2",
			want: nested("a", nested("b", "2")),
		},
		{
			name: "sequence of mappings is unsupported",
			raw:  "a[][b]=1&ok=1",
			want: nested("ok", "1"),
		},
		{
			name: "empty input",
			raw:  "",
			want: New(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.raw)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want.Map(), got.Map())
		})
	}
}

func TestDecodeDepthLimit(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		path     []string
		lastKey  string
		reencode bool
	}{
		{"one group past the limit nests", "a[b][c][d][e][f][g]=1", []string{"a", "b", "c", "d", "e", "f"}, "g", true},
		{"several groups collapse into one key", "a[b][c][d][e][f][g][h]=1", []string{"a", "b", "c", "d", "e", "f"}, "[g][h]", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.raw)

			cur := got
			for _, key := range tt.path {
				val, ok := cur.Get(key)
				require.True(t, ok, "missing %q", key)
				next, ok := val.(*Values)
				require.True(t, ok, "%q is not nested", key)
				cur = next
			}

			val, ok := cur.Get(tt.lastKey)
			require.True(t, ok, "missing %q in %v", tt.lastKey, cur.Map())
			assert.Equal(t, "1", val)

			again := Decode(Encode(got, EncodeOptions{}))
			assert.True(t, got.Equal(again), "re-decode: want %v, got %v", got.Map(), again.Map())
		})
	}
}

func TestDecodeEscapedBracketsStayInName(t *testing.T) {
	got := Decode("a%5Bb%5D=1&f[x%5B1%5D]=2")
	assert.True(t, nested("a[b]", "1", "f", nested("x[1]", "2")).Equal(got), "got %v", got.Map())
}

func TestEncode(t *testing.T) {
	v := nested(
		"page", "2",
		"filter", nested("type", "png", "size", "lg"),
		"tags", []string{"a", "b"},
		"draft", nil,
	)

	assert.Equal(t, "page=2&filter[type]=png&filter[size]=lg&tags[]=a&tags[]=b&draft", Encode(v, EncodeOptions{}))
	assert.Equal(t, "page=2&filter[type]=png&filter[size]=lg&tags[]=a&tags[]=b", Encode(v, EncodeOptions{SkipNulls: true}))
}

func TestEncodeEscapes(t *testing.T) {
	v := nested("q", "a&b c", "k=1", "x")
	assert.Equal(t, "q=a%26b+c&k%3D1=x", Encode(v, EncodeOptions{}))
}

func TestRoundTrip(t *testing.T) {
	mappings := []*Values{
		New(),
		nested("a", "1"),
		nested("a", "", "b", "with space", "c", "ü&="),
		nested("tags", []string{"x", "", "y z"}),
		nested("f", nested("g", nested("h", "deep")), "n", "1"),
		nested("f", nested("list", []string{"1", "2"}), "flag", nil),
		nested("q", "null", "z", "0"),
		nested("a[b]", "1", "c]", "2", "[d", "3"),
		nested("f", nested("x[y]", "1")),
		nested("a", nested("b", nested("c", nested("d", nested("e", nested("f", nested("g", "1"))))))),
		nested("a", nested("b", nested("c", nested("d", nested("e", nested("f", nested("[g][h]", "1"))))))),
	}

	for _, m := range mappings {
		encoded := Encode(m, EncodeOptions{})
		got := Decode(encoded)
		assert.True(t, m.Equal(got), "round trip of %q: want %v, got %v", encoded, m.Map(), got.Map())
	}
}

func TestValuesSetKeepsPosition(t *testing.T) {
	v := nested("a", "1", "b", "2")
	v.Set("a", "3")
	v.Set("c", "4")

	assert.Equal(t, []string{"a", "b", "c"}, v.Keys())

	v.Del("b")
	v.Del("missing")
	assert.Equal(t, []string{"a", "c"}, v.Keys())
}

func TestZeroValuesSet(t *testing.T) {
	var v Values
	v.Set("a", "1")

	assert.Equal(t, "a=1", Encode(&v, EncodeOptions{}))
}

func TestValuesClone(t *testing.T) {
	orig := nested("f", nested("g", "1"), "tags", []string{"x"})
	clone := orig.Clone()

	inner, _ := clone.Get("f")
	inner.(*Values).Set("g", "changed")
	tags, _ := clone.Get("tags")
	tags.([]string)[0] = "changed"

	assert.True(t, nested("f", nested("g", "1"), "tags", []string{"x"}).Equal(orig))
}

func TestMarshalJSONKeepsOrder(t *testing.T) {
	v := nested("b", "1", "a", nested("c", []string{"x"}), "n", nil)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"b":"1","a":{"c":["x"]},"n":null}`, string(out))
}
