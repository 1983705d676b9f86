package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestQueryCommands(t *testing.T) {
	out, err := run(t, "", "query", "set", "page=1&sort=asc", "page", "2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"?page=2&sort=asc"}`, out)

	out, err = run(t, "", "query", "remove", "page=2&filter=&draft", "filter")
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"?page=2"}`, out)

	out, err = run(t, "", "query", "decode", "filter[type]=png&tags[]=a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"filter":{"type":"png"},"tags":["a"]}`, out)

	_, err = run(t, "", "query", "set", "page=1")
	assert.Error(t, err)
}

func TestMergeCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":{"x":0,"z":0},"c":true}`), 0o600))

	out, err := run(t, `{"b":2}`, "merge", `{"a":{"x":1}}`, "-", "@"+path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":{"x":1,"z":0},"b":2,"c":true}`, out)

	_, err = run(t, "", "merge", `{"a":1}`, `[1,2]`)
	assert.Error(t, err)
}

func TestImageCommands(t *testing.T) {
	out, err := run(t, "", "image", "size", "height", "--type", "fill", "--aspect-ratio", "3:4")
	require.NoError(t, err)
	assert.JSONEq(t, `{"size":1334}`, out)

	out, err = run(t, "", "image", "size", "width", "--width", "640")
	require.NoError(t, err)
	assert.JSONEq(t, `{"size":640}`, out)

	_, err = run(t, "", "image", "size", "depth")
	assert.Error(t, err)

	out, err = run(t, "", "image", "placeholder", "--width", "10", "--height", "5")
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.True(t, strings.HasPrefix(body["data_url"], "data:image/svg+xml;base64,"))

	out, err = run(t, "", "image", "placeholder", "--svg", "--width", "10", "--height", "5")
	require.NoError(t, err)
	assert.Contains(t, out, `<svg width="10" height="5"`)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)

	var info BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.Version)
}

func TestRootGroupsCommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"serve", "query", "merge", "image"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.NotEmpty(t, sub.GroupID, name)
	}
}
