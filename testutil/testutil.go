// Package testutil holds fixtures and environment helpers shared by package
// tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Sample documents with the same content in every supported format.
const (
	SampleJSON = `{
  "name": "widget",
  "tags": ["a", "b"],
  "price": 9.5,
  "stock": {"warehouse": 12, "active": true},
  "discontinued": null
}`

	SampleYAML = `name: widget
tags:
  - a
  - b
price: 9.5
stock:
  warehouse: 12
  active: true
discontinued: null
`

	SampleTOML = `name = "widget"
tags = ["a", "b"]
price = 9.5

[stock]
warehouse = 12
active = true
`
)

// Isolate points JSONEDIT_HOME at a fresh directory and changes into another
// one, so no user config, state or logs leak into the test. It returns the
// new working directory.
func Isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("JSONEDIT_HOME", t.TempDir())
	t.Setenv("JSONEDIT_LOG_LEVEL", "")
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// WriteFile writes content to dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ReadFile returns the content of path.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
