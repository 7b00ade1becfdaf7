package mime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var types = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	"*":     "text/plain",
}

func TestLookup(t *testing.T) {
	table, err := New(types)
	require.NoError(t, err)

	tests := map[string]string{
		"/index.html":         "text/html",
		"/INDEX.HTML":         "text/html",
		"/css/style.css":      "text/css",
		"/js/counter.min.js":  "application/javascript",
		"/README":             "text/plain",
		"/dir.d/README":       "text/plain",
		"/data.xyz":           "application/octet-stream",
		"/archive.html.xyz":   "application/octet-stream",
		"/":                   "text/plain",
		"/trailing.":          "application/octet-stream",
		"relative/index.html": "text/html",
	}

	for path, mimeType := range tests {
		require.Equal(t, mimeType, table.Lookup(path), path)
	}
}

func TestLookupWithoutWildcard(t *testing.T) {
	table, err := New(map[string]string{".html": "text/html"})
	require.NoError(t, err)

	require.Equal(t, DefaultContentType, table.Lookup("/README"))
}

func TestNewInvalid(t *testing.T) {
	_, err := New(map[string]string{"html": "text/html"})
	require.Error(t, err)

	_, err = New(map[string]string{".html": ""})
	require.Error(t, err)
}

func TestNewFromFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "mime.types")

	data := "# comment line\n" +
		"image/svg+xml svg svgz\n" +
		"text/plain txt # text files\n" +
		"application/x-nothing\n" +
		"text/x-html html\n"

	err := os.WriteFile(filename, []byte(data), 0o644)
	require.NoError(t, err)

	table, err := NewFromFile(filename, types)
	require.NoError(t, err)

	require.Equal(t, "image/svg+xml", table.Lookup("/sheep.svg"))
	require.Equal(t, "image/svg+xml", table.Lookup("/sheep.svgz"))
	require.Equal(t, "text/plain", table.Lookup("/notes.txt"))
	require.Equal(t, "text/html", table.Lookup("/index.html"))
	require.Equal(t, 7, table.Len())

	_, err = NewFromFile(filepath.Join(t.TempDir(), "missing.types"), types)
	require.Error(t, err)
}
