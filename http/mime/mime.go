// Package mime maps file extensions to content types.
package mime

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Wildcard is the key for files without an extension.
const Wildcard = "*"

// DefaultContentType is used for extensions that are not in the table.
const DefaultContentType = "application/octet-stream"

// Table is a read-only mapping of extensions (".html") to content types.
type Table struct {
	types map[string]string
}

// New returns a table with a copy of types. Keys are an extension with the
// leading dot or the Wildcard.
func New(types map[string]string) (*Table, error) {
	t := &Table{
		types: make(map[string]string, len(types)),
	}

	for ext, mimeType := range types {
		if ext != Wildcard && (len(ext) < 2 || ext[0] != '.') {
			return nil, fmt.Errorf("invalid extension '%s'", ext)
		}

		if len(mimeType) == 0 {
			return nil, fmt.Errorf("no content type for extension '%s'", ext)
		}

		t.types[ext] = mimeType
	}

	return t, nil
}

// NewFromFile returns a table with types, extended by the entries of a file in
// the mime.types format. Entries in types take precedence.
func NewFromFile(filename string, types map[string]string) (*Table, error) {
	mimeTypes, err := loadMimeFile(filename)
	if err != nil {
		return nil, err
	}

	for ext, mimeType := range types {
		mimeTypes[ext] = mimeType
	}

	return New(mimeTypes)
}

// Lookup returns the content type for the file at path, based on the
// extension of its last element.
func (t *Table) Lookup(path string) string {
	ext := filepath.Ext(path)

	if len(ext) == 0 {
		ext = Wildcard
	}

	if mimeType, ok := t.types[ext]; ok {
		return mimeType
	}

	if mimeType, ok := t.types[strings.ToLower(ext)]; ok {
		return mimeType
	}

	return DefaultContentType
}

func (t *Table) Len() int {
	return len(t.types)
}

func loadMimeFile(filename string) (map[string]string, error) {
	mimeTypes := make(map[string]string)

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open mime types file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) <= 1 || fields[0][0] == '#' {
			continue
		}
		mimeType := fields[0]

		for _, ext := range fields[1:] {
			if ext[0] == '#' {
				break
			}

			mimeTypes["."+strings.TrimPrefix(ext, ".")] = mimeType
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mime types file: %w", err)
	}

	return mimeTypes, nil
}
