// Package fs provides read-only access to the files the server exposes
package fs

import (
	"errors"
	"time"
)

// ErrNotExist is returned for files that don't exist or that are not reachable
// from the root of the filesystem.
var ErrNotExist = errors.New("file doesn't exist")

// FileInfo describes a file and is returned by Stat.
type FileInfo interface {
	// Name returns the full name of the file.
	Name() string

	// Size reports the size of the file in bytes.
	Size() int64

	// ModTime returns the time of last modification.
	ModTime() time.Time

	// IsDir returns whether the file represents a directory.
	IsDir() bool
}

// ReadFilesystem is a filesystem that can only be read from. All paths are
// relative to the root of the filesystem, e.g. "/index.html". A path can
// never refer to a file outside of the root.
type ReadFilesystem interface {
	// Name returns the name of the filesystem.
	Name() string

	// Type returns the type of the filesystem, e.g. disk, s3
	Type() string

	// Stat returns info about the file at path. If the file doesn't exist, ErrNotExist
	// will be returned.
	Stat(path string) (FileInfo, error)

	// ReadFile returns the contents of the file at the given path.
	ReadFile(path string) ([]byte, error)
}
