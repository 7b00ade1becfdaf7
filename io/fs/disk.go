package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/datarhei/sheepcounter/log"
)

// DiskConfig is the config required to create a new disk
// filesystem.
type DiskConfig struct {
	// Name is the name of the filesystem
	Name string

	// Dir is the path to the directory to expose
	Dir string

	// For logging, optional
	Logger log.Logger
}

// diskFileInfo implements the FileInfo interface
type diskFileInfo struct {
	name  string
	finfo os.FileInfo
}

func (fi *diskFileInfo) Name() string {
	return fi.name
}

func (fi *diskFileInfo) Size() int64 {
	return fi.finfo.Size()
}

func (fi *diskFileInfo) ModTime() time.Time {
	return fi.finfo.ModTime()
}

func (fi *diskFileInfo) IsDir() bool {
	return fi.finfo.IsDir()
}

// diskFilesystem implements the ReadFilesystem interface
type diskFilesystem struct {
	name string
	dir  string

	logger log.Logger
}

// NewDiskFilesystem returns a new filesystem that is backed by a directory on disk
func NewDiskFilesystem(config DiskConfig) (ReadFilesystem, error) {
	fs := &diskFilesystem{
		name:   config.Name,
		logger: config.Logger,
	}

	if fs.logger == nil {
		fs.logger = log.New("")
	}

	if len(config.Dir) == 0 {
		return nil, fmt.Errorf("invalid base path provided")
	}

	dir, err := filepath.Abs(config.Dir)
	if err != nil {
		return nil, err
	}

	// The root itself may be a symlink, all containment checks are done on real paths
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, fmt.Errorf("the provided base path '%s' doesn't exist", config.Dir)
	}

	finfo, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("the provided base path '%s' doesn't exist", config.Dir)
	}

	if !finfo.IsDir() {
		return nil, fmt.Errorf("the provided base path '%s' must be a directory", config.Dir)
	}

	fs.dir = dir

	fs.logger = fs.logger.WithFields(log.Fields{
		"name": fs.name,
		"type": "disk",
		"dir":  fs.dir,
	})

	return fs, nil
}

func (fs *diskFilesystem) Name() string {
	return fs.name
}

func (fs *diskFilesystem) Type() string {
	return "disk"
}

func (fs *diskFilesystem) Stat(path string) (FileInfo, error) {
	name, realpath, err := fs.resolve(path)
	if err != nil {
		return nil, err
	}

	finfo, err := os.Stat(realpath)
	if err != nil {
		return nil, ErrNotExist
	}

	return &diskFileInfo{
		name:  name,
		finfo: finfo,
	}, nil
}

func (fs *diskFilesystem) ReadFile(path string) ([]byte, error) {
	_, realpath, err := fs.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(realpath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotExist
		}

		return nil, err
	}

	return data, nil
}

// resolve returns the cleaned name of path within the filesystem and the
// real location on disk. Paths that end up outside of the root, either by
// their name or by following symlinks, don't exist.
func (fs *diskFilesystem) resolve(path string) (string, string, error) {
	if strings.ContainsAny(path, "\x00\\") {
		fs.logger.Debug().WithField("path", path).Log("Invalid path")
		return "", "", ErrNotExist
	}

	name := filepath.Clean("/" + path)

	realpath, err := filepath.EvalSymlinks(filepath.Join(fs.dir, name))
	if err != nil {
		return "", "", ErrNotExist
	}

	prefix := fs.dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	if realpath != fs.dir && !strings.HasPrefix(realpath, prefix) {
		fs.logger.Debug().WithFields(log.Fields{
			"path":   path,
			"target": realpath,
		}).Log("Link outside of the root")
		return "", "", ErrNotExist
	}

	return name, realpath, nil
}
