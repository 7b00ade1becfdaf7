package handler

import (
	"net/http"
	"path/filepath"

	"github.com/datarhei/sheepcounter/http/mime"
	"github.com/datarhei/sheepcounter/http/router"
	"github.com/datarhei/sheepcounter/io/fs"
	"github.com/datarhei/sheepcounter/log"
)

// StaticConfig is bound to the static route.
type StaticConfig struct {
	Filesystem  fs.ReadFilesystem
	Types       *mime.Table
	DefaultFile string // served for a directory, e.g. index.html
}

// The StaticHandler type provides a handler for serving files from a filesystem
type StaticHandler struct {
	logger log.Logger
}

// NewStatic returns a new Static type.
func NewStatic(logger log.Logger) *StaticHandler {
	if logger == nil {
		logger = log.New("")
	}

	return &StaticHandler{
		logger: logger,
	}
}

// Serve responds with the file at the path of the request. If the file is a
// directory, its default file is served. Every request reads the file anew.
func (h *StaticHandler) Serve(req *router.Request, res *router.Response, cfg StaticConfig) error {
	path := req.URL

	stat, err := cfg.Filesystem.Stat(path)
	if err != nil {
		res.Empty(http.StatusNotFound)
		return nil
	}

	if stat.IsDir() {
		if len(cfg.DefaultFile) == 0 {
			res.Empty(http.StatusNotFound)
			return nil
		}

		path = filepath.Join(stat.Name(), cfg.DefaultFile)

		stat, err = cfg.Filesystem.Stat(path)
		if err != nil || stat.IsDir() {
			res.Empty(http.StatusNotFound)
			return nil
		}
	}

	data, err := cfg.Filesystem.ReadFile(path)
	if err != nil {
		h.logger.Debug().WithError(err).WithField("path", path).Log("Reading file failed")
		res.Empty(http.StatusNotFound)
		return nil
	}

	res.Headers.Set("Last-Modified", stat.ModTime().UTC().Format(http.TimeFormat))
	res.Blob(http.StatusOK, cfg.Types.Lookup(path), data)

	return nil
}
