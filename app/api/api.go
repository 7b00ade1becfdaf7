package api

import (
	"context"
	"fmt"
	"io"
	golog "log"
	gohttp "net/http"
	"strings"
	"sync"
	"time"

	"github.com/datarhei/sheepcounter/app"
	"github.com/datarhei/sheepcounter/config"
	configvars "github.com/datarhei/sheepcounter/config/vars"
	"github.com/datarhei/sheepcounter/counter"
	"github.com/datarhei/sheepcounter/http"
	"github.com/datarhei/sheepcounter/http/mime"
	"github.com/datarhei/sheepcounter/io/fs"
	"github.com/datarhei/sheepcounter/log"
	"github.com/datarhei/sheepcounter/prometheus"

	"go.uber.org/automaxprocs/maxprocs"
)

// The API interface is the implementation for the sheep counter.
type API interface {
	// Start starts the API. This is blocking until the server fails or
	// the context is canceled. In the latter case a nil error is returned.
	Start(ctx context.Context) error

	// Stop stops the API. The counter keeps its value such that
	// the API can be started again.
	Stop()

	// Reload the configuration for the API. If there's an error the
	// previously loaded configuration is not altered.
	Reload() error
}

type api struct {
	counter    *counter.Counter
	filesystem fs.ReadFilesystem
	prom       prometheus.Metrics
	mainserver *gohttp.Server

	errorChan chan error

	log struct {
		writer io.Writer
		buffer log.BufferWriter
		logger struct {
			core log.Logger
			main log.Logger
		}
	}

	config *config.Config

	lock   sync.Mutex
	wgStop sync.WaitGroup
	state  string

	undoMaxprocs func()
}

// New returns a new instance of the API interface. All logs are written
// to logwriter.
func New(logwriter io.Writer) (API, error) {
	a := &api{
		state:   "idle",
		counter: counter.New(),
	}

	a.log.writer = logwriter

	if a.log.writer == nil {
		a.log.writer = io.Discard
	}

	if err := a.Reload(); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *api) Reload() error {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.state == "running" {
		return fmt.Errorf("can't reload config while running")
	}

	logger := log.New("Core").WithOutput(log.NewConsoleWriter(a.log.writer, log.Lwarn, true))

	cfg := config.New()

	cfg.Merge()
	cfg.Validate(false)

	loglevel := log.ParseLevel(cfg.Log.Level)

	var writer log.Writer

	if cfg.Log.Format == "json" {
		writer = log.NewJSONWriter(a.log.writer, loglevel)
	} else {
		writer = log.NewConsoleWriter(a.log.writer, loglevel, true)
	}

	buffer := log.NewBufferWriter(loglevel, cfg.Log.MaxLines)

	logger = logger.WithOutput(log.NewMultiWriter(
		log.NewTopicWriter(writer, cfg.Log.Topics),
		buffer,
	))

	logfields := log.Fields{
		"application": app.Name,
		"version":     app.Version.String(),
		"arch":        app.Arch,
		"compiler":    app.Compiler,
	}

	if len(app.Commit) != 0 && len(app.Branch) != 0 {
		logfields["commit"] = app.Commit
		logfields["branch"] = app.Branch
	}

	if len(app.Build) != 0 {
		logfields["build"] = app.Build
	}

	logger.Info().WithFields(logfields).Log("")

	configlogger := logger.WithComponent("Config")
	cfg.Messages(func(level string, v configvars.Variable, message string) {
		configlogger = configlogger.WithFields(log.Fields{
			"variable":    v.Name,
			"value":       v.Value,
			"env":         v.EnvName,
			"description": v.Description,
			"override":    v.Merged,
		})
		configlogger.Debug().Log(message)

		switch level {
		case "warn":
			configlogger.Warn().Log(message)
		case "error":
			configlogger.Error().WithField("error", message).Log("")
		default:
			break
		}
	})

	if cfg.HasErrors() {
		logger.Error().WithField("error", "Not all variables are set or are valid. Check the error messages above. Bailing out.").Log("")
		return fmt.Errorf("not all variables are set or valid")
	}

	if overrides := cfg.Overrides(); len(overrides) != 0 {
		logger.Info().WithField("variables", overrides).Log("Overridden by the environment")
	}

	a.config = cfg
	a.log.logger.core = logger
	a.log.buffer = buffer

	return nil
}

func (a *api) start() error {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.state == "running" {
		return fmt.Errorf("already running")
	}

	a.errorChan = make(chan error, 1)

	a.state = "starting"

	cfg := a.config

	undoMaxprocs, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		format = strings.TrimPrefix(format, "maxprocs: ")
		a.log.logger.core.Debug().Log(format, args...)
	}))
	if err != nil {
		a.log.logger.core.Warn().Log("%s", err.Error())
	}

	a.undoMaxprocs = undoMaxprocs

	var types *mime.Table

	if len(cfg.Storage.MimeTypes) != 0 {
		types, err = mime.NewFromFile(cfg.Storage.MimeTypes, cfg.Storage.Types)
	} else {
		types, err = mime.New(cfg.Storage.Types)
	}

	if err != nil {
		return fmt.Errorf("unable to load mime types: %w", err)
	}

	a.log.logger.core.Debug().WithField("types", types.Len()).Log("Loaded mime types")

	switch cfg.Storage.Backend {
	case "s3":
		a.filesystem, err = fs.NewS3Filesystem(fs.S3Config{
			Name:            "static",
			Endpoint:        cfg.Storage.S3.Endpoint,
			AccessKeyID:     cfg.Storage.S3.AccessKeyID,
			SecretAccessKey: cfg.Storage.S3.SecretAccessKey,
			Region:          cfg.Storage.S3.Region,
			Bucket:          cfg.Storage.S3.Bucket,
			UseSSL:          cfg.Storage.S3.UseSSL,
			Logger:          a.log.logger.core.WithComponent("FS"),
		})
	default:
		a.filesystem, err = fs.NewDiskFilesystem(fs.DiskConfig{
			Name:   "static",
			Dir:    cfg.Storage.Disk.Dir,
			Logger: a.log.logger.core.WithComponent("FS"),
		})
	}

	if err != nil {
		return fmt.Errorf("unable to create filesystem: %w", err)
	}

	a.log.logger.core.Info().WithFields(log.Fields{
		"name": a.filesystem.Name(),
		"type": a.filesystem.Type(),
	}).Log("Serving static files")

	var prom prometheus.Reader

	if cfg.Metrics.Enable {
		metrics, err := prometheus.NewWithRuntime()
		if err != nil {
			return fmt.Errorf("unable to create prometheus registry: %w", err)
		}

		if err := metrics.Register(prometheus.NewSheepCollector(cfg.Name, a.counter)); err != nil {
			return fmt.Errorf("unable to register sheep collector: %w", err)
		}

		a.prom = metrics
		prom = metrics
	}

	a.log.logger.main = a.log.logger.core.WithComponent("HTTP").WithField("address", cfg.Address)

	serverhandler, err := http.NewServer(http.Config{
		Logger:      a.log.logger.main,
		Counter:     a.counter,
		Filesystem:  a.filesystem,
		Types:       types,
		DefaultFile: cfg.Storage.DefaultFile,
		Prometheus:  prom,
		LogBuffer:   a.log.buffer,
		MaxBodySize: cfg.HTTP.MaxBodySize,
	})
	if err != nil {
		return fmt.Errorf("unable to create server: %w", err)
	}

	a.mainserver = &gohttp.Server{
		Addr:              cfg.Address,
		Handler:           serverhandler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ErrorLog:          golog.New(a.log.logger.main.Debug(), "", 0),
	}

	var wgStart sync.WaitGroup

	sendError := func(err error) {
		select {
		case a.errorChan <- err:
		default:
		}
	}

	wgStart.Add(1)
	a.wgStop.Add(1)

	go func() {
		logger := a.log.logger.main

		defer func() {
			logger.Info().Log("Server exited")
			a.wgStop.Done()
		}()

		wgStart.Done()

		logger.Info().Log("Server started")

		err := a.mainserver.ListenAndServe()
		if err != nil && err != gohttp.ErrServerClosed {
			err = fmt.Errorf("HTTP server: %w", err)
		} else {
			err = nil
		}

		sendError(err)
	}()

	// Wait for the server to be started
	wgStart.Wait()

	a.state = "running"

	return nil
}

func (a *api) Start(ctx context.Context) error {
	if err := a.start(); err != nil {
		a.stop()
		return err
	}

	a.lock.Lock()
	errorChan := a.errorChan
	a.lock.Unlock()

	// Block until there's an error from the server or the context is done
	select {
	case err := <-errorChan:
		return err
	case <-ctx.Done():
		return nil
	}
}

func (a *api) stop() {
	a.lock.Lock()
	defer a.lock.Unlock()

	logger := a.log.logger.core.WithField("action", "shutdown")

	if a.state == "idle" {
		logger.Info().Log("Complete")
		return
	}

	// Shutdown the HTTP server
	if a.mainserver != nil {
		logger := a.log.logger.main
		logger.Info().Log("Stopping ...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.mainserver.Shutdown(ctx); err != nil {
			logger.Error().WithError(err).Log("")
		}

		a.mainserver = nil
	}

	// Wait for the server goroutine to exit
	logger.Info().Log("Waiting for the server to stop ...")
	a.wgStop.Wait()

	if a.prom != nil {
		a.prom.UnregisterAll()
		a.prom = nil
	}

	a.filesystem = nil

	// Drain error channel
	if a.errorChan != nil {
		close(a.errorChan)
		a.errorChan = nil
	}

	a.state = "idle"

	if a.undoMaxprocs != nil {
		a.undoMaxprocs()
		a.undoMaxprocs = nil
	}

	logger.WithField("nbsheep", a.counter.Value()).Info().Log("Complete")
}

func (a *api) Stop() {
	a.log.logger.core.Info().Log("Shutdown requested ...")
	a.stop()
}
