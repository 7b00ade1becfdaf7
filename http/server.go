package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/datarhei/sheepcounter/counter"
	"github.com/datarhei/sheepcounter/http/dispatcher"
	"github.com/datarhei/sheepcounter/http/errorhandler"
	"github.com/datarhei/sheepcounter/http/handler"
	httplog "github.com/datarhei/sheepcounter/http/log"
	"github.com/datarhei/sheepcounter/http/mime"
	"github.com/datarhei/sheepcounter/http/router"
	"github.com/datarhei/sheepcounter/io/fs"
	"github.com/datarhei/sheepcounter/log"
	"github.com/datarhei/sheepcounter/prometheus"

	mwlog "github.com/datarhei/sheepcounter/http/middleware/log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/lithammer/shortuuid/v4"
)

type Config struct {
	Logger      log.Logger
	Counter     *counter.Counter
	Filesystem  fs.ReadFilesystem
	Types       *mime.Table
	DefaultFile string
	Prometheus  prometheus.Reader

	// LogBuffer holds the latest log events, exposed on /log if set
	LogBuffer log.BufferWriter

	// MaxBodySize is the max. size of a request body in KB
	MaxBodySize int64
}

type Server interface {
	ServeHTTP(w http.ResponseWriter, r *http.Request)

	// Bindings returns the registered routes in the order they are tried.
	Bindings() []router.Binding
}

type server struct {
	logger log.Logger

	handler struct {
		sheep      *handler.SheepHandler
		upload     *handler.UploadHandler
		static     *handler.StaticHandler
		ping       *handler.PingHandler
		log        *handler.LogHandler
		prometheus *handler.PrometheusHandler
	}

	static handler.StaticConfig

	table  *router.Table
	router *echo.Echo
}

func NewServer(config Config) (Server, error) {
	if config.Counter == nil {
		return nil, fmt.Errorf("no counter provided")
	}

	if config.Filesystem == nil {
		return nil, fmt.Errorf("no filesystem provided")
	}

	if config.MaxBodySize <= 0 {
		return nil, fmt.Errorf("invalid max. body size: %d", config.MaxBodySize)
	}

	s := &server{
		logger: config.Logger,
		table:  router.New(),
	}

	if s.logger == nil {
		s.logger = log.New("HTTP")
	}

	if config.Types == nil {
		types, err := mime.New(nil)
		if err != nil {
			return nil, err
		}

		config.Types = types
	}

	if len(config.DefaultFile) == 0 {
		config.DefaultFile = "index.html"
	}

	s.static = handler.StaticConfig{
		Filesystem:  config.Filesystem,
		Types:       config.Types,
		DefaultFile: config.DefaultFile,
	}

	s.handler.sheep = handler.NewSheep(config.Counter, s.logger.WithComponent("Counter"))
	s.handler.upload = handler.NewUpload()
	s.handler.static = handler.NewStatic(s.logger.WithComponent("Static"))
	s.handler.ping = handler.NewPing()

	if config.LogBuffer != nil {
		s.handler.log = handler.NewLog(config.LogBuffer)
	}

	if config.Prometheus != nil {
		s.handler.prometheus = handler.NewPrometheus(config.Prometheus)
	}

	if err := s.setRoutes(); err != nil {
		return nil, err
	}

	s.table.Seal()

	for _, binding := range s.table.Bindings() {
		s.logger.Debug().WithField("route", binding.String()).Log("Registered route")
	}

	s.router = echo.New()
	s.router.HTTPErrorHandler = errorhandler.HTTPErrorHandler
	s.router.HideBanner = true
	s.router.HidePort = true

	s.router.Logger.SetOutput(httplog.NewWrapper(s.logger))

	s.router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return shortuuid.New()
		},
	}))
	s.router.Use(mwlog.NewWithConfig(mwlog.Config{
		Logger: s.logger,
	}))
	s.router.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			rows := strings.Split(string(stack), "\n")
			s.logger.Error().WithField("stack", rows).Log("recovered from a panic")
			return nil
		},
	}))
	s.router.Use(middleware.BodyLimit(fmt.Sprintf("%dK", config.MaxBodySize)))

	s.router.Any("/*", dispatcher.New(s.table).Handle)

	return s, nil
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *server) Bindings() []router.Binding {
	return s.table.Bindings()
}

type route struct {
	verb    router.Verb
	pattern string
	handler router.HandlerFunc
}

// setRoutes registers all routes. The static files are served by the
// catch-all route, which has to be the last one.
func (s *server) setRoutes() error {
	routes := []route{
		{router.POST, "/sheep", s.handler.sheep.Start},
		{router.PUT, "/sheep", s.handler.sheep.Add},
		{router.DELETE, "/sheep", s.handler.sheep.Reset},
		{router.ANY, "/upload", s.handler.upload.Introspect},
		{router.GET, "/ping", s.handler.ping.Ping},
	}

	// Application log
	if s.handler.log != nil {
		routes = append(routes, route{router.GET, "/log", s.handler.log.Log})
	}

	// Prometheus metrics
	if s.handler.prometheus != nil {
		routes = append(routes, route{router.GET, "/metrics", s.handler.prometheus.Metrics})
	}

	for _, r := range routes {
		if err := s.table.Register(r.verb, r.pattern, r.handler); err != nil {
			return err
		}
	}

	// Serve static data
	return s.table.Register(router.GET, router.Wildcard, router.WithContext(s.handler.static.Serve, s.static))
}
