// Package log implements a logging middleware
package log

import (
	"net/http"
	"time"

	"github.com/datarhei/sheepcounter/log"

	"github.com/labstack/echo/v4"
)

type Config struct {
	Logger log.Logger
}

// NewWithConfig returns a middleware that logs one event per request. Server
// errors are logged as error, client errors as warning and everything else
// as debug.
func NewWithConfig(config Config) echo.MiddlewareFunc {
	if config.Logger == nil {
		config.Logger = log.New("HTTP")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()

			path := req.URL.Path
			if raw := req.URL.RawQuery; raw != "" {
				path = path + "?" + raw
			}

			if err := next(c); err != nil {
				c.Error(err)
			}

			logger := config.Logger.WithFields(log.Fields{
				"client":      c.RealIP(),
				"method":      req.Method,
				"path":        path,
				"status":      res.Status,
				"status_text": http.StatusText(res.Status),
				"size_bytes":  res.Size,
				"latency_ms":  time.Since(start).Milliseconds(),
				"request_id":  res.Header().Get(echo.HeaderXRequestID),
			})

			switch {
			case res.Status >= 500:
				logger = logger.Error()
			case res.Status >= 400:
				logger = logger.Warn()
			default:
				logger = logger.Debug()
			}

			logger.Log("")

			return nil
		}
	}
}
