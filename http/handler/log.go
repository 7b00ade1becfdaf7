package handler

import (
	"net/http"
	"strings"

	"github.com/datarhei/sheepcounter/http/router"
	"github.com/datarhei/sheepcounter/log"
)

// The LogHandler type provides a handler for reading the latest log events
type LogHandler struct {
	buffer log.BufferWriter
}

// NewLog returns a new Log type. You have to provide a log buffer.
func NewLog(buffer log.BufferWriter) *LogHandler {
	l := &LogHandler{
		buffer: buffer,
	}

	if l.buffer == nil {
		l.buffer = log.NewBufferWriter(log.Lsilent, 1)
	}

	return l
}

// Log responds with the buffered log events, oldest first. With the query
// parameter format=raw each event is a JSON object, otherwise a console line.
func (l *LogHandler) Log(req *router.Request, res *router.Response) error {
	format, ok := req.PathParams.Get("format")
	if !ok {
		format = "console"
	}

	events := l.buffer.Events()

	if format == "raw" {
		lines := make([]log.Fields, len(events))

		for i, e := range events {
			data := e.Data
			if data == nil {
				data = log.Fields{}
			}

			data["ts"] = e.Time
			data["level"] = e.Level.String()
			data["component"] = e.Component

			if len(e.Caller) != 0 {
				data["caller"] = e.Caller
			}

			if len(e.Message) != 0 {
				data["message"] = e.Message
			}

			lines[i] = data
		}

		res.JSON(http.StatusOK, lines)

		return nil
	}

	formatter := log.NewConsoleFormatter(false)

	lines := make([]string, len(events))

	for i, e := range events {
		lines[i] = strings.TrimSpace(string(formatter.Bytes(e)))
	}

	res.JSON(http.StatusOK, lines)

	return nil
}
