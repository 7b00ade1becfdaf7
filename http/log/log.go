// Package log forwards the output of the echo logger to a log.Logger
package log

import (
	"strings"

	"github.com/datarhei/sheepcounter/encoding/json"
	"github.com/datarhei/sheepcounter/log"
)

type logwrapper struct {
	logger log.Logger
}

type logentry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NewWrapper returns a writer for the echo logger. Each line of a message
// is logged as a separate event with the level echo has assigned to it.
func NewWrapper(logger log.Logger) *logwrapper {
	return &logwrapper{
		logger: logger,
	}
}

func (b *logwrapper) Write(p []byte) (int, error) {
	entry := logentry{}
	if err := json.Unmarshal(p, &entry); err != nil || len(entry.Message) == 0 {
		b.logger.Info().Log("%s", strings.TrimSpace(string(p)))
		return len(p), nil
	}

	var logger log.Logger

	switch strings.ToUpper(entry.Level) {
	case "DEBUG":
		logger = b.logger.Debug()
	case "WARN":
		logger = b.logger.Warn()
	case "ERROR", "FATAL", "PANIC":
		logger = b.logger.Error()
	default:
		logger = b.logger.Info()
	}

	for _, line := range strings.Split(entry.Message, "\n") {
		logger.Log("%s", line)
	}

	return len(p), nil
}
