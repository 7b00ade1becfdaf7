package log

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoglevelNames(t *testing.T) {
	assert.Equal(t, "DEBUG", Ldebug.String())
	assert.Equal(t, "ERROR", Lerror.String())
	assert.Equal(t, "WARN", Lwarn.String())
	assert.Equal(t, "INFO", Linfo.String())
	assert.Equal(t, "SILENT", Lsilent.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Ldebug, ParseLevel("debug"))
	assert.Equal(t, Lwarn, ParseLevel("WARN"))
	assert.Equal(t, Lsilent, ParseLevel("silent"))
	assert.Equal(t, Linfo, ParseLevel("whatever"))
}

func TestLogColorToNotTTY(t *testing.T) {
	var buffer bytes.Buffer

	w := NewConsoleWriter(&buffer, Linfo, true).(*syncWriter)
	formatter := w.writer.(*formatWriter).formatter.(*consoleFormatter)

	assert.False(t, formatter.color, "Color should not be used on a buffer")
}

func TestLogComponent(t *testing.T) {
	var buffer bytes.Buffer

	logger := New("test").WithOutput(NewConsoleWriter(&buffer, Linfo, false))

	logger.Info().Log("info")
	assert.Contains(t, buffer.String(), `component="test"`)

	buffer.Reset()

	logger.WithComponent("tset").Info().Log("info")
	assert.Contains(t, buffer.String(), `component="tset"`)
}

func TestLogFields(t *testing.T) {
	var buffer bytes.Buffer

	logger := New("test").WithOutput(NewConsoleWriter(&buffer, Ldebug, false))

	logger.WithField("nbsheep", 42).WithError(fmt.Errorf("lost")).Warn().Log("counted %d", 3)

	assert.Contains(t, buffer.String(), `level=WARN`)
	assert.Contains(t, buffer.String(), `msg="counted 3"`)
	assert.Contains(t, buffer.String(), `nbsheep=42`)
	assert.Contains(t, buffer.String(), `error="lost"`)
}

func TestLogWithoutOutput(t *testing.T) {
	logger := New("test")

	assert.NotPanics(t, func() {
		logger.Error().Log("nowhere")
	})
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level   Level
		written []bool // debug, info, warn, error
	}{
		{Lsilent, []bool{false, false, false, false}},
		{Lerror, []bool{false, false, false, true}},
		{Lwarn, []bool{false, false, true, true}},
		{Linfo, []bool{false, true, true, true}},
		{Ldebug, []bool{true, true, true, true}},
	}

	for _, tc := range tests {
		t.Run(tc.level.String(), func(t *testing.T) {
			var buffer bytes.Buffer

			logger := New("test").WithOutput(NewConsoleWriter(&buffer, tc.level, false))

			for i, l := range []Logger{logger.Debug(), logger.Info(), logger.Warn(), logger.Error()} {
				buffer.Reset()
				l.Log("message")
				assert.Equal(t, tc.written[i], buffer.Len() != 0)
			}
		})
	}
}
