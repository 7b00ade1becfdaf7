package log

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/datarhei/sheepcounter/encoding/json"
)

type Formatter interface {
	Bytes(e *Event) []byte
}

type jsonFormatter struct{}

func NewJSONFormatter() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Bytes(e *Event) []byte {
	entry := Fields{}

	for k, v := range e.Data {
		if err, ok := v.(error); ok {
			v = err.Error()
		}

		entry[k] = v
	}

	entry["ts"] = e.Time
	entry["level"] = e.Level.String()
	entry["component"] = e.Component

	if len(e.Caller) != 0 {
		entry["caller"] = e.Caller
	}

	if len(e.Message) != 0 {
		entry["message"] = e.Message
	}

	data, _ := json.Marshal(entry)

	return append(data, '\n')
}

type consoleFormatter struct {
	color bool
}

func NewConsoleFormatter(useColor bool) Formatter {
	return &consoleFormatter{
		color: useColor,
	}
}

var levelColors = map[Level]string{
	Ldebug: "\033[35m",
	Linfo:  "\033[34m",
	Lwarn:  "\033[33m",
	Lerror: "\033[31m\033[5m",
}

func (f *consoleFormatter) Bytes(e *Event) []byte {
	var b strings.Builder

	level := e.Level.String()
	if f.color {
		if c, ok := levelColors[e.Level]; ok {
			level = c + level + "\033[0m"
		}
	}

	b.WriteString(f.kv("ts", e.Time.UTC().Format(time.RFC3339)))
	b.WriteString(" " + f.kv("level", level))
	b.WriteString(" " + f.kv("component", strconv.Quote(e.Component)))

	if len(e.Message) != 0 {
		b.WriteString(" " + f.kv("msg", strconv.Quote(e.Message)))
	}

	keys := make([]string, 0, len(e.Data))
	for key := range e.Data {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		b.WriteString(" " + f.kv(key, f.value(e.Data[key])))
	}

	b.WriteString("\n")

	return []byte(b.String())
}

func (f *consoleFormatter) value(v interface{}) string {
	switch val := v.(type) {
	case bool:
		return strconv.FormatBool(val)
	case string:
		return strconv.Quote(val)
	case error:
		return strconv.Quote(val.Error())
	case fmt.Stringer:
		return strconv.Quote(val.String())
	}

	data, err := json.Marshal(v)
	if err != nil {
		return strconv.Quote(err.Error())
	}

	return string(data)
}

func (f *consoleFormatter) kv(key, value string) string {
	if !f.color {
		return key + "=" + value
	}

	if key == "error" {
		value = "\033[31m" + value + "\033[0m"
	}

	return "\033[90m" + key + "=\033[0m" + value
}
