package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/datarhei/sheepcounter/counter"
	"github.com/datarhei/sheepcounter/http/api"
	"github.com/datarhei/sheepcounter/http/mime"
	"github.com/datarhei/sheepcounter/http/mock"
	"github.com/datarhei/sheepcounter/io/fs"
	"github.com/datarhei/sheepcounter/log"
	"github.com/datarhei/sheepcounter/prometheus"

	"github.com/stretchr/testify/require"
)

// getDummyServer returns a server with all optional routes if full is set.
func getDummyServer(t *testing.T, full bool) (Server, *counter.Counter) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>sheep</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ping"), []byte("not a pong"), 0o644))

	filesystem, err := fs.NewDiskFilesystem(fs.DiskConfig{Dir: dir})
	require.NoError(t, err)

	types, err := mime.New(map[string]string{
		".html": "text/html",
		"*":     "application/octet-stream",
	})
	require.NoError(t, err)

	c := counter.New()

	config := Config{
		Counter:     c,
		Filesystem:  filesystem,
		Types:       types,
		MaxBodySize: 16,
	}

	if full {
		metrics := prometheus.New()
		require.NoError(t, metrics.Register(prometheus.NewSheepCollector("test", c)))

		config.Prometheus = metrics

		buffer := log.NewBufferWriter(log.Ldebug, 100)

		config.Logger = log.New("HTTP").WithOutput(buffer)
		config.LogBuffer = buffer
	}

	s, err := NewServer(config)
	require.NoError(t, err)

	return s, c
}

func TestNewServerConfig(t *testing.T) {
	_, err := NewServer(Config{})
	require.Error(t, err)

	_, err = NewServer(Config{Counter: counter.New()})
	require.Error(t, err)

	filesystem, err := fs.NewDiskFilesystem(fs.DiskConfig{Dir: t.TempDir()})
	require.NoError(t, err)

	_, err = NewServer(Config{Counter: counter.New(), Filesystem: filesystem})
	require.Error(t, err)

	_, err = NewServer(Config{Counter: counter.New(), Filesystem: filesystem, MaxBodySize: 16})
	require.NoError(t, err)
}

func TestServerRoutes(t *testing.T) {
	s, _ := getDummyServer(t, true)

	routes := []string{}
	for _, b := range s.Bindings() {
		routes = append(routes, b.String())
	}

	require.Equal(t, []string{
		"POST /sheep",
		"PUT /sheep",
		"DELETE /sheep",
		"ANY /upload",
		"GET /ping",
		"GET /log",
		"GET /metrics",
		"GET *",
	}, routes)

	s, _ = getDummyServer(t, false)

	require.Equal(t, 6, len(s.Bindings()))
	require.Equal(t, "GET *", s.Bindings()[5].String())
}

func TestServerSheep(t *testing.T) {
	s, c := getDummyServer(t, false)

	response := mock.Request(t, http.StatusOK, s, "POST", "/sheep", strings.NewReader(`{"nbsheep": 10}`))
	require.JSONEq(t, `{"nbsheep":10}`, string(response.Raw))

	response = mock.Request(t, http.StatusOK, s, "PUT", "/sheep", nil)
	require.JSONEq(t, `{"nbsheep":11}`, string(response.Raw))

	require.Equal(t, int64(11), c.Value())

	response = mock.Request(t, http.StatusOK, s, "DELETE", "/sheep", nil)
	require.JSONEq(t, `{"nbsheep":0}`, string(response.Raw))
}

func TestServerSpecificBeforeStatic(t *testing.T) {
	s, _ := getDummyServer(t, false)

	response := mock.Request(t, http.StatusOK, s, "GET", "/ping", nil)
	require.Equal(t, "pong", string(response.Raw))

	response = mock.Request(t, http.StatusOK, s, "GET", "/", nil)
	require.Equal(t, "<h1>sheep</h1>", string(response.Raw))
	require.Equal(t, "text/html", response.Header.Get("Content-Type"))

	response = mock.Request(t, http.StatusNotFound, s, "GET", "/sheep", nil)
	require.Empty(t, response.Raw)
}

func TestServerBodyLimit(t *testing.T) {
	s, c := getDummyServer(t, false)

	body := `{"nbsheep": 5, "padding": "` + strings.Repeat("z", 17*1024) + `"}`

	response := mock.Request(t, http.StatusRequestEntityTooLarge, s, "POST", "/sheep", strings.NewReader(body))
	require.Equal(t, "Request Entity Too Large", response.Message)
	mock.Validate(t, &api.Error{}, response.Data)

	require.Equal(t, int64(0), c.Value())

	body = `{"nbsheep": 5, "padding": "` + strings.Repeat("z", 15*1024) + `"}`

	response = mock.Request(t, http.StatusOK, s, "POST", "/sheep", strings.NewReader(body))
	require.JSONEq(t, `{"nbsheep":5}`, string(response.Raw))
}

func TestServerRequestID(t *testing.T) {
	s, _ := getDummyServer(t, false)

	response := mock.Request(t, http.StatusOK, s, "GET", "/ping", nil)
	require.NotEmpty(t, response.Header.Get("X-Request-ID"))

	other := mock.Request(t, http.StatusOK, s, "GET", "/ping", nil)
	require.NotEqual(t, response.Header.Get("X-Request-ID"), other.Header.Get("X-Request-ID"))
}

func TestServerMetrics(t *testing.T) {
	s, _ := getDummyServer(t, true)

	mock.Request(t, http.StatusOK, s, "PUT", "/sheep", nil)
	mock.Request(t, http.StatusOK, s, "PUT", "/sheep", nil)

	response := mock.Request(t, http.StatusOK, s, "GET", "/metrics", nil)
	require.Contains(t, string(response.Raw), `sheep_count{instance="test"} 2`)

	s, _ = getDummyServer(t, false)

	mock.Request(t, http.StatusNotFound, s, "GET", "/metrics", nil)
}

func TestServerLog(t *testing.T) {
	s, _ := getDummyServer(t, true)

	mock.Request(t, http.StatusOK, s, "PUT", "/sheep", nil)

	response := mock.Request(t, http.StatusOK, s, "GET", "/log", nil)

	lines, ok := response.Data.([]interface{})
	require.True(t, ok)

	found := false
	for _, line := range lines {
		l := line.(string)
		if strings.Contains(l, `method="PUT"`) && strings.Contains(l, `path="/sheep"`) {
			found = true
		}
	}

	require.True(t, found, lines)

	s, _ = getDummyServer(t, false)

	mock.Request(t, http.StatusNotFound, s, "GET", "/log", nil)
}
