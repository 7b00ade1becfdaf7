package log

import (
	"net/http"
	"testing"

	"github.com/datarhei/sheepcounter/http/mock"
	"github.com/datarhei/sheepcounter/log"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestLogRequests(t *testing.T) {
	buffer := log.NewBufferWriter(log.Ldebug, 10)

	router := mock.DummyEcho()
	router.Use(NewWithConfig(Config{
		Logger: log.New("HTTP").WithOutput(buffer),
	}))

	router.GET("/sheep", func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderXRequestID, "abc")
		return c.String(http.StatusOK, "baa")
	})

	router.GET("/wolf", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "the wolf ate the sheep")
	})

	mock.Request(t, http.StatusOK, router, "GET", "/sheep?n=1", nil)

	events := buffer.Events()
	require.Len(t, events, 1)
	require.Equal(t, log.Ldebug, events[0].Level)
	require.Equal(t, "/sheep?n=1", events[0].Data["path"])
	require.Equal(t, http.StatusOK, events[0].Data["status"])
	require.Equal(t, "abc", events[0].Data["request_id"])

	mock.Request(t, http.StatusNotFound, router, "GET", "/fox", nil)

	events = buffer.Events()
	require.Len(t, events, 2)
	require.Equal(t, log.Lwarn, events[1].Level)
	require.Equal(t, http.StatusNotFound, events[1].Data["status"])

	mock.Request(t, http.StatusInternalServerError, router, "GET", "/wolf", nil)

	events = buffer.Events()
	require.Len(t, events, 3)
	require.Equal(t, log.Lerror, events[2].Level)
	require.Equal(t, http.StatusInternalServerError, events[2].Data["status"])
}
