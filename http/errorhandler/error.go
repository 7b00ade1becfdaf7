package errorhandler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/datarhei/sheepcounter/http/api"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders errors that reach echo, e.g. from the body limit
// middleware, as api.Error.
func HTTPErrorHandler(err error, c echo.Context) {
	var code int
	var message string
	details := []string{}

	if he, ok := err.(api.Error); ok {
		code = he.Code
		message = he.Message
		details = he.Details
	} else if he, ok := err.(*echo.HTTPError); ok {
		if he.Internal != nil {
			if herr, ok := he.Internal.(*echo.HTTPError); ok {
				he = herr
			}
		}

		code = he.Code
		message = http.StatusText(he.Code)
		if detail := fmt.Sprintf("%v", he.Message); detail != message {
			details = strings.Split(detail, "\n")
		}
	} else {
		code = http.StatusInternalServerError
		message = http.StatusText(http.StatusInternalServerError)
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		c.NoContent(code)
		return
	}

	c.JSON(code, api.Error{
		Code:    code,
		Message: message,
		Details: details,
	})
}
