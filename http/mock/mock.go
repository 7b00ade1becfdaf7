package mock

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/datarhei/sheepcounter/encoding/json"
	"github.com/datarhei/sheepcounter/http/api"
	"github.com/datarhei/sheepcounter/http/errorhandler"

	"github.com/invopop/jsonschema"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func DummyEcho() *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = errorhandler.HTTPErrorHandler
	router.Logger.SetOutput(io.Discard)

	return router
}

type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Header  http.Header
	Raw     []byte
	Data    interface{}
}

// Request sends a request to the router. A non-nil body is sent as JSON.
func Request(t require.TestingT, httpstatus int, router http.Handler, method, path string, data io.Reader) *Response {
	return RequestEx(t, httpstatus, router, method, path, data, true)
}

func RequestEx(t require.TestingT, httpstatus int, router http.Handler, method, path string, data io.Reader, checkResponse bool) *Response {
	req := httptest.NewRequest(method, path, data)
	if data != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	return Do(t, httpstatus, router, req, checkResponse)
}

// Do sends a prepared request to the router and checks the status of the response.
func Do(t require.TestingT, httpstatus int, router http.Handler, req *http.Request, checkResponse bool) *Response {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response *Response

	if checkResponse {
		response = CheckResponse(t, w.Result())
	} else {
		response = CheckResponseMinimal(t, w.Result())
	}

	require.Equal(t, httpstatus, w.Code, string(response.Raw))

	return response
}

func CheckResponseMinimal(t require.TestingT, res *http.Response) *Response {
	response := &Response{
		Code:   res.StatusCode,
		Header: res.Header,
	}

	res.Body.Close()

	return response
}

func CheckResponse(t require.TestingT, res *http.Response) *Response {
	response := &Response{
		Code:   res.StatusCode,
		Header: res.Header,
	}

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	res.Body.Close()

	response.Raw = body

	if strings.Contains(res.Header.Get("Content-Type"), "application/json") {
		err := json.Unmarshal(body, &response.Data)
		require.NoError(t, err)

		if response.Code != http.StatusOK {
			e := api.Error{}
			if err := json.Unmarshal(body, &e); err == nil {
				response.Message = e.Message
			}
		}
	} else {
		response.Data = body
	}

	return response
}

// Validate checks data against the JSON schema of datatype.
func Validate(t require.TestingT, datatype, data interface{}) bool {
	schema, err := jsonschema.Reflect(datatype).MarshalJSON()
	require.NoError(t, err)

	schemaLoader := gojsonschema.NewStringLoader(string(schema))
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	require.NoError(t, err)
	require.True(t, result.Valid(), result.Errors())

	return true
}
