// Package dispatcher runs the handler of the matching route for a request and
// turns its outcome into a response.
package dispatcher

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/datarhei/sheepcounter/encoding/json"
	"github.com/datarhei/sheepcounter/http/api"
	"github.com/datarhei/sheepcounter/http/router"

	"github.com/labstack/echo/v4"
)

// Max. memory for parsing multipart forms, the rest is stored in temporary files
const multipartMemory = 32 << 20

type Dispatcher struct {
	table *router.Table
}

func New(table *router.Table) *Dispatcher {
	return &Dispatcher{
		table: table,
	}
}

// Dispatch returns the response of the first route that matches the request.
// Without a matching route the response is a 404 with an empty body. If the
// handler fails, the response is a generic 500, regardless of what the handler
// has written so far.
func (d *Dispatcher) Dispatch(req *router.Request) *router.Response {
	binding, ok := d.table.Match(req.Verb, req.URL)
	if !ok {
		res := router.NewResponse()
		res.Empty(http.StatusNotFound)

		return res
	}

	res, err := invoke(binding.Handler, req)
	if err != nil {
		res = router.NewResponse()
		res.JSON(http.StatusInternalServerError, api.InternalServerError())

		return res
	}

	if res.Status == 0 {
		res.Status = http.StatusOK
	}

	return res
}

func invoke(handler router.HandlerFunc, req *router.Request) (res *router.Response, err error) {
	res = router.NewResponse()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	err = handler(req, res)

	return res, err
}

// Handle is the echo handler for all requests.
func (d *Dispatcher) Handle(c echo.Context) error {
	req, err := NewRequest(c)
	if err != nil {
		return err
	}

	res := d.Dispatch(req)

	return writeResponse(c, res)
}

// NewRequest reads the request from the echo context. An error is only
// returned if the body can't be read.
func NewRequest(c echo.Context) (*router.Request, error) {
	r := c.Request()

	req := router.NewRequest(router.VerbOf(r.Method), r.URL.Path)
	req.Query = r.URL.RawQuery

	for i, name := range c.ParamNames() {
		if name == "*" {
			continue
		}

		req.PathParams.Set(name, c.ParamValues()[i])
	}

	parseQuery(req.PathParams, r.URL.RawQuery)

	for name, values := range r.Header {
		req.Headers.Set(name, strings.Join(values, ", "))
	}

	req.Headers.Sort()

	for _, cookie := range r.Cookies() {
		req.Cookies.Set(cookie.Name, cookie.Value)
	}

	req.Cookies.Sort()

	if r.Body == nil {
		return req, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	req.Body = body

	contentType, _, _ := mime.ParseMediaType(r.Header.Get(echo.HeaderContentType))

	switch contentType {
	case echo.MIMEApplicationJSON:
		if document, err := json.Parse(body); err == nil {
			req.JSON = document
		}
	case echo.MIMEApplicationForm, echo.MIMEMultipartForm:
		r.Body = io.NopCloser(bytes.NewReader(body))
		parseForm(req.BodyParams, r, contentType)
	}

	return req, nil
}

// parseQuery adds the parameters of a raw query to m in the order they appear.
// Malformed parameters are skipped.
func parseQuery(m *router.Map, query string) {
	for len(query) != 0 {
		var param string

		param, query, _ = strings.Cut(query, "&")
		if len(param) == 0 {
			continue
		}

		key, value, _ := strings.Cut(param, "=")

		key, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}

		value, err = url.QueryUnescape(value)
		if err != nil {
			continue
		}

		m.Set(key, value)
	}
}

// parseForm adds the form values of the body to m. Uploaded files are added
// with their file name.
func parseForm(m *router.Map, r *http.Request, contentType string) {
	values := url.Values{}

	if contentType == echo.MIMEMultipartForm {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return
		}

		defer r.MultipartForm.RemoveAll()

		values = r.MultipartForm.Value

		for name, files := range r.MultipartForm.File {
			for _, file := range files {
				values.Add(name, file.Filename)
			}
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return
		}

		values = r.PostForm
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		m.Set(key, strings.Join(values[key], ","))
	}
}

func writeResponse(c echo.Context, res *router.Response) error {
	header := c.Response().Header()

	for name, values := range res.Headers {
		for _, value := range values {
			header.Add(name, value)
		}
	}

	switch res.Kind {
	case router.BodyJSON:
		return c.JSON(res.Status, res.Body)
	case router.BodyBytes:
		data, _ := res.Body.([]byte)
		return c.Blob(res.Status, res.Headers.Get(echo.HeaderContentType), data)
	case router.BodyText:
		text, _ := res.Body.(string)
		return c.String(res.Status, text)
	}

	return c.NoContent(res.Status)
}
