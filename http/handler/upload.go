package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/datarhei/sheepcounter/http/router"
)

// The UploadHandler type provides a handler that describes what it received
type UploadHandler struct{}

// NewUpload returns a new Upload type.
func NewUpload() *UploadHandler {
	return &UploadHandler{}
}

// Introspect responds with a plain text report of the method, the url, and
// the parameters, cookies, headers, and form values of the request.
func (h *UploadHandler) Introspect(req *router.Request, res *router.Response) error {
	report := strings.Builder{}

	report.WriteString("Upload file\n\n")
	fmt.Fprintf(&report, "  method is %s\n", req.Verb)
	fmt.Fprintf(&report, "  url is %s\n\n", req.RequestURI())
	fmt.Fprintf(&report, "  parameters from the url are \n%s\n\n", describe(req.PathParams))
	fmt.Fprintf(&report, "  cookies are \n%s\n\n", describe(req.Cookies))
	fmt.Fprintf(&report, "  headers are \n%s\n\n", describe(req.Headers))
	fmt.Fprintf(&report, "  post parameters are \n%s\n\n", describe(req.BodyParams))

	res.Headers.Set("Content-Type", "text/plain; charset=utf-8")
	res.Text(http.StatusOK, report.String())

	return nil
}

// describe lists the entries of m, one per line, in the order of their keys.
func describe(m *router.Map) string {
	if m == nil {
		return ""
	}

	lines := make([]string, 0, m.Len())

	for _, key := range m.Keys() {
		value, _ := m.Get(key)
		lines = append(lines, fmt.Sprintf("key is %s, length is %d, value is %s", key, len(value), value))
	}

	return strings.Join(lines, "\n")
}
