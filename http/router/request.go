package router

import (
	"net/http"
	"sort"

	"github.com/iancoleman/orderedmap"
)

// Map is a string to string map that remembers the order in which the keys
// have been added.
type Map struct {
	m *orderedmap.OrderedMap
}

func NewMap() *Map {
	return &Map{
		m: orderedmap.New(),
	}
}

// Set adds or replaces a value. A replaced value keeps its position.
func (m *Map) Set(key, value string) {
	m.m.Set(key, value)
}

func (m *Map) Get(key string) (string, bool) {
	v, ok := m.m.Get(key)
	if !ok {
		return "", false
	}

	return v.(string), true
}

func (m *Map) Keys() []string {
	keys := m.m.Keys()

	return append([]string(nil), keys...)
}

func (m *Map) Len() int {
	return len(m.m.Keys())
}

// Sort orders the keys lexicographically.
func (m *Map) Sort() {
	m.m.SortKeys(sort.Strings)
}

// Request is the transport independent view of an HTTP request.
type Request struct {
	Verb  Verb
	URL   string // path without the query
	Query string // raw query without the leading "?"

	PathParams *Map // route parameters followed by the query parameters
	Headers    *Map
	Cookies    *Map
	BodyParams *Map // form values, the file name for uploaded files

	Body []byte
	JSON map[string]interface{} // parsed body if it is a JSON object, nil otherwise
}

// NewRequest returns a request with empty parameter maps.
func NewRequest(verb Verb, url string) *Request {
	return &Request{
		Verb:       verb,
		URL:        url,
		PathParams: NewMap(),
		Headers:    NewMap(),
		Cookies:    NewMap(),
		BodyParams: NewMap(),
	}
}

// RequestURI returns the path together with the query, if any.
func (r *Request) RequestURI() string {
	if len(r.Query) == 0 {
		return r.URL
	}

	return r.URL + "?" + r.Query
}

type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyJSON
	BodyBytes
	BodyText
)

// Response is filled in by exactly one handler. A zero Status is written as 200.
type Response struct {
	Status  int
	Headers http.Header
	Kind    BodyKind
	Body    interface{}
}

func NewResponse() *Response {
	return &Response{
		Headers: http.Header{},
	}
}

// JSON sets a JSON document as body.
func (r *Response) JSON(status int, doc interface{}) {
	r.Status = status
	r.Kind = BodyJSON
	r.Body = doc
}

// Blob sets raw bytes as body.
func (r *Response) Blob(status int, contentType string, data []byte) {
	r.Status = status
	r.Kind = BodyBytes
	r.Body = data
	r.Headers.Set("Content-Type", contentType)
}

// Text sets a text as body.
func (r *Response) Text(status int, text string) {
	r.Status = status
	r.Kind = BodyText
	r.Body = text
}

// Empty sets only the status.
func (r *Response) Empty(status int) {
	r.Status = status
	r.Kind = BodyNone
	r.Body = nil
}
