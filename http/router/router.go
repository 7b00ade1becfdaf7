// Package router implements the ordered route table. Routes are matched in
// the order they have been registered, the first match wins.
package router

import (
	"fmt"
	"strings"
	"sync"
)

type Verb string

const (
	GET    Verb = "GET"
	POST   Verb = "POST"
	PUT    Verb = "PUT"
	DELETE Verb = "DELETE"
	ANY    Verb = "ANY"
)

// Wildcard is the pattern that matches every path.
const Wildcard = "*"

// VerbOf returns the Verb of a request method. Methods without a constant of
// their own, e.g. PATCH, are only matched by ANY.
func VerbOf(method string) Verb {
	return Verb(strings.ToUpper(method))
}

func (v Verb) valid() bool {
	switch v {
	case GET, POST, PUT, DELETE, ANY:
		return true
	}

	return false
}

// HandlerFunc handles a request by filling in the response. A non-nil error
// makes the dispatcher discard the response and answer with a 500.
type HandlerFunc func(req *Request, res *Response) error

// WithContext binds a typed value to a handler, such that the handler receives
// it with every request.
func WithContext[T any](fn func(req *Request, res *Response, ctx T) error, ctx T) HandlerFunc {
	return func(req *Request, res *Response) error {
		return fn(req, res, ctx)
	}
}

type Binding struct {
	Verb    Verb
	Pattern string
	Handler HandlerFunc
}

func (b Binding) String() string {
	return string(b.Verb) + " " + b.Pattern
}

func (b Binding) matches(verb Verb, url string) bool {
	if b.Verb != ANY && b.Verb != verb {
		return false
	}

	return b.Pattern == Wildcard || b.Pattern == url
}

type Table struct {
	bindings []Binding
	sealed   bool

	lock sync.RWMutex
}

func New() *Table {
	return &Table{}
}

// Register appends a route to the table.
func (t *Table) Register(verb Verb, pattern string, handler HandlerFunc) error {
	if !verb.valid() {
		return fmt.Errorf("unknown verb '%s'", verb)
	}

	if len(pattern) == 0 {
		return fmt.Errorf("a pattern is required")
	}

	if pattern != Wildcard && !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("the pattern '%s' must be '%s' or an absolute path", pattern, Wildcard)
	}

	if handler == nil {
		return fmt.Errorf("a handler is required for %s %s", verb, pattern)
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	if t.sealed {
		return fmt.Errorf("the table is sealed, %s %s can't be registered", verb, pattern)
	}

	t.bindings = append(t.bindings, Binding{
		Verb:    verb,
		Pattern: pattern,
		Handler: handler,
	})

	return nil
}

// Seal prevents any further registrations.
func (t *Table) Seal() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.sealed = true
}

// Match returns the first binding that accepts the verb and the url.
func (t *Table) Match(verb Verb, url string) (Binding, bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	for _, b := range t.bindings {
		if b.matches(verb, url) {
			return b, true
		}
	}

	return Binding{}, false
}

func (t *Table) Bindings() []Binding {
	t.lock.RLock()
	defer t.lock.RUnlock()

	bindings := make([]Binding, len(t.bindings))
	copy(bindings, t.bindings)

	return bindings
}
