package handler

import (
	"net/http"

	"github.com/datarhei/sheepcounter/http/router"
)

// The PingHandler type provides a handler for a ping request
type PingHandler struct{}

// NewPing returns a new Ping type.
func NewPing() *PingHandler {
	return &PingHandler{}
}

// Ping returns pong
func (p *PingHandler) Ping(req *router.Request, res *router.Response) error {
	res.Text(http.StatusOK, "pong")

	return nil
}
