package handler

import (
	"net/http"

	"github.com/datarhei/sheepcounter/counter"
	"github.com/datarhei/sheepcounter/encoding/json"
	"github.com/datarhei/sheepcounter/http/api"
	"github.com/datarhei/sheepcounter/http/router"
	"github.com/datarhei/sheepcounter/log"
)

// The SheepHandler type provides handlers for counting sheep
type SheepHandler struct {
	counter *counter.Counter
	logger  log.Logger
}

// NewSheep returns a new Sheep type. All handlers act on the given counter.
func NewSheep(c *counter.Counter, logger log.Logger) *SheepHandler {
	if logger == nil {
		logger = log.New("")
	}

	return &SheepHandler{
		counter: c,
		logger:  logger,
	}
}

// Start sets the number of sheep to the integer "nbsheep" in the JSON body.
// Anything else in the body starts counting at 0.
func (h *SheepHandler) Start(req *router.Request, res *router.Response) error {
	n, ok := json.Int(req.JSON, "nbsheep")
	if !ok {
		n = 0
	}

	n = h.counter.Set(n)

	h.logger.Debug().WithField("nbsheep", n).Log("Start counting")

	res.JSON(http.StatusOK, api.Sheep{Count: n})

	return nil
}

// Reset sets the number of sheep to 0.
func (h *SheepHandler) Reset(req *router.Request, res *router.Response) error {
	n := h.counter.Reset()

	h.logger.Debug().Log("Reset")

	res.JSON(http.StatusOK, api.Sheep{Count: n})

	return nil
}

// Add counts one more sheep.
func (h *SheepHandler) Add(req *router.Request, res *router.Response) error {
	n := h.counter.Increment()

	res.JSON(http.StatusOK, api.Sheep{Count: n})

	return nil
}
