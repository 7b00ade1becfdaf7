package handler

import (
	"fmt"
	"net/http"

	"github.com/datarhei/sheepcounter/http/router"
	"github.com/datarhei/sheepcounter/prometheus"
)

// The PrometheusHandler type provides a handler function for reading the prometheus metrics
type PrometheusHandler struct {
	metrics prometheus.Reader
}

// NewPrometheus returns a new Prometheus type. You have to provide a prometheus.Reader
func NewPrometheus(metrics prometheus.Reader) *PrometheusHandler {
	return &PrometheusHandler{
		metrics: metrics,
	}
}

// Metrics responds with all metrics in the prometheus text format
func (m *PrometheusHandler) Metrics(req *router.Request, res *router.Response) error {
	data, contentType, err := m.metrics.Exposition()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	res.Blob(http.StatusOK, contentType, data)

	return nil
}
