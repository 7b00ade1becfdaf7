package prometheus

import (
	"bytes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

type Metrics interface {
	Register(cs prometheus.Collector) error
	UnregisterAll()
	Reader
}

type Reader interface {
	// Exposition returns all registered metrics in the text exposition format
	// together with its content type.
	Exposition() ([]byte, string, error)
}

type metrics struct {
	registry   *prometheus.Registry
	collectors []prometheus.Collector
}

// New returns an empty registry.
func New() Metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
	}

	return m
}

// NewWithRuntime returns a registry that already carries the Go runtime and
// process collectors.
func NewWithRuntime() (Metrics, error) {
	m := New()

	if err := m.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}

	if err := m.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *metrics) Register(cs prometheus.Collector) error {
	if err := m.registry.Register(cs); err != nil {
		return err
	}

	m.collectors = append(m.collectors, cs)

	return nil
}

func (m *metrics) UnregisterAll() {
	for _, cs := range m.collectors {
		m.registry.Unregister(cs)
	}

	m.collectors = nil
}

func (m *metrics) Exposition() ([]byte, string, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, "", err
	}

	buf := bytes.Buffer{}
	enc := expfmt.NewEncoder(&buf, expfmt.FmtText)

	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return nil, "", err
		}
	}

	return buf.Bytes(), string(expfmt.FmtText), nil
}
