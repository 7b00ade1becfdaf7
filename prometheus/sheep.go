package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SheepReader is the part of the counter the collector needs.
type SheepReader interface {
	Value() int64
}

type sheepCollector struct {
	instance string
	counter  SheepReader

	countDesc *prometheus.Desc
}

func NewSheepCollector(instance string, c SheepReader) prometheus.Collector {
	return &sheepCollector{
		instance: instance,
		counter:  c,
		countDesc: prometheus.NewDesc(
			"sheep_count",
			"Number of sheep counted so far",
			[]string{"instance"}, nil),
	}
}

func (c *sheepCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.countDesc
}

func (c *sheepCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.countDesc, prometheus.GaugeValue, float64(c.counter.Value()), c.instance)
}
