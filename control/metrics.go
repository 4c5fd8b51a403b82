// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus export of container operation counters.

package control

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/hioload-vector/api"
)

const (
	metricsNamespace = "hioload"
	metricsSubsystem = "vector"
)

// StatsSource is anything that can report a counter snapshot.
type StatsSource interface {
	Stats() api.Stats
}

// StatsCollector adapts a StatsSource to prometheus.Collector. Values are
// read on scrape, so the container pays nothing between scrapes.
type StatsCollector struct {
	src StatsSource

	ops      *prometheus.Desc
	size     *prometheus.Desc
	capacity *prometheus.Desc
	maxSize  *prometheus.Desc
}

// Ensure compile-time interface compliance.
var _ prometheus.Collector = (*StatsCollector)(nil)

// NewStatsCollector builds a collector labelled with the container name.
func NewStatsCollector(name string, src StatsSource) *StatsCollector {
	labels := prometheus.Labels{"vector": name}
	desc := func(metric, help string, variable ...string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, metricsSubsystem, metric),
			help, variable, labels)
	}
	return &StatsCollector{
		src:      src,
		ops:      desc("operations_total", "Container operations by kind", "op"),
		size:     desc("size", "Number of live elements"),
		capacity: desc("capacity", "Number of allocated slots"),
		maxSize:  desc("max_size", "Element ceiling"),
	}
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.ops
	ch <- c.size
	ch <- c.capacity
	ch <- c.maxSize
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	for _, op := range []struct {
		name  string
		value uint64
	}{
		{"push", s.Pushes},
		{"pop", s.Pops},
		{"read", s.Reads},
		{"write", s.Writes},
		{"append", s.Appends},
		{"clear", s.Clears},
		{"grow", s.Grows},
		{"gated", s.Gated},
		{"timeout", s.Timeouts},
		{"failure", s.Failures},
	} {
		ch <- prometheus.MustNewConstMetric(c.ops, prometheus.CounterValue, float64(op.value), op.name)
	}
	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(s.Size))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity))
	ch <- prometheus.MustNewConstMetric(c.maxSize, prometheus.GaugeValue, float64(s.MaxSize))
}
