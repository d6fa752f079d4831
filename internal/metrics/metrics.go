package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels.
const (
	ResultNoScrollbar = "no_scrollbar"
	ResultOK          = "ok"
	ResultAmbiguous   = "ambiguous"
	ResultGeometry    = "geometry_mismatch"
	ResultError       = "error"
)

// Collector counts classifications of one run on its own registry, so that
// runs and tests never share state.
type Collector struct {
	registry        *prometheus.Registry
	classifications *prometheus.CounterVec
	duration        prometheus.Histogram
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pageinfo",
				Name:      "classifications_total",
				Help:      "Classified images by result.",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "pageinfo",
				Name:      "classification_duration_seconds",
				Help:      "Time spent classifying one image, decoding excluded.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
			},
		),
	}
	c.registry.MustRegister(c.classifications, c.duration)
	return c
}

// Observe records one classification. A nil Collector is a no-op.
func (c *Collector) Observe(result string, d time.Duration) {
	if c == nil {
		return
	}
	c.classifications.WithLabelValues(result).Inc()
	c.duration.Observe(d.Seconds())
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// WriteFile dumps all metrics in the text exposition format, suitable for
// the node_exporter textfile collector.
func (c *Collector) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
