// Package metrics records what a single conversion run did, for export
// through the node_exporter textfile collector.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wb2littler"

// Collector holds the metrics of one run on a private registry.
type Collector struct {
	registry *prometheus.Registry

	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration prometheus.Histogram
	PagesTotal         prometheus.Counter
	ObservationsTotal  prometheus.Counter
	RecordsWritten     prometheus.Counter
	FilesWritten       prometheus.Counter
	LastSuccess        prometheus.Gauge
	RunDuration        prometheus.Gauge
}

// NewCollector creates and registers the run metrics.
func NewCollector() *Collector {
	c := &Collector{
		APIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of WindBorne API requests by HTTP status (0 for transport errors)",
			},
			[]string{"status"},
		),
		APIRequestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "WindBorne API request duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
		),
		PagesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "Number of observation pages fetched",
		}),
		ObservationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "observations_fetched_total",
			Help:      "Number of observations fetched",
		}),
		RecordsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_written_total",
			Help:      "Number of little-R records written",
		}),
		FilesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_written_total",
			Help:      "Number of little-R files written",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the run in seconds",
		}),
	}
	c.registry = prometheus.NewRegistry()
	c.registry.MustRegister(
		c.APIRequestsTotal,
		c.APIRequestDuration,
		c.PagesTotal,
		c.ObservationsTotal,
		c.RecordsWritten,
		c.FilesWritten,
		c.LastSuccess,
		c.RunDuration,
	)
	return c
}

// ObserveRequest records one API request. Its signature matches
// wb.RequestHook.
func (c *Collector) ObserveRequest(status int, elapsed time.Duration) {
	c.APIRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	c.APIRequestDuration.Observe(elapsed.Seconds())
}

// Finish records the outcome of the run.
func (c *Collector) Finish(started time.Time, ok bool) {
	now := time.Now()
	c.RunDuration.Set(now.Sub(started).Seconds())
	if ok {
		c.LastSuccess.Set(float64(now.Unix()))
	}
}

// Gatherer exposes the registry, mostly for tests.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteFile writes the metrics in text exposition format. The file is
// replaced atomically.
func (c *Collector) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
