package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storygraph"

// Build outcomes recorded on view builds.
const (
	StatusOK          = "ok"
	StatusEmpty       = "empty"
	StatusUnavailable = "unavailable"
	StatusCanceled    = "canceled"
)

// Collector holds the service's Prometheus metrics on a private registry.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	ViewBuilds   *prometheus.CounterVec
	ViewDuration *prometheus.HistogramVec
	Malformed    *prometheus.CounterVec
	HTTPRequests *prometheus.CounterVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	viewBuilds := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_builds_total",
			Help:      "Total number of graph view builds",
		},
		[]string{"view", "status"},
	)

	viewDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_build_duration_seconds",
			Help:      "Graph view build duration in seconds, including the source fetch",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"view"},
	)

	malformed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_records_total",
			Help:      "Total number of input records skipped as malformed",
		},
		[]string{"source"},
	)

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	registry.MustRegister(viewBuilds, viewDuration, malformed, httpRequests)

	return &Collector{
		registry:     registry,
		ViewBuilds:   viewBuilds,
		ViewDuration: viewDuration,
		Malformed:    malformed,
		HTTPRequests: httpRequests,
	}
}

func (c *Collector) ObserveView(view, status string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.ViewBuilds.WithLabelValues(view, status).Inc()
	c.ViewDuration.WithLabelValues(view).Observe(elapsed.Seconds())
}

func (c *Collector) MalformedRecord(source string) {
	if c == nil {
		return
	}
	c.Malformed.WithLabelValues(source).Inc()
}

func (c *Collector) ObserveRequest(method, route string, status int) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
