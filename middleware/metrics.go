package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var histogramBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// Metrics records request counts and latencies per route.
type Metrics struct {
	gatherer       prometheus.Gatherer
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	photosStored   prometheus.Counter
}

// NewMetrics registers the collectors with reg. Tests pass a fresh registry.
func NewMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		gatherer: gatherer,
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dailylog",
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dailylog",
			Subsystem: "api",
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		photosStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dailylog",
			Subsystem: "api",
			Name:      "photos_stored_total",
			Help:      "Number of photos stored against logs",
		}),
	}
	reg.MustRegister(m.requestTotal, m.requestLatency, m.photosStored)
	return m
}

// Instrument observes every request. Unmatched routes are grouped under "unmatched".
func (m *Metrics) Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"method": c.Request.Method,
			"route":  route,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		m.requestTotal.With(labels).Inc()
		m.requestLatency.With(labels).Observe(time.Since(start).Seconds())
	}
}

// CountPhotos adds the "count" a successful upload handler stored in the context.
func (m *Metrics) CountPhotos() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if n, ok := c.Get(PhotosStoredKey); ok {
			if count, ok := n.(int); ok {
				m.photosStored.Add(float64(count))
			}
		}
	}
}

// PhotosStoredKey is set by the upload handler to the number of stored photos.
const PhotosStoredKey = "photos_stored"

// Handler serves the registered metrics.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
