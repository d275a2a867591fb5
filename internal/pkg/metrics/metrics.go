package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skyatlas",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "skyatlas",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "skyatlas",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Map provider metrics
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skyatlas",
		Subsystem: "staticmap",
		Name:      "upstream_requests_total",
		Help:      "Static map provider requests by outcome (ok, status, transport)",
	}, []string{"provider", "outcome"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "skyatlas",
		Subsystem: "staticmap",
		Name:      "upstream_duration_seconds",
		Help:      "Static map provider latency in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
	}, []string{"provider"})

	FallbacksServed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "skyatlas",
		Subsystem: "staticmap",
		Name:      "fallbacks_served_total",
		Help:      "Map images served by the fallback provider",
	})

	MapErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skyatlas",
		Subsystem: "staticmap",
		Name:      "errors_total",
		Help:      "Static map requests that ended in an error, by kind",
	}, []string{"kind"})

	GalleryItems = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "skyatlas",
		Subsystem: "gallery",
		Name:      "items",
		Help:      "Number of items in the loaded gallery metadata",
	})
)

// ObserveUpstream records one provider attempt.
func ObserveUpstream(provider, outcome string, d time.Duration) {
	UpstreamRequests.WithLabelValues(provider, outcome).Inc()
	UpstreamDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// UnmatchedRoute is the path label for requests no route handled.
const UnmatchedRoute = "unmatched"

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		code := c.Response().StatusCode()
		// Route pattern keeps label cardinality bounded.
		path := c.Route().Path
		// Router errors reach here before the error handler writes them.
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			if code == fiber.StatusNotFound {
				path = UnmatchedRoute
			}
		} else if err != nil {
			code = fiber.StatusInternalServerError
		}
		if path == "" {
			path = UnmatchedRoute
		}
		status := strconv.Itoa(code)
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
