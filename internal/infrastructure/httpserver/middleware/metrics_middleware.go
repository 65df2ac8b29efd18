package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsMiddleware records per-route request counts and latencies.
type MetricsMiddleware struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewMetricsMiddleware(requestsTotal *prometheus.CounterVec, requestDuration *prometheus.HistogramVec) *MetricsMiddleware {
	return &MetricsMiddleware{
		requestsTotal:   requestsTotal,
		requestDuration: requestDuration,
	}
}

// CollectHTTPMetrics labels by the registered route pattern rather than the
// raw URL so post slugs and IDs do not explode the label cardinality.
func (m *MetricsMiddleware) CollectHTTPMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if route == "" || route == "/metrics" {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			elapsed := time.Since(start).Seconds()

			status := strconv.Itoa(c.Response().Status)
			m.requestsTotal.WithLabelValues(c.Request().Method, route, status).Inc()
			m.requestDuration.WithLabelValues(c.Request().Method, route).Observe(elapsed)

			return err
		}
	}
}
