package middleware

import (
	"strconv"
	"time"

	"auth-gateway/internal/metrics"

	"github.com/gin-gonic/gin"
)

// GinMetrics records request counts and latency by route template, so
// provider names and ids in paths do not explode label cardinality.
func GinMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
