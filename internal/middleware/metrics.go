// internal/middleware/metrics.go
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ccbangkit/scan-api/internal/metrics"
)

// Metrics records Prometheus histogram metrics for HTTP requests.
// It measures the duration of each request and records it with method, route,
// and status code labels.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Call the handler chain
		c.Next()

		// Record the duration
		duration := time.Since(start).Seconds()

		// Unmatched routes have no template; fall back to the raw path
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		status := strconv.Itoa(c.Writer.Status())
		metrics.RecordHTTPLatency(c.Request.Method, path, status, duration)
	}
}
