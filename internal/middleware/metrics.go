package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/creatorlane/creatorlane/pkg/metrics"
)

// Metrics records request latency for each HTTP request. The scrape endpoint
// itself is excluded so Prometheus polling does not dominate the histogram.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		// Prefer the route template so path cardinality stays bounded.
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		metrics.APILatency.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
