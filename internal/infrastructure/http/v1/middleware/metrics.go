package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"estoque/internal/metrics"
)

// Metrics middleware counts HTTP requests by method, route and status.
// Uses the route template rather than the raw path to keep cardinality low.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
