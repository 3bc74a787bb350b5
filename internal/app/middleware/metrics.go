package middleware

import (
	"strconv"

	"repairdesk/internal/app/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics считает запросы по маршруту и коду ответа
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
