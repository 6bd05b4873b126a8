package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sgpj-client/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// RequestLoggingMiddleware tags every request with an id, echoing the
// caller's X-Request-ID when present, and logs one line per request.
func RequestLoggingMiddleware(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		entry := logger.WithField("request_id", requestID)
		status := c.Writer.Status()
		latency := time.Since(start)
		if status >= 500 {
			entry.Warnf("Request: %s %s, Status: %d, Latency: %v", c.Request.Method, c.Request.URL.Path, status, latency)
			return
		}
		entry.Infof("Request: %s %s, Status: %d, Latency: %v", c.Request.Method, c.Request.URL.Path, status, latency)
	}
}
