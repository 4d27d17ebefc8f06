package middleware

import (
	"time"

	"login-service/internal/logger"

	"github.com/gin-gonic/gin"
)

// AccessLog logs each request after it completes. Query strings are left
// out: the callback carries the authorization code.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency":    time.Since(start).String(),
			"client":     c.ClientIP(),
			"request_id": RequestIDFromContext(c),
		}

		switch {
		case status >= 500:
			logger.Error("request completed", fields)
		case status >= 400:
			logger.Warn("request completed", fields)
		default:
			logger.Info("request completed", fields)
		}
	}
}
