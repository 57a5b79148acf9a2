package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"tutorcenter/pkg/logger"
)

// Logger writes one line per request. Health probes log at debug.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l := log.WithContext(c.Request.Context())
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.Last().Error())
		}

		switch {
		case c.Writer.Status() >= 500:
			l.Errorw("http request", fields...)
		case isProbe(c.FullPath()):
			l.Debugw("http request", fields...)
		default:
			l.Infow("http request", fields...)
		}
	}
}

func isProbe(route string) bool {
	return route == "/health/live" || route == "/health/ready" || route == "/metrics"
}
