package middleware

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/smartsubstation/auth-server/internal/logger"
)

// Logging logs one line per request with method, path, status and duration.
func Logging(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rlog := l.With(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
			"request_id", requestid.Get(c),
		)

		start := time.Now()
		rlog.Debug("request started")
		c.Next()
		rlog.Info("request completed",
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
