package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type contextKey string

const loggerKey = contextKey("logger")

// RequestIDHeader carries the per-request id back to the client.
const RequestIDHeader = "X-Request-ID"

// StructuredLogging injects a request-scoped logger carrying a request id and
// logs each request on completion.
func StructuredLogging(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		logger := base.With(
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)
		c.Header(RequestIDHeader, requestID)
		c.Set(string(loggerKey), logger)

		c.Next()

		logger.Info("request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// LoggerFrom returns the request-scoped logger, or slog.Default outside the middleware.
func LoggerFrom(c *gin.Context) *slog.Logger {
	v, ok := c.Get(string(loggerKey))
	if !ok {
		return slog.Default()
	}
	if l, ok := v.(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
