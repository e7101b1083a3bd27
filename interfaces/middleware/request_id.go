package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"playlist-duration/infrastructure/logger"
)

// HeaderRequestID carries the request id in both directions
const HeaderRequestID = "X-Request-ID"

// RequestID reuses a caller-supplied X-Request-ID or generates one, stores it on
// the request context for logging and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		ctx.Request = ctx.Request.WithContext(logger.ContextWithRequestID(ctx.Request.Context(), id))
		ctx.Header(HeaderRequestID, id)
		ctx.Next()
	}
}

// AccessLog logs one line per request after it completes
func AccessLog() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		logger.WithContext(ctx.Request.Context()).WithFields(map[string]interface{}{
			"method":   ctx.Request.Method,
			"path":     ctx.FullPath(),
			"status":   ctx.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("Request handled")
	}
}
