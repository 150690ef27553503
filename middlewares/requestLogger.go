package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/FamilyQT/initializers"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id and logs it when done.
func RequestLogger(c *gin.Context) {
	requestID := c.GetHeader(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set("requestId", requestID)
	c.Header(RequestIDHeader, requestID)

	start := time.Now()
	c.Next()

	initializers.Log.Infow("request",
		"id", requestID,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"client", c.ClientIP(),
	)
}
