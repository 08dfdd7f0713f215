package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextKeyRequestID = "request_id"
	headerRequestID     = "X-Request-ID"
)

// RequestID reuses the caller's X-Request-ID or assigns a new one, and
// echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header(headerRequestID, requestID)
		c.Next()
	}
}

// Logger writes one access line per request:
//
//	[request_id] user=<id|-> METHOD /path STATUS bytes latency
//
// The user is known only on routes behind AuthMiddleware.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		size := c.Writer.Size()
		if size < 0 {
			size = 0
		}
		log.Printf("[%s] user=%s %s %s %d %dB %s",
			requestIDOf(c),
			userOf(c),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			size,
			time.Since(start),
		)
		if len(c.Errors) > 0 {
			log.Printf("[%s] handler errors: %s", requestIDOf(c), c.Errors.String())
		}
	}
}

// Recovery turns a panic into the standard 500 error envelope and logs it
// with the request ID.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("[%s] panic recovered: %v", requestIDOf(c), recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "INTERNAL_ERROR", "message": "an internal error occurred"},
		})
	})
}

func requestIDOf(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

func userOf(c *gin.Context) string {
	if id, err := GetUserID(c); err == nil {
		return id.String()
	}
	return "-"
}
