// Package middleware provides platform-level Gin middleware.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID is the header carrying the request correlation id.
const HeaderRequestID = "X-Request-ID"

// ContextRequestID is the Gin context key holding the request id.
const ContextRequestID = "requestID"

// RequestID returns a middleware that assigns each request a correlation id.
// An id supplied by the client is kept; otherwise a fresh UUID is generated.
// The id is echoed on the response and stored in the context for log fields.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
