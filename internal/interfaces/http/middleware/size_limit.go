// internal/interfaces/http/middleware/size_limit.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestSizeLimit rejects requests whose body exceeds maxBytes
func RequestSizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "Request body too large",
			})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
