// internal/interfaces/http/middleware/timeout.go
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout cancels requests that outlive the given duration. Routes listed in
// skipRoutes are exempt; streaming endpoints hold their connection open for
// the life of the client and must not be cut off or written to from here.
func Timeout(timeout time.Duration, skipRoutes ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipRoutes))
	for _, route := range skipRoutes {
		skip[route] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.FullPath()]; ok {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.Next()
		}()

		select {
		case <-done:
		case <-ctx.Done():
			c.JSON(http.StatusRequestTimeout, gin.H{
				"error": "Request timeout",
			})
			c.Abort()
		}
	}
}
