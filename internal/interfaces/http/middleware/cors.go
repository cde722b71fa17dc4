// internal/interfaces/http/middleware/cors.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cafe-backend/internal/config"
)

// CORS handles cross-origin requests from the storefront and back-office
// frontends. Allowed origins come from configuration; a "*." prefix allows
// any subdomain of that host.
func CORS(cfg *config.Config) gin.HandlerFunc {
	allowedMethods := strings.Join(cfg.Security.CORSAllowedMethods, ", ")
	allowedHeaders := strings.Join(cfg.Security.CORSAllowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && originAllowed(origin, cfg.Security.CORSAllowedOrigins) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Methods", allowedMethods)
		c.Header("Access-Control-Allow-Headers", allowedHeaders)
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, entry := range allowed {
		if entry == "*" || entry == origin {
			return true
		}
		if domain, ok := strings.CutPrefix(entry, "*."); ok {
			// Match on a label boundary so evil-example.com does not
			// slip past *.example.com
			if strings.HasSuffix(origin, "."+domain) || strings.HasSuffix(origin, "://"+domain) {
				return true
			}
		}
	}
	return false
}
