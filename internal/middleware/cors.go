package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const allowedMethods = "GET, HEAD, POST, PUT, PATCH, DELETE, OPTIONS"

// CORSMiddleware configures CORS. An empty list or a "*" entry allows every
// origin; otherwise origins are matched exactly or by host.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	origins := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		trimmed := strings.TrimRight(strings.TrimSpace(o), "/")
		if trimmed == "" {
			continue
		}
		if trimmed == "*" {
			allowAll = true
		}
		origins = append(origins, trimmed)
	}

	return func(c *gin.Context) {
		origin := strings.TrimRight(c.GetHeader("Origin"), "/")

		allowed := allowAll || originAllowed(origin, origins)
		if allowed {
			if origin != "" {
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
			} else {
				c.Header("Access-Control-Allow-Origin", "*")
			}
			c.Header("Access-Control-Allow-Methods", allowedMethods)

			requested := c.GetHeader("Access-Control-Request-Headers")
			if requested == "" {
				requested = "*"
			}
			c.Header("Access-Control-Allow-Headers", requested)
			c.Header("Access-Control-Max-Age", "600")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(origin string, origins []string) bool {
	if origin == "" {
		return false
	}
	for _, o := range origins {
		if origin == o {
			return true
		}
		if !strings.Contains(o, "://") {
			if parsed, err := url.Parse(origin); err == nil && parsed.Host == o {
				return true
			}
		}
	}
	return false
}

// SecurityHeadersMiddleware adds headers suited to a JSON API
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
