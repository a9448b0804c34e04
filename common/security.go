package common

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityMiddleware enforces the host allow-list and HTTPS redirection
// configured on cfg. Both checks are off unless configured.
func SecurityMiddleware(cfg *Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.Request.Host

		// Remove port if present (for local development)
		if i := strings.IndexByte(host, ':'); i != -1 {
			host = host[:i]
		}

		if len(cfg.AllowedHosts) > 0 && !hostAllowed(host, cfg.AllowedHosts) {
			c.String(http.StatusForbidden, "Host not allowed.")
			c.Abort()
			return
		}

		if cfg.EnforceHTTPS && !requestIsSecure(c.Request) {
			target := "https://" + c.Request.Host + c.Request.URL.RequestURI()
			c.Redirect(http.StatusMovedPermanently, target)
			c.Abort()
			return
		}

		c.Next()
	}
}

func hostAllowed(host string, allowed []string) bool {
	for _, h := range allowed {
		if strings.EqualFold(host, h) {
			return true
		}
	}
	return false
}

func requestIsSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return r.Header.Get("X-Forwarded-Proto") == "https"
}
