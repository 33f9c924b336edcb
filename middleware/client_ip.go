package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIP resolves the originating address for rate limiting. Proxy headers
// win over the socket address so limits follow the real caller behind a load
// balancer.
func clientIP(c *gin.Context) string {
	for _, hop := range strings.Split(c.GetHeader("X-Forwarded-For"), ",") {
		if ip := strings.TrimSpace(hop); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
