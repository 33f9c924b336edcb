package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireClient rejects callers that are not client principals. It must run
// after AuthMiddleware.
func RequireClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := ClientFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Client role required"})
			return
		}
		c.Next()
	}
}

// RequireWorker rejects callers that are not worker principals. It must run
// after AuthMiddleware.
func RequireWorker() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := WorkerFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Worker role required"})
			return
		}
		c.Next()
	}
}
