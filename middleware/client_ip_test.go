package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func requestContext(remoteAddr string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestClientIPForwardedFor(t *testing.T) {
	c := requestContext("10.0.0.1:4321", map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.2",
	})
	assert.Equal(t, "203.0.113.7", clientIP(c))

	// Leading empty entries are skipped.
	c = requestContext("10.0.0.1:4321", map[string]string{
		"X-Forwarded-For": " , 203.0.113.7",
	})
	assert.Equal(t, "203.0.113.7", clientIP(c))
}

func TestClientIPRealIPFallback(t *testing.T) {
	c := requestContext("10.0.0.1:4321", map[string]string{
		"X-Real-IP": "203.0.113.9",
	})
	assert.Equal(t, "203.0.113.9", clientIP(c))
}

func TestClientIPRemoteAddrFallback(t *testing.T) {
	c := requestContext("203.0.113.5:4321", nil)
	assert.Equal(t, "203.0.113.5", clientIP(c))

	// An address without a port is returned unchanged.
	c = requestContext("203.0.113.5", nil)
	assert.Equal(t, "203.0.113.5", clientIP(c))
}
