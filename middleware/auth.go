package middleware

import (
	"context"
	"net/http"
	"strings"

	"worknook/models"
	"worknook/services/identity"
	"worknook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// principalKey is the gin context key the resolved principal is stored under.
const principalKey = "principal"

// AuthMiddleware resolves the bearer token to a typed principal and stores
// it in the request context. The account's role is cached in Redis so most
// requests skip the account lookup; a cache miss or mismatch falls back to
// the database.
func AuthMiddleware(identitySvc identity.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		accountID, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || accountID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		ctx := context.Background()
		cacheKey := utils.AuthCachePrefix + accountID
		authCache := utils.GetAuthCacheClient()

		if cachedRole, err := authCache.Get(ctx, cacheKey).Result(); err == nil {
			if cachedRole == role {
				principal, ok := principalFor(accountID, role)
				if !ok {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
					return
				}
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				c.Set(principalKey, principal)
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		} else if err != redis.Nil {
			utils.GetLogger().Warn("Auth cache lookup failed, falling back to DB", zap.Error(err))
		}

		// Cache miss: verify the account still exists and the role matches.
		principal, err := identitySvc.ResolvePrincipal(accountID, role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if err := authCache.Set(ctx, cacheKey, principal.Role(), utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("Failed to populate auth cache", zap.Error(err))
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func principalFor(accountID, role string) (models.Principal, bool) {
	switch role {
	case models.RoleClient:
		return models.ClientPrincipal{ID: accountID}, true
	case models.RoleWorker:
		return models.WorkerPrincipal{ID: accountID}, true
	}
	return nil, false
}

// PrincipalFrom returns the principal resolved by AuthMiddleware.
func PrincipalFrom(c *gin.Context) (models.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

// ClientFrom returns the caller as a client principal, if it is one.
func ClientFrom(c *gin.Context) (models.ClientPrincipal, bool) {
	p, ok := PrincipalFrom(c)
	if !ok {
		return models.ClientPrincipal{}, false
	}
	client, ok := p.(models.ClientPrincipal)
	return client, ok
}

// WorkerFrom returns the caller as a worker principal, if it is one.
func WorkerFrom(c *gin.Context) (models.WorkerPrincipal, bool) {
	p, ok := PrincipalFrom(c)
	if !ok {
		return models.WorkerPrincipal{}, false
	}
	worker, ok := p.(models.WorkerPrincipal)
	return worker, ok
}
