package middleware

import (
	"context"
	"net/http"
	"strings"

	"pristine/models"
	"pristine/utils"

	"github.com/gin-gonic/gin"
)

// bearerToken pulls the token out of the Authorization header.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// authenticate validates the bearer token and stores the account's ID and
// role on the context. The token must be valid and its hash must still be on
// file in the auth cache, so logout and re-login revoke older tokens. Aborts
// with a 401 and returns false on failure; never advances the handler chain.
func authenticate(c *gin.Context) bool {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Insufficient authorization"})
		return false
	}

	userID, role, err := utils.ExtractClaimsFromToken(tokenString)
	if err != nil || userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Insufficient authorization"})
		return false
	}

	cache := utils.GetAuthCacheClient()
	storedHash, err := cache.Get(context.Background(), utils.AuthCachePrefix+userID).Result()
	if err != nil || storedHash != utils.HashToken(tokenString) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Session expired, please sign in again"})
		return false
	}

	c.Set("userID", userID)
	c.Set("role", role)
	return true
}

// JWTAuthMiddleware authenticates any signed-in account.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c) {
			return
		}
		c.Next()
	}
}

// JWTAuthAdminMiddleware authenticates the account and additionally requires
// the admin role before any downstream handler runs.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c) {
			return
		}
		if role, _ := c.Get("role"); role != string(models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID from the context.
func CurrentUserID(c *gin.Context) string {
	id, _ := c.Get("userID")
	s, _ := id.(string)
	return s
}
