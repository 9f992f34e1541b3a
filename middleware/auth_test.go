package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pristine/models"
	"pristine/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// issueToken mints a token for the given role and allowlists its hash in the
// auth cache, mirroring what the login flow does.
func issueToken(t *testing.T, userID string, role models.Role) string {
	t.Helper()
	token, err := utils.GenerateToken(userID, string(role), time.Hour)
	require.NoError(t, err)
	err = utils.AuthCacheClient.Set(context.Background(), utils.AuthCachePrefix+userID, utils.HashToken(token), time.Hour).Err()
	require.NoError(t, err)
	return token
}

// authRouter wires both middlewares in front of handlers that record whether
// they ran.
func authRouter(userHit, adminHit *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(), func(c *gin.Context) {
		*userHit = true
		c.JSON(http.StatusOK, gin.H{"userID": CurrentUserID(c)})
	})
	r.POST("/admin/assign", JWTAuthAdminMiddleware(), func(c *gin.Context) {
		*adminHit = true
		c.JSON(http.StatusOK, gin.H{"message": "assigned"})
	})
	return r
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminMiddlewareRejectsCustomerBeforeHandler(t *testing.T) {
	mr := miniredis.RunT(t)
	utils.AuthCacheClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	var userHit, adminHit bool
	r := authRouter(&userHit, &adminHit)
	token := issueToken(t, "u1", models.RoleCustomer)

	w := serve(r, http.MethodPost, "/admin/assign", token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, adminHit, "admin handler must not run for a customer token")
}

func TestAdminMiddlewareAllowsAdmin(t *testing.T) {
	mr := miniredis.RunT(t)
	utils.AuthCacheClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	var userHit, adminHit bool
	r := authRouter(&userHit, &adminHit)
	token := issueToken(t, "a1", models.RoleAdmin)

	w := serve(r, http.MethodPost, "/admin/assign", token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, adminHit)
}

func TestAuthMiddlewareRejectsMissingAndRevokedTokens(t *testing.T) {
	mr := miniredis.RunT(t)
	utils.AuthCacheClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	var userHit, adminHit bool
	r := authRouter(&userHit, &adminHit)

	w := serve(r, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, userHit)

	// Valid signature but no allowlist entry, as after logout.
	token, err := utils.GenerateToken("u2", string(models.RoleCustomer), time.Hour)
	require.NoError(t, err)
	w = serve(r, http.MethodGet, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, userHit)
}

func TestAuthMiddlewareSetsCurrentUser(t *testing.T) {
	mr := miniredis.RunT(t)
	utils.AuthCacheClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	var userHit, adminHit bool
	r := authRouter(&userHit, &adminHit)
	token := issueToken(t, "u1", models.RoleCustomer)

	w := serve(r, http.MethodGet, "/me", token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, userHit)
	assert.Contains(t, w.Body.String(), `"userID":"u1"`)
}
