package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dorpon-store/config"
	"dorpon-store/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.LoadConfig()
	m.Run()
}

func newAuthRouter() *gin.Engine {
	router := gin.New()
	router.GET("/probe", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true})
	})
	return router
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := newAuthRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication required")
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestAuthMiddlewareSetsIdentity(t *testing.T) {
	token, err := utils.GenerateToken("user_42", "bob@example.com", "seller")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/probe", AuthMiddleware(), func(c *gin.Context) {
		assert.Equal(t, "user_42", c.GetString("user_id"))
		assert.Equal(t, "bob@example.com", c.GetString("user_email"))
		assert.Equal(t, "seller", c.GetString("user_role"))
		c.JSON(200, gin.H{"success": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSellerMiddlewareDeniesCustomer(t *testing.T) {
	token, err := utils.GenerateToken("user_7", "carl@example.com", "customer")
	require.NoError(t, err)

	handlerCalled := false
	router := gin.New()
	router.GET("/probe", AuthMiddleware(), SellerMiddleware(), func(c *gin.Context) {
		handlerCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, handlerCalled)
}

func TestSellerMiddlewareAllowsSeller(t *testing.T) {
	token, err := utils.GenerateToken("user_8", "dana@example.com", "seller")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/probe", AuthMiddleware(), SellerMiddleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
