package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dorpon-store/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserData(t *testing.T) {
	store := newFakeUserStore(&models.User{
		ID:        "u1",
		Email:     "alice@example.com",
		Name:      "Alice Doe",
		ImageURL:  "https://img.test/alice.png",
		CartItems: models.CartItems{"p1": 2},
	})

	router := gin.New()
	router.GET("/user/data", func(c *gin.Context) { c.Set("user_id", "u1") }, NewUserController(store).GetUserData)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/data", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "Alice Doe", resp.User.Name)
	assert.Equal(t, 2, resp.User.CartItems["p1"])
}

func TestGetUserDataNotFound(t *testing.T) {
	store := newFakeUserStore()

	router := gin.New()
	router.GET("/user/data", func(c *gin.Context) { c.Set("user_id", "ghost") }, NewUserController(store).GetUserData)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/data", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}
