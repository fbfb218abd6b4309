package controllers

import (
	"errors"

	"dorpon-store/models"
	"dorpon-store/repositories"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users repositories.UserStore
}

func NewUserController(users repositories.UserStore) *UserController {
	return &UserController{users: users}
}

// @Summary Get user data
// @Description Get the authenticated user's profile and cart
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.UserResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /user/data [get]
func (ctrl *UserController) GetUserData(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := ctrl.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve user"})
		return
	}

	// The storefront client reads the projection from a "user" key.
	c.JSON(200, models.UserResponse{Success: true, User: user})
}
