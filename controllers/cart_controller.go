package controllers

import (
	"errors"

	"dorpon-store/models"
	"dorpon-store/repositories"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	users repositories.UserStore
}

func NewCartController(users repositories.UserStore) *CartController {
	return &CartController{users: users}
}

// @Summary Get cart
// @Description Get the authenticated user's cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := ctrl.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart retrieved", "data": user.CartItems})
}

// @Summary Replace cart
// @Description Overwrite the authenticated user's cart with the supplied mapping
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CartUpdateRequest true "Full cart mapping"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/update [post]
func (ctrl *CartController) UpdateCart(c *gin.Context) {
	var req models.CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	// Zero and negative quantities are pruned, never stored.
	cart := req.CartData.Pruned()

	if err := ctrl.users.ReplaceCart(c.Request.Context(), c.GetString("user_id"), cart); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart updated successfully", "data": cart})
}

// @Summary Add to cart
// @Description Merge a quantity delta for one product into the cart
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CartItemRequest true "Product and quantity delta"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/add [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	delta := req.Quantity
	if delta == 0 {
		delta = 1
	}

	cart, err := ctrl.users.AddCartItem(c.Request.Context(), c.GetString("user_id"), req.ProductID, delta)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart updated successfully", "data": cart})
}

// @Summary Set cart item
// @Description Set the explicit quantity for one product; zero removes it
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CartItemRequest true "Product and quantity"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/item [post]
func (ctrl *CartController) SetItem(c *gin.Context) {
	var req models.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	cart, err := ctrl.users.SetCartItem(c.Request.Context(), c.GetString("user_id"), req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart updated successfully", "data": cart})
}
