package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gorilla-shop/middleware"
	"gorilla-shop/models"
	"gorilla-shop/services"
)

type WishlistController struct {
	wishlist *services.WishlistService
}

func NewWishlistController(wishlist *services.WishlistService) *WishlistController {
	return &WishlistController{wishlist: wishlist}
}

// @Summary Get wishlist
// @Tags Wishlist
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /wishlist [get]
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	items, err := ctrl.wishlist.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get wishlist", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Wishlist retrieved", "data": items})
}

// @Summary Toggle wishlist
// @Description Add the product when absent, remove it when present
// @Tags Wishlist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.WishlistToggleRequest true "Product to toggle"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /wishlist/toggle [post]
func (ctrl *WishlistController) ToggleWishlist(c *gin.Context) {
	var req models.WishlistToggleRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	added, err := ctrl.wishlist.Toggle(c.Request.Context(), middleware.UserID(c), req.ProductID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to toggle wishlist", "error": err.Error()})
		return
	}

	message := "Product removed from wishlist"
	if added {
		message = "Product added to wishlist"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "data": gin.H{"in_wishlist": added}})
}
