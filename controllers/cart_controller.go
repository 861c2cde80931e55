package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gorilla-shop/middleware"
	"gorilla-shop/models"
	"gorilla-shop/services"
)

// CartController serves the session-resident cart. Guests and logged-in
// users share the same routes; for logged-in users every mutation is also
// reconciled into the persisted cart.
type CartController struct {
	products services.ProductFinder
	carts    *services.CartService
}

func NewCartController(products services.ProductFinder, carts *services.CartService) *CartController {
	return &CartController{products: products, carts: carts}
}

func (ctrl *CartController) openCart(c *gin.Context) *services.CartSession {
	return services.NewCartSession(middleware.GetSession(c), ctrl.products)
}

// flush persists the session cart and, for logged-in users, mirrors it into
// the database cart.
func (ctrl *CartController) flush(c *gin.Context, cs *services.CartSession) error {
	if err := cs.Flush(); err != nil {
		return err
	}
	if userID := middleware.UserID(c); userID != 0 {
		if err := ctrl.carts.MergeSessionCart(c.Request.Context(), userID, cs); err != nil {
			log.Printf("Failed to merge cart for user %d: %v", userID, err)
		}
	}
	return nil
}

func (ctrl *CartController) cartPayload(c *gin.Context, cs *services.CartSession) (gin.H, error) {
	items, err := cs.Items(c.Request.Context())
	if err != nil {
		return nil, err
	}
	totalPrice, err := cs.TotalPrice(c.Request.Context())
	if err != nil {
		return nil, err
	}
	totalDiscount, err := cs.TotalDiscount(c.Request.Context())
	if err != nil {
		return nil, err
	}
	shipping, err := cs.ShippingCost(c.Request.Context())
	if err != nil {
		return nil, err
	}
	totalPayment, err := cs.TotalPayment(c.Request.Context())
	if err != nil {
		return nil, err
	}

	return gin.H{
		"items":          items,
		"total_quantity": cs.TotalQuantity(),
		"total_price":    totalPrice,
		"total_discount": totalDiscount,
		"shipping_cost":  shipping,
		"total_payment":  totalPayment,
	}, nil
}

// @Summary Get cart
// @Description Current cart with per-line pricing and totals
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cs := ctrl.openCart(c)

	payload, err := ctrl.cartPayload(c, cs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load cart", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart retrieved", "data": payload})
}

// @Summary Add to cart
// @Description Add one unit of a product to the cart, capped by stock
// @Tags Cart
// @Accept json
// @Produce json
// @Param body body models.CartActionRequest true "Product to add"
// @Success 200 {object} models.Response
// @Router /cart/add [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	var req models.CartActionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	cs := ctrl.openCart(c)
	added, err := cs.AddProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add to cart", "error": err.Error()})
		return
	}
	if err := ctrl.flush(c, cs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save cart", "error": err.Error()})
		return
	}

	message := "Product added to cart"
	if !added {
		message = "Product could not be added"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data": gin.H{
			"added":          added,
			"cart":           cs.Snapshot(),
			"total_quantity": cs.TotalQuantity(),
		},
	})
}

// @Summary Update quantity
// @Description Set an explicit quantity for a product already in the cart.
// @Description Invalid or non-positive quantities are ignored.
// @Tags Cart
// @Accept json
// @Produce json
// @Param body body models.CartActionRequest true "Product and quantity"
// @Success 200 {object} models.Response
// @Router /cart/update [post]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	var req models.CartActionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	cs := ctrl.openCart(c)
	cs.UpdateQuantity(req.ProductID, req.Quantity)
	if err := ctrl.flush(c, cs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save cart", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart updated",
		"data": gin.H{
			"cart":           cs.Snapshot(),
			"total_quantity": cs.TotalQuantity(),
		},
	})
}

// @Summary Decrease quantity
// @Description Decrease a line by one unit; at quantity 1 nothing happens
// @Tags Cart
// @Accept json
// @Produce json
// @Param body body models.CartActionRequest true "Product to decrease"
// @Success 200 {object} models.Response
// @Router /cart/decrease [post]
func (ctrl *CartController) DecreaseQuantity(c *gin.Context) {
	var req models.CartActionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	cs := ctrl.openCart(c)
	decreased := cs.DecreaseQuantity(req.ProductID)
	if err := ctrl.flush(c, cs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save cart", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart updated",
		"data": gin.H{
			"decreased":      decreased,
			"cart":           cs.Snapshot(),
			"total_quantity": cs.TotalQuantity(),
		},
	})
}

// @Summary Remove from cart
// @Description Remove a product line entirely
// @Tags Cart
// @Accept json
// @Produce json
// @Param body body models.CartActionRequest true "Product to remove"
// @Success 200 {object} models.Response
// @Router /cart/remove [post]
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	var req models.CartActionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	cs := ctrl.openCart(c)
	cs.RemoveProduct(req.ProductID)
	if err := ctrl.flush(c, cs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save cart", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product removed from cart",
		"data": gin.H{
			"cart":           cs.Snapshot(),
			"total_quantity": cs.TotalQuantity(),
		},
	})
}

// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart/clear [post]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	cs := ctrl.openCart(c)
	cs.Clear()
	if err := ctrl.flush(c, cs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save cart", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
}

// @Summary Sync cart
// @Description Pull the persisted cart into the session and merge back.
// @Description Called after login so the device picks up the stored cart.
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart/sync [post]
func (ctrl *CartController) SyncCart(c *gin.Context) {
	cs := ctrl.openCart(c)

	if err := ctrl.carts.SyncFromDB(c.Request.Context(), middleware.UserID(c), cs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to sync cart", "error": err.Error()})
		return
	}
	if err := cs.Flush(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save cart", "error": err.Error()})
		return
	}

	payload, err := ctrl.cartPayload(c, cs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load cart", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart synced", "data": payload})
}
