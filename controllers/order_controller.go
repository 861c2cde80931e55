package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gorilla-shop/libs"
	"gorilla-shop/middleware"
	"gorilla-shop/models"
	"gorilla-shop/services"
)

const lastOrderSessionKey = "last_order_id"

type OrderController struct {
	orders   *services.OrderService
	carts    *services.CartService
	products services.ProductFinder
}

func NewOrderController(orders *services.OrderService, carts *services.CartService, products services.ProductFinder) *OrderController {
	return &OrderController{orders: orders, carts: carts, products: products}
}

// @Summary Checkout
// @Description Turn the cart into an order snapshot. The session cart is
// @Description merged into the persisted cart first, then frozen into order
// @Description lines with current prices and the chosen shipping address.
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CheckoutRequest true "Shipping address (0 picks the default)"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /orders/checkout [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	userID := middleware.UserID(c)
	userEmail := c.GetString("user_email")

	cs := services.NewCartSession(middleware.GetSession(c), ctrl.products)
	if err := ctrl.carts.MergeSessionCart(c.Request.Context(), userID, cs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to prepare cart", "error": err.Error()})
		return
	}

	order, err := ctrl.orders.Checkout(c.Request.Context(), userID, req.AddressID, userEmail)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCartEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty"})
		case errors.Is(err, services.ErrAddressRequired):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Register a shipping address before checkout"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Checkout failed", "error": err.Error()})
		}
		return
	}

	cs.Clear()
	if err := cs.Flush(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to clear cart", "error": err.Error()})
		return
	}
	if sess := middleware.GetSession(c); sess != nil {
		sess.Set(lastOrderSessionKey, order.ID)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order placed successfully", "data": order})
}

// @Summary Order confirmation
// @Description One-time confirmation view for the order just placed. The
// @Description order reference is consumed from the session on first read.
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/confirmation [get]
func (ctrl *OrderController) Confirmation(c *gin.Context) {
	sess := middleware.GetSession(c)

	var orderID int64
	if sess == nil || !sess.Pop(lastOrderSessionKey, &orderID) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No recent order to confirm"})
		return
	}

	order, err := ctrl.orders.GetForUser(c.Request.Context(), middleware.UserID(c), orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load order", "error": err.Error()})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order confirmed", "data": order})
}

// @Summary Upload payment receipt
// @Description Attach a payment receipt image to a pending order. The
// @Description receipt is what an admin reviews before verifying payment.
// @Tags Orders
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Order ID"
// @Param receipt formData file true "Receipt image"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id}/receipt [post]
func (ctrl *OrderController) UploadReceipt(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	header, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Receipt file is required"})
		return
	}

	localPath, err := libs.SaveUploadedImage(c, header)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	url, _, err := libs.UploadToCloudinary(localPath, "receipts")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to upload receipt", "error": err.Error()})
		return
	}

	order, err := ctrl.orders.AttachReceipt(c.Request.Context(), middleware.UserID(c), id, url)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		case errors.Is(err, services.ErrReceiptNotAllowed):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Receipt can only be attached to a pending order"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to attach receipt", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Receipt uploaded successfully", "data": order})
}

// @Summary My orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /orders [get]
func (ctrl *OrderController) ListMyOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	orders, total, err := ctrl.orders.ListForUser(c.Request.Context(), middleware.UserID(c), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list orders", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Orders retrieved",
		"data":    orders,
		"meta": gin.H{
			"page": page, "limit": limit, "total_items": total,
		},
	})
}

// @Summary Get my order
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetMyOrder(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	order, err := ctrl.orders.GetForUser(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get order", "error": err.Error()})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order retrieved", "data": order})
}

// @Summary List all orders
// @Description List every order, optionally filtered by status (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param status query string false "Order status"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.PaginationResponse
// @Router /admin/orders [get]
func (ctrl *OrderController) ListAllOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	status := c.Query("status")
	if status != "" && !models.OrderStatus(status).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown order status"})
		return
	}

	orders, total, err := ctrl.orders.List(c.Request.Context(), status, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list orders", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Orders retrieved",
		"data":    orders,
		"meta": gin.H{
			"page": page, "limit": limit, "total_items": total,
		},
	})
}

// @Summary Update order status
// @Description Move an order along its status chain (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param body body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id}/status [patch]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	err := ctrl.orders.UpdateStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status transition not allowed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update status", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated"})
}
