package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gorilla-shop/models"
	"gorilla-shop/services"
)

type WebsiteController struct {
	website *services.WebsiteService
}

func NewWebsiteController(website *services.WebsiteService) *WebsiteController {
	return &WebsiteController{website: website}
}

// @Summary Contact us
// @Description Submit a message through the contact form
// @Tags Website
// @Accept json
// @Produce json
// @Param body body models.ContactRequest true "Message"
// @Success 201 {object} models.Response
// @Router /contact [post]
func (ctrl *WebsiteController) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	contact, err := ctrl.website.SubmitContact(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to submit message", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Message received, we will get back to you", "data": contact})
}

// @Summary List contact messages
// @Tags Admin - Website
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.PaginationResponse
// @Router /admin/contacts [get]
func (ctrl *WebsiteController) ListContacts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	contacts, total, err := ctrl.website.ListContacts(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list messages", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Messages retrieved",
		"data":    contacts,
		"meta":    gin.H{"page": page, "limit": limit, "total_items": total},
	})
}

// @Summary Subscribe to newsletter
// @Description Subscribing twice with the same email is a no-op
// @Tags Website
// @Accept json
// @Produce json
// @Param body body models.NewsletterRequest true "Email"
// @Success 200 {object} models.Response
// @Router /newsletter [post]
func (ctrl *WebsiteController) Subscribe(c *gin.Context) {
	var req models.NewsletterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if err := ctrl.website.Subscribe(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to subscribe", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subscribed to newsletter"})
}

// @Summary List newsletter subscribers
// @Tags Admin - Website
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/newsletter [get]
func (ctrl *WebsiteController) ListSubscribers(c *gin.Context) {
	subscribers, err := ctrl.website.ListSubscribers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list subscribers", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subscribers retrieved", "data": subscribers})
}
