package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gorilla-shop/middleware"
	"gorilla-shop/models"
	"gorilla-shop/services"
)

type AddressController struct {
	addresses *services.AddressService
}

func NewAddressController(addresses *services.AddressService) *AddressController {
	return &AddressController{addresses: addresses}
}

func addressFromRequest(userID int64, req models.AddressRequest) *models.Address {
	addressType := req.AddressType
	if addressType == "" {
		addressType = models.AddressTypeHome
	}
	country := req.Country
	if country == "" {
		country = "Iran"
	}
	return &models.Address{
		UserID:       userID,
		AddressType:  addressType,
		Label:        req.Label,
		FullName:     req.FullName,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      country,
		IsDefault:    req.IsDefault,
	}
}

// @Summary List addresses
// @Tags Addresses
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /addresses [get]
func (ctrl *AddressController) ListAddresses(c *gin.Context) {
	addrs, err := ctrl.addresses.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list addresses", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Addresses retrieved", "data": addrs})
}

// @Summary Create address
// @Description Add an address. The first address automatically becomes the default.
// @Tags Addresses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.AddressRequest true "Address data"
// @Success 201 {object} models.Response
// @Router /addresses [post]
func (ctrl *AddressController) CreateAddress(c *gin.Context) {
	var req models.AddressRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	addr := addressFromRequest(middleware.UserID(c), req)
	if err := ctrl.addresses.Create(c.Request.Context(), addr); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create address", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Address created successfully", "data": addr})
}

// @Summary Update address
// @Tags Addresses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Address ID"
// @Param body body models.AddressRequest true "Address data"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /addresses/{id} [patch]
func (ctrl *AddressController) UpdateAddress(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req models.AddressRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	addr := addressFromRequest(middleware.UserID(c), req)
	addr.ID = id
	if err := ctrl.addresses.Update(c.Request.Context(), addr); err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update address", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address updated successfully", "data": addr})
}

// @Summary Delete address
// @Description Remove an address. The last remaining address cannot be
// @Description deleted; removing the default promotes another address.
// @Tags Addresses
// @Security BearerAuth
// @Produce json
// @Param id path int true "Address ID"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /addresses/{id} [delete]
func (ctrl *AddressController) DeleteAddress(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	err := ctrl.addresses.Delete(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAddressNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address not found"})
		case errors.Is(err, services.ErrLastAddress):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "At least one address is required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete address", "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address deleted"})
}

// @Summary Set default address
// @Tags Addresses
// @Security BearerAuth
// @Produce json
// @Param id path int true "Address ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /addresses/{id}/default [post]
func (ctrl *AddressController) SetDefaultAddress(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	err := ctrl.addresses.SetDefault(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to set default", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Default address updated"})
}
