package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gorilla-shop/models"
	"gorilla-shop/services"
)

type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *CatalogController) ListCategories(c *gin.Context) {
	categories, err := ctrl.catalog.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list categories", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Categories retrieved", "data": categories})
}

// @Summary Create category
// @Tags Admin - Catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CategoryRequest true "Category data"
// @Success 201 {object} models.Response
// @Router /admin/categories [post]
func (ctrl *CatalogController) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	category, err := ctrl.catalog.CreateCategory(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create category", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Category created successfully", "data": category})
}

// @Summary Update category
// @Tags Admin - Catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param body body models.CategoryRequest true "Category data"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/categories/{id} [patch]
func (ctrl *CatalogController) UpdateCategory(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req models.CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	category, err := ctrl.catalog.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update category", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category updated successfully", "data": category})
}

// @Summary Delete category
// @Tags Admin - Catalog
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/categories/{id} [delete]
func (ctrl *CatalogController) DeleteCategory(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	if err := ctrl.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete category", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted"})
}

// @Summary List brands
// @Tags Brands
// @Produce json
// @Success 200 {object} models.Response
// @Router /brands [get]
func (ctrl *CatalogController) ListBrands(c *gin.Context) {
	brands, err := ctrl.catalog.ListBrands(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list brands", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Brands retrieved", "data": brands})
}

// @Summary Create brand
// @Tags Admin - Catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.BrandRequest true "Brand data"
// @Success 201 {object} models.Response
// @Router /admin/brands [post]
func (ctrl *CatalogController) CreateBrand(c *gin.Context) {
	var req models.BrandRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	brand, err := ctrl.catalog.CreateBrand(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create brand", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Brand created successfully", "data": brand})
}

// @Summary Update brand
// @Tags Admin - Catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Brand ID"
// @Param body body models.BrandRequest true "Brand data"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/brands/{id} [patch]
func (ctrl *CatalogController) UpdateBrand(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req models.BrandRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	brand, err := ctrl.catalog.UpdateBrand(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrBrandNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Brand not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update brand", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Brand updated successfully", "data": brand})
}

// @Summary Delete brand
// @Tags Admin - Catalog
// @Security BearerAuth
// @Produce json
// @Param id path int true "Brand ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/brands/{id} [delete]
func (ctrl *CatalogController) DeleteBrand(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	if err := ctrl.catalog.DeleteBrand(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrBrandNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Brand not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete brand", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Brand deleted"})
}
