package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"gorilla-shop/libs"
	"gorilla-shop/models"
	"gorilla-shop/services"
)

const productCacheTTL = 5 * time.Minute

type ProductController struct {
	products *services.ProductService
	cache    *redis.Client
}

func NewProductController(products *services.ProductService, cache *redis.Client) *ProductController {
	return &ProductController{products: products, cache: cache}
}

func productCacheKey(c *gin.Context) string {
	return fmt.Sprintf("products_list_%s", c.Request.URL.RawQuery)
}

func (ctrl *ProductController) invalidateCache() {
	if ctrl.cache == nil {
		return
	}
	ctx := context.Background()
	iter := ctrl.cache.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		ctrl.cache.Del(ctx, iter.Val())
	}
}

// @Summary List products
// @Description Paginated catalog listing with search, category, brand and sort
// @Tags Products
// @Produce json
// @Param q query string false "Search in name and description"
// @Param category query string false "Category slug"
// @Param brand query string false "Brand slug"
// @Param sort query string false "Sort key" Enums(price, -price, name, -name, created_at, -created_at)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	cacheKey := productCacheKey(c)
	if ctrl.cache != nil {
		if cached, err := ctrl.cache.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	filter := services.ProductFilter{
		Query:         c.Query("q"),
		CategorySlug:  c.Query("category"),
		BrandSlug:     c.Query("brand"),
		AvailableOnly: true,
		Sort:          c.Query("sort"),
		Page:          page,
		Limit:         limit,
	}

	response, err := ctrl.products.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list products", "error": err.Error()})
		return
	}

	if ctrl.cache != nil {
		if raw, err := json.Marshal(response); err == nil {
			ctrl.cache.Set(c.Request.Context(), cacheKey, raw, productCacheTTL)
		}
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get product
// @Description Product details by slug, with gallery images
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{slug} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	product, images, err := ctrl.products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get product", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product retrieved",
		"data": gin.H{
			"product":         product,
			"images":          images,
			"price":           product.GetPrice(),
			"discount_amount": product.DiscountAmount(),
			"in_stock":        product.InStock(),
		},
	})
}

// @Summary Create product
// @Description Create a new product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CreateProductRequest true "Product data"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	product, err := ctrl.products.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to create product", "error": err.Error()})
		return
	}

	ctrl.invalidateCache()
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product created successfully", "data": product})
}

// @Summary Update product
// @Description Update product fields (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param body body models.UpdateProductRequest true "Fields to update"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req models.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	product, err := ctrl.products.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to update product", "error": err.Error()})
		return
	}

	ctrl.invalidateCache()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated successfully", "data": product})
}

// @Summary Delete product
// @Description Deactivate a product so it disappears from the catalog (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	if err := ctrl.products.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product", "error": err.Error()})
		return
	}

	ctrl.invalidateCache()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deactivated"})
}

// @Summary Upload product image
// @Description Upload the main product image (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param image formData file true "Product image"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products/{id}/image [post]
func (ctrl *ProductController) UploadProductImage(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image file is required"})
		return
	}

	localPath, err := libs.SaveUploadedImage(c, header)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	url, publicID, err := libs.UploadToCloudinary(localPath, "products")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to upload image", "error": err.Error()})
		return
	}

	if err := ctrl.products.SetImage(c.Request.Context(), id, url, publicID); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save image", "error": err.Error()})
		return
	}

	ctrl.invalidateCache()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image uploaded successfully", "data": gin.H{"image_url": url}})
}
