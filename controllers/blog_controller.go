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

type BlogController struct {
	content *services.ContentService
}

func NewBlogController(content *services.ContentService) *BlogController {
	return &BlogController{content: content}
}

// @Summary List posts
// @Description Published blog posts, newest first
// @Tags Blog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /blog [get]
func (ctrl *BlogController) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	posts, total, err := ctrl.content.ListPublished(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list posts", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Posts retrieved",
		"data":    posts,
		"meta":    gin.H{"page": page, "limit": limit, "total_items": total},
	})
}

// @Summary Read post
// @Description Post details with approved comments. Counts the view. Posts
// @Description flagged as members-only require a bearer token.
// @Tags Blog
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /blog/{id} [get]
func (ctrl *BlogController) GetPost(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	authenticated := middleware.UserID(c) != 0
	isAdmin := c.GetString("user_role") == models.RoleAdmin

	post, comments, err := ctrl.content.Read(c.Request.Context(), id, authenticated, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
		case errors.Is(err, services.ErrLoginRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Log in to read this post"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get post", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post retrieved",
		"data":    gin.H{"post": post, "comments": comments},
	})
}

// @Summary Comment on post
// @Description Submit a comment; it appears once approved
// @Tags Blog
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param body body models.CreateCommentRequest true "Comment data"
// @Success 201 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /blog/{id}/comments [post]
func (ctrl *BlogController) CreateComment(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req models.CreateCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	comment, err := ctrl.content.AddComment(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to submit comment", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Comment submitted for review", "data": comment})
}

// @Summary Approve comment
// @Description Release a comment held for moderation (Admin)
// @Tags Admin - Blog
// @Security BearerAuth
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/comments/{id}/approve [patch]
func (ctrl *BlogController) ApproveComment(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	if err := ctrl.content.ApproveComment(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to approve comment", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment approved"})
}

// @Summary List all posts
// @Description Every post including drafts (Admin)
// @Tags Admin - Blog
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /admin/blog [get]
func (ctrl *BlogController) ListAllPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	posts, total, err := ctrl.content.ListAll(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list posts", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Posts retrieved",
		"data":    posts,
		"meta":    gin.H{"page": page, "limit": limit, "total_items": total},
	})
}

// @Summary Create post
// @Tags Admin - Blog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CreatePostRequest true "Post data"
// @Success 201 {object} models.Response
// @Router /admin/blog [post]
func (ctrl *BlogController) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	post, err := ctrl.content.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create post", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Post created successfully", "data": post})
}

// @Summary Update post
// @Tags Admin - Blog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param body body models.UpdatePostRequest true "Fields to update"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/blog/{id} [patch]
func (ctrl *BlogController) UpdatePost(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req models.UpdatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	post, err := ctrl.content.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update post", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post updated successfully", "data": post})
}

// @Summary Delete post
// @Tags Admin - Blog
// @Security BearerAuth
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/blog/{id} [delete]
func (ctrl *BlogController) DeletePost(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	if err := ctrl.content.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete post", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted"})
}
