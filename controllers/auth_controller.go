package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gorilla-shop/libs"
	"gorilla-shop/middleware"
	"gorilla-shop/models"
	"gorilla-shop/services"
)

type AuthController struct {
	auth     *services.AuthService
	carts    *services.CartService
	products services.ProductFinder
}

func NewAuthController(auth *services.AuthService, carts *services.CartService, products services.ProductFinder) *AuthController {
	return &AuthController{auth: auth, carts: carts, products: products}
}

// @Summary Register
// @Description Register a new customer account. An activation link is emailed.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	user, err := ctrl.auth.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful, check your email to activate your account",
		"data":    user,
	})
}

// @Summary Activate account
// @Description Activate a registered account using the emailed token
// @Tags Auth
// @Produce json
// @Param token path string true "Activation token"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/activate/{token} [get]
func (ctrl *AuthController) Activate(c *gin.Context) {
	err := ctrl.auth.Activate(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired activation link"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to activate account", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account activated, you can now log in"})
}

// @Summary Login
// @Description Log in with email and password, returns a bearer token. Any
// @Description cart built before logging in is merged into the account cart.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	token, user, err := ctrl.auth.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		case errors.Is(err, services.ErrNotVerified):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Account not activated, check your email"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to log in", "error": err.Error()})
		}
		return
	}

	// reconcile the guest cart with the account cart; login succeeds regardless
	if sess := middleware.GetSession(c); sess != nil {
		cs := services.NewCartSession(sess, ctrl.products)
		if err := ctrl.carts.SyncFromDB(c.Request.Context(), user.ID, cs); err != nil {
			log.Printf("Failed to merge cart for user %d on login: %v", user.ID, err)
		} else if err := cs.Flush(); err != nil {
			log.Printf("Failed to save cart for user %d on login: %v", user.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data": gin.H{
			"token": token,
			"user":  user,
		},
	})
}

// @Summary Change password
// @Description Change the password of the logged-in user
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/change-password [post]
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	err := ctrl.auth.ChangePassword(c.Request.Context(), middleware.UserID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Old password is incorrect"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to change password", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}

// @Summary Request password reset
// @Description Email a one-time password reset link
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.PasswordResetRequest true "Account email"
// @Success 200 {object} models.Response
// @Router /auth/password-reset [post]
func (ctrl *AuthController) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	err := ctrl.auth.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to request reset", "error": err.Error()})
		return
	}

	// same answer whether the email exists or not
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "If that email is registered, a reset link has been sent"})
}

// @Summary Reset password
// @Description Set a new password using the emailed reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param body body models.PasswordResetConfirmRequest true "New password"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/password-reset/{token} [post]
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req models.PasswordResetConfirmRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	err := ctrl.auth.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired reset link"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to reset password", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successfully"})
}

// @Summary Get profile
// @Description Get the logged-in user's profile
// @Tags Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	profile, err := ctrl.auth.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get profile", "error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile retrieved",
		"data": gin.H{
			"profile":   profile,
			"full_name": profile.FullName(),
		},
	})
}

// @Summary Update profile
// @Description Update name and phone of the logged-in user
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.Response
// @Router /profile [patch]
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	profile, err := ctrl.auth.UpdateProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update profile", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully", "data": profile})
}

// @Summary Upload profile photo
// @Description Upload a profile photo for the logged-in user
// @Tags Profile
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Profile photo"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /profile/photo [post]
func (ctrl *AuthController) UploadProfilePhoto(c *gin.Context) {
	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Photo file is required"})
		return
	}

	localPath, err := libs.SaveUploadedImage(c, header)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	url, _, err := libs.UploadToCloudinary(localPath, "profiles")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to upload photo", "error": err.Error()})
		return
	}

	if err := ctrl.auth.UpdateProfilePhoto(c.Request.Context(), middleware.UserID(c), url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save photo", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Photo uploaded successfully", "data": gin.H{"photo_url": url}})
}
