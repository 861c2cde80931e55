package models

type RegisterRequest struct {
	Email     string `json:"email" form:"email" binding:"required,email"`
	Password  string `json:"password" form:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" form:"first_name" binding:"omitempty"`
	LastName  string `json:"last_name" form:"last_name" binding:"omitempty"`
	Phone     string `json:"phone" form:"phone" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordResetConfirmRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Phone     string `json:"phone" form:"phone"`
}

type CreateProductRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Description string `json:"description" form:"description"`
	CategoryID  int64  `json:"category_id" form:"category_id" binding:"required"`
	BrandID     *int64 `json:"brand_id" form:"brand_id"`
	Price       string `json:"price" form:"price" binding:"required"`
	Discount    string `json:"discount" form:"discount"`
	Weight      int    `json:"weight" form:"weight"`
	Taste       string `json:"taste" form:"taste"`
	Stock       int    `json:"stock" form:"stock"`
	Available   bool   `json:"available" form:"available"`
}

type UpdateProductRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	CategoryID  int64  `json:"category_id" form:"category_id"`
	BrandID     *int64 `json:"brand_id" form:"brand_id"`
	Price       string `json:"price" form:"price"`
	Discount    string `json:"discount" form:"discount"`
	Weight      *int   `json:"weight" form:"weight"`
	Taste       string `json:"taste" form:"taste"`
	Stock       *int   `json:"stock" form:"stock"`
	Available   *bool  `json:"available" form:"available"`
}

type CategoryRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Description string `json:"description" form:"description"`
	ParentID    *int64 `json:"parent_id" form:"parent_id"`
	IsActive    *bool  `json:"is_active" form:"is_active"`
}

type BrandRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Description string `json:"description" form:"description"`
	Website     string `json:"website" form:"website"`
	IsActive    *bool  `json:"is_active" form:"is_active"`
}

type CartActionRequest struct {
	ProductID int64  `json:"product_id" form:"product_id" binding:"required"`
	Quantity  string `json:"quantity" form:"quantity"`
}

type CheckoutRequest struct {
	AddressID int64 `json:"address_id" form:"address_id"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required"`
}

type AddressRequest struct {
	AddressType  string `json:"address_type" form:"address_type" binding:"omitempty,oneof=home office other"`
	Label        string `json:"label" form:"label" binding:"required"`
	FullName     string `json:"full_name" form:"full_name" binding:"required"`
	Phone        string `json:"phone" form:"phone" binding:"required"`
	AddressLine1 string `json:"address_line1" form:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2" form:"address_line2"`
	City         string `json:"city" form:"city" binding:"required"`
	State        string `json:"state" form:"state" binding:"required"`
	PostalCode   string `json:"postal_code" form:"postal_code" binding:"required"`
	Country      string `json:"country" form:"country"`
	IsDefault    bool   `json:"is_default" form:"is_default"`
}

type WishlistToggleRequest struct {
	ProductID int64 `json:"product_id" form:"product_id" binding:"required"`
}

type CreatePostRequest struct {
	Title        string `json:"title" form:"title" binding:"required"`
	Content      string `json:"content" form:"content" binding:"required"`
	Published    bool   `json:"published" form:"published"`
	LoginRequire bool   `json:"login_require" form:"login_require"`
}

type UpdatePostRequest struct {
	Title        string `json:"title" form:"title"`
	Content      string `json:"content" form:"content"`
	Published    *bool  `json:"published" form:"published"`
	LoginRequire *bool  `json:"login_require" form:"login_require"`
}

type CreateCommentRequest struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Website string `json:"website" form:"website" binding:"omitempty,url"`
	Comment string `json:"comment" form:"comment" binding:"required"`
}

type ContactRequest struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Subject string `json:"subject" form:"subject" binding:"required"`
	Message string `json:"message" form:"message" binding:"required"`
}

type NewsletterRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}
