package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gorilla-shop/controllers"
	"gorilla-shop/middleware"
)

// Controllers bundles every handler group the router mounts.
type Controllers struct {
	Auth     *controllers.AuthController
	Product  *controllers.ProductController
	Catalog  *controllers.CatalogController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
	Address  *controllers.AddressController
	Wishlist *controllers.WishlistController
	Blog     *controllers.BlogController
	Website  *controllers.WebsiteController
}

func SetupRoutes(router *gin.Engine, ctrl Controllers) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	router.POST("/auth/register", ctrl.Auth.Register)
	router.GET("/auth/activate/:token", ctrl.Auth.Activate)
	router.POST("/auth/login", ctrl.Auth.Login)
	router.POST("/auth/password-reset", ctrl.Auth.RequestPasswordReset)
	router.POST("/auth/password-reset/:token", ctrl.Auth.ResetPassword)

	router.GET("/products", ctrl.Product.ListProducts)
	router.GET("/products/:slug", ctrl.Product.GetProduct)
	router.GET("/categories", ctrl.Catalog.ListCategories)
	router.GET("/brands", ctrl.Catalog.ListBrands)

	router.GET("/blog", ctrl.Blog.ListPosts)
	router.POST("/blog/:id/comments", ctrl.Blog.CreateComment)

	router.POST("/contact", ctrl.Website.SubmitContact)
	router.POST("/newsletter", ctrl.Website.Subscribe)

	// cart and blog reading work for guests and logged-in users alike
	optional := router.Group("/")
	optional.Use(middleware.OptionalAuthMiddleware())
	{
		optional.GET("/cart", ctrl.Cart.GetCart)
		optional.POST("/cart/add", ctrl.Cart.AddToCart)
		optional.POST("/cart/update", ctrl.Cart.UpdateQuantity)
		optional.POST("/cart/decrease", ctrl.Cart.DecreaseQuantity)
		optional.POST("/cart/remove", ctrl.Cart.RemoveFromCart)
		optional.POST("/cart/clear", ctrl.Cart.ClearCart)
		optional.GET("/blog/:id", ctrl.Blog.GetPost)
	}

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/auth/change-password", ctrl.Auth.ChangePassword)
		auth.GET("/profile", ctrl.Auth.GetProfile)
		auth.PATCH("/profile", ctrl.Auth.UpdateProfile)
		auth.POST("/profile/photo", ctrl.Auth.UploadProfilePhoto)

		auth.POST("/cart/sync", ctrl.Cart.SyncCart)

		auth.POST("/orders/checkout", ctrl.Order.Checkout)
		auth.GET("/orders/confirmation", ctrl.Order.Confirmation)
		auth.GET("/orders", ctrl.Order.ListMyOrders)
		auth.GET("/orders/:id", ctrl.Order.GetMyOrder)
		auth.POST("/orders/:id/receipt", ctrl.Order.UploadReceipt)

		auth.GET("/addresses", ctrl.Address.ListAddresses)
		auth.POST("/addresses", ctrl.Address.CreateAddress)
		auth.PATCH("/addresses/:id", ctrl.Address.UpdateAddress)
		auth.DELETE("/addresses/:id", ctrl.Address.DeleteAddress)
		auth.POST("/addresses/:id/default", ctrl.Address.SetDefaultAddress)

		auth.GET("/wishlist", ctrl.Wishlist.GetWishlist)
		auth.POST("/wishlist/toggle", ctrl.Wishlist.ToggleWishlist)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/products", ctrl.Product.CreateProduct)
		admin.PATCH("/products/:id", ctrl.Product.UpdateProduct)
		admin.DELETE("/products/:id", ctrl.Product.DeleteProduct)
		admin.POST("/products/:id/image", ctrl.Product.UploadProductImage)

		admin.POST("/categories", ctrl.Catalog.CreateCategory)
		admin.PATCH("/categories/:id", ctrl.Catalog.UpdateCategory)
		admin.DELETE("/categories/:id", ctrl.Catalog.DeleteCategory)
		admin.POST("/brands", ctrl.Catalog.CreateBrand)
		admin.PATCH("/brands/:id", ctrl.Catalog.UpdateBrand)
		admin.DELETE("/brands/:id", ctrl.Catalog.DeleteBrand)

		admin.GET("/orders", ctrl.Order.ListAllOrders)
		admin.PATCH("/orders/:id/status", ctrl.Order.UpdateOrderStatus)

		admin.GET("/blog", ctrl.Blog.ListAllPosts)
		admin.POST("/blog", ctrl.Blog.CreatePost)
		admin.PATCH("/blog/:id", ctrl.Blog.UpdatePost)
		admin.DELETE("/blog/:id", ctrl.Blog.DeletePost)
		admin.PATCH("/comments/:id/approve", ctrl.Blog.ApproveComment)

		admin.GET("/contacts", ctrl.Website.ListContacts)
		admin.GET("/newsletter", ctrl.Website.ListSubscribers)
	}
}
