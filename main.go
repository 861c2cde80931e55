package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gorilla-shop/config"
	"gorilla-shop/controllers"
	_ "gorilla-shop/docs"
	"gorilla-shop/libs"
	"gorilla-shop/middleware"
	"gorilla-shop/models"
	"gorilla-shop/repositories"
	"gorilla-shop/routes"
	"gorilla-shop/services"
)

// @title Gorilla Shop API
// @version 1.0
// @description E-commerce backend with session carts, checkout snapshots and a blog
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	config.ConnectDB()
	defer config.CloseDB()

	config.ConnectRedis()
	defer config.CloseRedis()

	// redis-backed sessions and tokens when available, in-memory otherwise
	var sessionStore libs.SessionStore
	var tokenStore services.TokenStore
	if config.RedisClient != nil {
		sessionStore = libs.NewRedisSessionStore(config.RedisClient, config.AppConfig.SessionTTL)
		tokenStore = repositories.NewTokenRepository(config.RedisClient)
	} else {
		log.Println("Warning: Redis unavailable, sessions and tokens will not survive a restart")
		sessionStore = libs.NewMemorySessionStore()
		tokenStore = repositories.NewMemoryTokenRepository()
	}

	mailer, err := models.NewEmailService(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUser,
		config.AppConfig.SMTPPass,
		config.AppConfig.SMTPFrom,
	)
	if err != nil {
		log.Println("Warning: email disabled:", err)
	}

	userRepo := repositories.NewUserRepository(config.DB)
	productRepo := repositories.NewProductRepository(config.DB)
	categoryRepo := repositories.NewCategoryRepository(config.DB)
	brandRepo := repositories.NewBrandRepository(config.DB)
	cartRepo := repositories.NewCartRepository(config.DB)
	orderRepo := repositories.NewOrderRepository(config.DB)
	addressRepo := repositories.NewAddressRepository(config.DB)
	wishlistRepo := repositories.NewWishlistRepository(config.DB)
	blogRepo := repositories.NewBlogRepository(config.DB)
	websiteRepo := repositories.NewWebsiteRepository(config.DB)

	// a nil *EmailService must stay a nil interface for the mailer checks
	var accountMailer services.AccountMailer
	var confirmMailer services.ConfirmationMailer
	var contactNotifier services.ContactNotifier
	if mailer != nil {
		accountMailer = mailer
		confirmMailer = mailer
		contactNotifier = mailer
	}

	authService := services.NewAuthService(userRepo, tokenStore, accountMailer, config.AppConfig.BaseURL)
	productService := services.NewProductService(productRepo)
	catalogService := services.NewCatalogService(categoryRepo, brandRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, addressRepo, confirmMailer)
	addressService := services.NewAddressService(addressRepo)
	wishlistService := services.NewWishlistService(wishlistRepo, productRepo)
	contentService := services.NewContentService(blogRepo)
	websiteService := services.NewWebsiteService(websiteRepo, contactNotifier)

	router := gin.Default()
	router.Use(cors.Default())
	router.Use(middleware.SessionMiddleware(sessionStore))

	routes.SetupRoutes(router, routes.Controllers{
		Auth:     controllers.NewAuthController(authService, cartService, productRepo),
		Product:  controllers.NewProductController(productService, config.RedisClient),
		Catalog:  controllers.NewCatalogController(catalogService),
		Cart:     controllers.NewCartController(productRepo, cartService),
		Order:    controllers.NewOrderController(orderService, cartService, productRepo),
		Address:  controllers.NewAddressController(addressService),
		Wishlist: controllers.NewWishlistController(wishlistService),
		Blog:     controllers.NewBlogController(contentService),
		Website:  controllers.NewWebsiteController(websiteService),
	})

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
