// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/interfaces/http/handlers"
	"github.com/skatious/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes onto the given group
func SetupRoutes(api *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, redisClient, logger, cfg)
	productHandler := handlers.NewProductHandler(db, cfg)
	categoryHandler := handlers.NewCategoryHandler(db, cfg)
	reviewHandler := handlers.NewReviewHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)
	discountHandler := handlers.NewDiscountHandler(db, redisClient, cfg)
	promotionHandler := handlers.NewPromotionHandler(db, redisClient, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(db, redisClient, logger, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg)
	paymentHandler := handlers.NewPaymentHandler(db, logger, cfg)
	uploadHandler := handlers.NewUploadHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, cfg)
	userAdminHandler := handlers.NewUserAdminHandler(db, cfg)

	requireAuth := middleware.AuthMiddleware(cfg)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg)
	requireAdmin := middleware.AdminMiddleware()

	// Authentication
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
		auth.GET("/me", requireAuth, authHandler.Me)
	}

	// Catalog
	products := api.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.GET("/:id/reviews", reviewHandler.List)
		products.POST("/:id/reviews", requireAuth, reviewHandler.Create)
	}
	api.DELETE("/reviews/:id", requireAuth, reviewHandler.Delete)

	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.GET("/:id", categoryHandler.Get)
	}

	// Cart and discounts. Anonymous carts are keyed by the X-Session-ID
	// header; signed-in carts by the authenticated user.
	cart := api.Group("/cart", optionalAuth)
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.GET("/count", cartHandler.CartCount)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveCartItem)
		cart.GET("/discount", discountHandler.Current)
		cart.POST("/discount", discountHandler.Apply)
		cart.DELETE("/discount", discountHandler.Remove)
	}

	// Dice roll promotion
	promotion := api.Group("/promotion")
	{
		promotion.GET("/dice", optionalAuth, promotionHandler.Status)
		promotion.POST("/dice/roll", requireAuth, promotionHandler.Roll)
	}

	// Checkout and orders
	api.POST("/checkout", requireAuth, checkoutHandler.PlaceOrder)

	orders := api.Group("/orders", requireAuth)
	{
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
		orders.POST("/:id/cancel", orderHandler.Cancel)
		orders.GET("/:id/invoice", orderHandler.Invoice)
	}

	// Payments
	payment := api.Group("/payment")
	{
		payment.POST("/orders", paymentHandler.CreateOrder)
		payment.POST("/orders/:id", requireAuth, paymentHandler.CreateForOrder)
		payment.POST("/confirm", paymentHandler.Confirm)
	}

	// Back-office
	admin := api.Group("/admin", requireAuth, requireAdmin)
	{
		admin.GET("/products", productHandler.AdminList)
		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Delete)
		admin.POST("/products/:id/images", uploadHandler.UploadProductImage)
		admin.GET("/products/:id/images", uploadHandler.ListProductImages)
		admin.DELETE("/uploads/:id", uploadHandler.DeleteImage)

		admin.POST("/categories", categoryHandler.Create)
		admin.PUT("/categories/:id", categoryHandler.Update)
		admin.DELETE("/categories/:id", categoryHandler.Delete)

		admin.GET("/discounts", discountHandler.ListCodes)
		admin.POST("/discounts", discountHandler.CreateCode)
		admin.PUT("/discounts/:id", discountHandler.UpdateCode)
		admin.DELETE("/discounts/:id", discountHandler.DeleteCode)

		admin.PUT("/promotion/dice", promotionHandler.SetStatus)

		admin.GET("/orders", orderHandler.AdminList)
		admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)

		admin.GET("/users", userAdminHandler.List)
		admin.GET("/users/:id", userAdminHandler.Get)
		admin.PUT("/users/:id/status", userAdminHandler.SetStatus)
	}

	// Profile
	profile := api.Group("/profile", requireAuth)
	{
		profile.GET("", userHandler.GetProfile)
		profile.PUT("", userHandler.UpdateProfile)
		profile.PUT("/password", userHandler.ChangePassword)
		profile.POST("/addresses", userHandler.AddAddress)
		profile.DELETE("/addresses/:id", userHandler.DeleteAddress)
	}
}
