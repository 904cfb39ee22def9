// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/catalog"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-gateway/internal/session"
	"github.com/your-org/storefront-gateway/internal/upstream"
)

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, client *upstream.Client, sessions *session.Manager, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(client, sessions, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/signin", authHandler.SignIn)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/verify-reset-code", authHandler.VerifyResetCode)
		auth.POST("/reset-password", authHandler.ResetPassword)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.SessionRequired(sessions, cfg))
		{
			protected.POST("/signout", authHandler.SignOut)
			protected.PUT("/change-password", authHandler.ChangePassword)
		}
	}
}

// SetupCatalogRoutes sets up the public browsing routes
func SetupCatalogRoutes(rg *gin.RouterGroup, client *upstream.Client, home *catalog.Service) {
	catalogHandler := handlers.NewCatalogHandler(client, home)

	rg.GET("/home", catalogHandler.Home)

	products := rg.Group("/products")
	{
		products.GET("", catalogHandler.GetProducts)
		products.GET("/:id", catalogHandler.GetProduct)
	}

	brands := rg.Group("/brands")
	{
		brands.GET("", catalogHandler.GetBrands)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", catalogHandler.GetCategories)
		categories.GET("/:id", catalogHandler.GetCategory)
	}
}

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, client *upstream.Client, sessions *session.Manager, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(client)

	cart := rg.Group("/cart")
	cart.Use(middleware.SessionRequired(sessions, cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.DELETE("/items/:id", cartHandler.RemoveCartItem)
	}
}

// SetupWishlistRoutes sets up wishlist related routes
func SetupWishlistRoutes(rg *gin.RouterGroup, client *upstream.Client, sessions *session.Manager, cfg *config.Config) {
	wishlistHandler := handlers.NewWishlistHandler(client)

	wishlist := rg.Group("/wishlist")
	wishlist.Use(middleware.SessionRequired(sessions, cfg))
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.POST("", wishlistHandler.AddToWishlist)
		wishlist.DELETE("/:id", wishlistHandler.RemoveFromWishlist)
	}
}

// SetupOrderRoutes sets up order history and checkout routes
func SetupOrderRoutes(rg *gin.RouterGroup, client *upstream.Client, sessions *session.Manager, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(client)
	checkoutHandler := handlers.NewCheckoutHandler(client, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.SessionRequired(sessions, cfg))
	{
		orders.GET("", orderHandler.GetOrders)
	}

	checkout := rg.Group("/checkout")
	checkout.Use(middleware.SessionRequired(sessions, cfg))
	{
		checkout.GET("", checkoutHandler.GetCheckout)
		checkout.POST("", checkoutHandler.SubmitCheckout)
	}
}

// SetupAddressRoutes sets up saved-address routes
func SetupAddressRoutes(rg *gin.RouterGroup, client *upstream.Client, sessions *session.Manager, cfg *config.Config) {
	addressHandler := handlers.NewAddressHandler(client)

	addresses := rg.Group("/addresses")
	addresses.Use(middleware.SessionRequired(sessions, cfg))
	{
		addresses.GET("", addressHandler.GetAddresses)
		addresses.POST("", addressHandler.AddAddress)
		addresses.DELETE("/:id", addressHandler.RemoveAddress)
	}
}
