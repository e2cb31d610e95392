package router

import (
	"oesters_backend/internal/handlers"
	"oesters_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh-token", authHandler.Refresh)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.GET("/me", authHandler.GetCurrentUser)
		}
	}
}

// SetupStorefrontRoutes sets up the public read-only catalog and settings
// routes consumed by the customer storefront.
func SetupStorefrontRoutes(apiGroup *gin.RouterGroup, catalogHandler *handlers.CatalogHandler, settingsHandler *handlers.SettingsHandler) {
	apiGroup.GET("/categories", catalogHandler.GetCategories)
	apiGroup.GET("/menu-items", catalogHandler.GetMenuItems)
	apiGroup.GET("/menu-items/:id", catalogHandler.GetMenuItem)
	apiGroup.GET("/store-settings", settingsHandler.GetStoreSettings)
	apiGroup.GET("/payment-methods", settingsHandler.GetPublicPaymentMethods)
	apiGroup.GET("/order-types", settingsHandler.GetPublicOrderTypes)
}

// SetupCartRoutes sets up the session cart and checkout routes. All of them
// identify the caller via the X-Session-ID header.
func SetupCartRoutes(apiGroup *gin.RouterGroup, cartHandler *handlers.CartHandler, orderHandler *handlers.OrderHandler) {
	cartRoutes := apiGroup.Group("/cart")
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.DELETE("", cartHandler.ClearCart)
		cartRoutes.POST("/items", cartHandler.AddToCart)
		cartRoutes.POST("/items/:lineId/decrement", cartHandler.DecrementLine)
		cartRoutes.DELETE("/items/:lineId", cartHandler.DeleteLine)
	}

	apiGroup.POST("/checkout", orderHandler.Checkout)
}

// SetupAdminCatalogRoutes sets up the admin catalog management routes.
func SetupAdminCatalogRoutes(adminGroup *gin.RouterGroup, catalogHandler *handlers.CatalogHandler) {
	categoryRoutes := adminGroup.Group("/categories")
	{
		categoryRoutes.GET("", catalogHandler.GetCategories)
		categoryRoutes.POST("", catalogHandler.CreateCategory)
		categoryRoutes.PUT("/reorder", catalogHandler.ReorderCategories)
		categoryRoutes.PUT("/:id", catalogHandler.UpdateCategory)
		categoryRoutes.DELETE("/:id", catalogHandler.DeleteCategory)
	}

	menuItemRoutes := adminGroup.Group("/menu-items")
	{
		menuItemRoutes.GET("", catalogHandler.GetMenuItems)
		menuItemRoutes.POST("", catalogHandler.CreateMenuItem)
		menuItemRoutes.GET("/:id", catalogHandler.GetMenuItem)
		menuItemRoutes.PUT("/:id", catalogHandler.UpdateMenuItem)
		menuItemRoutes.DELETE("/:id", catalogHandler.DeleteMenuItem)
	}
}

// SetupAdminOrderRoutes sets up the admin order history routes.
func SetupAdminOrderRoutes(adminGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := adminGroup.Group("/orders")
	{
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrder)
		orderRoutes.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
		orderRoutes.DELETE("/:id", orderHandler.DeleteOrder)
	}
}

// SetupAdminSettingsRoutes sets up the admin store configuration routes.
func SetupAdminSettingsRoutes(adminGroup *gin.RouterGroup, settingsHandler *handlers.SettingsHandler) {
	paymentRoutes := adminGroup.Group("/payment-methods")
	{
		paymentRoutes.GET("", settingsHandler.GetPaymentMethods)
		paymentRoutes.POST("", settingsHandler.CreatePaymentMethod)
		paymentRoutes.PUT("/:id", settingsHandler.UpdatePaymentMethod)
		paymentRoutes.DELETE("/:id", settingsHandler.DeletePaymentMethod)
	}

	orderTypeRoutes := adminGroup.Group("/order-types")
	{
		orderTypeRoutes.GET("", settingsHandler.GetOrderTypes)
		orderTypeRoutes.POST("", settingsHandler.SaveOrderType)
		orderTypeRoutes.DELETE("/:id", settingsHandler.DeleteOrderType)
	}

	adminGroup.PUT("/store-settings", settingsHandler.SaveStoreSettings)
}
