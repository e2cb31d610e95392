package router

import (
	"database/sql"

	"oesters_backend/internal/config"
	"oesters_backend/internal/handlers"
	"oesters_backend/internal/messenger"
	"oesters_backend/internal/middleware"
	"oesters_backend/internal/repositories"
	"oesters_backend/internal/services"
	"oesters_backend/internal/sessions"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application: repositories, services
// and handlers are wired here, then split into the public storefront surface
// and the JWT-protected admin surface.
func Setup(engine *gin.Engine, db *sql.DB, store sessions.Store, cfg *config.Config) {
	// Initialize Repositories
	catalogRepo := repositories.NewCatalogRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	authRepo := repositories.NewAuthRepository(db)

	// Initialize Services
	links := messenger.NewLinkBuilder(cfg.MessengerBaseURL)
	catalogService := services.NewCatalogService(catalogRepo, db)
	cartService := services.NewCartService(catalogService, store)
	orderService := services.NewOrderService(orderRepo, cartService, store, links, cfg.CurrencySymbol)
	settingsService := services.NewSettingsService(settingsRepo)
	authService := services.NewAuthService(authRepo)

	// Initialize Handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	authHandler := handlers.NewAuthHandler(authService)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler)
	SetupStorefrontRoutes(apiV1, catalogHandler, settingsHandler)
	SetupCartRoutes(apiV1, cartHandler, orderHandler)

	admin := apiV1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(services.RoleAdmin))
	{
		SetupAdminCatalogRoutes(admin, catalogHandler)
		SetupAdminOrderRoutes(admin, orderHandler)
		SetupAdminSettingsRoutes(admin, settingsHandler)
	}
}
