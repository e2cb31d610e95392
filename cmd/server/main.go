package main

import (
	"log"
	"net/http"

	"oesters_backend/internal/config"
	"oesters_backend/internal/database"
	"oesters_backend/internal/router"
	"oesters_backend/internal/sessions"
	"oesters_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	utils.InitLogger()

	cfg := config.Load()
	utils.SetJWTSecret(cfg.JWTSecret)

	database.InitDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode, cfg.DBSchema)
	utils.LogInfo("Database initialized")

	store, err := sessions.NewStore(cfg.RedisURL, cfg.CartTTL)
	if err != nil {
		utils.LogError(err, "Failed to connect to session store")
		log.Fatalf("Failed to connect to session store: %v", err)
	}
	defer store.Close()
	utils.LogInfo("Session store initialized")

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Session-ID"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.Setup(engine, database.GetDB(), store, cfg)

	utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.ServerPort})
	if err := engine.Run(":" + cfg.ServerPort); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
