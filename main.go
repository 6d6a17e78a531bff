package main

import (
	"log"
	"net/http"
	"time"

	"lightcycle/config"
	"lightcycle/controllers"
	"lightcycle/routes"
	"lightcycle/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// setupRouter initializes Gin routes and middleware
func setupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket transport, same line protocol as TCP
	r.GET("/ws", controllers.HandleWebSocket)

	return r
}

func main() {
	cfg := config.Load()

	// In-memory match database
	config.SetupDatabase()

	lobby := services.NewLobby(config.DB)
	controllers.LobbyService = lobby

	// TCP game transport
	gameServer := services.NewGameServer(cfg.GameAddr, lobby)
	go func() {
		if err := gameServer.ListenAndServe(); err != nil {
			log.Fatalf("[FATAL] Game server failed: %v", err)
		}
	}()

	router := setupRouter()

	log.Printf("🚀 Light-cycle backend starting (game %s, http %s)", cfg.GameAddr, cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("[FATAL] Failed to start HTTP server: %v", err)
	}
}
