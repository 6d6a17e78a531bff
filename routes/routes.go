package routes

import (
	"lightcycle/controllers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ----------------------
	// Lobby routes
	// ----------------------
	api.GET("/lobby", controllers.LobbyStatus)              // Slot table + phase
	api.POST("/lobby/kick/:slot", controllers.KickPlayer)   // Kick a slot

	// ----------------------
	// Match routes
	// ----------------------
	api.GET("/matches", controllers.ListMatches)            // Matches this process
	api.GET("/standings", controllers.LatestStandings)      // Latest final standings
}
