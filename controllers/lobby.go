package controllers

import (
	"net/http"
	"strconv"

	"lightcycle/services"

	"github.com/gin-gonic/gin"
)

// LobbyService is the process-wide lobby, set from main before the router
// starts serving.
var LobbyService *services.Lobby

// LobbyStatus returns the current phase and slot table.
func LobbyStatus(c *gin.Context) {
	c.JSON(http.StatusOK, LobbyService.Snapshot())
}

// KickPlayer kicks whoever occupies the given slot. Kicking an empty slot
// is a no-op and still returns 200, matching the lobby contract.
func KickPlayer(c *gin.Context) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil || slot < 0 || slot >= services.MaxPlayers {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot"})
		return
	}
	LobbyService.Kick(slot)
	c.JSON(http.StatusOK, gin.H{"slot": slot})
}
