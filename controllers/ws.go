package controllers

import (
	"net/http"

	"lightcycle/services"
	"lightcycle/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the connection and joins it to the lobby. The
// socket then speaks the exact same line protocol as the TCP transport,
// one text frame per line.
func HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("ws upgrade failed: %v", err)
		return
	}
	LobbyService.Join(services.NewWSConn(conn))
}
