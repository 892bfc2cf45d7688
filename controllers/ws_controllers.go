package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/hub"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// TableEventsHandler -> websocket endpoint for table event observers
func TableEventsHandler(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleInterface.(string)

	if role != "admin" && role != "staff" && role != "display" {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	clientID := hub.RegisterClient(ws, role)
	utils.InfoLogger.Printf("Observer %s connected (role=%s)", clientID, role)

	// Observers are broadcast-only; drain inbound frames until disconnect.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	hub.UnregisterClient(ws)
	utils.InfoLogger.Printf("Observer %s disconnected", clientID)
}
