package handlers

import (
	"log"
	"net/http"

	"github.com/Shaurya01836/Hackzen-sub006/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket godoc
// @Summary      WebSocket connection for hackathon status events
// @Description  Connect via WebSocket to receive submission status transitions and winner announcements
// @Tags         websocket
// @Param        id path int true "Hackathon ID"
// @Router       /ws/hackathon/{id} [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	hackathonID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(hackathonID, conn)
	defer h.hub.RemoveConnection(hackathonID, conn)

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
