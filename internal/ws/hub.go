package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Hub struct {
	mu         sync.RWMutex
	hackathons map[uint]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		hackathons: make(map[uint]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(hackathonID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hackathons[hackathonID] == nil {
		h.hackathons[hackathonID] = make(map[*websocket.Conn]bool)
	}
	h.hackathons[hackathonID][conn] = true
	log.Printf("ws: client connected to hackathon %d (total: %d)", hackathonID, len(h.hackathons[hackathonID]))
}

func (h *Hub) RemoveConnection(hackathonID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.hackathons[hackathonID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.hackathons, hackathonID)
		}
		log.Printf("ws: client disconnected from hackathon %d", hackathonID)
	}
}

func (h *Hub) Broadcast(hackathonID uint, message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.hackathons[hackathonID]))
	for conn := range h.hackathons[hackathonID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	// Failed conns are removed under the write lock, never while
	// iterating the shared map.
	var failed []*websocket.Conn
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			failed = append(failed, conn)
		}
	}
	for _, conn := range failed {
		h.RemoveConnection(hackathonID, conn)
	}
}
