package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/mentorbridge/mentor_bridge/models"
)

// The hub keeps one live connection per user and pushes their notifications
// as they are created. A user reconnecting replaces the old connection.

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

var (
	clients   = make(map[uuid.UUID]*websocket.Conn)
	clientsMu sync.RWMutex
)

var (
	Register   = make(chan *Client)
	Unregister = make(chan *Client)
)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Notification stream connected: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Notification stream disconnected: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		}
	}
}

// Push delivers a notification to the recipient's live connection, if any.
func Push(userID uuid.UUID, notification *models.Notification) {
	clientsMu.RLock()
	conn, ok := clients[userID]
	clientsMu.RUnlock()
	if !ok {
		return
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		log.Printf("🔥 Failed to marshal notification for push: %v", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		log.Printf("Failed to push notification to %s: %v", userID, err)
	}
}
