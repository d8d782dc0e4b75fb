package realtime

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var (
	feedClients = make(map[*websocket.Conn]bool) // Connected solve-feed clients
	broadcast   = make(chan SolveUpdate)         // Broadcast channel for solve events
	mutex       sync.Mutex                       // Protects feedClients
)

// SolveUpdate is pushed to feed subscribers when a user clears a level
type SolveUpdate struct {
	UserName    string    `json:"user_name"`
	Level       int       `json:"level"`
	AllComplete bool      `json:"all_complete"`
	Timestamp   time.Time `json:"timestamp"`
}

// RegisterClient adds a WebSocket client to the solve feed
func RegisterClient(conn *websocket.Conn) {
	mutex.Lock()
	feedClients[conn] = true
	mutex.Unlock()
}

// UnregisterClient removes a WebSocket client from the solve feed
func UnregisterClient(conn *websocket.Conn) {
	mutex.Lock()
	delete(feedClients, conn)
	mutex.Unlock()
}

// BroadcastSolve sends a solve event to all feed subscribers
func BroadcastSolve(update SolveUpdate) {
	broadcast <- update
}

func handleBroadcast() {
	for {
		update := <-broadcast
		mutex.Lock()
		for client := range feedClients {
			if err := client.WriteJSON(update); err != nil {
				log.Printf("WebSocket write error: %v", err)
				client.Close()
				delete(feedClients, client)
			}
		}
		mutex.Unlock()
	}
}

func init() {
	go handleBroadcast()
}
