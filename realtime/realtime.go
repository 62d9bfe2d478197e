package realtime

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

var (
	groupClients = make(map[string]map[*websocket.Conn]bool) // Map of group ID to connected clients
	broadcast    = make(chan ScoreUpdate)                    // Broadcast channel for updates
	mutex        sync.Mutex                                  // Mutex to protect groupClients map
)

// ScoreUpdate notifies group watchers about scoring activity
type ScoreUpdate struct {
	GroupID    string `json:"group_id"`
	StoryID    string `json:"story_id"`
	JudgeName  string `json:"judge_name"`
	UpdateType string `json:"update_type"` // "score", "completed" or "skip"
}

// RegisterClient adds a WebSocket client watching a specific group
func RegisterClient(groupID string, conn *websocket.Conn) {
	mutex.Lock()
	if groupClients[groupID] == nil {
		groupClients[groupID] = make(map[*websocket.Conn]bool)
	}
	groupClients[groupID][conn] = true
	mutex.Unlock()
}

// UnregisterClient removes a WebSocket client from a specific group
func UnregisterClient(groupID string, conn *websocket.Conn) {
	mutex.Lock()
	if clients, exists := groupClients[groupID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(groupClients, groupID)
		}
	}
	mutex.Unlock()
}

// BroadcastScoreUpdate sends updates to all clients watching a specific group
func BroadcastScoreUpdate(update ScoreUpdate) {
	broadcast <- update
}

func handleBroadcast() {
	for {
		update := <-broadcast
		mutex.Lock()
		if clients, exists := groupClients[update.GroupID]; exists {
			for client := range clients {
				if err := client.WriteJSON(update); err != nil {
					log.Printf("WebSocket write error: %v", err)
					client.Close()
					delete(clients, client)
				}
			}
		}
		mutex.Unlock()
	}
}

func init() {
	go handleBroadcast()
}
