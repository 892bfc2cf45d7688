package hub

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Topic is the broadcast channel name shared by every table event.
const Topic = "TABLE"

// Action tags describing the operation whose result is being fanned out.
const (
	ActionGetAll            = "GET_ALL"
	ActionGetByRestaurant   = "GET_BY_RESTAURANT"
	ActionGet               = "GET"
	ActionAdd               = "ADD"
	ActionUpdate            = "UPDATE"
	ActionDelete            = "DELETE"
	ActionGetAvailableByRes = "GET_AVAILABLE_TABLE_BY_RES"
	ActionStatsSnapshot     = "STATS_SNAPSHOT"
)

type Message struct {
	Topic  string      `json:"topic"`
	Action string      `json:"action"`
	Actor  string      `json:"actor,omitempty"`
	Data   interface{} `json:"data"`
}

type client struct {
	id   string
	role string
}

// Hub holds every connected observer (admin dashboards, floor displays).
type Hub struct {
	clients map[*websocket.Conn]client
	mutex   sync.Mutex
}

var tableHub = Hub{
	clients: make(map[*websocket.Conn]client),
}

// RegisterClient adds a connection to the observer set.
func RegisterClient(conn *websocket.Conn, role string) string {
	id := uuid.NewString()
	tableHub.mutex.Lock()
	defer tableHub.mutex.Unlock()
	tableHub.clients[conn] = client{id: id, role: role}
	return id
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	tableHub.mutex.Lock()
	defer tableHub.mutex.Unlock()
	delete(tableHub.clients, conn)
	conn.Close()
}

// ClientCount reports how many observers are connected.
func ClientCount() int {
	tableHub.mutex.Lock()
	defer tableHub.mutex.Unlock()
	return len(tableHub.clients)
}

// Publish fans a payload out to every connected observer. The send happens off
// the caller's goroutine so the HTTP response path never waits on a slow
// socket. Delivery is at-most-once; errors are logged and discarded.
func Publish(actor, action string, data interface{}) {
	go broadcast(Message{
		Topic:  Topic,
		Action: action,
		Actor:  actor,
		Data:   data,
	})
}

func broadcast(msg Message) {
	tableHub.mutex.Lock()
	defer tableHub.mutex.Unlock()

	if len(tableHub.clients) == 0 {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, cl := range tableHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending %s to client %s (role=%s): %v", msg.Action, cl.id, cl.role, err)
			continue
		}
	}
}
