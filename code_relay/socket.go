package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"syncode/codesync"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Client struct {
	UUID     string
	Conn     *websocket.Conn
	Username string
}

// Global state: one implicit broadcast group, no rooms.
var clients = map[*websocket.Conn]*Client{}
var clientsMu sync.Mutex

func decodeData[T any](raw interface{}) (T, error) {
	var data T
	bytes, err := json.Marshal(raw)
	if err != nil {
		return data, err
	}
	err = json.Unmarshal(bytes, &data)
	return data, err
}

func HandleSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade failed:", err)
		return
	}
	conn.SetReadLimit(256 * 1024)
	defer conn.Close()

	username := ""
	if usernameRaw, exists := c.Get("username"); exists {
		username, _ = usernameRaw.(string)
	}

	client := registerClient(conn, username)
	log.Printf("client %s (%s) connected", client.UUID, client.Username)

	for {
		_, msgBytes, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var event codesync.Event
		if err := json.Unmarshal(msgBytes, &event); err != nil {
			log.Println("Invalid event format:", err)
			continue
		}

		switch event.Type {
		case codesync.EventCodeChange:
			code, err := decodeData[string](event.Data)
			if err != nil {
				log.Println("Invalid code-change data:", err)
				continue
			}
			// Fan the full text out to everyone else. The sender never gets
			// its own edit back; the latest event a client receives wins.
			broadcastToOthers(conn, codesync.Event{
				Type: codesync.EventReceiveCode,
				Data: code,
			})

		default:
			log.Println("Unknown event type:", event.Type)
		}
	}

	unregisterClient(conn)
	log.Printf("client %s disconnected", client.UUID)
}

func registerClient(conn *websocket.Conn, username string) *Client {
	client := &Client{
		UUID:     uuid.NewString(),
		Conn:     conn,
		Username: username,
	}
	clientsMu.Lock()
	clients[conn] = client
	clientsMu.Unlock()
	return client
}

func unregisterClient(conn *websocket.Conn) {
	clientsMu.Lock()
	delete(clients, conn)
	clientsMu.Unlock()
}

func broadcastToOthers(sender *websocket.Conn, event codesync.Event) {
	jsonBytes, _ := json.Marshal(event)

	clientsMu.Lock()
	defer clientsMu.Unlock()
	for conn := range clients {
		if conn == sender {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, jsonBytes); err != nil {
			log.Println("Failed to send to client:", err)
		}
	}
}
