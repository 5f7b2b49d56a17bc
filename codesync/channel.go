package codesync

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is the wire envelope shared with the relay.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Channel events. Outbound edits are "code-change", the relay fans them out
// to everyone else as "receive-code".
const (
	EventCodeChange  = "code-change"
	EventReceiveCode = "receive-code"
)

// Helper to decode Event.Data into a typed value
func decodeData[T any](raw interface{}) (T, error) {
	var data T
	bytes, err := json.Marshal(raw)
	if err != nil {
		return data, err
	}
	err = json.Unmarshal(bytes, &data)
	return data, err
}

// Channel mirrors the editor text between connected clients. It is a
// best-effort broadcast: the last received event always wins, there is no
// merge and no ordering guarantee against local edits.
type Channel struct {
	url   string
	token string

	// OnReceive is called from the read goroutine for every inbound
	// receive-code event. It must not block for long.
	OnReceive func(code string)

	writeMu sync.Mutex
	connMu  sync.Mutex
	conn    *websocket.Conn
}

func New(wsURL, token string) *Channel {
	return &Channel{url: wsURL, token: token}
}

// Run connects and keeps reconnecting until ctx is cancelled. Callers start
// it on its own goroutine; inbound events arrive via OnReceive.
func (ch *Channel) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Println("codesync: context cancelled before connection")
			return
		default:
			header := http.Header{}
			if ch.token != "" {
				header.Set("Authorization", "Bearer "+ch.token)
			}

			conn, _, err := websocket.DefaultDialer.Dial(ch.url, header)
			if err != nil {
				log.Printf("codesync: connection failed: %v", err)
				time.Sleep(2 * time.Second)
				continue
			}

			ch.setConn(conn)
			if err := ch.readLoop(ctx, conn); err != nil {
				log.Printf("codesync: socket closed: %v", err)
			}
			ch.setConn(nil)
			conn.Close()

			select {
			case <-ctx.Done():
				return
			default:
				log.Println("codesync: reconnecting in 2 seconds...")
				time.Sleep(2 * time.Second)
			}
		}
	}
}

func (ch *Channel) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			_, msgBytes, err := conn.ReadMessage()
			if err != nil {
				return err
			}

			var event Event
			if err := json.Unmarshal(msgBytes, &event); err != nil {
				log.Println("codesync: invalid event JSON:", err)
				continue
			}

			switch event.Type {
			case EventReceiveCode:
				code, err := decodeData[string](event.Data)
				if err != nil {
					log.Println("codesync: invalid receive-code data:", err)
					continue
				}
				if ch.OnReceive != nil {
					ch.OnReceive(code)
				}
			default:
				log.Println("codesync: unhandled event type:", event.Type)
			}
		}
	}
}

// EmitCodeChange broadcasts the full current editor text. While disconnected
// the edit is simply dropped; the mirror catches up on the next change.
func (ch *Channel) EmitCodeChange(code string) {
	conn := ch.currentConn()
	if conn == nil {
		return
	}

	ch.writeMu.Lock()
	defer ch.writeMu.Unlock()
	if err := conn.WriteJSON(Event{Type: EventCodeChange, Data: code}); err != nil {
		log.Printf("codesync: failed to emit code change: %v", err)
	}
}

func (ch *Channel) Connected() bool {
	return ch.currentConn() != nil
}

func (ch *Channel) setConn(conn *websocket.Conn) {
	ch.connMu.Lock()
	ch.conn = conn
	ch.connMu.Unlock()
}

func (ch *Channel) currentConn() *websocket.Conn {
	ch.connMu.Lock()
	defer ch.connMu.Unlock()
	return ch.conn
}
