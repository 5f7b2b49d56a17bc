package main

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"syncode/auth"
	"syncode/codesync"
)

const testReadTimeout = 3 * time.Second

func newRelayTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("JWT_SECRET", "relay-test-secret")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", auth.JwtMiddleware(), HandleSocket)
	server := httptest.NewServer(r)

	t.Cleanup(func() {
		server.CloseClientConnections()
		server.Close()

		clientsMu.Lock()
		for conn := range clients {
			conn.Close()
			delete(clients, conn)
		}
		clientsMu.Unlock()
	})
	return server
}

type peer struct {
	t     *testing.T
	conn  *websocket.Conn
	inbox chan codesync.Event
}

func dialPeer(t *testing.T, server *httptest.Server, username string) *peer {
	t.Helper()

	token, err := auth.GenerateToken("u-"+username, username, "user", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	header := map[string][]string{"Authorization": {"Bearer " + token}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("dial %s: %v", username, err)
	}
	t.Cleanup(func() { conn.Close() })

	p := &peer{t: t, conn: conn, inbox: make(chan codesync.Event, 16)}
	go func() {
		for {
			var event codesync.Event
			if err := conn.ReadJSON(&event); err != nil {
				close(p.inbox)
				return
			}
			p.inbox <- event
		}
	}()
	return p
}

func (p *peer) emit(code string) {
	p.t.Helper()
	err := p.conn.WriteJSON(codesync.Event{Type: codesync.EventCodeChange, Data: code})
	if err != nil {
		p.t.Fatalf("emit: %v", err)
	}
}

func (p *peer) expectCode(want string) {
	p.t.Helper()
	select {
	case event, ok := <-p.inbox:
		if !ok {
			p.t.Fatalf("connection closed while waiting for %q", want)
		}
		if event.Type != codesync.EventReceiveCode {
			p.t.Fatalf("expected receive-code event, got %q", event.Type)
		}
		if code, _ := event.Data.(string); code != want {
			p.t.Fatalf("expected code %q, got %q", want, event.Data)
		}
	case <-time.After(testReadTimeout):
		p.t.Fatalf("timed out waiting for %q", want)
	}
}

func (p *peer) expectSilence() {
	p.t.Helper()
	select {
	case event, ok := <-p.inbox:
		if ok {
			p.t.Fatalf("expected no event, got %+v", event)
		}
	case <-time.After(300 * time.Millisecond):
	}
}

func TestCodeChangeReachesOthersNotSender(t *testing.T) {
	server := newRelayTestServer(t)

	alice := dialPeer(t, server, "alice")
	bob := dialPeer(t, server, "bob")

	alice.emit("print('hi')")

	bob.expectCode("print('hi')")
	alice.expectSilence()
}

func TestLastEventWinsAcrossTabs(t *testing.T) {
	server := newRelayTestServer(t)

	tabA := dialPeer(t, server, "tab-a")
	tabB := dialPeer(t, server, "tab-b")
	observer := dialPeer(t, server, "observer")

	tabA.emit("x")
	observer.expectCode("x")
	tabB.expectCode("x")

	tabB.emit("y")
	observer.expectCode("y")
	tabA.expectCode("y")

	// The observer applied "x" then "y"; the last event wins, no merge.
}

func TestDialWithoutTokenIsRejected(t *testing.T) {
	server := newRelayTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		conn.Close()
		t.Fatalf("expected handshake to fail without token")
	}
	if resp == nil || resp.StatusCode != 401 {
		t.Fatalf("expected 401 handshake response, got %+v", resp)
	}
}

func TestDisconnectedClientIsUnregistered(t *testing.T) {
	server := newRelayTestServer(t)

	alice := dialPeer(t, server, "alice")
	bob := dialPeer(t, server, "bob")

	bob.conn.Close()
	// Give the relay a moment to notice the closed read.
	deadline := time.Now().Add(testReadTimeout)
	for {
		clientsMu.Lock()
		n := len(clients)
		clientsMu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected one registered client, still have %d", n)
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Broadcasting still works for the remaining pair.
	alice.emit("still here")
	alice.expectSilence()
}
