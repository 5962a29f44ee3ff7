package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(hub *Hub, addr string, buf int) *Client {
	return &Client{Address: addr, Send: make(chan OutgoingMessage, buf), Hub: hub}
}

func TestHubBroadcastToPlayers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	c1 := newClient(hub, "0xA", 1)
	c2 := newClient(hub, "0xB", 1)
	hub.register <- c1
	hub.register <- c2

	hub.BroadcastToPlayers([]string{"0xA", "0xB"}, OutgoingMessage{
		Event: EventTableClosed,
		Data:  map[string]interface{}{"table": "t1"},
	})

	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, EventTableClosed, (<-c1.Send).Event)
	assert.Equal(t, EventTableClosed, (<-c2.Send).Event)
}

func TestHubSendToPlayer(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	c1 := newClient(hub, "0xA", 1)
	c2 := newClient(hub, "0xB", 1)
	hub.register <- c1
	hub.register <- c2

	hub.SendToPlayer("0xA", OutgoingMessage{Event: EventPrompt, Data: "bet"})
	time.Sleep(20 * time.Millisecond)

	received := <-c1.Send
	assert.Equal(t, EventPrompt, received.Event)
	assert.Equal(t, "bet", received.Data)

	select {
	case <-c2.Send:
		assert.Fail(t, "B should NOT receive anything")
	default:
	}
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	c := newClient(hub, "0xA", 1)
	hub.register <- c

	hub.SendToPlayer("0xA", OutgoingMessage{Event: "first"})
	hub.SendToPlayer("0xA", OutgoingMessage{Event: "second"})
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, "first", (<-c.Send).Event)
	select {
	case <-c.Send:
		assert.Fail(t, "second frame should have been dropped")
	default:
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	c := newClient(hub, "0xA", 1)
	hub.register <- c
	time.Sleep(10 * time.Millisecond)

	_, ok := hub.ClientByAddress("0xA")
	require.True(t, ok, "client should be registered")

	hub.unregister <- c
	time.Sleep(10 * time.Millisecond)

	_, ok = hub.ClientByAddress("0xA")
	assert.False(t, ok, "client should be removed after unregister")

	_, open := <-c.Send
	assert.False(t, open, "Send is closed on unregister")
}

func TestHubReconnectReplacesClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	old := newClient(hub, "0xA", 1)
	fresh := newClient(hub, "0xA", 1)
	hub.register <- old
	hub.register <- fresh
	time.Sleep(10 * time.Millisecond)

	got, ok := hub.ClientByAddress("0xA")
	require.True(t, ok)
	assert.Same(t, fresh, got)

	_, open := <-old.Send
	assert.False(t, open)

	// a late unregister of the stale client must not evict the new one
	hub.unregister <- old
	time.Sleep(10 * time.Millisecond)
	_, ok = hub.ClientByAddress("0xA")
	assert.True(t, ok)
}

func TestServeWSForwardsIncoming(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	got := make(chan IncomingMessage, 1)
	hub.OnIncoming = func(m IncomingMessage) { got <- m }
	go hub.Run()
	defer hub.Close()

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { c.Set("address", "0xabc") }, ServeWS(hub))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]any{"event": EventBet, "data": map[string]any{"amount": 10}}))

	select {
	case m := <-got:
		assert.Equal(t, "0xabc", m.From)
		assert.Equal(t, EventBet, m.Event)
		assert.Equal(t, float64(10), m.Data.(map[string]any)["amount"])
	case <-time.After(time.Second):
		t.Fatal("incoming message not forwarded")
	}

	hub.SendToPlayer("0xabc", OutgoingMessage{Event: EventPrompt, Data: map[string]any{"kind": "bet"}})
	var out OutgoingMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, EventPrompt, out.Event)
}

func TestHubCloseReleasesClientsAndSenders(t *testing.T) {
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run()
		close(stopped)
	}()

	c := newClient(hub, "0xA", 4)
	hub.register <- c
	hub.Close()
	hub.Close()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}
	_, open := <-c.Send
	assert.False(t, open, "Send is closed on shutdown")
	_, ok := hub.ClientByAddress("0xA")
	assert.False(t, ok)

	// sends after shutdown return instead of blocking forever
	done := make(chan struct{})
	go func() {
		hub.SendToPlayer("0xA", OutgoingMessage{Event: "late"})
		hub.BroadcastToPlayers([]string{"0xA"}, OutgoingMessage{Event: "late"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("send blocked after Close")
	}
}

func TestServeWSRejectsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	r := gin.New()
	r.GET("/ws", ServeWS(hub))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ws", nil))
	assert.Equal(t, 401, w.Code)
}

func BenchmarkHubBroadcast(b *testing.B) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	c1 := newClient(hub, "0xA", 1024)
	c2 := newClient(hub, "0xB", 1024)
	go func() {
		for range c1.Send {
		}
	}()
	go func() {
		for range c2.Send {
		}
	}()
	hub.register <- c1
	hub.register <- c2

	b.ResetTimer()
	msg := OutgoingMessage{Event: "bench", Data: nil}
	for i := 0; i < b.N; i++ {
		hub.BroadcastToPlayers([]string{"0xA", "0xB"}, msg)
	}
}
