package websocket

import (
	"sync"

	"BlockJack/internal/utils"

	"github.com/charmbracelet/log"
)

type HubInterface interface {
	BroadcastToPlayers(addrs []string, msg OutgoingMessage)
	ClientByAddress(addr string) (*Client, bool)
	SendToPlayer(addr string, msg OutgoingMessage)
	Close()
}

// envelope is one outbound frame and the seats it is addressed to.
type envelope struct {
	to  []string
	msg OutgoingMessage
}

// Hub owns the address → client table. Only the Run goroutine mutates it;
// the lock lets ClientByAddress read from elsewhere.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	outbound   chan envelope
	incoming   chan IncomingMessage
	quit       chan struct{}
	closeOnce  sync.Once

	// OnIncoming is called on the Run goroutine and must not block on the hub.
	OnIncoming func(IncomingMessage)

	mu      sync.RWMutex
	clients map[string]*Client
	logger  *log.Logger
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan envelope),
		incoming:   make(chan IncomingMessage),
		quit:       make(chan struct{}),
		clients:    make(map[string]*Client),
		logger:     utils.Named("HUB"),
	}
}

func (h *Hub) Run() {
	h.logger.Info("hub started")
	for {
		select {
		case c := <-h.register:
			h.attach(c)
		case c := <-h.unregister:
			h.detach(c)
		case env := <-h.outbound:
			h.fanOut(env)
		case msg := <-h.incoming:
			if h.OnIncoming != nil {
				h.OnIncoming(msg)
			}
		case <-h.quit:
			h.shutdown()
			return
		}
	}
}

// attach replaces any earlier socket for the same wallet.
func (h *Hub) attach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.clients[c.Address]; ok && old != c {
		close(old.Send)
	}
	h.clients[c.Address] = c
	h.logger.Info("register", "address", c.Address, "clients", len(h.clients))
}

// detach ignores clients that were already replaced by a reconnect.
func (h *Hub) detach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.clients[c.Address]; !ok || cur != c {
		return
	}
	delete(h.clients, c.Address)
	close(c.Send)
	h.logger.Info("unregister", "address", c.Address, "clients", len(h.clients))
}

func (h *Hub) fanOut(env envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, addr := range env.to {
		c, ok := h.clients[addr]
		if !ok {
			continue
		}
		// a slow client misses the frame rather than stalling every table
		select {
		case c.Send <- env.msg:
		default:
			h.logger.Warn("send buffer full, dropping", "address", addr, "event", env.msg.Event)
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for addr, c := range h.clients {
		close(c.Send)
		delete(h.clients, addr)
	}
	h.logger.Info("hub stopped")
}

func (h *Hub) enqueue(env envelope) {
	select {
	case h.outbound <- env:
	case <-h.quit:
	}
}

func (h *Hub) BroadcastToPlayers(addrs []string, msg OutgoingMessage) {
	h.enqueue(envelope{to: addrs, msg: msg})
}

func (h *Hub) SendToPlayer(addr string, msg OutgoingMessage) {
	h.enqueue(envelope{to: []string{addr}, msg: msg})
}

func (h *Hub) ClientByAddress(addr string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[addr]
	return c, ok
}

// Close stops Run and closes every client. Safe to call more than once.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.quit) })
}
