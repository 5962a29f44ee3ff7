package manager

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"BlockJack/internal/game/engine"
	"BlockJack/internal/game/table"
	"BlockJack/internal/websocket"
)

const inboxSize = 8

// Seat bridges one websocket player to an engine. It is the engine's Input
// and Presenter; every prompt goes out as a "prompt" message and every
// engine event as a "state" message.
type Seat struct {
	Address string
	hub     websocket.HubInterface
	inbox   chan websocket.IncomingMessage

	mu   sync.RWMutex
	last table.Snapshot
}

func newSeat(address string, hub websocket.HubInterface) *Seat {
	return &Seat{
		Address: address,
		hub:     hub,
		inbox:   make(chan websocket.IncomingMessage, inboxSize),
	}
}

// offer 不阻塞，满了直接丢
func (s *Seat) offer(msg websocket.IncomingMessage) bool {
	select {
	case s.inbox <- msg:
		return true
	default:
		return false
	}
}

func (s *Seat) prompt(kind string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["kind"] = kind
	s.hub.SendToPlayer(s.Address, websocket.OutgoingMessage{Event: websocket.EventPrompt, Data: data})
}

func (s *Seat) next(ctx context.Context) (websocket.IncomingMessage, error) {
	select {
	case <-ctx.Done():
		return websocket.IncomingMessage{}, ctx.Err()
	case msg := <-s.inbox:
		return msg, nil
	}
}

func (s *Seat) RequestBet(ctx context.Context, min, max int) (int, error) {
	s.prompt(websocket.EventBet, map[string]any{"min": min, "max": max})
	msg, err := s.next(ctx)
	if err != nil {
		return 0, err
	}
	if msg.Event != websocket.EventBet {
		return 0, fmt.Errorf("%w: expected %s, got %s", engine.ErrInvalidBet, websocket.EventBet, msg.Event)
	}
	return parseAmount(field(msg.Data, "amount"))
}

func (s *Seat) RequestAction(ctx context.Context) (table.Action, error) {
	s.prompt(websocket.EventAction, nil)
	msg, err := s.next(ctx)
	if err != nil {
		return "", err
	}
	if msg.Event != websocket.EventAction {
		return "", fmt.Errorf("%w: expected %s, got %s", engine.ErrInvalidAction, websocket.EventAction, msg.Event)
	}
	return parseMove(field(msg.Data, "move"))
}

// RequestContinue waits for a "continue" message. Anything else that is still
// queued (a double-tapped hit, a late bet) is answered with an error and
// skipped. Only an explicit yes keeps playing.
func (s *Seat) RequestContinue(ctx context.Context) (bool, error) {
	s.prompt(websocket.EventContinue, nil)
	for {
		msg, err := s.next(ctx)
		if err != nil {
			return false, err
		}
		if msg.Event != websocket.EventContinue {
			s.hub.SendToPlayer(s.Address, websocket.OutgoingMessage{
				Event: websocket.EventError,
				Data:  map[string]any{"message": fmt.Sprintf("expected %s, got %s", websocket.EventContinue, msg.Event)},
			})
			continue
		}
		switch v := field(msg.Data, "again").(type) {
		case bool:
			return v, nil
		case string:
			return strings.EqualFold(strings.TrimSpace(v), "y"), nil
		}
		return false, nil
	}
}

func (s *Seat) Show(ev engine.Event, snap table.Snapshot) {
	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()

	s.hub.SendToPlayer(s.Address, websocket.OutgoingMessage{
		Event: websocket.EventState,
		Data: map[string]any{
			"event": ev,
			"table": snap,
		},
	})
}

// Snapshot returns the last table state shown to the player.
func (s *Seat) Snapshot() table.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func field(data any, key string) any {
	if m, ok := data.(map[string]any); ok {
		return m[key]
	}
	return nil
}

// JSON 数字解出来是 float64，小数直接判非法
func parseAmount(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%w: %v", engine.ErrInvalidBet, n)
		}
		return int(n), nil
	case int:
		return n, nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", engine.ErrInvalidBet, n)
		}
		return i, nil
	}
	return 0, fmt.Errorf("%w: %v", engine.ErrInvalidBet, v)
}

func parseMove(v any) (table.Action, error) {
	s, _ := v.(string)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", string(table.Hit):
		return table.Hit, nil
	case "s", string(table.Stand):
		return table.Stand, nil
	}
	return "", fmt.Errorf("%w: %v", engine.ErrInvalidAction, v)
}
