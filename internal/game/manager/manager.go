package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"BlockJack/internal/game/dealer"
	"BlockJack/internal/game/engine"
	"BlockJack/internal/game/table"
	"BlockJack/internal/lobby"
	"BlockJack/internal/utils"
	"BlockJack/internal/websocket"

	"github.com/charmbracelet/log"
)

type Option func(*GameManager)

// WithSourceFactory gives every new session its own RNG. math/rand sources
// are not safe to share between sessions.
func WithSourceFactory(f func() dealer.Source) Option {
	return func(m *GameManager) { m.newSource = f }
}

func WithReshuffleThreshold(n int) Option {
	return func(m *GameManager) { m.threshold = n }
}

// WithEngineOptions appends options passed to every engine.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(m *GameManager) { m.engineOpts = append(m.engineOpts, opts...) }
}

type session struct {
	tableID string
	seat    *Seat
	cancel  context.CancelFunc
	done    chan struct{}
}

// GameManager 管理所有单人桌，一个钱包地址一局
type GameManager struct {
	mu       sync.RWMutex
	sessions map[string]*session // address → session
	hub      websocket.HubInterface

	threshold  int
	newSource  func() dealer.Source
	engineOpts []engine.Option
	logger     *log.Logger

	// OnSessionEnd runs after a session's engine has returned.
	OnSessionEnd func(address string, balance int)
}

func NewGameManager(hub websocket.HubInterface, opts ...Option) *GameManager {
	m := &GameManager{
		sessions:  make(map[string]*session),
		hub:       hub,
		threshold: engine.DefaultReshuffleThreshold,
		newSource: func() dealer.Source { return dealer.CryptoSource{} },
		logger:    utils.Named("MANAGER"),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// StartTable 创建桌子并异步启动 engine
func (m *GameManager) StartTable(info *lobby.TableInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[info.Address]; ok {
		return fmt.Errorf("player %s already playing at table %s", info.Address, s.tableID)
	}

	t := table.New(info.ID, info.Balance)
	t.Address = info.Address
	t.CreatedAt = info.CreatedAt

	seat := newSeat(info.Address, m.hub)
	opts := []engine.Option{
		engine.WithSource(m.newSource()),
		engine.WithReshuffleThreshold(m.threshold),
		engine.WithLogger(utils.Named("ENGINE")),
	}
	opts = append(opts, m.engineOpts...)
	eng := engine.NewEngine(t, seat, seat, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{tableID: info.ID, seat: seat, cancel: cancel, done: make(chan struct{})}
	m.sessions[info.Address] = s

	go m.run(ctx, info.Address, s, eng)

	m.logger.Info("table started", "table", info.ID, "address", info.Address, "balance", info.Balance)
	return nil
}

func (m *GameManager) run(ctx context.Context, address string, s *session, eng *engine.Engine) {
	defer close(s.done)

	balance, err := eng.Run(ctx)

	m.mu.Lock()
	if cur, ok := m.sessions[address]; ok && cur == s {
		delete(m.sessions, address)
	}
	m.mu.Unlock()

	data := map[string]any{"tableId": s.tableID, "balance": balance}
	switch {
	case err == nil:
		m.logger.Info("table closed", "table", s.tableID, "balance", balance)
	case errors.Is(err, context.Canceled):
		m.logger.Info("table stopped", "table", s.tableID, "balance", balance)
		data["reason"] = "stopped"
	default:
		m.logger.Error("session failed", "table", s.tableID, "err", err)
		data["reason"] = err.Error()
	}
	m.hub.SendToPlayer(address, websocket.OutgoingMessage{Event: websocket.EventTableClosed, Data: data})

	if m.OnSessionEnd != nil {
		m.OnSessionEnd(address, balance)
	}
}

// HandlePlayerMessage 统一入口（来自 Hub.OnIncoming）。
// It runs on the hub goroutine, so it never waits on the hub itself.
func (m *GameManager) HandlePlayerMessage(msg websocket.IncomingMessage) {
	m.mu.RLock()
	s := m.sessions[msg.From]
	m.mu.RUnlock()

	if s == nil {
		go m.reply(msg.From, "not seated at a table")
		return
	}

	switch msg.Event {
	case websocket.EventBet, websocket.EventAction, websocket.EventContinue:
		if !s.seat.offer(msg) {
			go m.reply(msg.From, "too many pending messages")
		}
	default:
		go m.reply(msg.From, fmt.Sprintf("unknown event %q", msg.Event))
	}
}

func (m *GameManager) reply(addr, text string) {
	m.hub.SendToPlayer(addr, websocket.OutgoingMessage{
		Event: websocket.EventError,
		Data:  map[string]any{"message": text},
	})
}

// StopSession cancels the address's session. The returned channel closes
// once the engine has returned; it is nil when nothing was running.
func (m *GameManager) StopSession(address string) <-chan struct{} {
	m.mu.RLock()
	s := m.sessions[address]
	m.mu.RUnlock()
	if s == nil {
		return nil
	}
	s.cancel()
	return s.done
}

// Snapshot returns the last state shown at the address's table.
func (m *GameManager) Snapshot(address string) (table.Snapshot, bool) {
	m.mu.RLock()
	s := m.sessions[address]
	m.mu.RUnlock()
	if s == nil {
		return table.Snapshot{}, false
	}
	return s.seat.Snapshot(), true
}

// Sessions lists the addresses with a running table.
func (m *GameManager) Sessions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.sessions))
	for addr := range m.sessions {
		out = append(out, addr)
	}
	return out
}

// Shutdown stops every session and waits for them to finish.
func (m *GameManager) Shutdown() {
	m.mu.RLock()
	all := make([]*session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()

	for _, s := range all {
		s.cancel()
	}
	for _, s := range all {
		<-s.done
	}
}
