package lobby

import (
	"context"
	"errors"
	"fmt"
	"time"

	"BlockJack/internal/utils"
	"BlockJack/internal/websocket"

	"github.com/google/uuid"
)

type HubBroadcaster interface {
	BroadcastToPlayers(addrs []string, msg websocket.OutgoingMessage)
}

type Service struct {
	repo            Repo
	sessionTTL      int // seconds
	startingBalance int
	hub             HubBroadcaster
	OnTableReady    func(*TableInfo) error // 入座后启动牌局
	OnLeave         func(address string)   // 离座时停止牌局
}

func NewService(repo Repo, sessionTTL, startingBalance int, hub HubBroadcaster) *Service {
	return &Service{repo: repo, sessionTTL: sessionTTL, startingBalance: startingBalance, hub: hub}
}

// Join seats address at a fresh table. A wallet can hold one table at a time.
func (s *Service) Join(ctx context.Context, address string) (*TableInfo, error) {
	if address == "" {
		return nil, errors.New("missing address")
	}

	info := &TableInfo{
		ID:        uuid.NewString(),
		Address:   address,
		Balance:   s.startingBalance,
		CreatedAt: time.Now(),
	}
	cur, err := s.repo.Seat(ctx, address, info.ID, s.sessionTTL)
	if errors.Is(err, ErrAlreadySeated) {
		return nil, fmt.Errorf("player %s %w at table %s", address, ErrAlreadySeated, cur)
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveTable(ctx, info, s.sessionTTL); err != nil {
		utils.Named("LOBBY").Warn("save table", "table", info.ID, "err", err)
	}

	if s.OnTableReady != nil {
		if err := s.OnTableReady(info); err != nil {
			_ = s.repo.Release(ctx, address)
			return nil, fmt.Errorf("start table: %w", err)
		}
	}

	s.hub.BroadcastToPlayers([]string{address}, websocket.OutgoingMessage{
		Event: websocket.EventTableJoined,
		Data: map[string]any{
			"tableId": info.ID,
			"balance": info.Balance,
		},
	})
	return info, nil
}

// Leave frees the seat and stops any running session.
func (s *Service) Leave(ctx context.Context, address string) error {
	if s.OnLeave != nil {
		s.OnLeave(address)
	}
	return s.repo.Release(ctx, address)
}

// Release frees the seat without touching the session. Called when a
// session ends on its own.
func (s *Service) Release(ctx context.Context, address string) error {
	return s.repo.Release(ctx, address)
}

func (s *Service) TableOf(ctx context.Context, address string) (string, error) {
	return s.repo.TableOf(ctx, address)
}
