package lobby

import (
	"context"
	"sync"
)

type memRepo struct {
	mu      sync.Mutex
	players map[string]string // address -> tableID
	tables  map[string]TableInfo
}

func NewMemoryRepo() Repo {
	return &memRepo{
		players: make(map[string]string),
		tables:  make(map[string]TableInfo),
	}
}

// TTL 在内存版里忽略，进程退出即清空
func (m *memRepo) Seat(ctx context.Context, address, tableID string, ttlSeconds int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.players[address]; ok {
		return cur, ErrAlreadySeated
	}
	m.players[address] = tableID
	return tableID, nil
}

func (m *memRepo) TableOf(ctx context.Context, address string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.players[address], nil
}

func (m *memRepo) Release(ctx context.Context, address string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.players[address]; ok {
		delete(m.tables, id)
		delete(m.players, address)
	}
	return nil
}

func (m *memRepo) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.players)), nil
}

func (m *memRepo) SaveTable(ctx context.Context, t *TableInfo, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[t.ID] = *t
	return nil
}
