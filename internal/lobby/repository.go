package lobby

import (
	"context"
	"errors"
)

var ErrAlreadySeated = errors.New("already seated")

// Repo 记录哪个钱包地址占着哪张桌
type Repo interface {
	// Seat claims tableID for address. If the address already holds a table
	// it returns that table's ID and ErrAlreadySeated.
	Seat(ctx context.Context, address, tableID string, ttlSeconds int) (string, error)
	// TableOf returns "" when the address holds no table.
	TableOf(ctx context.Context, address string) (string, error)
	// Release frees the address. Releasing an unseated address is a no-op.
	Release(ctx context.Context, address string) error
	// Count returns how many addresses are seated.
	Count(ctx context.Context) (int64, error)
	SaveTable(ctx context.Context, t *TableInfo, ttlSeconds int) error
}
