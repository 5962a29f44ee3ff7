package lobby

import "time"

// JoinResponse 入座结果
type JoinResponse struct {
	TableID string `json:"tableId"`
	Balance int    `json:"balance"`
}

// TableInfo 一张单人桌的元数据（不含牌局状态）
type TableInfo struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	Balance   int       `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
}
