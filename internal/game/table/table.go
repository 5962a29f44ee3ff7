package table

import (
	"time"
)

// State 回合状态机的阶段
type State string

const (
	StateIdle        State = "idle"
	StateAwaitingBet State = "awaiting_bet"
	StatePlayerTurn  State = "player_turn"
	StateDealerTurn  State = "dealer_turn"
	StateSettlement  State = "settlement"
)

// Action 玩家在 PlayerTurn 的决定
type Action string

const (
	Hit   Action = "hit"
	Stand Action = "stand"
)

// Player owns a hand plus the running balance and the bet of the live round.
type Player struct {
	Hand       Hand
	Balance    int
	CurrentBet int
}

func NewPlayer(balance int) *Player {
	return &Player{Balance: balance}
}

// PlaceBet debits amount from the balance. It reports false and leaves the
// player untouched when amount is not in [1, Balance].
func (p *Player) PlaceBet(amount int) bool {
	if amount < 1 || amount > p.Balance {
		return false
	}
	p.CurrentBet = amount
	p.Balance -= amount
	return true
}

// Credit adds a payout to the balance.
func (p *Player) Credit(amount int) {
	p.Balance += amount
}

// Reset clears the hand and the bet for a new round. Balance survives.
func (p *Player) Reset() {
	p.Hand.Clear()
	p.CurrentBet = 0
}

// Dealer 只有一手牌
type Dealer struct {
	Hand Hand
}

func (d *Dealer) Reset() {
	d.Hand.Clear()
}

// Table 一局游戏的运行时状态（单人对庄家）
type Table struct {
	ID        string
	Address   string // owner wallet address, empty in terminal play
	CreatedAt time.Time

	Player     *Player
	Dealer     *Dealer
	HoleHidden bool
	State      State
}

func New(id string, balance int) *Table {
	return &Table{
		ID:         id,
		CreatedAt:  time.Now(),
		Player:     NewPlayer(balance),
		Dealer:     &Dealer{},
		HoleHidden: true,
		State:      StateIdle,
	}
}

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	TableID          string `json:"table"`
	State            State  `json:"state"`
	DealerHand       []Card `json:"dealerHand"`
	DealerHoleHidden bool   `json:"dealerHoleHidden"`
	DealerValue      int    `json:"dealerValue"` // -1 while the hole card is hidden
	PlayerHand       []Card `json:"playerHand"`
	PlayerValue      int    `json:"playerValue"`
	PlayerBalance    int    `json:"balance"`
	CurrentBet       int    `json:"bet"`
}

func (t *Table) Snapshot() Snapshot {
	dealerValue := t.Dealer.Hand.Value()
	if t.HoleHidden {
		dealerValue = -1
	}
	return Snapshot{
		TableID:          t.ID,
		State:            t.State,
		DealerHand:       t.Dealer.Hand.Cards(),
		DealerHoleHidden: t.HoleHidden,
		DealerValue:      dealerValue,
		PlayerHand:       t.Player.Hand.Cards(),
		PlayerValue:      t.Player.Hand.Value(),
		PlayerBalance:    t.Player.Balance,
		CurrentBet:       t.Player.CurrentBet,
	}
}
