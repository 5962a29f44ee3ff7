package engine

import (
	"context"
	"errors"

	"BlockJack/internal/game/table"
)

var (
	// ErrInvalidBet is returned by an Input that could not read a number.
	// The engine re-prompts.
	ErrInvalidBet = errors.New("invalid bet")
	// ErrInvalidAction is returned by an Input that got an unknown token.
	// The engine re-prompts.
	ErrInvalidAction = errors.New("invalid action")
	// ErrDeckExhausted aborts the current round.
	ErrDeckExhausted = errors.New("deck exhausted")
	// ErrOutOfFunds means no bet can be placed. It ends the session, it is
	// not a failure.
	ErrOutOfFunds = errors.New("out of funds")
)

// Input supplies the player's decisions. Every call blocks until the player
// answers.
type Input interface {
	RequestBet(ctx context.Context, min, max int) (int, error)
	RequestAction(ctx context.Context) (table.Action, error)
	RequestContinue(ctx context.Context) (bool, error)
}

// Presenter receives every state change a human should see.
type Presenter interface {
	Show(ev Event, snap table.Snapshot)
}

type EventKind string

const (
	EventRoundStart    EventKind = "round_start"
	EventDeal          EventKind = "deal"
	EventHit           EventKind = "hit"
	EventBust          EventKind = "bust"
	EventBlackjack     EventKind = "blackjack"
	EventDealerReveal  EventKind = "dealer_reveal"
	EventDealerHit     EventKind = "dealer_hit"
	EventResult        EventKind = "result"
	EventNotice        EventKind = "notice"
	EventDeckExhausted EventKind = "deck_exhausted"
	EventOutOfFunds    EventKind = "out_of_funds"
	EventSessionEnd    EventKind = "session_end"
)

type Event struct {
	Kind    EventKind `json:"kind"`
	Message string    `json:"message,omitempty"`
	Outcome Outcome   `json:"outcome,omitempty"`
	Payout  int       `json:"payout,omitempty"`
}

// PresenterFunc adapts a plain function to Presenter.
type PresenterFunc func(ev Event, snap table.Snapshot)

func (f PresenterFunc) Show(ev Event, snap table.Snapshot) { f(ev, snap) }

// Presenters fans one event out to several presenters in order.
type Presenters []Presenter

func (ps Presenters) Show(ev Event, snap table.Snapshot) {
	for _, p := range ps {
		p.Show(ev, snap)
	}
}
