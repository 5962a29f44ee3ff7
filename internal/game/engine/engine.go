package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"BlockJack/internal/game/dealer"
	"BlockJack/internal/game/table"

	"github.com/charmbracelet/log"
)

const (
	MinBet                    = 1
	DealerStandsOn            = 17
	DefaultReshuffleThreshold = 10
)

// ---------------------
//       OPTIONS
// ---------------------

type Option func(*Engine)

// WithSource sets the RNG used for every deck the engine builds.
func WithSource(src dealer.Source) Option {
	return func(e *Engine) { e.rnd = src }
}

// WithDeckFactory overrides how replacement decks are built.
func WithDeckFactory(f func() *dealer.Deck) Option {
	return func(e *Engine) { e.newDeck = f }
}

// WithDeck sets the deck in play. The reshuffle rule still applies to it.
func WithDeck(d *dealer.Deck) Option {
	return func(e *Engine) { e.Deck = d }
}

func WithReshuffleThreshold(n int) Option {
	return func(e *Engine) { e.threshold = n }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// ---------------------
//       ENGINE
// ---------------------

// RoundResult summarises a settled round.
type RoundResult struct {
	Outcome     Outcome `json:"outcome"`
	Bet         int     `json:"bet"`
	Payout      int     `json:"payout"`
	Balance     int     `json:"balance"`
	PlayerValue int     `json:"playerValue"`
	DealerValue int     `json:"dealerValue"`
}

// Engine drives one table through Idle → AwaitingBet → PlayerTurn →
// DealerTurn → Settlement → Idle. It is not safe for concurrent use; the
// session goroutine owns it.
type Engine struct {
	Table *table.Table
	Deck  *dealer.Deck

	in        Input
	out       Presenter
	rnd       dealer.Source
	newDeck   func() *dealer.Deck
	threshold int
	logger    *log.Logger
}

func NewEngine(t *table.Table, in Input, out Presenter, opts ...Option) *Engine {
	e := &Engine{
		Table:     t,
		in:        in,
		out:       out,
		threshold: DefaultReshuffleThreshold,
	}
	for _, o := range opts {
		o(e)
	}
	if e.rnd == nil {
		e.rnd = dealer.CryptoSource{}
	}
	if e.newDeck == nil {
		e.newDeck = func() *dealer.Deck { return dealer.NewDeck(e.rnd) }
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.out == nil {
		e.out = PresenterFunc(func(Event, table.Snapshot) {})
	}
	if e.Deck == nil {
		e.Deck = e.newDeck()
	}
	return e
}

func (e *Engine) State() table.State {
	return e.Table.State
}

func (e *Engine) Snapshot() table.Snapshot {
	return e.Table.Snapshot()
}

func (e *Engine) show(kind EventKind, msg string) {
	e.out.Show(Event{Kind: kind, Message: msg}, e.Table.Snapshot())
}

func (e *Engine) setState(s table.State) {
	e.logger.Debug("state", "table", e.Table.ID, "from", e.Table.State, "to", s)
	e.Table.State = s
}

// Run plays rounds until the player quits or runs out of money and returns
// the final balance. A round aborted by deck exhaustion does not end the
// session.
func (e *Engine) Run(ctx context.Context) (int, error) {
	p := e.Table.Player
	for {
		_, err := e.PlayRound(ctx)
		switch {
		case errors.Is(err, ErrOutOfFunds):
			e.endSession()
			return p.Balance, nil
		case errors.Is(err, ErrDeckExhausted):
			e.logger.Warn("round aborted", "table", e.Table.ID, "err", err)
		case err != nil:
			return p.Balance, err
		}

		if p.Balance <= 0 {
			e.show(EventOutOfFunds, "You're out of money! Thanks for playing!")
			e.endSession()
			return p.Balance, nil
		}

		again, err := e.in.RequestContinue(ctx)
		if err != nil {
			return p.Balance, fmt.Errorf("request continue: %w", err)
		}
		if !again {
			e.endSession()
			return p.Balance, nil
		}
	}
}

func (e *Engine) endSession() {
	e.logger.Info("session end", "table", e.Table.ID, "balance", e.Table.Player.Balance)
	e.show(EventSessionEnd, fmt.Sprintf("Final balance: $%d", e.Table.Player.Balance))
}

// PlayRound runs a single round from Idle back to Idle.
func (e *Engine) PlayRound(ctx context.Context) (RoundResult, error) {
	e.beginRound()
	p := e.Table.Player

	if p.Balance <= 0 {
		e.setState(table.StateIdle)
		e.show(EventOutOfFunds, "You're out of money! Game over.")
		return RoundResult{}, ErrOutOfFunds
	}

	if err := e.collectBet(ctx); err != nil {
		e.setState(table.StateIdle)
		return RoundResult{}, err
	}

	if err := e.dealInitial(); err != nil {
		return RoundResult{}, e.abort(err)
	}

	e.setState(table.StatePlayerTurn)
	stood, err := e.playerTurn(ctx)
	if err != nil {
		if errors.Is(err, ErrDeckExhausted) {
			return RoundResult{}, e.abort(err)
		}
		e.refund()
		e.setState(table.StateIdle)
		return RoundResult{}, err
	}

	if stood {
		e.setState(table.StateDealerTurn)
		if err := e.dealerTurn(); err != nil {
			return RoundResult{}, e.abort(err)
		}
	}

	return e.settle(), nil
}

// Idle → AwaitingBet
func (e *Engine) beginRound() {
	e.Table.Player.Reset()
	e.Table.Dealer.Reset()
	e.Table.HoleHidden = true

	if e.Deck.Remaining() < e.threshold {
		e.logger.Info("reshuffle", "table", e.Table.ID, "remaining", e.Deck.Remaining())
		e.Deck = e.newDeck()
	}
	e.setState(table.StateAwaitingBet)
	e.show(EventRoundStart, "")
}

func (e *Engine) collectBet(ctx context.Context) error {
	p := e.Table.Player
	for {
		bet, err := e.in.RequestBet(ctx, MinBet, p.Balance)
		if errors.Is(err, ErrInvalidBet) {
			e.show(EventNotice, "Please enter a valid number.")
			continue
		}
		if err != nil {
			return fmt.Errorf("request bet: %w", err)
		}
		if !p.PlaceBet(bet) {
			e.show(EventNotice, fmt.Sprintf("Please enter a bet between $%d and $%d", MinBet, p.Balance))
			continue
		}
		e.logger.Debug("bet placed", "table", e.Table.ID, "bet", bet, "balance", p.Balance)
		return nil
	}
}

// player, dealer, player, dealer
func (e *Engine) dealInitial() error {
	for i := 0; i < 2; i++ {
		if err := e.draw(&e.Table.Player.Hand); err != nil {
			return err
		}
		if err := e.draw(&e.Table.Dealer.Hand); err != nil {
			return err
		}
	}
	e.show(EventDeal, "")
	return nil
}

func (e *Engine) draw(h *table.Hand) error {
	c, ok := e.Deck.Draw()
	if !ok {
		return ErrDeckExhausted
	}
	h.Add(c)
	return nil
}

// playerTurn reports stood=true when the player chose to stand, which is the
// only path into the dealer's turn.
func (e *Engine) playerTurn(ctx context.Context) (stood bool, err error) {
	h := &e.Table.Player.Hand
	for {
		if h.IsBust() {
			e.show(EventBust, "BUST! You exceeded 21.")
			return false, nil
		}
		if h.HasBlackjack() {
			e.show(EventBlackjack, "BLACKJACK! You got 21!")
			return false, nil
		}

		act, err := e.in.RequestAction(ctx)
		if errors.Is(err, ErrInvalidAction) {
			e.show(EventNotice, "Please enter 'h' for hit or 's' for stand.")
			continue
		}
		if err != nil {
			return false, fmt.Errorf("request action: %w", err)
		}

		switch act {
		case table.Hit:
			if err := e.draw(h); err != nil {
				return false, err
			}
			e.show(EventHit, "")
		case table.Stand:
			return true, nil
		default:
			e.show(EventNotice, "Please enter 'h' for hit or 's' for stand.")
		}
	}
}

func (e *Engine) dealerTurn() error {
	e.Table.HoleHidden = false
	e.show(EventDealerReveal, "")

	h := &e.Table.Dealer.Hand
	for h.Value() < DealerStandsOn {
		if err := e.draw(h); err != nil {
			return err
		}
		e.show(EventDealerHit, "Dealer hits...")
	}
	return nil
}

func (e *Engine) settle() RoundResult {
	e.setState(table.StateSettlement)
	e.Table.HoleHidden = false

	p, d := e.Table.Player, e.Table.Dealer
	outcome, payout := Settle(p.Hand, d.Hand, p.CurrentBet)
	p.Credit(payout)

	res := RoundResult{
		Outcome:     outcome,
		Bet:         p.CurrentBet,
		Payout:      payout,
		Balance:     p.Balance,
		PlayerValue: p.Hand.Value(),
		DealerValue: d.Hand.Value(),
	}
	e.logger.Info("round settled",
		"table", e.Table.ID,
		"outcome", outcome,
		"bet", res.Bet,
		"payout", payout,
		"balance", p.Balance,
	)
	e.out.Show(Event{Kind: EventResult, Message: outcome.Message(), Outcome: outcome, Payout: payout}, e.Table.Snapshot())

	e.setState(table.StateIdle)
	return res
}

// abort ends a round that can not be settled. The stake goes back to the
// player since nothing was decided.
func (e *Engine) abort(err error) error {
	e.refund()
	e.Table.HoleHidden = false
	e.show(EventDeckExhausted, "The deck ran out of cards. Round aborted, bet returned.")
	e.setState(table.StateIdle)
	return fmt.Errorf("round aborted: %w", err)
}

func (e *Engine) refund() {
	p := e.Table.Player
	p.Credit(p.CurrentBet)
	p.CurrentBet = 0
}
