package engine

import "BlockJack/internal/game/table"

type Outcome string

const (
	OutcomePlayerBust      Outcome = "player_bust"
	OutcomeDealerBust      Outcome = "dealer_bust"
	OutcomeBlackjack       Outcome = "blackjack"
	OutcomeDealerBlackjack Outcome = "dealer_blackjack"
	OutcomePlayerWins      Outcome = "player_wins"
	OutcomeDealerWins      Outcome = "dealer_wins"
	OutcomePush            Outcome = "push"
)

var outcomeMessages = map[Outcome]string{
	OutcomePlayerBust:      "You BUSTED! Dealer wins.",
	OutcomeDealerBust:      "Dealer BUSTED! You win!",
	OutcomeBlackjack:       "BLACKJACK! You win!",
	OutcomeDealerBlackjack: "Dealer has BLACKJACK! Dealer wins.",
	OutcomePlayerWins:      "You win!",
	OutcomeDealerWins:      "Dealer wins.",
	OutcomePush:            "It's a tie! Push.",
}

func (o Outcome) Message() string {
	return outcomeMessages[o]
}

// PlayerWon is true for every outcome that pays more than the stake back.
func (o Outcome) PlayerWon() bool {
	switch o {
	case OutcomeDealerBust, OutcomeBlackjack, OutcomePlayerWins:
		return true
	}
	return false
}

// Settle decides the round and returns how much goes back to the player.
// The bet has already been taken from the balance, so a loss credits 0.
// Rules are checked in order and the first match wins; a blackjack against a
// blackjack falls through to the equal totals rule and pushes.
func Settle(player, dealer table.Hand, bet int) (Outcome, int) {
	pv, dv := player.Value(), dealer.Value()
	pbj, dbj := player.HasBlackjack(), dealer.HasBlackjack()

	switch {
	case player.IsBust():
		return OutcomePlayerBust, 0
	case dealer.IsBust():
		return OutcomeDealerBust, bet * 2
	case pbj && !dbj:
		// 3:2, floor(2.5 * bet)
		return OutcomeBlackjack, bet * 5 / 2
	case dbj && !pbj:
		return OutcomeDealerBlackjack, 0
	case pv > dv:
		return OutcomePlayerWins, bet * 2
	case dv > pv:
		return OutcomeDealerWins, 0
	default:
		return OutcomePush, bet
	}
}
