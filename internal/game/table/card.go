package table

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

var suitNames = []string{"Hearts", "Diamonds", "Clubs", "Spades"}
var suitSymbols = []string{"♥", "♦", "♣", "♠"}

func (s Suit) String() string {
	if s < 0 || int(s) >= len(suitNames) {
		return "?"
	}
	return suitNames[s]
}

func (s Suit) Symbol() string {
	if s < 0 || int(s) >= len(suitSymbols) {
		return "?"
	}
	return suitSymbols[s]
}

// Rank 1 = A, 2-10 数字牌, 11-13 = J Q K
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

var Ranks = []Rank{Ace, 2, 3, 4, 5, 6, 7, 8, 9, 10, Jack, Queen, King}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return strconv.Itoa(int(r))
}

// Card is immutable once built by NewCard.
type Card struct {
	suit  Suit
	rank  Rank
	value int
}

func NewCard(s Suit, r Rank) Card {
	return Card{suit: s, rank: r, value: baseValue(r)}
}

func baseValue(r Rank) int {
	switch {
	case r == Ace:
		return 11
	case r >= Jack:
		return 10
	}
	return int(r)
}

func (c Card) Suit() Suit  { return c.suit }
func (c Card) Rank() Rank  { return c.rank }
func (c Card) Value() int  { return c.value }
func (c Card) IsAce() bool { return c.rank == Ace }

func (c Card) String() string {
	return c.rank.String() + c.suit.Symbol()
}

type cardJSON struct {
	Suit  string `json:"suit"`
	Rank  string `json:"rank"`
	Value int    `json:"value"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{Suit: c.suit.String(), Rank: c.rank.String(), Value: c.value})
}

// ParseCard parses "A♠", "10H", "qd" style strings. Used by tests and the
// stacked deck helper.
func ParseCard(s string) (Card, error) {
	runes := []rune(s)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}
	rankPart, suitPart := string(runes[:len(runes)-1]), string(runes[len(runes)-1])

	var suit Suit
	switch suitPart {
	case "H", "h", "♥":
		suit = Hearts
	case "D", "d", "♦":
		suit = Diamonds
	case "C", "c", "♣":
		suit = Clubs
	case "S", "s", "♠":
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	var rank Rank
	switch rankPart {
	case "A", "a":
		rank = Ace
	case "J", "j":
		rank = Jack
	case "Q", "q":
		rank = Queen
	case "K", "k":
		rank = King
	default:
		n, err := strconv.Atoi(rankPart)
		if err != nil || n < 2 || n > 10 {
			return Card{}, fmt.Errorf("invalid rank in card %q", s)
		}
		rank = Rank(n)
	}
	return NewCard(suit, rank), nil
}

// MustParseCards panics on bad input, test helper.
func MustParseCards(ss ...string) []Card {
	out := make([]Card, 0, len(ss))
	for _, s := range ss {
		c, err := ParseCard(s)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}
