package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards []string
		want  int
	}{
		{"empty", nil, 0},
		{"no aces is simple sum", []string{"10H", "7S"}, 17},
		{"faces count ten", []string{"KH", "QD", "JC"}, 30},
		{"ace soft", []string{"AS", "9H"}, 20},
		{"two aces", []string{"AS", "AH"}, 12},
		{"two aces and nine", []string{"AS", "AH", "9D"}, 21},
		{"ace demoted", []string{"AS", "9H", "2D"}, 12},
		{"four aces", []string{"AS", "AH", "AD", "AC"}, 14},
		{"blackjack", []string{"AS", "KH"}, 21},
		{"bust", []string{"10H", "7S", "6D"}, 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHand(MustParseCards(tt.cards...)...)
			assert.Equal(t, tt.want, h.Value())
			assert.Equal(t, tt.want > 21, h.IsBust())
		})
	}
}

func TestHandValueWithoutAcesIsSum(t *testing.T) {
	for _, s := range Suits {
		for _, r := range Ranks {
			if r == Ace {
				continue
			}
			for _, r2 := range Ranks {
				if r2 == Ace {
					continue
				}
				a, b := NewCard(s, r), NewCard(Spades, r2)
				h := NewHand(a, b)
				assert.Equal(t, a.Value()+b.Value(), h.Value())
			}
		}
	}
}

func TestHasBlackjack(t *testing.T) {
	assert.True(t, NewHand(MustParseCards("AS", "KH")...).HasBlackjack())
	assert.True(t, NewHand(MustParseCards("10D", "AC")...).HasBlackjack())
	assert.False(t, NewHand(MustParseCards("7S", "7H", "7D")...).HasBlackjack(), "three-card 21 is not blackjack")
	assert.False(t, NewHand(MustParseCards("KS", "QH")...).HasBlackjack())
	assert.False(t, NewHand(MustParseCards("AS")...).HasBlackjack())
}

func TestHandIsSoft(t *testing.T) {
	assert.True(t, NewHand(MustParseCards("AS", "6H")...).IsSoft())
	assert.False(t, NewHand(MustParseCards("AS", "6H", "10D")...).IsSoft())
	assert.False(t, NewHand(MustParseCards("9S", "8H")...).IsSoft())
}

func TestHandCardsIsCopy(t *testing.T) {
	h := NewHand(MustParseCards("2S", "3S")...)
	cards := h.Cards()
	cards[0] = NewCard(Hearts, King)
	assert.Equal(t, 5, h.Value())

	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, 0, h.Value())
}
