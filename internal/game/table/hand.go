package table

const (
	BlackjackTotal = 21
	softAceBonus   = 10
)

// Hand is an ordered sequence of cards. The total is recomputed on every call.
type Hand struct {
	cards []Card
}

func NewHand(cards ...Card) Hand {
	h := Hand{}
	for _, c := range cards {
		h.Add(c)
	}
	return h
}

func (h *Hand) Add(c Card) {
	h.cards = append(h.cards, c)
}

func (h *Hand) Clear() {
	h.cards = nil
}

func (h Hand) Len() int {
	return len(h.cards)
}

// Cards returns a copy.
func (h Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Value counts every ace as 11 and demotes them to 1 one at a time while the
// total is over 21.
func (h Hand) Value() int {
	total, _ := h.valueAndSoftAces()
	return total
}

func (h Hand) valueAndSoftAces() (int, int) {
	total, aces := 0, 0
	for _, c := range h.cards {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for total > BlackjackTotal && aces > 0 {
		total -= softAceBonus
		aces--
	}
	return total, aces
}

// IsSoft reports whether an ace is still counted as 11.
func (h Hand) IsSoft() bool {
	_, aces := h.valueAndSoftAces()
	return aces > 0
}

func (h Hand) IsBust() bool {
	return h.Value() > BlackjackTotal
}

// HasBlackjack is only meaningful for the initial two cards.
func (h Hand) HasBlackjack() bool {
	return len(h.cards) == 2 && h.Value() == BlackjackTotal
}
