package dealer

import (
	"crypto/rand"
	"math/big"

	"BlockJack/internal/game/table"
)

const DeckSize = 52

// Source 洗牌用的随机源，*rand.Rand 直接满足
type Source interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
}

// CryptoSource wraps crypto/rand. Default source outside of tests.
type CryptoSource struct{}

func (CryptoSource) Intn(n int) int {
	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}
	return int(b.Int64())
}

// Deck 一副 52 张的牌，只支持抽牌与整副重置
type Deck struct {
	cards []table.Card
	rnd   Source
}

// NewDeck 初始化一副牌并洗牌
func NewDeck(rnd Source) *Deck {
	if rnd == nil {
		rnd = CryptoSource{}
	}
	d := &Deck{rnd: rnd}
	d.Reset()
	return d
}

// NewStackedDeck builds an unshuffled deck whose draw order is exactly the
// given cards (first card drawn first). Meant for deterministic tests.
func NewStackedDeck(drawOrder ...table.Card) *Deck {
	cards := make([]table.Card, len(drawOrder))
	for i, c := range drawOrder {
		cards[len(drawOrder)-1-i] = c
	}
	return &Deck{cards: cards, rnd: CryptoSource{}}
}

// Reset replaces the contents with a fresh ordered deck and shuffles it.
func (d *Deck) Reset() {
	d.cards = makeDeck()
	d.Shuffle()
}

func makeDeck() []table.Card {
	deck := make([]table.Card, 0, DeckSize)
	for _, s := range table.Suits {
		for _, r := range table.Ranks {
			deck = append(deck, table.NewCard(s, r))
		}
	}
	return deck
}

// Shuffle is Fisher-Yates over the remaining cards.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rnd.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the last card. ok is false once the deck is empty.
func (d *Deck) Draw() (card table.Card, ok bool) {
	n := len(d.cards)
	if n == 0 {
		return table.Card{}, false
	}
	card = d.cards[n-1]
	d.cards = d.cards[:n-1]
	return card, true
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the undealt cards, bottom first.
func (d *Deck) Cards() []table.Card {
	out := make([]table.Card, len(d.cards))
	copy(out, d.cards)
	return out
}
