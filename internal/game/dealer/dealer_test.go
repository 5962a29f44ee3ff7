package dealer

import (
	"math/rand"
	"sort"
	"testing"

	"BlockJack/internal/game/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 工具：检查是否有重复牌
func hasDuplicates(cards []table.Card) bool {
	seen := make(map[table.Card]bool)
	for _, c := range cards {
		if seen[c] {
			return true
		}
		seen[c] = true
	}
	return false
}

func sortedKeys(cards []table.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	sort.Strings(out)
	return out
}

// ✅ 测试牌组初始化
func TestNewDeck(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))

	require.Equal(t, DeckSize, d.Remaining())
	assert.False(t, hasDuplicates(d.Cards()), "deck should not contain duplicates")

	suits := make(map[table.Suit]int)
	ranks := make(map[table.Rank]int)
	for _, c := range d.Cards() {
		suits[c.Suit()]++
		ranks[c.Rank()]++
	}
	assert.Len(t, suits, 4)
	assert.Len(t, ranks, 13)
	for _, n := range suits {
		assert.Equal(t, 13, n)
	}
}

// ✅ 测试洗牌只是排列
func TestShuffleIsPermutation(t *testing.T) {
	d1 := NewDeck(rand.New(rand.NewSource(42)))
	d2 := NewDeck(rand.New(rand.NewSource(42)))
	assert.Equal(t, d1.Cards(), d2.Cards(), "same seed should give the same order")

	d3 := NewDeck(rand.New(rand.NewSource(99)))
	assert.NotEqual(t, d1.Cards(), d3.Cards(), "different seed should give a different order")

	assert.Equal(t, sortedKeys(makeDeck()), sortedKeys(d3.Cards()))
}

// identity source: j == i every time, so the shuffle must leave the order alone
type fixedSource struct{}

func (fixedSource) Intn(n int) int { return n - 1 }

func TestShuffleFisherYatesBounds(t *testing.T) {
	d := NewDeck(fixedSource{})
	assert.Equal(t, makeDeck(), d.Cards())

	var calls []int
	rec := recordingSource{calls: &calls}
	NewDeck(rec)
	require.Len(t, calls, DeckSize-1)
	for i, n := range calls {
		assert.Equal(t, DeckSize-i, n, "call %d should sample [0,%d)", i, DeckSize-i)
	}
}

type recordingSource struct{ calls *[]int }

func (r recordingSource) Intn(n int) int {
	*r.calls = append(*r.calls, n)
	return 0
}

func TestShuffleFirstPositionIsRoughlyUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	counts := make(map[table.Card]int)
	const runs = 20000
	for i := 0; i < runs; i++ {
		d := NewDeck(rng)
		c, ok := d.Draw()
		require.True(t, ok)
		counts[c]++
	}
	assert.Len(t, counts, DeckSize)
	expected := runs / DeckSize
	for c, n := range counts {
		assert.InDelta(t, expected, n, float64(expected)/2, "card %s drawn %d times", c, n)
	}
}

// ✅ 测试抽牌：抽出 + 剩余 = 52，且无重复
func TestDrawConservesCards(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(3)))
	var drawn []table.Card
	for i := 0; i < 20; i++ {
		last := d.Cards()[d.Remaining()-1]
		c, ok := d.Draw()
		require.True(t, ok)
		assert.Equal(t, last, c, "draw takes from the end")
		drawn = append(drawn, c)

		all := append(append([]table.Card{}, drawn...), d.Cards()...)
		assert.Len(t, all, DeckSize)
		assert.False(t, hasDuplicates(all))
	}
}

// ✅ 测试抽空后返回 false，不会自动补牌
func TestDrawEmptyDeck(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(5)))
	for i := 0; i < DeckSize; i++ {
		_, ok := d.Draw()
		require.True(t, ok)
	}
	c, ok := d.Draw()
	assert.False(t, ok)
	assert.Equal(t, table.Card{}, c)
	assert.Equal(t, 0, d.Remaining())

	d.Reset()
	assert.Equal(t, DeckSize, d.Remaining())
}

func TestStackedDeckDrawOrder(t *testing.T) {
	cards := table.MustParseCards("AS", "KH", "2D")
	d := NewStackedDeck(cards...)
	for _, want := range cards {
		got, ok := d.Draw()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := d.Draw()
	assert.False(t, ok)
}

func TestCryptoSourceRange(t *testing.T) {
	var s CryptoSource
	for i := 0; i < 200; i++ {
		n := s.Intn(5)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 5)
	}
}
