package table

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardBaseValue(t *testing.T) {
	assert.Equal(t, 11, NewCard(Hearts, Ace).Value())
	assert.Equal(t, 10, NewCard(Clubs, Jack).Value())
	assert.Equal(t, 10, NewCard(Clubs, Queen).Value())
	assert.Equal(t, 10, NewCard(Clubs, King).Value())
	assert.Equal(t, 10, NewCard(Clubs, 10).Value())
	assert.Equal(t, 7, NewCard(Spades, 7).Value())
}

func TestParseCard(t *testing.T) {
	c, err := ParseCard("10♥")
	require.NoError(t, err)
	assert.Equal(t, Hearts, c.Suit())
	assert.Equal(t, Rank(10), c.Rank())
	assert.Equal(t, "10♥", c.String())

	c, err = ParseCard("qs")
	require.NoError(t, err)
	assert.Equal(t, NewCard(Spades, Queen), c)

	for _, bad := range []string{"", "A", "1S", "11H", "AX", "ZZ"} {
		_, err := ParseCard(bad)
		assert.Error(t, err, bad)
	}
}

func TestCardJSON(t *testing.T) {
	b, err := json.Marshal(NewCard(Diamonds, Ace))
	require.NoError(t, err)
	assert.JSONEq(t, `{"suit":"Diamonds","rank":"A","value":11}`, string(b))
}

func TestPlaceBet(t *testing.T) {
	p := NewPlayer(100)

	assert.False(t, p.PlaceBet(0))
	assert.False(t, p.PlaceBet(101))
	assert.Equal(t, 100, p.Balance)
	assert.Equal(t, 0, p.CurrentBet)

	assert.True(t, p.PlaceBet(10))
	assert.Equal(t, 90, p.Balance)
	assert.Equal(t, 10, p.CurrentBet)

	p.Credit(p.CurrentBet)
	assert.Equal(t, 100, p.Balance)

	p.Hand.Add(NewCard(Spades, 5))
	p.Reset()
	assert.Equal(t, 0, p.Hand.Len())
	assert.Equal(t, 0, p.CurrentBet)
	assert.Equal(t, 100, p.Balance)
}

func TestSnapshotHidesDealerValue(t *testing.T) {
	tbl := New("t1", 100)
	tbl.Dealer.Hand.Add(NewCard(Spades, King))
	tbl.Dealer.Hand.Add(NewCard(Hearts, 7))
	tbl.Player.Hand.Add(NewCard(Clubs, 9))

	snap := tbl.Snapshot()
	assert.True(t, snap.DealerHoleHidden)
	assert.Equal(t, -1, snap.DealerValue)
	assert.Equal(t, 9, snap.PlayerValue)
	assert.Len(t, snap.DealerHand, 2)

	tbl.HoleHidden = false
	assert.Equal(t, 17, tbl.Snapshot().DealerValue)
}
