package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckPointsTotal(t *testing.T) {
	t.Parallel()

	total := 0
	for _, c := range NewDeck() {
		total += c.Points()
	}
	assert.Equal(t, 120, total)
}

func TestIsTrump(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		card     Card
		gameType GameType
		expected bool
	}{
		{"Jack is trump in suit game", Card{Hearts, Jack}, GameClubs, true},
		{"Jack is trump in grand", Card{Diamonds, Jack}, GameGrand, true},
		{"Jack is trump in ramsch", Card{Spades, Jack}, GameRamsch, true},
		{"Jack is not trump in null", Card{Clubs, Jack}, GameNull, false},
		{"Trump suit ace", Card{Hearts, Ace}, GameHearts, true},
		{"Off-suit ace in suit game", Card{Hearts, Ace}, GameClubs, false},
		{"Suit card in grand", Card{Clubs, Ace}, GameGrand, false},
		{"Suit card in null", Card{Clubs, Ace}, GameNull, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsTrump(tt.card, tt.gameType))
		})
	}
}

// 将牌之间必须构成严格全序，且四张 J 的顺序在所有玩法下不变
func TestTrumpOrderTotality(t *testing.T) {
	t.Parallel()

	gameTypes := []GameType{GameClubs, GameSpades, GameHearts, GameDiamonds, GameGrand, GameRamsch}
	lead := Card{Clubs, Jack}

	for _, gt := range gameTypes {
		var trumps []Card
		for _, c := range NewDeck() {
			if IsTrump(c, gt) {
				trumps = append(trumps, c)
			}
		}

		for i, a := range trumps {
			for j, b := range trumps {
				if i == j {
					continue
				}
				got := Compare(a, b, lead, gt)
				assert.NotZero(t, got, "trump pair %s vs %s in %s must be ordered", a, b, gt)
				assert.Equal(t, -got, Compare(b, a, lead, gt), "antisymmetry for %s vs %s in %s", a, b, gt)
			}
		}
	}

	// J 的固定顺序：梅花 > 黑桃 > 红心 > 方块
	jacks := []Card{{Clubs, Jack}, {Spades, Jack}, {Hearts, Jack}, {Diamonds, Jack}}
	for _, gt := range gameTypes {
		for i := 0; i < len(jacks)-1; i++ {
			assert.Equal(t, 1, Compare(jacks[i], jacks[i+1], lead, gt))
		}
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     Card
		lead     Card
		gameType GameType
		expected int
	}{
		{"Trump beats non-trump", Card{Diamonds, Seven}, Card{Clubs, Ace}, Card{Clubs, Ace}, GameDiamonds, 1},
		{"Jack beats trump ace", Card{Diamonds, Jack}, Card{Hearts, Ace}, Card{Hearts, Ten}, GameHearts, 1},
		{"Ten beats king in suit game", Card{Spades, Ten}, Card{Spades, King}, Card{Spades, Seven}, GameGrand, 1},
		{"King beats ten in null", Card{Spades, King}, Card{Spades, Ten}, Card{Spades, Seven}, GameNull, 1},
		{"Jack between queen and ten in null", Card{Hearts, Jack}, Card{Hearts, Ten}, Card{Hearts, Seven}, GameNull, 1},
		{"Following lead beats discard", Card{Hearts, Seven}, Card{Spades, Ace}, Card{Hearts, Nine}, GameClubs, 1},
		{"Two off-suit discards are indeterminate", Card{Hearts, Ace}, Card{Diamonds, Ace}, Card{Spades, Nine}, GameClubs, 0},
		{"Jack does not follow its printed suit", Card{Hearts, Jack}, Card{Hearts, Nine}, Card{Hearts, Ace}, GameClubs, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Compare(tt.a, tt.b, tt.lead, tt.gameType))
			assert.Equal(t, -tt.expected, Compare(tt.b, tt.a, tt.lead, tt.gameType))
		})
	}
}

func TestCanPlay(t *testing.T) {
	t.Parallel()

	hand := Hand{
		{Clubs, Jack},
		{Hearts, Ace},
		{Hearts, Seven},
		{Spades, King},
	}

	tests := []struct {
		name     string
		card     Card
		lead     *Card
		gameType GameType
		expected bool
	}{
		{"Leading is always legal", Card{Spades, King}, nil, GameClubs, true},
		{"Must follow plain suit", Card{Hearts, Seven}, &Card{Hearts, King}, GameClubs, true},
		{"Cannot discard while holding lead suit", Card{Spades, King}, &Card{Hearts, King}, GameClubs, false},
		{"Jack cannot serve its printed suit", Card{Clubs, Jack}, &Card{Clubs, Ace}, GameClubs, false},
		{"Must trump when trump led", Card{Clubs, Jack}, &Card{Clubs, Seven}, GameClubs, true},
		{"Suit card illegal when trump led and holding trump", Card{Spades, King}, &Card{Clubs, Seven}, GameClubs, false},
		{"Free discard without lead suit", Card{Spades, King}, &Card{Diamonds, Ace}, GameClubs, true},
		{"Jack follows hearts in null", Card{Hearts, Jack}, &Card{Hearts, King}, GameNull, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := hand
			if tt.name == "Jack follows hearts in null" {
				h = Hand{{Hearts, Jack}, {Spades, King}}
			}
			assert.Equal(t, tt.expected, CanPlay(tt.card, tt.lead, h, tt.gameType))
		})
	}
}

func TestHandSorted(t *testing.T) {
	t.Parallel()

	hand := Hand{
		{Hearts, Ace},
		{Clubs, Seven},
		{Diamonds, Jack},
		{Clubs, Jack},
		{Clubs, Ace},
	}

	sorted := hand.Sorted(GameClubs)
	require.Len(t, sorted, 5)

	// 将牌在前：♣J > ♦J > ♣A > ♣7，随后副牌 ♥A
	assert.Equal(t, Card{Clubs, Jack}, sorted[0])
	assert.Equal(t, Card{Diamonds, Jack}, sorted[1])
	assert.Equal(t, Card{Clubs, Ace}, sorted[2])
	assert.Equal(t, Card{Clubs, Seven}, sorted[3])
	assert.Equal(t, Card{Hearts, Ace}, sorted[4])

	// 原手牌不受影响
	assert.Equal(t, Card{Hearts, Ace}, hand[0])
}

func TestHandRemoveIsImmutable(t *testing.T) {
	t.Parallel()

	hand := Hand{{Clubs, Ace}, {Hearts, Ten}}
	out, ok := hand.Remove(Card{Clubs, Ace})
	require.True(t, ok)
	assert.Len(t, out, 1)
	assert.Len(t, hand, 2)

	_, ok = hand.Remove(Card{Spades, Seven})
	assert.False(t, ok)
}
