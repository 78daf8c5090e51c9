package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/skat/internal/game"
	"github.com/palemoky/skat/internal/game/card"
	"github.com/palemoky/skat/internal/notation"
)

func mustHand(t *testing.T, s string) card.Hand {
	t.Helper()
	cards, ok := notation.ParseHand(s)
	require.True(t, ok, "hand %s", s)
	return cards
}

func TestChooseGameType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hand     string
		expected card.GameType
	}{
		{
			"Long clubs",
			"CJ.CA.CT.CK.CQ.C9.SA.HA.H7.D8",
			card.GameClubs,
		},
		{
			"Jacks and aces favor grand",
			"CJ.SJ.HJ.CA.CT.SA.ST.HA.D7.D8",
			card.GameGrand,
		},
		{
			"All low cards favor null",
			"C7.C8.C9.S7.S8.H7.H8.H9.D7.D8",
			card.GameNull,
		},
		{
			"Long hearts",
			"HA.HT.HK.HQ.H9.H8.CA.S7.S8.D7",
			card.GameHearts,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ChooseGameType(mustHand(t, tt.hand)))
		})
	}
}

func TestMaxBid(t *testing.T) {
	t.Parallel()

	// 带 1 的长梅花：12 × 2 = 24
	strong := mustHand(t, "CJ.CA.CT.CK.CQ.C9.C8.SA.HA.D7")
	assert.Equal(t, 24, MaxBid(strong))

	// 弱牌直接弃叫
	weak := mustHand(t, "C7.S8.SQ.HK.H9.D7.DQ.DK.CQ.ST")
	assert.Equal(t, 0, MaxBid(weak))

	// 无分局手牌封顶 23
	null := mustHand(t, "C7.C8.C9.S7.S8.H7.H8.H9.D7.D8")
	assert.Equal(t, 23, MaxBid(null))
}

func TestNextBidAndHold(t *testing.T) {
	t.Parallel()

	strong := mustHand(t, "CJ.CA.CT.CK.CQ.C9.C8.SA.HA.D7")

	v, ok := NextBid(strong, 0)
	require.True(t, ok)
	assert.Equal(t, game.MinBid, v)

	v, ok = NextBid(strong, 20)
	require.True(t, ok)
	assert.Equal(t, 22, v)

	_, ok = NextBid(strong, 24)
	assert.False(t, ok)

	assert.True(t, ShouldHold(strong, 22))
	assert.False(t, ShouldHold(strong, 27))
}

func TestChooseDiscards(t *testing.T) {
	t.Parallel()

	// 拿底后的 12 张牌：短门红桃 K 和 Q 应该被弃掉
	hand := mustHand(t, "CJ.SJ.CA.CT.CK.CQ.C9.C8.SA.ST.HK.HQ")
	a, b := ChooseDiscards(hand, card.GameClubs)

	discarded := card.Hand{a, b}
	assert.NotEqual(t, a, b)
	assert.True(t, hand.Contains(a))
	assert.True(t, hand.Contains(b))
	assert.True(t, discarded.Contains(card.Card{Suit: card.Hearts, Rank: card.King}))
	assert.True(t, discarded.Contains(card.Card{Suit: card.Hearts, Rank: card.Queen}))
}

func TestChooseCardFollowsRules(t *testing.T) {
	t.Parallel()

	deal, ok := notation.ParseDeal("SA.ST.SK.SQ.S9.S8.S7.HA.HT.HK" +
		"|CJ.SJ.HJ.DJ.CA.CT.CK.CQ.C9.C8" +
		"|DA.DT.DK.DQ.D9.D8.D7.H9.H8.H7" +
		"|C7.HQ")
	require.True(t, ok)

	g := game.NewGame(0)
	g, err := g.DealFixed(deal)
	require.NoError(t, err)
	g, err = g.StartBidding()
	require.NoError(t, err)
	g, err = g.PlaceBid(game.Middlehand, 18)
	require.NoError(t, err)
	g, err = g.PassBid(game.Forehand)
	require.NoError(t, err)
	g, err = g.PassBid(game.Rearhand)
	require.NoError(t, err)
	g, err = g.PlayHand(game.Middlehand)
	require.NoError(t, err)
	g, err = g.AnnounceGame(game.Middlehand, card.GameClubs, false, false, false)
	require.NoError(t, err)

	// 先手领出：必须是合法牌
	c, found := ChooseCard(g, game.Forehand)
	require.True(t, found)
	legal := g.LegalMoves(game.Forehand)
	assert.Contains(t, legal, c)

	g, err = g.PlayCard(game.Forehand, c)
	require.NoError(t, err)

	// 中手跟牌：选出的牌必须能通过引擎校验
	c, found = ChooseCard(g, game.Middlehand)
	require.True(t, found)
	g, err = g.PlayCard(game.Middlehand, c)
	require.NoError(t, err)

	c, found = ChooseCard(g, game.Rearhand)
	require.True(t, found)
	_, err = g.PlayCard(game.Rearhand, c)
	require.NoError(t, err)
}

func TestChooseCardNoMoves(t *testing.T) {
	t.Parallel()

	g := game.NewGame(0)
	_, found := ChooseCard(g, game.Forehand)
	assert.False(t, found)
}
