package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/skat/internal/game/card"
	"github.com/palemoky/skat/internal/notation"
)

func mustCard(t *testing.T, code string) card.Card {
	t.Helper()
	c, ok := notation.ParseCard(code)
	require.True(t, ok, "card code %s", code)
	return c
}

func mustDeal(t *testing.T, s string) card.Deal {
	t.Helper()
	deal, ok := notation.ParseDeal(s)
	require.True(t, ok, "deal %s", s)
	require.NoError(t, card.ValidateDeal(deal))
	return deal
}

// 声明者中手拿全部将牌的梅花局发牌
const clubsDeal = "SA.ST.SK.SQ.S9.S8.S7.HA.HT.HK" +
	"|CJ.SJ.HJ.DJ.CA.CT.CK.CQ.C9.C8" +
	"|DA.DT.DK.DQ.D9.D8.D7.H9.H8.H7" +
	"|C7.HQ"

type play struct {
	pos  Position
	code string
}

func playTricks(t *testing.T, g *Game, plays []play) *Game {
	t.Helper()
	for _, pl := range plays {
		var err error
		g, err = g.PlayCard(pl.pos, mustCard(t, pl.code))
		require.NoError(t, err, "%s plays %s", pl.pos, pl.code)
	}
	return g
}

func TestGameStateSequencing(t *testing.T) {
	t.Parallel()

	g := NewGame(0)
	assert.Equal(t, StateGameStart, g.State)

	// 所有非法前置状态的操作都必须失败
	_, err := g.StartBidding()
	assert.ErrorIs(t, err, ErrWrongState)
	_, err = g.PlaceBid(Middlehand, 18)
	assert.ErrorIs(t, err, ErrWrongState)
	_, err = g.PickUpSkat(Forehand)
	assert.ErrorIs(t, err, ErrWrongState)
	_, err = g.PlayCard(Forehand, mustCard(t, "CA"))
	assert.ErrorIs(t, err, ErrWrongState)
	_, err = g.FinalizeGame()
	assert.ErrorIs(t, err, ErrWrongState)
	_, err = g.NextGame()
	assert.ErrorIs(t, err, ErrWrongState)

	g, err = g.Deal()
	require.NoError(t, err)
	assert.Equal(t, StateDealing, g.State)
	for _, h := range g.Hands {
		assert.Len(t, h, 10)
	}
	assert.Len(t, g.Skat, 2)

	_, err = g.Deal()
	assert.ErrorIs(t, err, ErrWrongState)
}

func TestDealFixedValidatesConservation(t *testing.T) {
	t.Parallel()

	g := NewGame(0)
	deal := mustDeal(t, clubsDeal)

	// 篡改成重复牌后必须被拒绝
	bad := deal
	bad.Hands[0] = deal.Hands[0].Clone()
	bad.Hands[0][0] = deal.Hands[1][0]
	_, err := g.DealFixed(bad)
	assert.Error(t, err)

	g2, err := g.DealFixed(deal)
	require.NoError(t, err)
	assert.Equal(t, StateDealing, g2.State)
	assert.Equal(t, StateGameStart, g.State) // 原快照不变
}

// 完整的梅花局：中手 18 成局、拿底、弃牌、宣布、十墩全收。
// 覆盖连将 11、奏黑达成与底牌分归声明者
func TestFullClubsGame(t *testing.T) {
	t.Parallel()

	g := NewGame(2) // 座位 2 坐庄，座位 0 为先手
	assert.Equal(t, 0, g.SeatOf(Forehand))
	assert.Equal(t, Forehand, g.PositionOf(0))

	g, err := g.DealFixed(mustDeal(t, clubsDeal))
	require.NoError(t, err)
	g, err = g.StartBidding()
	require.NoError(t, err)
	assert.Equal(t, StateBidding, g.State)

	g, err = g.PlaceBid(Middlehand, 18)
	require.NoError(t, err)
	g, err = g.PassBid(Forehand)
	require.NoError(t, err)
	g, err = g.PassBid(Rearhand)
	require.NoError(t, err)

	assert.Equal(t, StatePickingUpSkat, g.State)
	require.True(t, g.HasDeclarer)
	assert.Equal(t, Middlehand, g.Declarer)
	assert.Equal(t, 18, g.Bidding.FinalBid)

	// 只有声明者能拿底
	_, err = g.PickUpSkat(Forehand)
	assert.ErrorIs(t, err, ErrNotDeclarer)

	g, err = g.PickUpSkat(Middlehand)
	require.NoError(t, err)
	assert.Equal(t, StateDiscarding, g.State)
	assert.Len(t, g.Hands[Middlehand], 12)
	assert.Empty(t, g.Skat)

	// 弃牌校验：重复牌、不在手牌中的牌
	_, err = g.DiscardCards(Middlehand, mustCard(t, "HQ"), mustCard(t, "HQ"))
	assert.ErrorIs(t, err, ErrInvalidDiscard)
	_, err = g.DiscardCards(Middlehand, mustCard(t, "SA"), mustCard(t, "HQ"))
	assert.ErrorIs(t, err, ErrInvalidDiscard)

	g, err = g.DiscardCards(Middlehand, mustCard(t, "HQ"), mustCard(t, "C8"))
	require.NoError(t, err)
	assert.Equal(t, StateDeclaring, g.State)
	assert.Len(t, g.Hands[Middlehand], 10)
	assert.Len(t, g.Skat, 2)

	g, err = g.AnnounceGame(Middlehand, card.GameClubs, false, false, false)
	require.NoError(t, err)
	assert.Equal(t, StateTrickPlaying, g.State)
	require.NotNil(t, g.Tricks)
	assert.Equal(t, 1, g.Tricks.TrickNum)

	// 先手首出，声明者抢出必须失败且快照不变
	before := g
	_, err = g.PlayCard(Middlehand, mustCard(t, "CJ"))
	assert.ErrorIs(t, err, ErrNotYourTurn)
	assert.Equal(t, before, g)

	// 不在手牌中的牌与违反跟牌规则的牌
	_, err = g.PlayCard(Forehand, mustCard(t, "DA"))
	assert.ErrorIs(t, err, ErrCardNotInHand)

	g = playTricks(t, g, []play{
		{Forehand, "SA"}, {Middlehand, "C7"}, {Rearhand, "H7"},
	})
	assert.Equal(t, 2, g.Tricks.TrickNum)
	assert.Equal(t, Middlehand, g.Tricks.Current.Forehand)
	assert.Equal(t, 11, g.Tricks.PlayerPoints[Middlehand])

	g = playTricks(t, g, []play{
		{Middlehand, "CJ"}, {Forehand, "S7"}, {Rearhand, "H8"},
		{Middlehand, "SJ"}, {Forehand, "S8"}, {Rearhand, "H9"},
		{Middlehand, "HJ"}, {Forehand, "HK"}, {Rearhand, "D7"},
		{Middlehand, "DJ"}, {Forehand, "HT"}, {Rearhand, "D8"},
		{Middlehand, "CA"}, {Forehand, "HA"}, {Rearhand, "D9"},
		{Middlehand, "CT"}, {Forehand, "S9"}, {Rearhand, "DQ"},
		{Middlehand, "CK"}, {Forehand, "SQ"}, {Rearhand, "DK"},
		{Middlehand, "CQ"}, {Forehand, "SK"}, {Rearhand, "DT"},
		{Middlehand, "C9"}, {Forehand, "ST"}, {Rearhand, "DA"},
	})

	assert.Equal(t, StatePreliminaryGameEnd, g.State)
	assert.Equal(t, 117, g.Tricks.PlayerPoints[Middlehand])
	assert.Equal(t, 10, g.Tricks.PlayerTricks[Middlehand])

	g, err = g.FinalizeGame()
	require.NoError(t, err)
	assert.Equal(t, StateGameOver, g.State)

	res := g.Result
	require.NotNil(t, res)
	assert.True(t, res.Won)
	assert.Equal(t, 120, res.DeclarerPoints) // 117 墩分 + 3 底牌分
	assert.Equal(t, 11, res.Matadors)
	assert.True(t, res.SchneiderAchieved)
	assert.True(t, res.SchwarzAchieved)
	assert.Equal(t, 14, res.Multiplier) // 带 11 + 局 1 + 奏 + 黑
	assert.Equal(t, 168, res.GameValue)
	assert.Equal(t, 168, res.Score)

	next, err := g.NextGame()
	require.NoError(t, err)
	assert.Equal(t, 0, next.Dealer)
	assert.Equal(t, StateGameStart, next.State)
}

// 先手默认成局打无分手牌局并赢下零墩
const nullDeal = "C7.C8.S7.S8.H7.H8.D7.D8.D9.DT" +
	"|C9.CT.CJ.CQ.CK.CA.H9.HT.DJ.DQ" +
	"|S9.ST.SJ.SQ.SK.SA.HJ.HQ.HK.HA" +
	"|DK.DA"

func TestFullNullHandGame(t *testing.T) {
	t.Parallel()

	g := NewGame(0)
	g, err := g.DealFixed(mustDeal(t, nullDeal))
	require.NoError(t, err)
	g, err = g.StartBidding()
	require.NoError(t, err)

	// 中手和后手都不叫：先手按 18 成为声明者
	g, err = g.PassBid(Middlehand)
	require.NoError(t, err)
	g, err = g.PassBid(Rearhand)
	require.NoError(t, err)
	assert.Equal(t, StateBidding, g.State)

	g, err = g.PlaceBid(Forehand, MinBid)
	require.NoError(t, err)
	assert.Equal(t, StatePickingUpSkat, g.State)
	assert.Equal(t, Forehand, g.Declarer)
	assert.Equal(t, 18, g.Bidding.FinalBid)

	// 手牌局：不拿底直接宣布
	g, err = g.PlayHand(Forehand)
	require.NoError(t, err)
	assert.Equal(t, StateDeclaring, g.State)
	assert.True(t, g.HandGame)

	// 无分局不能宣奏
	_, err = g.AnnounceGame(Forehand, card.GameNull, true, false, false)
	assert.Error(t, err)

	g, err = g.AnnounceGame(Forehand, card.GameNull, false, false, false)
	require.NoError(t, err)
	require.NotNil(t, g.Contract)
	assert.True(t, g.Contract.Hand)

	g = playTricks(t, g, []play{
		{Forehand, "C7"}, {Middlehand, "C9"}, {Rearhand, "HJ"},
		{Middlehand, "CA"}, {Rearhand, "HQ"}, {Forehand, "C8"},
		{Middlehand, "CK"}, {Rearhand, "HK"}, {Forehand, "D7"},
		{Middlehand, "CQ"}, {Rearhand, "HA"}, {Forehand, "D8"},
		{Middlehand, "CJ"}, {Rearhand, "S9"}, {Forehand, "D9"},
		{Middlehand, "CT"}, {Rearhand, "ST"}, {Forehand, "DT"},
		{Middlehand, "H9"}, {Rearhand, "SJ"}, {Forehand, "H7"},
		{Middlehand, "HT"}, {Rearhand, "SQ"}, {Forehand, "H8"},
		{Middlehand, "DJ"}, {Rearhand, "SK"}, {Forehand, "S7"},
		{Middlehand, "DQ"}, {Rearhand, "SA"}, {Forehand, "S8"},
	})

	assert.Equal(t, StatePreliminaryGameEnd, g.State)
	assert.Equal(t, 0, g.Tricks.PlayerTricks[Forehand])

	g, err = g.FinalizeGame()
	require.NoError(t, err)

	res := g.Result
	require.NotNil(t, res)
	assert.True(t, res.Won)
	assert.Equal(t, 35, res.GameValue)
	assert.Equal(t, 35, res.Score)
}

// 三家全弃进入罗姆什局，中手全吃
func TestFullRamschGame(t *testing.T) {
	t.Parallel()

	g := NewGame(0)
	g, err := g.DealFixed(mustDeal(t, clubsDeal))
	require.NoError(t, err)
	g, err = g.StartBidding()
	require.NoError(t, err)

	for _, p := range []Position{Middlehand, Rearhand, Forehand} {
		g, err = g.PassBid(p)
		require.NoError(t, err)
	}

	assert.Equal(t, StateTrickPlaying, g.State)
	assert.False(t, g.HasDeclarer)
	gt, ok := g.GameType()
	require.True(t, ok)
	assert.Equal(t, card.GameRamsch, gt)

	// 罗姆什局初始化前不能出牌
	_, err = g.PlayCard(Forehand, mustCard(t, "SA"))
	assert.ErrorIs(t, err, ErrRamschNotPrepared)

	g, err = g.SetupRamsch()
	require.NoError(t, err)
	require.NotNil(t, g.Tricks)

	g = playTricks(t, g, []play{
		{Forehand, "SA"}, {Middlehand, "SJ"}, {Rearhand, "H7"},
		{Middlehand, "CJ"}, {Forehand, "S7"}, {Rearhand, "H8"},
		{Middlehand, "HJ"}, {Forehand, "S8"}, {Rearhand, "H9"},
		{Middlehand, "DJ"}, {Forehand, "S9"}, {Rearhand, "D7"},
		{Middlehand, "CA"}, {Forehand, "HK"}, {Rearhand, "D8"},
		{Middlehand, "CT"}, {Forehand, "HT"}, {Rearhand, "D9"},
		{Middlehand, "CK"}, {Forehand, "HA"}, {Rearhand, "DQ"},
		{Middlehand, "CQ"}, {Forehand, "ST"}, {Rearhand, "DK"},
		{Middlehand, "C9"}, {Forehand, "SK"}, {Rearhand, "DT"},
		{Middlehand, "C8"}, {Forehand, "SQ"}, {Rearhand, "DA"},
	})

	assert.Equal(t, StatePreliminaryGameEnd, g.State)

	g, err = g.FinalizeGame()
	require.NoError(t, err)
	assert.Equal(t, StateGameOver, g.State)

	res := g.RamschResult
	require.NotNil(t, res)
	assert.True(t, res.Durchmarsch)
	assert.Equal(t, int(Middlehand), res.Winner)
	assert.Equal(t, -1, res.Loser)
	assert.Equal(t, 120, res.Points[Middlehand])
	assert.Equal(t, 120, res.Score)
}

// 宣布校验：叫牌终值超过可宣布局值时拒绝
func TestAnnounceRejectsOverbidContract(t *testing.T) {
	t.Parallel()

	g := NewGame(0)
	g, err := g.DealFixed(mustDeal(t, clubsDeal))
	require.NoError(t, err)
	g, err = g.StartBidding()
	require.NoError(t, err)

	// 中手叫到 120：梅花局带 11 的上限内，但无分局 23 不够
	g, err = g.PlaceBid(Middlehand, 120)
	require.NoError(t, err)
	g, err = g.PassBid(Forehand)
	require.NoError(t, err)
	g, err = g.PassBid(Rearhand)
	require.NoError(t, err)

	g, err = g.PlayHand(Middlehand)
	require.NoError(t, err)

	_, err = g.AnnounceGame(Middlehand, card.GameNull, false, false, false)
	assert.ErrorIs(t, err, ErrBidExceedsValue)

	// 梅花手牌局带 10（C7 在底牌里），可宣 12 × 12 = 144 ≥ 120
	g, err = g.AnnounceGame(Middlehand, card.GameClubs, false, false, false)
	require.NoError(t, err)
	assert.Equal(t, StateTrickPlaying, g.State)
}

func TestLegalMovesIdempotentOnSnapshot(t *testing.T) {
	t.Parallel()

	g := NewGame(0)
	g, err := g.DealFixed(mustDeal(t, clubsDeal))
	require.NoError(t, err)
	g, err = g.StartBidding()
	require.NoError(t, err)
	g, err = g.PlaceBid(Middlehand, 18)
	require.NoError(t, err)
	g, err = g.PassBid(Forehand)
	require.NoError(t, err)
	g, err = g.PassBid(Rearhand)
	require.NoError(t, err)
	g, err = g.PlayHand(Middlehand)
	require.NoError(t, err)
	g, err = g.AnnounceGame(Middlehand, card.GameGrand, false, false, false)
	require.NoError(t, err)

	// 先手首出：全手可出
	first := g.LegalMoves(Forehand)
	second := g.LegalMoves(Forehand)
	assert.Equal(t, first, second)
	assert.Len(t, first, 10)

	g, err = g.PlayCard(Forehand, mustCard(t, "SA"))
	require.NoError(t, err)

	// 中手没有素色黑桃（SJ 是将牌），任何牌都合法
	moves := g.LegalMoves(Middlehand)
	assert.Len(t, moves, 10)

	// 后手同样无黑桃
	assert.Equal(t, g.LegalMoves(Rearhand), g.LegalMoves(Rearhand))
}
