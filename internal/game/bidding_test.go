package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBidValueTable(t *testing.T) {
	t.Parallel()

	values := BidValues()
	assert.Len(t, values, 63)
	assert.Equal(t, 18, values[0])
	assert.Equal(t, 264, values[len(values)-1])

	for i := 1; i < len(values); i++ {
		assert.Greater(t, values[i], values[i-1])
	}

	assert.True(t, IsBidValue(18))
	assert.True(t, IsBidValue(59))
	assert.False(t, IsBidValue(19))
	assert.False(t, IsBidValue(0))

	next, ok := NextBidValue(18)
	require.True(t, ok)
	assert.Equal(t, 20, next)
	_, ok = NextBidValue(264)
	assert.False(t, ok)
}

// 完整两阶段：中手叫到 20 后先手弃，后手再叫 22，
// 中手应价，后手弃叫，中手以 22 成为声明者
func TestBiddingTwoPhases(t *testing.T) {
	t.Parallel()

	b := NewBiddingState()
	assert.Equal(t, PhaseMiddleToFore, b.Phase)
	assert.Equal(t, Middlehand, b.ActivePlayer)

	b, err := b.Bid(Middlehand, 18)
	require.NoError(t, err)
	assert.Equal(t, Forehand, b.ActivePlayer)
	assert.False(t, b.IsActiveBidding)

	b, err = b.Hold(Forehand)
	require.NoError(t, err)
	b, err = b.Bid(Middlehand, 20)
	require.NoError(t, err)
	b, err = b.Pass(Forehand)
	require.NoError(t, err)

	assert.Equal(t, PhaseWinnerToRear, b.Phase)
	assert.Equal(t, Middlehand, b.FirstPhaseWinner)
	assert.Equal(t, Rearhand, b.ActivePlayer)

	b, err = b.Bid(Rearhand, 22)
	require.NoError(t, err)
	assert.Equal(t, Middlehand, b.ActivePlayer)

	b, err = b.Hold(Middlehand)
	require.NoError(t, err)
	b, err = b.Pass(Rearhand)
	require.NoError(t, err)

	assert.Equal(t, BidHasDeclarer, b.Outcome)
	assert.Equal(t, Middlehand, b.Declarer)
	assert.Equal(t, 22, b.FinalBid)
	assert.Equal(t, PhaseDone, b.Phase)
}

// 第二阶段应价方弃叫：后手成为声明者
func TestBiddingHolderPassesInPhaseTwo(t *testing.T) {
	t.Parallel()

	b := NewBiddingState()
	b, err := b.Pass(Middlehand)
	require.NoError(t, err)
	assert.Equal(t, Forehand, b.FirstPhaseWinner)

	b, err = b.Bid(Rearhand, 18)
	require.NoError(t, err)
	assert.Equal(t, Forehand, b.ActivePlayer)

	b, err = b.Pass(Forehand)
	require.NoError(t, err)
	assert.Equal(t, BidHasDeclarer, b.Outcome)
	assert.Equal(t, Rearhand, b.Declarer)
	assert.Equal(t, 18, b.FinalBid)
}

// 中手和后手都不叫而弃：先手可按 18 成为声明者
func TestBiddingForehandDefaultWin(t *testing.T) {
	t.Parallel()

	b := NewBiddingState()
	b, err := b.Pass(Middlehand)
	require.NoError(t, err)
	b, err = b.Pass(Rearhand)
	require.NoError(t, err)

	// 进入“先手叫 18”窗口
	assert.Equal(t, BidInProgress, b.Outcome)
	assert.Equal(t, Forehand, b.ActivePlayer)
	assert.True(t, b.IsActiveBidding)

	b, err = b.Bid(Forehand, MinBid)
	require.NoError(t, err)
	assert.Equal(t, BidHasDeclarer, b.Outcome)
	assert.Equal(t, Forehand, b.Declarer)
	assert.Equal(t, 18, b.FinalBid)
}

// 三家全弃且从未有人叫牌：流局，进入罗姆什局
func TestBiddingAllPassed(t *testing.T) {
	t.Parallel()

	b := NewBiddingState()
	b, err := b.Pass(Middlehand)
	require.NoError(t, err)
	b, err = b.Pass(Rearhand)
	require.NoError(t, err)
	b, err = b.Pass(Forehand)
	require.NoError(t, err)

	assert.Equal(t, BidAllPassed, b.Outcome)
	assert.Equal(t, PhaseDone, b.Phase)
}

func TestBiddingErrors(t *testing.T) {
	t.Parallel()

	b := NewBiddingState()

	// 不该先手行动
	_, err := b.Bid(Forehand, 18)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	// 没有叫牌时不能应价
	_, err = b.Hold(Forehand)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	// 非表值与不递增的叫牌
	_, err = b.Bid(Middlehand, 19)
	assert.ErrorIs(t, err, ErrInvalidBidValue)

	next, err := b.Bid(Middlehand, 20)
	require.NoError(t, err)
	_, err = next.Bid(Middlehand, 20)
	assert.ErrorIs(t, err, ErrNotHolder) // 此刻轮到应价方

	held, err := next.Hold(Forehand)
	require.NoError(t, err)
	_, err = held.Bid(Middlehand, 20)
	assert.ErrorIs(t, err, ErrBidNotHigher)
	_, err = held.Bid(Middlehand, 18)
	assert.ErrorIs(t, err, ErrBidNotHigher)

	// 报价方此刻不能应价
	_, err = held.Hold(Middlehand)
	assert.ErrorIs(t, err, ErrNotBidder)

	// 失败的操作不改变原状态
	assert.Equal(t, 20, held.CurrentBid)
	assert.Equal(t, Middlehand, held.ActivePlayer)

	// 无叫牌可应（防御性分支，正常流程不会出现）
	noBid := &BiddingState{Phase: PhaseMiddleToFore, ActivePlayer: Forehand}
	_, err = noBid.Hold(Forehand)
	assert.ErrorIs(t, err, ErrNoBidToHold)

	// 叫牌结束后一切操作失败
	done := &BiddingState{Outcome: BidHasDeclarer, Phase: PhaseDone}
	_, err = done.Bid(Middlehand, 22)
	assert.ErrorIs(t, err, ErrBiddingFinished)
	_, err = done.Pass(Forehand)
	assert.ErrorIs(t, err, ErrBiddingFinished)
}
