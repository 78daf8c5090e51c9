package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/skat/internal/network/protocol"
)

func TestRenderCard(t *testing.T) {
	t.Parallel()

	// 样式带终端转义序列，只核对牌面字符
	assert.Contains(t, renderCard("HA"), "♥A")
	assert.Contains(t, renderCard("CJ"), "♣J")
	assert.Contains(t, renderCard("ST"), "♠T")
	assert.Contains(t, renderCard("D7"), "♦7")

	// 不认识的牌码原样返回
	assert.Equal(t, "XX", renderCard("XX"))
	assert.Equal(t, "abc", renderCard("abc"))
}

func TestRenderHandEmpty(t *testing.T) {
	t.Parallel()
	assert.Contains(t, renderHand(nil, 0, nil), "没有手牌")
}

func TestHandleServerMessageGameFlow(t *testing.T) {
	t.Parallel()

	m := NewModel("ws://unused")
	m.playerID = "me"

	// 入座
	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgTableJoined, protocol.TableJoinedPayload{
		TableCode: "123456",
		Players: []protocol.PlayerInfo{
			{ID: "me", Name: "anna", Seat: 0},
			{ID: "p1", Name: "bert", Seat: 1},
		},
	}))
	assert.Equal(t, PhaseWaiting, m.phase)
	assert.Equal(t, "123456", m.tableCode)
	assert.Len(t, m.players, 2)

	// 开局发牌
	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgGameStart, protocol.GameStartPayload{}))
	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgDealCards, protocol.DealCardsPayload{
		Cards: []string{"CJ", "SA", "HT"},
	}))
	assert.Equal(t, []string{"CJ", "SA", "HT"}, m.hand)

	// 轮到自己叫牌
	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgBidTurn, protocol.BidTurnPayload{
		PlayerID:   "me",
		CurrentBid: 0,
	}))
	assert.Equal(t, PhaseBidding, m.phase)
	assert.True(t, m.myBidTurn)

	// 自己成为声明者
	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgDeclarer, protocol.DeclarerPayload{
		PlayerID: "me",
		Bid:      18,
	}))
	assert.Equal(t, PhaseSkatDecision, m.phase)
	assert.Equal(t, 18, m.finalBid)

	// 拿底后进入弃牌
	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgSkatTaken, protocol.SkatTakenPayload{
		PlayerID: "me",
		Skat:     []string{"C7", "HQ"},
	}))
	assert.Equal(t, PhaseDiscarding, m.phase)
	assert.Len(t, m.hand, 5)

	// 宣布后开打
	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgGameAnnounced, protocol.GameAnnouncedPayload{
		PlayerID:     "me",
		Announcement: "C",
	}))
	assert.Equal(t, PhasePlaying, m.phase)
	assert.Equal(t, "C", m.announcement)

	// 自己出的牌从手里消失
	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		PlayerID: "me",
		Card:     "CJ",
	}))
	assert.NotContains(t, m.hand, "CJ")
	assert.Equal(t, []string{"CJ"}, m.trickCards)

	// 一墩结束清空桌面
	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgTrickWon, protocol.TrickWonPayload{
		TrickNumber: 1,
		WinnerName:  "anna",
		Cards:       []string{"CJ", "C8", "C9"},
		Points:      2,
	}))
	assert.Empty(t, m.trickCards)
	assert.Contains(t, m.lastTrick, "anna")

	// 结算
	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
		DeclarerID: "me",
		Won:        true,
		Score:      24,
		GameValue:  24,
	}))
	assert.Equal(t, PhaseGameOver, m.phase)
	require.NotNil(t, m.gameOver)
	assert.True(t, m.gameOver.Won)
}

func TestWonGame(t *testing.T) {
	t.Parallel()

	m := NewModel("ws://unused")
	m.playerID = "me"

	cases := []struct {
		name string
		over protocol.GameOverPayload
		want bool
	}{
		{"声明者赢", protocol.GameOverPayload{DeclarerID: "me", Won: true}, true},
		{"声明者输", protocol.GameOverPayload{DeclarerID: "me", Won: false}, false},
		{"防守方赢", protocol.GameOverPayload{DeclarerID: "p1", Won: false}, true},
		{"防守方输", protocol.GameOverPayload{DeclarerID: "p1", Won: true}, false},
		{"罗姆什局不是输家", protocol.GameOverPayload{Ramsch: true, LoserID: "p1"}, true},
		{"罗姆什局输家", protocol.GameOverPayload{Ramsch: true, LoserID: "me"}, false},
		{"一穿到底赢家", protocol.GameOverPayload{Ramsch: true, Durchmarsch: true, WinnerID: "me"}, true},
		{"一穿到底旁观", protocol.GameOverPayload{Ramsch: true, Durchmarsch: true, WinnerID: "p1"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.wonGame(&tc.over))
		})
	}
}

func TestToggleMarkLimitsToTwo(t *testing.T) {
	t.Parallel()

	m := NewModel("ws://unused")
	m.hand = []string{"CJ", "SA", "HT", "D7"}

	m.cursor = 0
	m.toggleMark()
	m.cursor = 1
	m.toggleMark()
	m.cursor = 2
	m.toggleMark() // 第三张选不上
	assert.Equal(t, []string{"CJ", "SA"}, m.markedCodes())

	// 取消后可以换一张
	m.cursor = 0
	m.toggleMark()
	m.cursor = 2
	m.toggleMark()
	assert.Equal(t, []string{"SA", "HT"}, m.markedCodes())
}

func TestViewRendersPhases(t *testing.T) {
	t.Parallel()

	m := NewModel("ws://unused")
	m.playerName = "anna"
	m.phase = PhaseLobby
	assert.True(t, strings.Contains(m.View(), "创建牌桌"))

	m.phase = PhaseWaiting
	m.tableCode = "123456"
	assert.True(t, strings.Contains(m.View(), "123456"))

	m.phase = PhaseGameOver
	m.gameOver = &protocol.GameOverPayload{DeclarerID: "me", Won: true, GameValue: 24, Score: 24, Skat: []string{"C7", "HQ"}}
	view := m.View()
	assert.True(t, strings.Contains(view, "本局结束"))
	assert.True(t, strings.Contains(view, "24"))
}
