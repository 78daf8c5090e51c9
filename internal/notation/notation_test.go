package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/skat/internal/game/card"
)

// 全部 32 张牌编码再解码必须还原
func TestCardCodeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range card.NewDeck() {
		code := CardCode(c)
		assert.Len(t, code, 2)

		decoded, ok := ParseCard(code)
		require.True(t, ok, "code %s", code)
		assert.Equal(t, c, decoded)
	}

	assert.Equal(t, "CA", CardCode(card.Card{Suit: card.Clubs, Rank: card.Ace}))
	assert.Equal(t, "DT", CardCode(card.Card{Suit: card.Diamonds, Rank: card.Ten}))
}

func TestParseCardRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "C", "CAX", "XA", "C1", "??"} {
		_, ok := ParseCard(s)
		assert.False(t, ok, "input %q", s)
	}
}

func TestParseHand(t *testing.T) {
	t.Parallel()

	cards, ok := ParseHand("CJ.SJ.HT")
	require.True(t, ok)
	assert.Equal(t, []card.Card{
		{Suit: card.Clubs, Rank: card.Jack},
		{Suit: card.Spades, Rank: card.Jack},
		{Suit: card.Hearts, Rank: card.Ten},
	}, cards)

	// 隐藏牌被跳过而不是报错
	cards, ok = ParseHand("??.CA.??")
	require.True(t, ok)
	assert.Equal(t, []card.Card{{Suit: card.Clubs, Rank: card.Ace}}, cards)

	_, ok = ParseHand("CA.XX")
	assert.False(t, ok)
}

func TestDealRoundTrip(t *testing.T) {
	t.Parallel()

	deck := card.NewDeck()
	deck.Shuffle()
	deal, err := deck.Deal()
	require.NoError(t, err)

	s := DealString(deal)
	decoded, ok := ParseDeal(s)
	require.True(t, ok)
	assert.Equal(t, deal, decoded)

	_, ok = ParseDeal("CA.CT|C7")
	assert.False(t, ok)
}

func TestAnnouncementRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ann      Announcement
		expected string
	}{
		{"Plain clubs", Announcement{GameType: card.GameClubs}, "C"},
		{"Grand hand", Announcement{GameType: card.GameGrand, Hand: true}, "GH"},
		{"Null hand ouvert", Announcement{GameType: card.GameNull, Hand: true, Ouvert: true}, "NHO"},
		{
			"Hearts hand schneider schwarz",
			Announcement{GameType: card.GameHearts, Hand: true, Schneider: true, Schwarz: true},
			"HHSZ",
		},
		{
			"Spades with discards",
			Announcement{GameType: card.GameSpades, Discards: []card.Card{
				{Suit: card.Hearts, Rank: card.Queen},
				{Suit: card.Clubs, Rank: card.Eight},
			}},
			"S.HQ.C8",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.ann.String())

			decoded, ok := ParseAnnouncement(tt.expected)
			require.True(t, ok)
			assert.Equal(t, tt.ann, decoded)
		})
	}
}

// 修饰符输入顺序任意，输出固定为 H O S Z
func TestAnnouncementModifierOrder(t *testing.T) {
	t.Parallel()

	a, ok := ParseAnnouncement("HZSH")
	require.True(t, ok)
	assert.True(t, a.Hand)
	assert.True(t, a.Schneider)
	assert.True(t, a.Schwarz)
	assert.Equal(t, "HHSZ", a.String())
}

func TestParseAnnouncementRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "X", "CB", "R", "C.CA.C8.C9"} {
		_, ok := ParseAnnouncement(s)
		assert.False(t, ok, "input %q", s)
	}
}

func TestMoveTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		move  Move
	}{
		{"18", Move{Kind: MoveBid, Bid: 18}},
		{"264", Move{Kind: MoveBid, Bid: 264}},
		{"y", Move{Kind: MoveHold}},
		{"p", Move{Kind: MovePass}},
		{"s", Move{Kind: MoveSkatRequest}},
		{"SC", Move{Kind: MoveShowCards}},
		{"RE", Move{Kind: MoveResign}},
		{"TI", Move{Kind: MoveTimeout}},
		{"LE", Move{Kind: MoveLeave}},
		{"HJ", Move{Kind: MoveCardPlay, Card: card.Card{Suit: card.Hearts, Rank: card.Jack}}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			t.Parallel()

			m, ok := ParseMove(tt.token)
			require.True(t, ok)
			assert.Equal(t, tt.move, m)
			assert.Equal(t, tt.token, m.Token())
		})
	}

	_, ok := ParseMove("xx")
	assert.False(t, ok)
	_, ok = ParseMove("-18")
	assert.False(t, ok)
}

func TestPlayerStatusRecord(t *testing.T) {
	t.Parallel()

	ps := PlayerStatus{
		Name:       "anna",
		IP:         "10.0.0.7",
		Games:      42,
		Won:        17,
		LastResult: -54,
		Points:     312,
		Talk:       true,
		Ready:      true,
	}

	record := ps.Record()
	assert.Equal(t, "anna 10.0.0.7 42 17 -54 312 0 0 1 1", record)

	decoded, ok := ParsePlayerStatus(record)
	require.True(t, ok)
	ps.Reserved = "0"
	assert.Equal(t, ps, decoded)

	_, ok = ParsePlayerStatus("anna 10.0.0.7 42")
	assert.False(t, ok)
	_, ok = ParsePlayerStatus("anna ip x 17 -54 312 0 0 1 1")
	assert.False(t, ok)
}
