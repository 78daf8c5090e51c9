package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/skat/internal/game/card"
)

func jack(s card.Suit) card.Card { return card.Card{Suit: s, Rank: card.Jack} }

func TestMatadors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    []card.Card
		gameType card.GameType
		expected int
	}{
		{
			name:     "With 1",
			cards:    []card.Card{jack(card.Clubs), {Suit: card.Hearts, Rank: card.Jack}},
			gameType: card.GameClubs,
			expected: 1,
		},
		{
			name:     "With 2",
			cards:    []card.Card{jack(card.Clubs), jack(card.Spades), jack(card.Diamonds)},
			gameType: card.GameClubs,
			expected: 2,
		},
		{
			name:     "Without 2",
			cards:    []card.Card{jack(card.Hearts), jack(card.Diamonds)},
			gameType: card.GameGrand,
			expected: -2,
		},
		{
			name:     "Without 4",
			cards:    []card.Card{{Suit: card.Clubs, Rank: card.Ace}},
			gameType: card.GameClubs,
			expected: -4,
		},
		{
			name: "With 4 stops at missing trump ace",
			cards: []card.Card{
				jack(card.Clubs), jack(card.Spades), jack(card.Hearts), jack(card.Diamonds),
				{Suit: card.Clubs, Rank: card.Ten},
			},
			gameType: card.GameClubs,
			expected: 4,
		},
		{
			name: "With 6 runs into trump suit",
			cards: []card.Card{
				jack(card.Clubs), jack(card.Spades), jack(card.Hearts), jack(card.Diamonds),
				{Suit: card.Hearts, Rank: card.Ace}, {Suit: card.Hearts, Rank: card.Ten},
				{Suit: card.Hearts, Rank: card.Queen},
			},
			gameType: card.GameHearts,
			expected: 6,
		},
		{
			name: "Grand caps at four jacks",
			cards: []card.Card{
				jack(card.Clubs), jack(card.Spades), jack(card.Hearts), jack(card.Diamonds),
				{Suit: card.Clubs, Rank: card.Ace}, {Suit: card.Clubs, Rank: card.Ten},
			},
			gameType: card.GameGrand,
			expected: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Matadors(tt.cards, tt.gameType))
		})
	}
}

// 每多持有一张顶端连续将牌，倍数恰好加 1；缺将同理
func TestMatadorMonotonicity(t *testing.T) {
	t.Parallel()

	contract := Contract{GameType: card.GameClubs}

	// “带”侧：依次补上顶端将牌
	sequence := []card.Card{
		jack(card.Clubs), jack(card.Spades), jack(card.Hearts), jack(card.Diamonds),
		{Suit: card.Clubs, Rank: card.Ace}, {Suit: card.Clubs, Rank: card.Ten},
	}
	var held []card.Card
	prev := 0
	for _, c := range sequence {
		held = append(held, c)
		m := Multiplier(Matadors(held, card.GameClubs), contract, false, false)
		assert.Equal(t, prev+1, m-1, "holding %v", held)
		prev = m - 1
	}

	// “缺”侧：顶端缺失的 J 越多倍数越高
	stoppers := []card.Card{jack(card.Spades), jack(card.Hearts), jack(card.Diamonds)}
	for i, stop := range stoppers {
		m := Multiplier(Matadors([]card.Card{stop}, card.GameClubs), contract, false, false)
		assert.Equal(t, i+2, m, "first held jack %v", stop)
	}
}

func TestMultiplierModifiers(t *testing.T) {
	t.Parallel()

	c := Contract{GameType: card.GameClubs, Hand: true, Schneider: true, Schwarz: true, Ouvert: true}
	// 带 1 + 局 1 + 手牌 + 奏 + 黑 + 明牌 = 6
	assert.Equal(t, 6, Multiplier(1, c, false, false))

	// 达成的奏/黑与宣布的合并计入，不重复加倍
	assert.Equal(t, 6, Multiplier(1, c, true, true))

	plain := Contract{GameType: card.GameClubs}
	assert.Equal(t, 3, Multiplier(-1, plain, true, false))
}
