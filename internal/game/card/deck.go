package card

import (
	"fmt"
	"math/rand/v2"
)

// DeckSize 整副牌的张数
const DeckSize = 32

// Deck 定义一副牌：4 种花色 × 8 个点数
type Deck []Card

// NewDeck 创建按固定顺序排列的整副牌
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for s := Clubs; s <= Diamonds; s++ {
		for r := Seven; r <= Ace; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle 原地洗牌
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Deal 定义一次发牌结果：三家各 10 张加 2 张底牌
type Deal struct {
	Hands [3]Hand
	Skat  [2]Card
}

// Deal 按传统顺序发牌：每家 3 张、2 张入底、每家 4 张、每家 3 张
func (d Deck) Deal() (Deal, error) {
	if err := Validate(d); err != nil {
		return Deal{}, err
	}

	var out Deal
	pos := 0
	take := func(n int) []Card {
		cards := d[pos : pos+n]
		pos += n
		return cards
	}

	for i := range out.Hands {
		out.Hands[i] = out.Hands[i].Add(take(3)...)
	}
	copy(out.Skat[:], take(2))
	for i := range out.Hands {
		out.Hands[i] = out.Hands[i].Add(take(4)...)
	}
	for i := range out.Hands {
		out.Hands[i] = out.Hands[i].Add(take(3)...)
	}
	return out, nil
}

// Validate 校验一组牌恰好构成完整的一副牌，无重复无遗漏
func Validate(cards []Card) error {
	if len(cards) != DeckSize {
		return fmt.Errorf("牌数不对: 期望 %d 张, 实际 %d 张", DeckSize, len(cards))
	}
	seen := make(map[Card]bool, DeckSize)
	for _, c := range cards {
		if seen[c] {
			return fmt.Errorf("重复的牌: %s", c)
		}
		seen[c] = true
	}
	return nil
}

// ValidateDeal 校验一次发牌结果满足牌张守恒：
// 三家手牌与底牌合起来恰好是一整副牌
func ValidateDeal(deal Deal) error {
	all := make([]Card, 0, DeckSize)
	for _, h := range deal.Hands {
		all = append(all, h...)
	}
	all = append(all, deal.Skat[:]...)
	return Validate(all)
}
