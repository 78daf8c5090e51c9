package rule

import "github.com/palemoky/skat/internal/game/card"

// jackSequence 计算连将时扫描 J 的固定顺序
var jackSequence = [4]card.Card{
	{Suit: card.Clubs, Rank: card.Jack},
	{Suit: card.Spades, Rank: card.Jack},
	{Suit: card.Hearts, Rank: card.Jack},
	{Suit: card.Diamonds, Rank: card.Jack},
}

// trumpSequence 四张 J 之后继续扫描的将牌花色点数顺序
var trumpSequence = [7]card.Rank{
	card.Ace, card.Ten, card.King, card.Queen,
	card.Nine, card.Eight, card.Seven,
}

// Matadors 计算连将数。持有梅花 J 时从顶端往下数连续持有的将牌
//（“带 N”，正数）；缺梅花 J 时数连续缺失的 J（“缺 N”，负数）。
// 四张 J 齐时花色局继续沿将牌花色 A T K Q 9 8 7 往下数。
// cards 应为声明者用于结算的全部牌（手牌加底牌）
func Matadors(cards []card.Card, gt card.GameType) int {
	held := make(map[card.Card]bool, len(cards))
	for _, c := range cards {
		held[c] = true
	}

	if !held[jackSequence[0]] {
		// 缺将：数从顶端起连续缺失的 J
		without := 0
		for _, j := range jackSequence {
			if held[j] {
				break
			}
			without++
		}
		return -without
	}

	with := 0
	for _, j := range jackSequence {
		if !held[j] {
			return with
		}
		with++
	}

	// 四张 J 齐，花色局继续数将牌花色
	trumpSuit, ok := gt.TrumpSuit()
	if !ok {
		return with
	}
	for _, r := range trumpSequence {
		if !held[card.Card{Suit: trumpSuit, Rank: r}] {
			break
		}
		with++
	}
	return with
}

// Multiplier 计算花色局与大满贯局的倍数：连将数加 1，
// 手牌局、奏、黑、明牌各再加 1。达成的奏/黑与宣布的合并计入
func Multiplier(matadors int, c Contract, schneider, schwarz bool) int {
	m := abs(matadors) + 1
	if c.Hand {
		m++
	}
	if c.Schneider || schneider {
		m++
	}
	if c.Schwarz || schwarz {
		m++
	}
	if c.Ouvert {
		m++
	}
	return m
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
