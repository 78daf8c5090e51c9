// Package ai 实现启发式电脑玩家，用于超时代打和人数不足时补位。
// 它只看公开信息和自己的手牌，不做任何搜索
package ai

import (
	"github.com/palemoky/skat/internal/game"
	"github.com/palemoky/skat/internal/game/card"
	"github.com/palemoky/skat/internal/game/rule"
)

// suitGames 花色到对应花色局的映射
var suitGames = map[card.Suit]card.GameType{
	card.Clubs:    card.GameClubs,
	card.Spades:   card.GameSpades,
	card.Hearts:   card.GameHearts,
	card.Diamonds: card.GameDiamonds,
}

func countJacks(hand card.Hand) int {
	n := 0
	for _, c := range hand {
		if c.Rank == card.Jack {
			n++
		}
	}
	return n
}

func countRank(hand card.Hand, r card.Rank) int {
	n := 0
	for _, c := range hand {
		if c.Rank == r {
			n++
		}
	}
	return n
}

// lowCount 统计适合无分局的小牌（7、8、9）
func lowCount(hand card.Hand) int {
	n := 0
	for _, c := range hand {
		switch c.Rank {
		case card.Seven, card.Eight, card.Nine:
			n++
		}
	}
	return n
}

// suitLengths 各花色的非 Jack 牌张数
func suitLengths(hand card.Hand) map[card.Suit]int {
	lens := make(map[card.Suit]int, 4)
	for _, c := range hand {
		if c.Rank == card.Jack {
			continue
		}
		lens[c.Suit]++
	}
	return lens
}

// ChooseGameType 根据手牌挑选要宣布的玩法
func ChooseGameType(hand card.Hand) card.GameType {
	if lowCount(hand) >= 8 {
		return card.GameNull
	}

	jacks := countJacks(hand)
	highs := countRank(hand, card.Ace) + countRank(hand, card.Ten)
	if jacks >= 3 && highs >= 4 {
		return card.GameGrand
	}

	// 最长的花色当将牌，长度相同取基础分值高的
	best := card.Clubs
	bestLen := -1
	lens := suitLengths(hand)
	for _, s := range []card.Suit{card.Clubs, card.Spades, card.Hearts, card.Diamonds} {
		if lens[s] > bestLen {
			best, bestLen = s, lens[s]
		}
	}
	return suitGames[best]
}

// MaxBid 估算手牌能叫到的最高叫牌值，0 表示直接弃叫
func MaxBid(hand card.Hand) int {
	gt := ChooseGameType(hand)

	if gt == card.GameNull {
		if lowCount(hand) >= 8 {
			return 23
		}
		return 0
	}

	if gt == card.GameGrand {
		if countJacks(hand) < 2 {
			return 0
		}
	} else if hand.TrumpCount(gt) < 5 {
		return 0
	}

	matadors := rule.Matadors(hand, gt)
	if matadors < 0 {
		matadors = -matadors
	}
	value := gt.BaseValue() * (matadors + 1)
	return highestBidAtMost(value)
}

// highestBidAtMost 叫牌表中不超过 limit 的最大值，没有则返回 0
func highestBidAtMost(limit int) int {
	best := 0
	for _, v := range game.BidValues() {
		if v > limit {
			break
		}
		best = v
	}
	return best
}

// ShouldHold 应价方是否应价当前叫牌值
func ShouldHold(hand card.Hand, currentBid int) bool {
	return currentBid <= MaxBid(hand)
}

// NextBid 报价方的下一个叫牌值，返回 false 表示弃叫
func NextBid(hand card.Hand, currentBid int) (int, bool) {
	next := game.MinBid
	if currentBid > 0 {
		v, ok := game.NextBidValue(currentBid)
		if !ok {
			return 0, false
		}
		next = v
	}
	if next > MaxBid(hand) {
		return 0, false
	}
	return next, true
}

// ChooseDiscards 拿底后挑两张弃牌：优先弃短花色里的大分值牌，
// 保留将牌和 A
func ChooseDiscards(hand card.Hand, gt card.GameType) (card.Card, card.Card) {
	lens := suitLengths(hand)

	type candidate struct {
		c   card.Card
		key int
	}
	var cands []candidate
	for _, c := range hand {
		if card.IsTrump(c, gt) || c.Rank == card.Ace {
			continue
		}
		// 有同花 A 护着的 T 是赢墩，留下
		if c.Rank == card.Ten && hand.Contains(card.Card{Suit: c.Suit, Rank: card.Ace}) {
			continue
		}
		// 花色越短、分值越高越该弃
		cands = append(cands, candidate{c, lens[c.Suit]*100 - c.Points()})
	}

	// 兜底：候选不足两张时放宽到所有非将牌，再到整手牌
	if len(cands) < 2 {
		for _, c := range hand {
			if card.IsTrump(c, gt) || c.Rank != card.Ace {
				continue
			}
			cands = append(cands, candidate{c, 1000})
		}
	}
	if len(cands) < 2 {
		for _, c := range hand {
			if !card.IsTrump(c, gt) {
				continue
			}
			cands = append(cands, candidate{c, 2000 + card.TrumpOrder(c, gt)})
		}
	}

	bestIdx, secondIdx := -1, -1
	for i := range cands {
		switch {
		case bestIdx < 0 || cands[i].key < cands[bestIdx].key:
			secondIdx = bestIdx
			bestIdx = i
		case secondIdx < 0 || cands[i].key < cands[secondIdx].key:
			secondIdx = i
		}
	}
	return cands[bestIdx].c, cands[secondIdx].c
}

// weight 越小越便宜
func weight(c card.Card, gt card.GameType) int {
	return c.Points()*100 + card.TrumpOrder(c, gt)*10 + card.SuitOrder(c, gt)
}

func cheapest(cards []card.Card, gt card.GameType) card.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if weight(c, gt) < weight(best, gt) {
			best = c
		}
	}
	return best
}

// beatsAll c 是否压过本墩已打出的全部牌
func beatsAll(c card.Card, played []game.PlayedCard, lead card.Card, gt card.GameType) bool {
	for _, pc := range played {
		if card.Compare(c, pc.Card, lead, gt) != 1 {
			return false
		}
	}
	return true
}

// ChooseCard 从合法牌里挑一张出。花色局和大满贯局先找能吃墩的
// 最便宜的牌，无分局和罗姆什局反过来找不吃墩的最大牌
func ChooseCard(g *game.Game, p game.Position) (card.Card, bool) {
	legal := g.LegalMoves(p)
	if len(legal) == 0 {
		return card.Card{}, false
	}

	gt, ok := g.GameType()
	if !ok || g.Tricks == nil || g.Tricks.Current == nil {
		return legal[0], true
	}

	trick := g.Tricks.Current
	if len(trick.Cards) == 0 {
		return cheapest(legal, gt), true
	}
	lead := *trick.Lead()

	if gt == card.GameNull || gt == card.GameRamsch {
		if c, found := highestLoser(legal, trick.Cards, lead, gt); found {
			return c, true
		}
		return cheapest(legal, gt), true
	}

	if c, found := cheapestWinner(legal, trick.Cards, lead, gt); found {
		return c, true
	}
	return cheapest(legal, gt), true
}

func cheapestWinner(legal []card.Card, played []game.PlayedCard, lead card.Card, gt card.GameType) (card.Card, bool) {
	var best card.Card
	found := false
	for _, c := range legal {
		if !beatsAll(c, played, lead, gt) {
			continue
		}
		if !found || weight(c, gt) < weight(best, gt) {
			best, found = c, true
		}
	}
	return best, found
}

func highestLoser(legal []card.Card, played []game.PlayedCard, lead card.Card, gt card.GameType) (card.Card, bool) {
	var best card.Card
	found := false
	for _, c := range legal {
		if beatsAll(c, played, lead, gt) {
			continue
		}
		if !found || weight(c, gt) > weight(best, gt) {
			best, found = c, true
		}
	}
	return best, found
}
