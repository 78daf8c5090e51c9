package rule

import "github.com/palemoky/skat/internal/game/card"

// Rule 定义一种玩法的全部规则入口。每种玩法一条记录，
// 启动时建表后不再变更，通过 ForType 按玩法查找
type Rule struct {
	Type card.GameType

	// declarerWins 按墩分和墩数判断声明者是否达成基本目标。
	// 罗姆什局没有声明者，该字段为 nil，结算走 ScoreRamsch
	declarerWins func(points, tricks int) bool
}

func suitWins(points, _ int) bool { return points >= 61 }
func nullWins(_, tricks int) bool { return tricks == 0 }

// rules 玩法规则静态表
var rules = map[card.GameType]Rule{
	card.GameClubs:    {Type: card.GameClubs, declarerWins: suitWins},
	card.GameSpades:   {Type: card.GameSpades, declarerWins: suitWins},
	card.GameHearts:   {Type: card.GameHearts, declarerWins: suitWins},
	card.GameDiamonds: {Type: card.GameDiamonds, declarerWins: suitWins},
	card.GameGrand:    {Type: card.GameGrand, declarerWins: suitWins},
	card.GameNull:     {Type: card.GameNull, declarerWins: nullWins},
	card.GameRamsch:   {Type: card.GameRamsch},
}

// ForType 返回指定玩法的规则
func ForType(gt card.GameType) (Rule, bool) {
	r, ok := rules[gt]
	return r, ok
}

// IsTrump 判断某张牌在本玩法下是否为将牌
func (r Rule) IsTrump(c card.Card) bool {
	return card.IsTrump(c, r.Type)
}

// TrumpOrder 返回将牌强弱序号
func (r Rule) TrumpOrder(c card.Card) int {
	return card.TrumpOrder(c, r.Type)
}

// SuitOrder 返回同花色内的强弱序号
func (r Rule) SuitOrder(c card.Card) int {
	return card.SuitOrder(c, r.Type)
}

// Compare 在本玩法下比较两张牌
func (r Rule) Compare(a, b, lead card.Card) int {
	return card.Compare(a, b, lead, r.Type)
}

// LegalMoves 返回手牌中所有合法可出的牌。
// 对同一快照重复调用结果相同
func (r Rule) LegalMoves(hand card.Hand, lead *card.Card) []card.Card {
	moves := make([]card.Card, 0, len(hand))
	for _, c := range hand {
		if card.CanPlay(c, lead, hand, r.Type) {
			moves = append(moves, c)
		}
	}
	return moves
}

// IsDeclarerWinner 判断声明者是否达成基本目标：
// 花色局和大满贯局需要 61 分，无分局需要零墩
func (r Rule) IsDeclarerWinner(points, tricks int) bool {
	if r.declarerWins == nil {
		return false
	}
	return r.declarerWins(points, tricks)
}
