package game

import (
	"slices"

	"github.com/palemoky/skat/internal/game/card"
)

// PlayedCard 记录一张已打出的牌及其出牌者
type PlayedCard struct {
	Card   card.Card
	Player Position
}

// Trick 定义一墩牌。不变式：最多三张；Done 只在出满三张并
// 定出赢家后为真，赢家一经确定不再重算
type Trick struct {
	Forehand Position // 本墩首出者
	Cards    []PlayedCard
	Winner   Position // 仅 Done 时有效
	Done     bool
}

// NewTrick 创建一墩新牌
func NewTrick(forehand Position) *Trick {
	return &Trick{Forehand: forehand}
}

// clone 返回本墩的副本
func (t *Trick) clone() *Trick {
	out := *t
	out.Cards = slices.Clone(t.Cards)
	return &out
}

// IsComplete 判断本墩是否已出满三张
func (t *Trick) IsComplete() bool {
	return len(t.Cards) == 3
}

// Lead 返回本墩首出的牌，尚无人出牌时返回 nil
func (t *Trick) Lead() *card.Card {
	if len(t.Cards) == 0 {
		return nil
	}
	return &t.Cards[0].Card
}

// NextPlayer 返回下一个出牌的座次：最后出牌者的左邻，
// 空墩时为本墩首出者
func (t *Trick) NextPlayer() Position {
	if len(t.Cards) == 0 {
		return t.Forehand
	}
	return t.Cards[len(t.Cards)-1].Player.Next()
}

// AddCard 返回加入一张牌后的新墩，已满三张时失败
func (t *Trick) AddCard(c card.Card, p Position) (*Trick, error) {
	if t.IsComplete() {
		return nil, ErrTrickFull
	}
	out := t.clone()
	out.Cards = append(out.Cards, PlayedCard{Card: c, Player: p})
	return out, nil
}

// Points 返回本墩的总分值
func (t *Trick) Points() int {
	total := 0
	for _, pc := range t.Cards {
		total += pc.Card.Points()
	}
	return total
}

// Complete 定出赢家并冻结本墩。逐张与当前最佳比较，
// 只有严格更大才接管赢家，比较结果相等时先出者保持赢家
// （两张都没跟上首出花色的副牌即属此例）
func (t *Trick) Complete(gt card.GameType) (*Trick, error) {
	if !t.IsComplete() {
		return nil, ErrTrickIncomplete
	}

	out := t.clone()
	lead := out.Cards[0].Card
	best := out.Cards[0]
	for _, pc := range out.Cards[1:] {
		if card.Compare(pc.Card, best.Card, lead, gt) > 0 {
			best = pc
		}
	}
	out.Winner = best.Player
	out.Done = true
	return out, nil
}
