package card

import (
	"slices"
	"strings"
)

// Hand 定义一手牌，发牌后 10 张，声明者拿底后短暂为 12 张。
// 不变式：不含重复牌
type Hand []Card

// Clone 返回手牌的副本
func (h Hand) Clone() Hand {
	return slices.Clone(h)
}

// Contains 判断手牌中是否有指定的牌
func (h Hand) Contains(c Card) bool {
	return slices.Contains(h, c)
}

// Remove 返回移除指定牌后的新手牌，原手牌不变。
// 第二个返回值表示该牌是否在手牌中
func (h Hand) Remove(c Card) (Hand, bool) {
	idx := slices.Index(h, c)
	if idx < 0 {
		return h, false
	}
	out := make(Hand, 0, len(h)-1)
	out = append(out, h[:idx]...)
	out = append(out, h[idx+1:]...)
	return out, true
}

// Add 返回加入指定牌后的新手牌，原手牌不变
func (h Hand) Add(cards ...Card) Hand {
	out := make(Hand, 0, len(h)+len(cards))
	out = append(out, h...)
	out = append(out, cards...)
	return out
}

// Points 返回手牌的总分值
func (h Hand) Points() int {
	total := 0
	for _, c := range h {
		total += c.Points()
	}
	return total
}

// TrumpCount 统计手牌中指定玩法下的将牌数量
func (h Hand) TrumpCount(gt GameType) int {
	count := 0
	for _, c := range h {
		if IsTrump(c, gt) {
			count++
		}
	}
	return count
}

// Sorted 返回按指定玩法排序后的新手牌：将牌在前从大到小，
// 随后各副牌花色按固定花色顺序分组、组内从大到小
func (h Hand) Sorted(gt GameType) Hand {
	out := h.Clone()
	slices.SortStableFunc(out, func(a, b Card) int {
		aTrump, bTrump := IsTrump(a, gt), IsTrump(b, gt)
		switch {
		case aTrump && !bTrump:
			return -1
		case !aTrump && bTrump:
			return 1
		case aTrump && bTrump:
			return TrumpOrder(b, gt) - TrumpOrder(a, gt)
		}
		if a.Suit != b.Suit {
			return int(a.Suit) - int(b.Suit)
		}
		return SuitOrder(b, gt) - SuitOrder(a, gt)
	})
	return out
}

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
