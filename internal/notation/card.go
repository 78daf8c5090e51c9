// Package notation 实现与旧版文字线协议位兼容的记谱法：
// 牌码、手牌与发牌记谱、宣布记谱、着法记号和玩家状态记录。
// 线上输入出现畸形文本是常态，所有解码函数以缺值（ok 为 false）
// 而非错误表示失败
package notation

import (
	"strings"

	"github.com/palemoky/skat/internal/game/card"
)

// HiddenCard 隐藏牌的占位符，解码时跳过而非报错
const HiddenCard = "??"

// suitCodes 花色字符映射表，顺序与花色的固定顺序一致
var suitCodes = map[card.Suit]byte{
	card.Clubs:    'C',
	card.Spades:   'S',
	card.Hearts:   'H',
	card.Diamonds: 'D',
}

// rankCodes 点数字符映射表
var rankCodes = map[card.Rank]byte{
	card.Seven: '7',
	card.Eight: '8',
	card.Nine:  '9',
	card.Ten:   'T',
	card.Jack:  'J',
	card.Queen: 'Q',
	card.King:  'K',
	card.Ace:   'A',
}

var (
	suitFromCode = invert(suitCodes)
	rankFromCode = invert(rankCodes)
)

func invert[K comparable](m map[K]byte) map[byte]K {
	out := make(map[byte]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// CardCode 返回一张牌的两字符牌码，如梅花 A 为 "CA"
func CardCode(c card.Card) string {
	return string([]byte{suitCodes[c.Suit], rankCodes[c.Rank]})
}

// ParseCard 解析两字符牌码
func ParseCard(s string) (card.Card, bool) {
	if len(s) != 2 {
		return card.Card{}, false
	}
	suit, ok := suitFromCode[s[0]]
	if !ok {
		return card.Card{}, false
	}
	rank, ok := rankFromCode[s[1]]
	if !ok {
		return card.Card{}, false
	}
	return card.Card{Suit: suit, Rank: rank}, true
}

// HandString 返回点号连接的牌码串
func HandString(cards []card.Card) string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = CardCode(c)
	}
	return strings.Join(codes, ".")
}

// ParseHand 解析点号连接的牌码串。隐藏牌占位符被跳过，
// 出现无法识别的牌码时整体解码失败
func ParseHand(s string) ([]card.Card, bool) {
	if s == "" {
		return nil, true
	}
	var cards []card.Card
	for part := range strings.SplitSeq(s, ".") {
		if part == HiddenCard {
			continue
		}
		c, ok := ParseCard(part)
		if !ok {
			return nil, false
		}
		cards = append(cards, c)
	}
	return cards, true
}

// DealString 返回竖线分隔的四段发牌记谱：先手|中手|后手|底牌
func DealString(d card.Deal) string {
	return strings.Join([]string{
		HandString(d.Hands[0]),
		HandString(d.Hands[1]),
		HandString(d.Hands[2]),
		HandString(d.Skat[:]),
	}, "|")
}

// ParseDeal 解析四段发牌记谱
func ParseDeal(s string) (card.Deal, bool) {
	parts := strings.Split(s, "|")
	if len(parts) != 4 {
		return card.Deal{}, false
	}

	var out card.Deal
	for i := range 3 {
		cards, ok := ParseHand(parts[i])
		if !ok {
			return card.Deal{}, false
		}
		out.Hands[i] = cards
	}

	skat, ok := ParseHand(parts[3])
	if !ok || len(skat) != 2 {
		return card.Deal{}, false
	}
	copy(out.Skat[:], skat)
	return out, true
}
