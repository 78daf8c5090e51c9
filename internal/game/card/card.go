package card

import "strconv"

// Suit 定义花色，枚举顺序即记谱和底分使用的固定顺序（梅花最高）
type Suit int

const (
	Clubs    Suit = iota // 梅花 ♣
	Spades               // 黑桃 ♠
	Hearts               // 红心 ♥
	Diamonds             // 方块 ♦
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Clubs:    "♣",
	Spades:   "♠",
	Hearts:   "♥",
	Diamonds: "♦",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

// Rank 定义点数
type Rank int

const (
	Seven Rank = iota
	Eight
	Nine
	Ten
	Jack // J 在花色局和大满贯局中永远是将牌
	Queen
	King
	Ace
)

// rankNames 点数字符串映射表
var rankNames = map[Rank]string{
	Seven: "7",
	Eight: "8",
	Nine:  "9",
	Ten:   "T",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// rankPoints 点数对应的分值，全副 32 张共 120 分
var rankPoints = map[Rank]int{
	Jack:  2,
	Queen: 3,
	King:  4,
	Ten:   10,
	Ace:   11,
}

// Card 定义一张牌
type Card struct {
	Suit Suit
	Rank Rank
}

// Points 返回这张牌的分值
func (c Card) Points() int {
	return rankPoints[c.Rank]
}

func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

// GameType 定义玩法，牌的大小比较只在某个玩法下才有意义
type GameType int

const (
	GameClubs    GameType = iota // 梅花局
	GameSpades                   // 黑桃局
	GameHearts                   // 红心局
	GameDiamonds                 // 方块局
	GameGrand                    // 大满贯局：只有 J 是将牌
	GameNull                     // 无分局：没有将牌
	GameRamsch                   // 罗姆什局：流局后的兜底玩法，将牌同大满贯
)

// gameTypeNames 玩法名称映射表
var gameTypeNames = map[GameType]string{
	GameClubs:    "Clubs",
	GameSpades:   "Spades",
	GameHearts:   "Hearts",
	GameDiamonds: "Diamonds",
	GameGrand:    "Grand",
	GameNull:     "Null",
	GameRamsch:   "Ramsch",
}

func (gt GameType) String() string {
	if name, ok := gameTypeNames[gt]; ok {
		return name
	}
	return "Unknown"
}

// baseValues 花色局与大满贯局的底分
var baseValues = map[GameType]int{
	GameClubs:    12,
	GameSpades:   11,
	GameHearts:   10,
	GameDiamonds: 9,
	GameGrand:    24,
}

// BaseValue 返回玩法的底分，无分局和罗姆什局没有底分
func (gt GameType) BaseValue() int {
	return baseValues[gt]
}

// IsSuitGame 判断是否为花色局
func (gt GameType) IsSuitGame() bool {
	return gt >= GameClubs && gt <= GameDiamonds
}

// TrumpSuit 返回花色局的将牌花色
func (gt GameType) TrumpSuit() (Suit, bool) {
	if gt.IsSuitGame() {
		return Suit(gt), true
	}
	return 0, false
}

// IsTrump 判断某张牌在指定玩法下是否为将牌。
// J 在花色局、大满贯局和罗姆什局中永远是将牌，无分局没有将牌
func IsTrump(c Card, gt GameType) bool {
	switch {
	case gt == GameNull:
		return false
	case c.Rank == Jack:
		return true
	default:
		suit, ok := gt.TrumpSuit()
		return ok && c.Suit == suit
	}
}

// jackOrder 四张 J 之间的固定强弱：梅花 > 黑桃 > 红心 > 方块
var jackOrder = map[Suit]int{
	Clubs:    4,
	Spades:   3,
	Hearts:   2,
	Diamonds: 1,
}

// trumpSuitOrder 将牌花色内的强弱：A > T > K > Q > 9 > 8 > 7
var trumpSuitOrder = map[Rank]int{
	Ace:   7,
	Ten:   6,
	King:  5,
	Queen: 4,
	Nine:  3,
	Eight: 2,
	Seven: 1,
}

// TrumpOrder 返回将牌的强弱序号，数值越大越强；非将牌返回 0。
// 四张 J 永远压过将牌花色的所有牌
func TrumpOrder(c Card, gt GameType) int {
	if !IsTrump(c, gt) {
		return 0
	}
	if c.Rank == Jack {
		return 7 + jackOrder[c.Suit]
	}
	return trumpSuitOrder[c.Rank]
}

// suitOrderNull 无分局的花色内强弱：A > K > Q > J > T > 9 > 8 > 7
var suitOrderNull = map[Rank]int{
	Ace:   8,
	King:  7,
	Queen: 6,
	Jack:  5,
	Ten:   4,
	Nine:  3,
	Eight: 2,
	Seven: 1,
}

// SuitOrder 返回同花色内比较用的强弱序号，数值越大越强。
// 非无分局沿用将牌花色的点数顺序（J 不参与，它属于将牌）
func SuitOrder(c Card, gt GameType) int {
	if gt == GameNull {
		return suitOrderNull[c.Rank]
	}
	return trumpSuitOrder[c.Rank]
}

// follows 判断一张牌是否跟上了首出牌：
// 首出是将牌时必须也是将牌；首出是副牌时必须同花色且不是将牌
// （J 永远不算作它表面的花色）
func follows(c, lead Card, gt GameType) bool {
	if IsTrump(lead, gt) {
		return IsTrump(c, gt)
	}
	return !IsTrump(c, gt) && c.Suit == lead.Suit
}

// Compare 在指定玩法下比较两张牌的大小，lead 为本墩首出的牌。
// 返回 1 表示 a 大，-1 表示 b 大，0 表示无法比较
// （双方都既非将牌也没跟上首出花色，此时由调用方保持先出者为临时赢家）
func Compare(a, b, lead Card, gt GameType) int {
	aTrump, bTrump := IsTrump(a, gt), IsTrump(b, gt)
	switch {
	case aTrump && !bTrump:
		return 1
	case !aTrump && bTrump:
		return -1
	case aTrump && bTrump:
		return cmpInt(TrumpOrder(a, gt), TrumpOrder(b, gt))
	}

	aFollows, bFollows := follows(a, lead, gt), follows(b, lead, gt)
	switch {
	case aFollows && !bFollows:
		return 1
	case !aFollows && bFollows:
		return -1
	case aFollows && bFollows:
		return cmpInt(SuitOrder(a, gt), SuitOrder(b, gt))
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// CanPlay 判断在指定玩法下能否打出某张牌。
// lead 为本墩首出的牌，nil 表示自己首出（任意牌均可）。
// 手中有能跟上的牌时必须跟牌，否则任意牌均可
func CanPlay(c Card, lead *Card, hand Hand, gt GameType) bool {
	if lead == nil {
		return true
	}
	for _, h := range hand {
		if follows(h, *lead, gt) {
			// 有牌可跟，只允许出跟牌
			return follows(c, *lead, gt)
		}
	}
	return true
}
