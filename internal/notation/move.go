package notation

import (
	"strconv"

	"github.com/palemoky/skat/internal/game/card"
)

// MoveKind 定义着法记号的类型
type MoveKind int

const (
	MoveBid         MoveKind = iota // 叫牌值的数字串
	MoveHold                        // y 应价
	MovePass                        // p 弃叫
	MoveSkatRequest                 // s 请求拿底
	MoveCardPlay                    // 两字符牌码
	MoveShowCards                   // SC 摊牌
	MoveResign                      // RE 认负
	MoveTimeout                     // TI 超时
	MoveLeave                       // LE 离席
)

// 固定着法记号
const (
	tokenHold        = "y"
	tokenPass        = "p"
	tokenSkatRequest = "s"
	tokenShowCards   = "SC"
	tokenResign      = "RE"
	tokenTimeout     = "TI"
	tokenLeave       = "LE"
)

// Move 定义一个已解析的着法
type Move struct {
	Kind MoveKind
	Bid  int       // 仅 MoveBid 有效
	Card card.Card // 仅 MoveCardPlay 有效
}

// Token 编码着法为线协议记号
func (m Move) Token() string {
	switch m.Kind {
	case MoveBid:
		return strconv.Itoa(m.Bid)
	case MoveHold:
		return tokenHold
	case MovePass:
		return tokenPass
	case MoveSkatRequest:
		return tokenSkatRequest
	case MoveCardPlay:
		return CardCode(m.Card)
	case MoveShowCards:
		return tokenShowCards
	case MoveResign:
		return tokenResign
	case MoveTimeout:
		return tokenTimeout
	case MoveLeave:
		return tokenLeave
	}
	return ""
}

// ParseMove 解析一个着法记号。纯数字视为叫牌值
//（取值范围由引擎校验，记谱层只负责形状）
func ParseMove(s string) (Move, bool) {
	switch s {
	case tokenHold:
		return Move{Kind: MoveHold}, true
	case tokenPass:
		return Move{Kind: MovePass}, true
	case tokenSkatRequest:
		return Move{Kind: MoveSkatRequest}, true
	case tokenShowCards:
		return Move{Kind: MoveShowCards}, true
	case tokenResign:
		return Move{Kind: MoveResign}, true
	case tokenTimeout:
		return Move{Kind: MoveTimeout}, true
	case tokenLeave:
		return Move{Kind: MoveLeave}, true
	}

	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return Move{Kind: MoveBid, Bid: v}, true
	}

	if c, ok := ParseCard(s); ok {
		return Move{Kind: MoveCardPlay, Card: c}, true
	}
	return Move{}, false
}
