package rule

import "github.com/palemoky/skat/internal/game/card"

// Result 定义声明者玩法的结算结果
type Result struct {
	Won     bool
	Score   int // 正为声明者得分，负为失局扣分（双倍）
	Overbid bool

	Matadors   int
	Multiplier int
	GameValue  int

	SchneiderAchieved bool // 实际拿到 90 分及以上
	SchwarzAchieved   bool // 实际赢下全部 10 墩

	DeclarerPoints int
	DeclarerTricks int
}

// DeclarableValue 返回宣布时可校验的局值估计。
// 花色局和大满贯局按已知牌计算连将（底牌未知时可能在结算时被推翻），
// 无分局为固定局值
func DeclarableValue(c Contract, knownCards []card.Card) int {
	if c.GameType == card.GameNull {
		return c.NullValue()
	}
	m := Multiplier(Matadors(knownCards, c.GameType), c, false, false)
	return c.GameType.BaseValue() * m
}

// ScoreGame 结算一局声明者玩法。declarerCards 为声明者宣布时的
// 手牌加底牌（连将以此为准），bid 为叫牌终值，
// points/tricks 为声明者实际拿到的墩分（含底牌分）与墩数
func ScoreGame(c Contract, declarerCards []card.Card, bid, points, tricks int) Result {
	r, _ := ForType(c.GameType)

	res := Result{
		DeclarerPoints: points,
		DeclarerTricks: tricks,
	}

	if c.GameType == card.GameNull {
		res.GameValue = c.NullValue()
		res.Multiplier = 1
	} else {
		res.SchneiderAchieved = points >= 90
		res.SchwarzAchieved = tricks == 10
		res.Matadors = Matadors(declarerCards, c.GameType)
		res.Multiplier = Multiplier(res.Matadors, c, res.SchneiderAchieved, res.SchwarzAchieved)
		res.GameValue = c.GameType.BaseValue() * res.Multiplier
	}

	res.Won = r.IsDeclarerWinner(points, tricks)

	// 宣了奏/黑却没有达成时不能算赢
	if c.Schneider && points < 90 {
		res.Won = false
	}
	if c.Schwarz && tricks < 10 {
		res.Won = false
	}

	// 超叫：局值低于叫牌值时约定作废，
	// 扣分按两者较大值的双倍计算
	if res.GameValue < bid {
		res.Overbid = true
		res.Won = false
		res.Score = -2 * max(bid, res.GameValue)
		return res
	}

	if res.Won {
		res.Score = res.GameValue
	} else {
		res.Score = -2 * res.GameValue
	}
	return res
}
