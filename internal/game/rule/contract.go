package rule

import (
	"errors"

	"github.com/palemoky/skat/internal/game/card"
)

// 约定校验错误
var (
	ErrRamschNotDeclarable  = errors.New("罗姆什局不能被宣布")
	ErrSchwarzNeedsAnnounce = errors.New("宣黑需要先宣奏")
	ErrSchneiderNeedsHand   = errors.New("宣奏必须是手牌局")
	ErrOuvertNeedsHand      = errors.New("明牌局必须是手牌局")
	ErrNullNoSchneider      = errors.New("无分局没有奏/黑")
)

// Contract 定义声明者宣布的约定，创建后不可变。
// 修饰符单调依赖：宣黑蕴含宣奏、宣奏蕴含手牌局，
// 明牌局蕴含手牌局（无分局的明牌除外）
type Contract struct {
	GameType  card.GameType
	Hand      bool // 手牌局：不看底牌
	Schneider bool // 宣奏：宣布对手拿不到 30 分
	Schwarz   bool // 宣黑：宣布对手一墩不得
	Ouvert    bool // 明牌局
}

// Validate 校验修饰符组合是否合法
func (c Contract) Validate() error {
	switch {
	case c.GameType == card.GameRamsch:
		return ErrRamschNotDeclarable
	case c.GameType == card.GameNull:
		if c.Schneider || c.Schwarz {
			return ErrNullNoSchneider
		}
		// 无分局的明牌不要求手牌局
		return nil
	case c.Schwarz && !c.Schneider:
		return ErrSchwarzNeedsAnnounce
	case c.Schneider && !c.Hand:
		return ErrSchneiderNeedsHand
	case c.Ouvert && !c.Hand:
		return ErrOuvertNeedsHand
	}
	return nil
}

// nullValues 无分局的四个固定局值
var nullValues = map[[2]bool]int{
	{false, false}: 23,
	{true, false}:  35, // 手牌
	{false, true}:  46, // 明牌
	{true, true}:   59, // 手牌明牌
}

// NullValue 返回无分局约定对应的固定局值
func (c Contract) NullValue() int {
	return nullValues[[2]bool{c.Hand, c.Ouvert}]
}
