package notation

import (
	"strings"

	"github.com/palemoky/skat/internal/game/card"
)

// gameTypeCodes 玩法的宣布代码。罗姆什局没有代码：它从不被宣布
var gameTypeCodes = map[card.GameType]byte{
	card.GameClubs:    'C',
	card.GameSpades:   'S',
	card.GameHearts:   'H',
	card.GameDiamonds: 'D',
	card.GameGrand:    'G',
	card.GameNull:     'N',
}

var gameTypeFromCode = invert(gameTypeCodes)

// 修饰符字符：输入顺序任意，输出固定为 H O S Z
const (
	modHand      = 'H'
	modOuvert    = 'O'
	modSchneider = 'S'
	modSchwarz   = 'Z'
)

// Announcement 定义一次宣布：玩法、修饰符、弃置的两张牌
// 以及明牌局摊开的牌
type Announcement struct {
	GameType  card.GameType
	Hand      bool
	Ouvert    bool
	Schneider bool
	Schwarz   bool

	Discards    []card.Card // 非手牌局的两张弃牌
	OuvertCards []card.Card // 明牌局摊开的手牌
}

// String 编码宣布记谱：<玩法代码><修饰符...>[.弃牌][.明牌...]
func (a Announcement) String() string {
	var sb strings.Builder
	sb.WriteByte(gameTypeCodes[a.GameType])
	if a.Hand {
		sb.WriteByte(modHand)
	}
	if a.Ouvert {
		sb.WriteByte(modOuvert)
	}
	if a.Schneider {
		sb.WriteByte(modSchneider)
	}
	if a.Schwarz {
		sb.WriteByte(modSchwarz)
	}
	for _, c := range a.Discards {
		sb.WriteByte('.')
		sb.WriteString(CardCode(c))
	}
	for _, c := range a.OuvertCards {
		sb.WriteByte('.')
		sb.WriteString(CardCode(c))
	}
	return sb.String()
}

// ParseAnnouncement 解析宣布记谱。修饰符接受任意顺序；
// 非手牌局时头两张附加牌视为弃牌，其余为明牌
func ParseAnnouncement(s string) (Announcement, bool) {
	if s == "" {
		return Announcement{}, false
	}

	head, rest, _ := strings.Cut(s, ".")
	if head == "" {
		return Announcement{}, false
	}

	var a Announcement
	gt, ok := gameTypeFromCode[head[0]]
	if !ok {
		return Announcement{}, false
	}
	a.GameType = gt

	for i := 1; i < len(head); i++ {
		switch head[i] {
		case modHand:
			a.Hand = true
		case modOuvert:
			a.Ouvert = true
		case modSchneider:
			a.Schneider = true
		case modSchwarz:
			a.Schwarz = true
		default:
			return Announcement{}, false
		}
	}

	if rest == "" {
		return a, true
	}
	cards, ok := ParseHand(rest)
	if !ok {
		return Announcement{}, false
	}

	if !a.Hand && len(cards) >= 2 {
		a.Discards = cards[:2]
		cards = cards[2:]
	}
	if len(cards) > 0 {
		if !a.Ouvert {
			return Announcement{}, false
		}
		a.OuvertCards = cards
	}
	return a, true
}
