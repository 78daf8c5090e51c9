package game

import (
	"slices"

	"github.com/palemoky/skat/internal/game/card"
	"github.com/palemoky/skat/internal/game/rule"
)

// State 定义对局主状态机的状态，必须按固定顺序推进，
// 每个迁移操作都以前一状态为前置条件
type State int

const (
	StateGameStart State = iota
	StateDealing
	StateBidding
	StatePickingUpSkat
	StateDiscarding // 仅在拿底后经过
	StateDeclaring
	StateTrickPlaying
	StatePreliminaryGameEnd
	StateCalculatingGameValue
	StateGameOver
)

// stateNames 状态名称映射表
var stateNames = map[State]string{
	StateGameStart:            "GameStart",
	StateDealing:              "Dealing",
	StateBidding:              "Bidding",
	StatePickingUpSkat:        "PickingUpSkat",
	StateDiscarding:           "Discarding",
	StateDeclaring:            "Declaring",
	StateTrickPlaying:         "TrickPlaying",
	StatePreliminaryGameEnd:   "PreliminaryGameEnd",
	StateCalculatingGameValue: "CalculatingGameValue",
	StateGameOver:             "GameOver",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// TrickPhase 定义出墩阶段的状态：当前墩、已完成的墩和各家累计
type TrickPhase struct {
	TrickNum     int // 1..10
	Current      *Trick
	Completed    []Trick
	PlayerPoints [3]int // 按座次累计的墩分
	PlayerTricks [3]int // 按座次累计的墩数
}

func (tp *TrickPhase) clone() *TrickPhase {
	out := *tp
	if tp.Current != nil {
		out.Current = tp.Current.clone()
	}
	out.Completed = slices.Clone(tp.Completed)
	return &out
}

// Game 定义一局牌的完整快照（聚合根）。所有嵌套实体都由它
// 独占持有；每个操作返回新快照，失败时原快照保持不变，
// 不存在可观察到的部分修改
type Game struct {
	State  State
	Dealer int // 庄家的桌面座位号，开新局时顺时针轮转

	Hands [3]card.Hand // 按座次（先手/中手/后手）索引
	Skat  []card.Card  // 两张底牌；拿底后清空，弃牌后为弃置的两张

	Bidding *BiddingState

	Declarer    Position
	HasDeclarer bool
	HandGame    bool // 声明者放弃拿底
	SkatTaken   bool

	Contract      *rule.Contract
	GameRule      *rule.Rule
	DeclarerCards card.Hand // 宣布时的手牌加底牌，结算连将以此为准

	Tricks *TrickPhase

	Result       *rule.Result
	RamschResult *rule.RamschResult
}

// NewGame 创建一局新牌，处于 GameStart 状态
func NewGame(dealer int) *Game {
	return &Game{
		State:  StateGameStart,
		Dealer: ((dealer % 3) + 3) % 3,
	}
}

// NextGame 在一局结束后开下一局，庄家轮转到左邻
func (g *Game) NextGame() (*Game, error) {
	if g.State != StateGameOver {
		return nil, ErrWrongState
	}
	return NewGame(g.Dealer + 1), nil
}

// clone 返回对局快照的深拷贝
func (g *Game) clone() *Game {
	out := *g
	for i, h := range g.Hands {
		out.Hands[i] = h.Clone()
	}
	out.Skat = slices.Clone(g.Skat)
	if g.Bidding != nil {
		out.Bidding = g.Bidding.clone()
	}
	if g.Contract != nil {
		c := *g.Contract
		out.Contract = &c
	}
	if g.GameRule != nil {
		r := *g.GameRule
		out.GameRule = &r
	}
	out.DeclarerCards = g.DeclarerCards.Clone()
	if g.Tricks != nil {
		out.Tricks = g.Tricks.clone()
	}
	if g.Result != nil {
		r := *g.Result
		out.Result = &r
	}
	if g.RamschResult != nil {
		r := *g.RamschResult
		out.RamschResult = &r
	}
	return &out
}

// SeatOf 返回座次对应的桌面座位号（先手是庄家的下家）
func (g *Game) SeatOf(p Position) int {
	return (g.Dealer + 1 + int(p)) % 3
}

// PositionOf 返回桌面座位号对应的座次
func (g *Game) PositionOf(seat int) Position {
	return Position(((seat-g.Dealer-1)%3 + 3) % 3)
}

// GameType 返回本局的玩法。全弃后为罗姆什局，
// 宣布前没有玩法
func (g *Game) GameType() (card.GameType, bool) {
	if g.Contract != nil {
		return g.Contract.GameType, true
	}
	if g.GameRule != nil {
		return g.GameRule.Type, true
	}
	if g.Bidding != nil && g.Bidding.Outcome == BidAllPassed {
		return card.GameRamsch, true
	}
	return 0, false
}

// Deal 洗牌并按传统顺序发牌：GameStart → Dealing
func (g *Game) Deal() (*Game, error) {
	if g.State != StateGameStart {
		return nil, ErrWrongState
	}

	deck := card.NewDeck()
	deck.Shuffle()
	deal, err := deck.Deal()
	if err != nil {
		return nil, err
	}
	return g.applyDeal(deal), nil
}

// DealFixed 使用指定的发牌结果（回放或测试用），
// 校验牌张守恒后与 Deal 等效
func (g *Game) DealFixed(deal card.Deal) (*Game, error) {
	if g.State != StateGameStart {
		return nil, ErrWrongState
	}
	if err := card.ValidateDeal(deal); err != nil {
		return nil, err
	}
	return g.applyDeal(deal), nil
}

func (g *Game) applyDeal(deal card.Deal) *Game {
	out := g.clone()
	for i, h := range deal.Hands {
		out.Hands[i] = h.Clone()
	}
	out.Skat = slices.Clone(deal.Skat[:])
	out.State = StateDealing
	return out
}

// StartBidding 开始叫牌：Dealing → Bidding，中手先行动
func (g *Game) StartBidding() (*Game, error) {
	if g.State != StateDealing {
		return nil, ErrWrongState
	}
	out := g.clone()
	out.Bidding = NewBiddingState()
	out.State = StateBidding
	return out, nil
}

// applyBidding 套用一次叫牌动作的结果并推进主状态
func (g *Game) applyBidding(next *BiddingState) *Game {
	out := g.clone()
	out.Bidding = next

	switch next.Outcome {
	case BidHasDeclarer:
		out.Declarer = next.Declarer
		out.HasDeclarer = true
		out.State = StatePickingUpSkat
	case BidAllPassed:
		// 直接进入出墩阶段，但罗姆什局的规则与墩状态
		// 需要调用方再执行 SetupRamsch 初始化
		out.State = StateTrickPlaying
	}
	return out
}

// PlaceBid 报价（叫牌中）
func (g *Game) PlaceBid(p Position, value int) (*Game, error) {
	if g.State != StateBidding {
		return nil, ErrWrongState
	}
	next, err := g.Bidding.Bid(p, value)
	if err != nil {
		return nil, err
	}
	return g.applyBidding(next), nil
}

// HoldBid 应价（叫牌中）
func (g *Game) HoldBid(p Position) (*Game, error) {
	if g.State != StateBidding {
		return nil, ErrWrongState
	}
	next, err := g.Bidding.Hold(p)
	if err != nil {
		return nil, err
	}
	return g.applyBidding(next), nil
}

// PassBid 弃叫（叫牌中）
func (g *Game) PassBid(p Position) (*Game, error) {
	if g.State != StateBidding {
		return nil, ErrWrongState
	}
	next, err := g.Bidding.Pass(p)
	if err != nil {
		return nil, err
	}
	return g.applyBidding(next), nil
}

// SetupRamsch 在三家全弃后初始化罗姆什局：
// 指定规则、按玩法重排手牌并由先手首出第一墩
func (g *Game) SetupRamsch() (*Game, error) {
	if g.State != StateTrickPlaying || g.Tricks != nil {
		return nil, ErrWrongState
	}
	if g.Bidding == nil || g.Bidding.Outcome != BidAllPassed {
		return nil, ErrWrongState
	}

	out := g.clone()
	r, _ := rule.ForType(card.GameRamsch)
	out.GameRule = &r
	for i, h := range out.Hands {
		out.Hands[i] = h.Sorted(card.GameRamsch)
	}
	out.Tricks = &TrickPhase{
		TrickNum: 1,
		Current:  NewTrick(Forehand),
	}
	return out, nil
}

// PickUpSkat 声明者拿起两张底牌：PickingUpSkat → Discarding
func (g *Game) PickUpSkat(p Position) (*Game, error) {
	if g.State != StatePickingUpSkat {
		return nil, ErrWrongState
	}
	if !g.HasDeclarer || p != g.Declarer {
		return nil, ErrNotDeclarer
	}

	out := g.clone()
	out.Hands[p] = out.Hands[p].Add(out.Skat...)
	out.Skat = nil
	out.SkatTaken = true
	out.State = StateDiscarding
	return out, nil
}

// PlayHand 声明者放弃拿底改打手牌局：PickingUpSkat → Declaring
func (g *Game) PlayHand(p Position) (*Game, error) {
	if g.State != StatePickingUpSkat {
		return nil, ErrWrongState
	}
	if !g.HasDeclarer || p != g.Declarer {
		return nil, ErrNotDeclarer
	}

	out := g.clone()
	out.HandGame = true
	out.State = StateDeclaring
	return out, nil
}

// DiscardCards 声明者从 12 张手牌中弃置两张不同的牌回底：
// Discarding → Declaring
func (g *Game) DiscardCards(p Position, a, b card.Card) (*Game, error) {
	if g.State != StateDiscarding {
		return nil, ErrWrongState
	}
	if !g.HasDeclarer || p != g.Declarer {
		return nil, ErrNotDeclarer
	}
	if a == b {
		return nil, ErrInvalidDiscard
	}

	hand, ok := g.Hands[p].Remove(a)
	if !ok {
		return nil, ErrInvalidDiscard
	}
	hand, ok = hand.Remove(b)
	if !ok {
		return nil, ErrInvalidDiscard
	}

	out := g.clone()
	out.Hands[p] = hand
	out.Skat = []card.Card{a, b}
	out.State = StateDeclaring
	return out, nil
}

// AnnounceGame 声明者宣布约定：校验修饰符依赖与叫牌终值，
// 按玩法重排三家手牌、指定规则并由先手首出第一墩：
// Declaring → TrickPlaying
func (g *Game) AnnounceGame(p Position, gt card.GameType, schneider, schwarz, ouvert bool) (*Game, error) {
	if g.State != StateDeclaring {
		return nil, ErrWrongState
	}
	if !g.HasDeclarer || p != g.Declarer {
		return nil, ErrNotDeclarer
	}

	contract := rule.Contract{
		GameType:  gt,
		Hand:      g.HandGame,
		Schneider: schneider,
		Schwarz:   schwarz,
		Ouvert:    ouvert,
	}
	if err := contract.Validate(); err != nil {
		return nil, err
	}

	// 叫牌终值不得超过按当前已知牌可宣布的局值。
	// 手牌局的底牌未知，连将数仍可能在结算时被底牌推翻
	if rule.DeclarableValue(contract, g.Hands[p]) < g.Bidding.FinalBid {
		return nil, ErrBidExceedsValue
	}

	out := g.clone()
	out.Contract = &contract
	r, _ := rule.ForType(gt)
	out.GameRule = &r

	// 结算连将使用宣布时的手牌加底牌
	out.DeclarerCards = out.Hands[p].Add(out.Skat...)

	for i, h := range out.Hands {
		out.Hands[i] = h.Sorted(gt)
	}
	out.Tricks = &TrickPhase{
		TrickNum: 1,
		Current:  NewTrick(Forehand),
	}
	out.State = StateTrickPlaying
	return out, nil
}

// PlayCard 打出一张牌：校验轮次、持牌与跟牌规则；
// 第三张落下时结墩计分，赢家首出下一墩；十墩打完后
// 进入 PreliminaryGameEnd
func (g *Game) PlayCard(p Position, c card.Card) (*Game, error) {
	if g.State != StateTrickPlaying {
		return nil, ErrWrongState
	}
	if g.Tricks == nil {
		return nil, ErrRamschNotPrepared
	}
	if p != g.Tricks.Current.NextPlayer() {
		return nil, ErrNotYourTurn
	}
	if !g.Hands[p].Contains(c) {
		return nil, ErrCardNotInHand
	}

	gt := g.GameRule.Type
	if !card.CanPlay(c, g.Tricks.Current.Lead(), g.Hands[p], gt) {
		return nil, ErrIllegalCard
	}

	trick, err := g.Tricks.Current.AddCard(c, p)
	if err != nil {
		return nil, err
	}

	out := g.clone()
	out.Hands[p], _ = out.Hands[p].Remove(c)

	if !trick.IsComplete() {
		out.Tricks.Current = trick
		return out, nil
	}

	done, err := trick.Complete(gt)
	if err != nil {
		return nil, err
	}
	out.Tricks.PlayerPoints[done.Winner] += done.Points()
	out.Tricks.PlayerTricks[done.Winner]++
	out.Tricks.Completed = append(out.Tricks.Completed, *done)

	if out.Tricks.TrickNum == 10 {
		out.Tricks.Current = done
		out.State = StatePreliminaryGameEnd
		return out, nil
	}

	out.Tricks.TrickNum++
	out.Tricks.Current = NewTrick(done.Winner)
	return out, nil
}

// FinalizeGame 结算本局：声明者玩法计算局值与胜负，
// 罗姆什局按三家墩分定输家。经由 CalculatingGameValue
// 一次走到 GameOver
func (g *Game) FinalizeGame() (*Game, error) {
	if g.State != StatePreliminaryGameEnd {
		return nil, ErrWrongState
	}

	out := g.clone()
	out.State = StateCalculatingGameValue

	skatPoints := 0
	for _, c := range out.Skat {
		skatPoints += c.Points()
	}

	if out.GameRule.Type == card.GameRamsch {
		// 底牌分归最后一墩的赢家
		points := out.Tricks.PlayerPoints
		last := out.Tricks.Completed[len(out.Tricks.Completed)-1]
		points[last.Winner] += skatPoints
		res := rule.ScoreRamsch(points)
		out.RamschResult = &res
	} else {
		// 底牌分归声明者
		points := out.Tricks.PlayerPoints[out.Declarer] + skatPoints
		tricks := out.Tricks.PlayerTricks[out.Declarer]
		res := rule.ScoreGame(*out.Contract, out.DeclarerCards, out.Bidding.FinalBid, points, tricks)
		out.Result = &res
	}

	out.State = StateGameOver
	return out, nil
}

// ActivePlayer 返回当前应行动的座次
func (g *Game) ActivePlayer() (Position, bool) {
	switch g.State {
	case StateBidding:
		return g.Bidding.ActivePlayer, true
	case StatePickingUpSkat, StateDiscarding, StateDeclaring:
		return g.Declarer, g.HasDeclarer
	case StateTrickPlaying:
		if g.Tricks == nil {
			return 0, false
		}
		return g.Tricks.Current.NextPlayer(), true
	default:
		return 0, false
	}
}

// LegalMoves 返回某座次当前的合法着法。对同一快照重复调用
// 结果相同；不在出墩阶段时返回 nil
func (g *Game) LegalMoves(p Position) []card.Card {
	if g.State != StateTrickPlaying || g.Tricks == nil || g.GameRule == nil {
		return nil
	}
	return g.GameRule.LegalMoves(g.Hands[p], g.Tricks.Current.Lead())
}
