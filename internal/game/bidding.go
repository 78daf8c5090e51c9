package game

import "slices"

// bidValues 固定的叫牌值表，63 个值从 18 到 264 递增
var bidValues = []int{
	18, 20, 22, 23, 24, 27, 30, 33, 35, 36,
	40, 44, 45, 46, 48, 50, 54, 55, 59, 60,
	63, 66, 70, 72, 77, 80, 81, 84, 88, 90,
	96, 99, 100, 108, 110, 117, 120, 121, 126, 130,
	132, 135, 140, 143, 144, 150, 153, 154, 156, 160,
	162, 165, 168, 170, 176, 180, 187, 192, 198, 204,
	216, 240, 264,
}

// MinBid 最低叫牌值
const MinBid = 18

// BidValues 返回叫牌值表的副本
func BidValues() []int {
	return slices.Clone(bidValues)
}

// IsBidValue 判断一个值是否在叫牌值表中
func IsBidValue(v int) bool {
	return slices.Contains(bidValues, v)
}

// NextBidValue 返回表中高于 v 的最小叫牌值
func NextBidValue(v int) (int, bool) {
	for _, bv := range bidValues {
		if bv > v {
			return bv, true
		}
	}
	return 0, false
}

// BidPhase 定义叫牌阶段
type BidPhase int

const (
	PhaseMiddleToFore BidPhase = iota // 第一阶段：中手对先手报价
	PhaseWinnerToRear                 // 第二阶段：后手对第一阶段胜者报价
	PhaseDone                         // 叫牌结束
)

// BidOutcome 定义叫牌结果，只会从进行中单调迁移到两个终态之一
type BidOutcome int

const (
	BidInProgress  BidOutcome = iota // 进行中
	BidHasDeclarer                   // 产生声明者
	BidAllPassed                     // 三家全弃：进入罗姆什局
)

// BiddingState 定义两阶段叫牌协商的状态快照。
// 所有操作返回新快照，失败时原快照不变
type BiddingState struct {
	Phase BidPhase

	CurrentBid    int      // 当前叫牌值，0 表示尚无叫牌
	CurrentBidder Position // 报出当前值的玩家，仅 HasBidder 时有效
	HasBidder     bool

	ActivePlayer    Position // 轮到行动的玩家
	IsActiveBidding bool     // true 表示行动方报价，false 表示行动方应价

	Passed [3]bool // 各座次是否已弃叫

	FirstPhaseWinner Position // 第一阶段胜者，仅 HasFirstWinner 时有效
	HasFirstWinner   bool

	Outcome  BidOutcome
	Declarer Position // 仅 Outcome == BidHasDeclarer 时有效
	FinalBid int
}

// NewBiddingState 创建初始叫牌状态：第一阶段由中手先报价
func NewBiddingState() *BiddingState {
	return &BiddingState{
		Phase:           PhaseMiddleToFore,
		ActivePlayer:    Middlehand,
		IsActiveBidding: true,
	}
}

// clone 返回状态的副本
func (b *BiddingState) clone() *BiddingState {
	out := *b
	return &out
}

// holder 返回当前阶段的应价方
func (b *BiddingState) holder() Position {
	if b.Phase == PhaseMiddleToFore {
		return Forehand
	}
	return b.FirstPhaseWinner
}

// speaker 返回当前阶段的报价方
func (b *BiddingState) speaker() Position {
	if b.Phase == PhaseMiddleToFore {
		return Middlehand
	}
	return Rearhand
}

// isForehandOption 判断是否处于“先手叫 18”的特殊窗口：
// 两个阶段都以弃叫收场且从未有人报价，最终轮到先手时，
// 先手可以按桌面最低值 18 成为声明者，也可以弃叫触发罗姆什局
func (b *BiddingState) isForehandOption() bool {
	return b.Phase == PhaseWinnerToRear &&
		b.CurrentBid == 0 &&
		b.Passed[Rearhand] &&
		b.HasFirstWinner && b.FirstPhaseWinner == Forehand
}

// checkTurn 校验行动方与行动类型（报价/应价）
func (b *BiddingState) checkTurn(p Position, bidding bool) error {
	if b.Outcome != BidInProgress {
		return ErrBiddingFinished
	}
	if p != b.ActivePlayer {
		return ErrNotYourTurn
	}
	if bidding && !b.IsActiveBidding {
		return ErrNotHolder
	}
	if !bidding && b.IsActiveBidding {
		return ErrNotBidder
	}
	return nil
}

// Bid 报出一个新的叫牌值。只有报价方可以报价，
// 值必须在叫牌值表中且高于当前值
func (b *BiddingState) Bid(p Position, value int) (*BiddingState, error) {
	if err := b.checkTurn(p, true); err != nil {
		return nil, err
	}
	if !IsBidValue(value) {
		return nil, ErrInvalidBidValue
	}
	if value <= b.CurrentBid {
		return nil, ErrBidNotHigher
	}

	out := b.clone()
	out.CurrentBid = value
	out.CurrentBidder = p
	out.HasBidder = true

	if b.isForehandOption() {
		// 先手叫 18：直接成为声明者
		out.Outcome = BidHasDeclarer
		out.Declarer = p
		out.FinalBid = value
		out.Phase = PhaseDone
		return out, nil
	}

	// 轮到应价方表态
	out.ActivePlayer = b.holder()
	out.IsActiveBidding = false
	return out, nil
}

// Hold 应下当前叫牌值。只有应价方可以应价，且必须已有叫牌
func (b *BiddingState) Hold(p Position) (*BiddingState, error) {
	if err := b.checkTurn(p, false); err != nil {
		return nil, err
	}
	if b.CurrentBid == 0 {
		return nil, ErrNoBidToHold
	}

	out := b.clone()
	out.ActivePlayer = b.speaker()
	out.IsActiveBidding = true
	return out, nil
}

// Pass 弃叫。报价方或应价方弃叫都会结束当前阶段
func (b *BiddingState) Pass(p Position) (*BiddingState, error) {
	if b.Outcome != BidInProgress {
		return nil, ErrBiddingFinished
	}
	if p != b.ActivePlayer {
		return nil, ErrNotYourTurn
	}

	out := b.clone()
	out.Passed[p] = true

	if b.isForehandOption() {
		// 先手也放弃：三家全弃，进入罗姆什局
		out.Outcome = BidAllPassed
		out.Phase = PhaseDone
		return out, nil
	}

	survivor := b.holder()
	if p == b.holder() {
		survivor = b.speaker()
	}

	if b.Phase == PhaseMiddleToFore {
		// 第一阶段收场，胜者转为第二阶段的应价方
		out.FirstPhaseWinner = survivor
		out.HasFirstWinner = true
		out.Phase = PhaseWinnerToRear
		out.ActivePlayer = Rearhand
		out.IsActiveBidding = true
		return out, nil
	}

	// 第二阶段收场
	if survivor == Rearhand || b.CurrentBid > 0 {
		out.Outcome = BidHasDeclarer
		out.Declarer = survivor
		out.FinalBid = b.CurrentBid
		out.Phase = PhaseDone
		return out, nil
	}

	// 从未有人报价且第一阶段胜者是先手：进入“先手叫 18”窗口
	if survivor == Forehand {
		out.ActivePlayer = Forehand
		out.IsActiveBidding = true
		return out, nil
	}

	// 从未有人报价且胜者不是先手：没有可成立的约定
	out.Outcome = BidAllPassed
	out.Phase = PhaseDone
	return out, nil
}
