package game

import "errors"

// 引擎错误。每个失败只作用于当次操作，
// 原有快照保持有效，调用方修正输入后可重试
var (
	// 时序错误：操作在错误的状态下或由错误的玩家发起
	ErrWrongState  = errors.New("当前状态下不允许该操作")
	ErrNotYourTurn = errors.New("还没轮到您")
	ErrNotDeclarer = errors.New("只有声明者可以执行该操作")

	// 叫牌错误
	ErrBiddingFinished = errors.New("叫牌已经结束")
	ErrInvalidBidValue = errors.New("无效的叫牌值")
	ErrBidNotHigher    = errors.New("叫牌值必须高于当前值")
	ErrNoBidToHold     = errors.New("还没有可应的叫牌")
	ErrNotBidder       = errors.New("当前应由报价方行动")
	ErrNotHolder       = errors.New("当前应由应价方行动")

	// 校验错误
	ErrCardNotInHand     = errors.New("这张牌不在您的手牌中")
	ErrIllegalCard       = errors.New("这张牌不符合跟牌规则")
	ErrInvalidDiscard    = errors.New("必须弃置两张不同的手牌")
	ErrBidExceedsValue   = errors.New("叫牌值超过了可宣布的局值")
	ErrTrickFull         = errors.New("本墩已有三张牌")
	ErrTrickIncomplete   = errors.New("本墩还未出满三张牌")
	ErrRamschNotPrepared = errors.New("罗姆什局尚未初始化")
)
