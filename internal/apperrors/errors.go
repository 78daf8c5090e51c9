package apperrors

import (
	"errors"

	"github.com/palemoky/skat/internal/game"
	"github.com/palemoky/skat/internal/network/protocol"
)

// GameError 游戏错误（牌桌和会话共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrInvalidPayload  = &GameError{Code: protocol.ErrCodeInvalidMsg, Message: "无效的消息格式"}
	ErrReconnectFailed = &GameError{Code: protocol.ErrCodeReconnectFail, Message: "重连令牌无效或已过期"}
	ErrTableNotFound   = &GameError{Code: protocol.ErrCodeTableNotFound, Message: "牌桌不存在"}
	ErrTableFull       = &GameError{Code: protocol.ErrCodeTableFull, Message: "牌桌已满"}
	ErrNotAtTable      = &GameError{Code: protocol.ErrCodeNotAtTable, Message: "您不在牌桌上"}
	ErrGameStarted     = &GameError{Code: protocol.ErrCodeWrongPhase, Message: "牌局已开始"}
	ErrGameNotStart    = &GameError{Code: protocol.ErrCodeGameNotStart, Message: "牌局尚未开始"}
)

// engineCodes 引擎哨兵错误到协议错误码的映射
var engineCodes = []struct {
	err  error
	code int
}{
	{game.ErrNotYourTurn, protocol.ErrCodeNotYourTurn},
	{game.ErrNotDeclarer, protocol.ErrCodeNotDeclarer},
	{game.ErrWrongState, protocol.ErrCodeWrongPhase},
	{game.ErrInvalidBidValue, protocol.ErrCodeInvalidBid},
	{game.ErrBidNotHigher, protocol.ErrCodeBidNotHigher},
	{game.ErrNoBidToHold, protocol.ErrCodeInvalidBid},
	{game.ErrNotBidder, protocol.ErrCodeNotYourTurn},
	{game.ErrNotHolder, protocol.ErrCodeNotYourTurn},
	{game.ErrBiddingFinished, protocol.ErrCodeWrongPhase},
	{game.ErrCardNotInHand, protocol.ErrCodeIllegalCard},
	{game.ErrIllegalCard, protocol.ErrCodeIllegalCard},
	{game.ErrInvalidDiscard, protocol.ErrCodeInvalidDiscard},
	{game.ErrBidExceedsValue, protocol.ErrCodeBidExceedsGame},
	{game.ErrTrickFull, protocol.ErrCodeWrongPhase},
	{game.ErrTrickIncomplete, protocol.ErrCodeWrongPhase},
	{game.ErrRamschNotPrepared, protocol.ErrCodeWrongPhase},
}

// FromEngine 把引擎返回的错误包装成带协议错误码的 GameError。
// 未知错误映射到通用错误码，原始消息保留
func FromEngine(err error) *GameError {
	if err == nil {
		return nil
	}

	var ge *GameError
	if errors.As(err, &ge) {
		return ge
	}

	for _, m := range engineCodes {
		if errors.Is(err, m.err) {
			return &GameError{Code: m.code, Message: err.Error()}
		}
	}
	return &GameError{Code: protocol.ErrCodeUnknown, Message: err.Error()}
}
