package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgReconnect MessageType = "reconnect" // 断线重连
	MsgPing      MessageType = "ping"      // 心跳 ping

	// 牌桌操作
	MsgCreateTable MessageType = "create_table" // 创建牌桌
	MsgJoinTable   MessageType = "join_table"   // 加入牌桌
	MsgQuickMatch  MessageType = "quick_match"  // 快速匹配一张牌桌
	MsgLeaveTable  MessageType = "leave_table"  // 离开牌桌
	MsgReady       MessageType = "ready"        // 准备就绪
	MsgCancelReady MessageType = "cancel_ready" // 取消准备

	// 游戏操作
	MsgBid      MessageType = "bid"       // 报出叫牌值
	MsgHold     MessageType = "hold"      // 应价
	MsgPass     MessageType = "pass"      // 弃叫
	MsgTakeSkat MessageType = "take_skat" // 拿底
	MsgPlayHand MessageType = "play_hand" // 不拿底打手牌局
	MsgDiscard  MessageType = "discard"   // 弃回两张牌
	MsgAnnounce MessageType = "announce"  // 宣布玩法
	MsgPlayCard MessageType = "play_card" // 出牌
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected     MessageType = "connected"      // 连接成功
	MsgReconnected   MessageType = "reconnected"    // 重连成功
	MsgPong          MessageType = "pong"           // 心跳 pong
	MsgPlayerOffline MessageType = "player_offline" // 玩家掉线通知
	MsgPlayerOnline  MessageType = "player_online"  // 玩家上线通知

	// 牌桌相关
	MsgTableCreated MessageType = "table_created" // 牌桌创建成功
	MsgTableJoined  MessageType = "table_joined"  // 加入牌桌成功
	MsgPlayerJoined MessageType = "player_joined" // 其他玩家加入
	MsgPlayerLeft   MessageType = "player_left"   // 玩家离开
	MsgPlayerReady  MessageType = "player_ready"  // 玩家准备

	// 游戏流程
	MsgGameStart     MessageType = "game_start"     // 新一局开始
	MsgDealCards     MessageType = "deal_cards"     // 发牌
	MsgBidTurn       MessageType = "bid_turn"       // 轮到叫牌或应价
	MsgBidMade       MessageType = "bid_made"       // 有人报出叫牌值
	MsgBidHeld       MessageType = "bid_held"       // 有人应价
	MsgBidPassed     MessageType = "bid_passed"     // 有人弃叫
	MsgDeclarer      MessageType = "declarer"       // 声明者确定
	MsgSkatTaken     MessageType = "skat_taken"     // 声明者拿底
	MsgRamschStart   MessageType = "ramsch_start"   // 三家全弃进入罗姆什局
	MsgGameAnnounced MessageType = "game_announced" // 玩法已宣布
	MsgPlayTurn      MessageType = "play_turn"      // 轮到出牌
	MsgCardPlayed    MessageType = "card_played"    // 有人出牌
	MsgTrickWon      MessageType = "trick_won"      // 一墩结束
	MsgGameOver      MessageType = "game_over"      // 一局结束
	MsgStandings     MessageType = "standings"      // 牌局系列积分

	// 错误
	MsgError MessageType = "error" // 错误消息
)

// --- 客户端请求 Payloads ---

// ReconnectPayload 断线重连请求
type ReconnectPayload struct {
	Token    string `json:"token"`     // 重连令牌
	PlayerID string `json:"player_id"` // 玩家 ID
}

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// JoinTablePayload 加入牌桌请求
type JoinTablePayload struct {
	TableCode string `json:"table_code"`
}

// BidPayload 叫牌请求
type BidPayload struct {
	Value int `json:"value"` // 叫牌表中的叫牌值
}

// DiscardPayload 弃牌请求，牌用两字符牌码表示
type DiscardPayload struct {
	Cards [2]string `json:"cards"`
}

// AnnouncePayload 宣布玩法请求，记谱格式见 notation 包
type AnnouncePayload struct {
	Announcement string `json:"announcement"` // 如 "GH" 或 "C.HQ.C8"
}

// PlayCardPayload 出牌请求
type PlayCardPayload struct {
	Card string `json:"card"` // 两字符牌码
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID       string `json:"player_id"`
	PlayerName     string `json:"player_name"`
	ReconnectToken string `json:"reconnect_token"` // 重连令牌
}

// ReconnectedPayload 重连成功响应
type ReconnectedPayload struct {
	PlayerID   string        `json:"player_id"`
	PlayerName string        `json:"player_name"`
	TableCode  string        `json:"table_code,omitempty"`
	GameState  *GameStateDTO `json:"game_state,omitempty"` // 如果在游戏中
}

// GameStateDTO 游戏状态数据传输对象（用于重连恢复）
type GameStateDTO struct {
	State        string       `json:"state"`        // 状态机当前状态
	Players      []PlayerInfo `json:"players"`      // 所有玩家信息
	Hand         []string     `json:"hand"`         // 自己的手牌（牌码）
	CurrentBid   int          `json:"current_bid"`  // 当前叫牌值
	Declarer     int          `json:"declarer"`     // 声明者座位，-1 表示未定
	Announcement string       `json:"announcement"` // 已宣布的玩法记谱
	TrickCards   []string     `json:"trick_cards"`  // 当前墩已打出的牌
	CurrentTurn  string       `json:"current_turn"` // 当前行动玩家 ID
	TrickNumber  int          `json:"trick_number"` // 第几墩
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// PlayerOfflinePayload 玩家掉线通知
type PlayerOfflinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Timeout    int    `json:"timeout"` // 等待重连超时（秒）
}

// PlayerOnlinePayload 玩家上线通知
type PlayerOnlinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// TableCreatedPayload 牌桌创建成功响应
type TableCreatedPayload struct {
	TableCode string     `json:"table_code"`
	Player    PlayerInfo `json:"player"`
}

// TableJoinedPayload 加入牌桌成功响应
type TableJoinedPayload struct {
	TableCode string       `json:"table_code"`
	Player    PlayerInfo   `json:"player"`
	Players   []PlayerInfo `json:"players"` // 牌桌上所有玩家
}

// PlayerJoinedPayload 其他玩家加入通知
type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

// PlayerLeftPayload 玩家离开通知
type PlayerLeftPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerReadyPayload 玩家准备通知
type PlayerReadyPayload struct {
	PlayerID string `json:"player_id"`
	Ready    bool   `json:"ready"`
}

// GameStartPayload 新一局开始通知
type GameStartPayload struct {
	Players []PlayerInfo `json:"players"` // 按座位顺序排列
	Dealer  int          `json:"dealer"`  // 发牌人座位
}

// DealCardsPayload 发牌通知，只含收牌方自己的手牌
type DealCardsPayload struct {
	Cards []string `json:"cards"` // 十张牌的牌码
}

// BidTurnPayload 轮到叫牌通知
type BidTurnPayload struct {
	PlayerID   string `json:"player_id"`
	CurrentBid int    `json:"current_bid"` // 0 表示尚无人叫牌
	CanHold    bool   `json:"can_hold"`    // 是应价方还是报价方
	Timeout    int    `json:"timeout"`     // 超时时间（秒）
}

// BidMadePayload 叫牌值通知
type BidMadePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Value      int    `json:"value"`
}

// BidActionPayload 应价或弃叫通知
type BidActionPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// DeclarerPayload 声明者确定通知
type DeclarerPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Seat       int    `json:"seat"`
	Bid        int    `json:"bid"` // 叫牌终值
}

// SkatTakenPayload 拿底通知。底牌内容只发给声明者
type SkatTakenPayload struct {
	PlayerID string   `json:"player_id"`
	Skat     []string `json:"skat,omitempty"`
}

// GameAnnouncedPayload 玩法宣布通知
type GameAnnouncedPayload struct {
	PlayerID     string   `json:"player_id"`
	PlayerName   string   `json:"player_name"`
	Announcement string   `json:"announcement"`           // 记谱，如 "GH"
	OuvertCards  []string `json:"ouvert_cards,omitempty"` // 明牌局摊开的手牌
}

// PlayTurnPayload 轮到出牌通知
type PlayTurnPayload struct {
	PlayerID string   `json:"player_id"`
	Legal    []string `json:"legal,omitempty"` // 行动方收到自己的合法牌
	Timeout  int      `json:"timeout"`         // 超时时间（秒）
}

// CardPlayedPayload 出牌通知
type CardPlayedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Card       string `json:"card"`
	CardsLeft  int    `json:"cards_left"` // 剩余手牌数
}

// TrickWonPayload 一墩结束通知
type TrickWonPayload struct {
	TrickNumber int      `json:"trick_number"`
	WinnerID    string   `json:"winner_id"`
	WinnerName  string   `json:"winner_name"`
	Cards       []string `json:"cards"`  // 本墩三张牌
	Points      int      `json:"points"` // 本墩牌分
}

// GameOverPayload 一局结束通知
type GameOverPayload struct {
	DeclarerID     string `json:"declarer_id,omitempty"` // 罗姆什局为空
	Won            bool   `json:"won"`
	Score          int    `json:"score"`
	GameValue      int    `json:"game_value"`
	Overbid        bool   `json:"overbid"`
	Matadors       int    `json:"matadors"`
	DeclarerPoints int    `json:"declarer_points"`

	// 罗姆什局结果
	Ramsch      bool   `json:"ramsch,omitempty"`
	LoserID     string `json:"loser_id,omitempty"`
	WinnerID    string `json:"winner_id,omitempty"` // 仅一穿到底时有值
	Durchmarsch bool   `json:"durchmarsch,omitempty"`
	Jungfrau    bool   `json:"jungfrau,omitempty"`

	Skat []string `json:"skat"` // 摊开的底牌
}

// StandingsPayload 牌局系列积分通知，记录格式见 notation 包
type StandingsPayload struct {
	Records []string `json:"records"` // 每人一条状态记录
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- 通用数据结构 ---

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Seat       int    `json:"seat"`        // 座位号 0-2
	Ready      bool   `json:"ready"`       // 是否准备
	IsDeclarer bool   `json:"is_declarer"` // 是否是声明者
	CardsCount int    `json:"cards_count"` // 手牌数量
	Online     bool   `json:"online"`      // 是否在线
}

// --- 错误码 ---
const (
	ErrCodeUnknown        = 1000
	ErrCodeInvalidMsg     = 1001
	ErrCodeReconnectFail  = 1002
	ErrCodeTableNotFound  = 2001
	ErrCodeTableFull      = 2002
	ErrCodeNotAtTable     = 2003
	ErrCodeGameNotStart   = 3001
	ErrCodeNotYourTurn    = 3002
	ErrCodeIllegalCard    = 3003
	ErrCodeInvalidBid     = 3004
	ErrCodeBidNotHigher   = 3005
	ErrCodeNotDeclarer    = 3006
	ErrCodeInvalidDiscard = 3007
	ErrCodeBidExceedsGame = 3008
	ErrCodeWrongPhase     = 3009
	ErrCodeInvalidGame    = 3010
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:        "未知错误",
	ErrCodeInvalidMsg:     "无效的消息格式",
	ErrCodeReconnectFail:  "重连令牌无效或已过期",
	ErrCodeTableNotFound:  "牌桌不存在",
	ErrCodeTableFull:      "牌桌已满",
	ErrCodeNotAtTable:     "您不在牌桌上",
	ErrCodeGameNotStart:   "牌局尚未开始",
	ErrCodeNotYourTurn:    "还没轮到您",
	ErrCodeIllegalCard:    "这张牌不能出",
	ErrCodeInvalidBid:     "无效的叫牌值",
	ErrCodeBidNotHigher:   "叫牌值必须高于当前值",
	ErrCodeNotDeclarer:    "您不是声明者",
	ErrCodeInvalidDiscard: "无效的弃牌",
	ErrCodeBidExceedsGame: "叫牌值超过了可宣布的局值",
	ErrCodeWrongPhase:     "当前阶段不允许此操作",
	ErrCodeInvalidGame:    "无效的玩法宣布",
}
