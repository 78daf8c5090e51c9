// Package ui 实现终端界面
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/skat/internal/network/client"
	"github.com/palemoky/skat/internal/network/protocol"
	"github.com/palemoky/skat/internal/sound"
)

// Phase 界面阶段
type Phase int

const (
	PhaseConnecting   Phase = iota
	PhaseLobby              // 大厅
	PhaseJoining            // 输入牌桌号
	PhaseWaiting            // 在牌桌上等待开局
	PhaseBidding            // 叫牌
	PhaseSkatDecision       // 声明者决定拿底还是手牌局
	PhaseDiscarding         // 弃回两张牌
	PhaseAnnouncing         // 宣布玩法
	PhasePlaying            // 出牌
	PhaseGameOver           // 结算
)

// ServerMessage 服务器消息（用于 tea.Msg）
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg 连接成功消息
type ConnectedMsg struct{}

// ConnectionErrorMsg 连接错误消息
type ConnectionErrorMsg struct {
	Err error
}

// ReconnectingMsg 正在重连消息
type ReconnectingMsg struct {
	Attempt  int
	MaxTries int
}

// ReconnectSuccessMsg 重连成功消息
type ReconnectSuccessMsg struct{}

// ClearReconnectMsg 清除重连提示
type ClearReconnectMsg struct{}

// ClearErrorMsg 清除错误提示
type ClearErrorMsg struct{}

// Model 客户端界面的根 model
type Model struct {
	client *client.Client
	phase  Phase
	err    string
	status string

	// 玩家和牌桌
	playerID   string
	playerName string
	tableCode  string
	players    []protocol.PlayerInfo
	ready      bool

	// 叫牌状态
	currentBid int
	canHold    bool
	myBidTurn  bool
	declarerID string
	finalBid   int

	// 打牌状态
	hand         []string
	cursor       int
	marked       map[int]bool // 弃牌阶段选中的牌
	legal        []string
	announcement string
	trickCards   []string
	lastTrick    string
	myPlayTurn   bool
	ramsch       bool

	// 结算
	gameOver  *protocol.GameOverPayload
	standings []string

	// 网络状态
	latency      int64
	reconnectMsg string

	soundManager  *sound.SoundManager
	input         textinput.Model
	reconnectChan chan tea.Msg
	width         int
	height        int
}

// NewModel 创建界面 model
func NewModel(serverURL string) *Model {
	ti := textinput.New()
	ti.Placeholder = "输入牌桌号..."
	ti.CharLimit = 10
	ti.Width = 20

	c := client.NewClient(serverURL)
	reconnectChan := make(chan tea.Msg, 10)

	m := &Model{
		client:        c,
		phase:         PhaseConnecting,
		marked:        make(map[int]bool),
		input:         ti,
		reconnectChan: reconnectChan,
		soundManager:  sound.NewSoundManager(),
	}

	// 重连进度通过 channel 送进 Bubble Tea
	c.OnReconnecting = func(attempt, maxTries int) {
		select {
		case reconnectChan <- ReconnectingMsg{Attempt: attempt, MaxTries: maxTries}:
		default:
		}
	}
	c.OnReconnect = func() {
		select {
		case reconnectChan <- ReconnectSuccessMsg{}:
		default:
		}
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	go func() {
		_ = m.soundManager.Init()
	}()

	return tea.Batch(
		m.connectToServer(),
		textinput.Blink,
		m.listenForReconnect(),
	)
}

// connectToServer 连接服务器
func (m *Model) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

// listenForMessages 监听服务器消息
func (m *Model) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ServerMessage{Msg: msg}
	}
}

// listenForReconnect 监听重连消息
func (m *Model) listenForReconnect() tea.Cmd {
	return func() tea.Msg {
		return <-m.reconnectChan
	}
}

// clearErrorAfter 错误提示停留一段时间后清除
func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

// resetGameState 清掉上一局的残留状态
func (m *Model) resetGameState() {
	m.currentBid = 0
	m.canHold = false
	m.myBidTurn = false
	m.declarerID = ""
	m.finalBid = 0
	m.hand = nil
	m.cursor = 0
	m.marked = make(map[int]bool)
	m.legal = nil
	m.announcement = ""
	m.trickCards = nil
	m.lastTrick = ""
	m.myPlayTurn = false
	m.ramsch = false
	m.gameOver = nil
}
