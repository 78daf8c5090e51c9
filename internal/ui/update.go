package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/skat/internal/game"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		handled, cmd := m.handleKey(msg)
		if handled {
			return m, cmd
		}

	case ConnectedMsg:
		m.phase = PhaseLobby
		m.playerID = m.client.PlayerID
		m.playerName = m.client.PlayerName
		m.client.StartHeartbeat()
		cmds = append(cmds, m.listenForMessages())

	case ConnectionErrorMsg:
		m.err = fmt.Sprintf("无法连接到服务器: %v\n\n按 ESC 退出", msg.Err)
		m.phase = PhaseConnecting

	case ReconnectingMsg:
		m.reconnectMsg = fmt.Sprintf("🔄 正在重连 (%d/%d)...", msg.Attempt, msg.MaxTries)
		cmds = append(cmds, m.listenForReconnect())

	case ReconnectSuccessMsg:
		m.reconnectMsg = "✅ 重连成功！"
		cmds = append(cmds, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return ClearReconnectMsg{}
		}))
		cmds = append(cmds, m.listenForReconnect())
		// 重连后 receive channel 被重置，重新开始监听
		if m.client.IsConnected() {
			cmds = append(cmds, m.listenForMessages())
		}

	case ClearReconnectMsg:
		m.reconnectMsg = ""

	case ClearErrorMsg:
		m.err = ""

	case ServerMessage:
		if cmd := m.handleServerMessage(msg.Msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.client.IsConnected() {
			cmds = append(cmds, m.listenForMessages())
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey 处理按键，返回是否已处理
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.client.Close()
		return true, tea.Quit
	}

	switch m.phase {
	case PhaseConnecting:
		if msg.Type == tea.KeyEsc {
			return true, tea.Quit
		}

	case PhaseLobby:
		return m.handleLobbyKey(msg)

	case PhaseJoining:
		return m.handleJoiningKey(msg)

	case PhaseWaiting:
		return m.handleWaitingKey(msg)

	case PhaseBidding:
		return m.handleBiddingKey(msg)

	case PhaseSkatDecision:
		return m.handleSkatDecisionKey(msg)

	case PhaseDiscarding:
		return m.handleDiscardingKey(msg)

	case PhaseAnnouncing:
		return m.handleAnnouncingKey(msg)

	case PhasePlaying:
		return m.handlePlayingKey(msg)

	case PhaseGameOver:
		return m.handleGameOverKey(msg)
	}

	return false, nil
}

func (m *Model) handleLobbyKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "c":
		m.sendOrWarn(m.client.CreateTable)
		return true, nil
	case "j":
		m.phase = PhaseJoining
		m.input.SetValue("")
		m.input.Placeholder = "输入牌桌号..."
		m.input.Focus()
		return true, nil
	case "m":
		m.sendOrWarn(m.client.QuickMatch)
		return true, nil
	case "q", "esc":
		m.client.Close()
		return true, tea.Quit
	}
	return false, nil
}

func (m *Model) handleJoiningKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		code := strings.TrimSpace(m.input.Value())
		if code != "" {
			m.sendOrWarn(func() error { return m.client.JoinTable(code) })
			m.input.Blur()
		}
		return true, nil
	case tea.KeyEsc:
		m.phase = PhaseLobby
		m.input.Blur()
		return true, nil
	}
	// 其余按键留给输入框
	return false, nil
}

func (m *Model) handleWaitingKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "r":
		if m.ready {
			m.sendOrWarn(m.client.CancelReady)
		} else {
			m.sendOrWarn(m.client.Ready)
		}
		return true, nil
	case "esc", "q":
		m.sendOrWarn(m.client.LeaveTable)
		m.phase = PhaseLobby
		m.ready = false
		m.tableCode = ""
		m.players = nil
		return true, nil
	}
	return false, nil
}

func (m *Model) handleBiddingKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !m.myBidTurn {
		return false, nil
	}

	switch msg.String() {
	case "b":
		if next, ok := game.NextBidValue(m.currentBid); ok {
			m.sendOrWarn(func() error { return m.client.Bid(next) })
		}
		return true, nil
	case "h":
		if m.canHold {
			m.sendOrWarn(m.client.Hold)
		}
		return true, nil
	case "p":
		m.sendOrWarn(m.client.Pass)
		return true, nil
	}
	return false, nil
}

func (m *Model) handleSkatDecisionKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "t":
		m.sendOrWarn(m.client.TakeSkat)
		return true, nil
	case "h":
		m.sendOrWarn(m.client.PlayHand)
		m.phase = PhaseAnnouncing
		m.focusAnnounceInput()
		return true, nil
	}
	return false, nil
}

func (m *Model) handleDiscardingKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "left":
		m.moveCursor(-1)
		return true, nil
	case "right":
		m.moveCursor(1)
		return true, nil
	case " ":
		m.toggleMark()
		return true, nil
	case "enter":
		codes := m.markedCodes()
		if len(codes) == 2 {
			m.sendOrWarn(func() error { return m.client.Discard([2]string{codes[0], codes[1]}) })
			m.phase = PhaseAnnouncing
			m.focusAnnounceInput()
		} else {
			m.err = "请先选中两张要弃回的牌"
		}
		return true, nil
	}
	return false, nil
}

func (m *Model) handleAnnouncingKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		ann := strings.ToUpper(strings.TrimSpace(m.input.Value()))
		if ann != "" {
			m.sendOrWarn(func() error { return m.client.Announce(ann) })
			m.input.Blur()
		}
		return true, nil
	case tea.KeyEsc:
		m.input.SetValue("")
		return true, nil
	}
	return false, nil
}

func (m *Model) handlePlayingKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "left":
		m.moveCursor(-1)
		return true, nil
	case "right":
		m.moveCursor(1)
		return true, nil
	case "enter":
		if !m.myPlayTurn {
			m.err = "还没轮到您"
			return true, clearErrorAfter(2 * time.Second)
		}
		if m.cursor < len(m.hand) {
			m.sendOrWarn(func() error { return m.client.PlayCard(m.hand[m.cursor]) })
		}
		return true, nil
	}
	return false, nil
}

func (m *Model) handleGameOverKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.resetGameState()
		m.ready = true
		m.phase = PhaseWaiting
		m.sendOrWarn(m.client.Ready)
		return true, nil
	case "q", "esc":
		m.sendOrWarn(m.client.LeaveTable)
		m.resetGameState()
		m.phase = PhaseLobby
		m.ready = false
		m.tableCode = ""
		m.players = nil
		return true, nil
	}
	return false, nil
}

// --- 小工具 ---

// sendOrWarn 发送失败时把错误放到提示行
func (m *Model) sendOrWarn(send func() error) {
	if err := send(); err != nil {
		m.err = fmt.Sprintf("发送失败: %v", err)
	}
}

func (m *Model) moveCursor(delta int) {
	if len(m.hand) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.hand)) % len(m.hand)
}

// toggleMark 弃牌阶段最多选中两张
func (m *Model) toggleMark() {
	if m.marked[m.cursor] {
		delete(m.marked, m.cursor)
		return
	}
	if len(m.marked) < 2 {
		m.marked[m.cursor] = true
	}
}

func (m *Model) markedCodes() []string {
	codes := make([]string, 0, len(m.marked))
	for i, code := range m.hand {
		if m.marked[i] {
			codes = append(codes, code)
		}
	}
	return codes
}

func (m *Model) focusAnnounceInput() {
	m.input.SetValue("")
	m.input.Placeholder = "玩法记谱，如 G、CS 或 N..."
	m.input.Focus()
}
