package ui

import (
	"fmt"
	"strings"

	"github.com/palemoky/skat/internal/game"
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🃏 Skat"))
	b.WriteString("\n\n")

	switch m.phase {
	case PhaseConnecting:
		b.WriteString(m.viewConnecting())
	case PhaseLobby:
		b.WriteString(m.viewLobby())
	case PhaseJoining:
		b.WriteString(m.viewJoining())
	case PhaseWaiting:
		b.WriteString(m.viewWaiting())
	case PhaseBidding:
		b.WriteString(m.viewBidding())
	case PhaseSkatDecision:
		b.WriteString(m.viewSkatDecision())
	case PhaseDiscarding:
		b.WriteString(m.viewDiscarding())
	case PhaseAnnouncing:
		b.WriteString(m.viewAnnouncing())
	case PhasePlaying:
		b.WriteString(m.viewPlaying())
	case PhaseGameOver:
		b.WriteString(m.viewGameOver())
	}

	if m.reconnectMsg != "" {
		b.WriteString("\n" + m.reconnectMsg)
	}
	if m.err != "" {
		b.WriteString("\n" + errorStyle.Render(m.err))
	}
	if m.latency > 0 {
		b.WriteString("\n" + hintStyle.Render(fmt.Sprintf("延迟 %dms", m.latency)))
	}

	return docStyle.Render(b.String())
}

func (m *Model) viewConnecting() string {
	if m.err != "" {
		return "连接失败"
	}
	return "正在连接服务器..."
}

func (m *Model) viewLobby() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("您好，%s！\n\n", m.playerName))
	b.WriteString("  c  创建牌桌\n")
	b.WriteString("  j  加入牌桌\n")
	b.WriteString("  m  快速匹配\n")
	b.WriteString("  q  退出\n")
	if len(m.standings) > 0 {
		b.WriteString("\n" + titleStyle.Render("积分榜") + "\n")
		for _, record := range m.standings {
			b.WriteString("  " + record + "\n")
		}
	}
	return b.String()
}

func (m *Model) viewJoining() string {
	return "加入牌桌\n\n" + m.input.View() + "\n\n" + hintStyle.Render("Enter 确认，Esc 返回")
}

func (m *Model) viewWaiting() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("牌桌 %s\n\n", m.tableCode))
	b.WriteString(m.viewPlayers())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(hintStyle.Render("r 准备 / 取消准备，Esc 离开"))
	return b.String()
}

func (m *Model) viewPlayers() string {
	var b strings.Builder
	for _, p := range m.players {
		marker := "  "
		if p.ID == m.playerID {
			marker = "▸ "
		}
		line := marker + p.Name
		if p.ID == m.declarerID {
			line = declarerStyle.Render(line + " （声明者）")
		} else if p.Ready {
			line += " ✓"
		}
		if !p.Online {
			line += hintStyle.Render(" （离线）")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m *Model) viewBidding() string {
	var b strings.Builder
	b.WriteString(m.viewPlayers())
	b.WriteString("\n" + m.viewHandBox())

	if m.currentBid > 0 {
		b.WriteString(fmt.Sprintf("\n当前叫牌值：%d\n", m.currentBid))
	} else {
		b.WriteString("\n尚无人叫牌\n")
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}

	if m.myBidTurn {
		next, ok := game.NextBidValue(m.currentBid)
		if m.canHold {
			b.WriteString(promptStyle.Render(fmt.Sprintf("h 应 %d，p 弃叫", max(m.currentBid, game.MinBid))))
		} else if ok {
			b.WriteString(promptStyle.Render(fmt.Sprintf("b 叫 %d，p 弃叫", next)))
		} else {
			b.WriteString(promptStyle.Render("p 弃叫"))
		}
	} else {
		b.WriteString(hintStyle.Render("等待其他玩家..."))
	}
	return b.String()
}

func (m *Model) viewSkatDecision() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("您以 %d 成为声明者\n\n", m.finalBid))
	b.WriteString(m.viewHandBox())
	b.WriteString(promptStyle.Render("t 拿底，h 打手牌局"))
	return b.String()
}

func (m *Model) viewDiscarding() string {
	var b strings.Builder
	b.WriteString("选两张牌弃回底\n\n")
	b.WriteString(boxStyle.Render(renderHand(m.hand, m.cursor, m.marked)))
	b.WriteString("\n" + hintStyle.Render("←/→ 移动，空格 选中，Enter 确认"))
	return b.String()
}

func (m *Model) viewAnnouncing() string {
	var b strings.Builder
	b.WriteString("宣布玩法\n\n")
	b.WriteString(m.viewHandBox())
	b.WriteString(m.input.View())
	b.WriteString("\n" + hintStyle.Render("花色 C/S/H/D，大满贯 G，无墩 N；后缀 H 手牌、S 保、Z 全、O 明"))
	return b.String()
}

func (m *Model) viewPlaying() string {
	var b strings.Builder
	b.WriteString(m.viewPlayers())

	if m.announcement != "" {
		b.WriteString(fmt.Sprintf("\n玩法：%s\n", m.announcement))
	}
	if len(m.trickCards) > 0 {
		rendered := make([]string, 0, len(m.trickCards))
		for _, code := range m.trickCards {
			rendered = append(rendered, renderCard(code))
		}
		b.WriteString("\n桌面：" + strings.Join(rendered, " ") + "\n")
	}
	if m.lastTrick != "" {
		b.WriteString(hintStyle.Render(m.lastTrick) + "\n")
	}

	b.WriteString("\n" + m.viewHandBox())

	if m.myPlayTurn {
		b.WriteString(promptStyle.Render("轮到您出牌：←/→ 移动，Enter 出牌"))
		if len(m.legal) > 0 {
			b.WriteString("\n" + hintStyle.Render("可出："+strings.Join(m.legal, " ")))
		}
	} else {
		b.WriteString(hintStyle.Render("等待其他玩家出牌..."))
	}
	return b.String()
}

func (m *Model) viewHandBox() string {
	return boxStyle.Render(renderHand(m.hand, m.cursor, m.marked)) + "\n"
}

func (m *Model) viewGameOver() string {
	over := m.gameOver
	if over == nil {
		return "等待结算..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("本局结束") + "\n\n")

	switch {
	case over.Ramsch && over.Durchmarsch:
		b.WriteString(fmt.Sprintf("一穿到底！赢家得 %d 分\n", over.Score))
	case over.Ramsch:
		b.WriteString(fmt.Sprintf("罗姆什局，输家记 %d 分", over.Score))
		if over.Jungfrau {
			b.WriteString("（有处子，分数翻倍）")
		}
		b.WriteString("\n")
	case over.Won:
		b.WriteString(fmt.Sprintf("声明者赢了：局值 %d，记 %+d 分\n", over.GameValue, over.Score))
	default:
		b.WriteString(fmt.Sprintf("声明者输了：记 %+d 分", over.Score))
		if over.Overbid {
			b.WriteString("（叫过头）")
		}
		b.WriteString("\n")
	}

	if !over.Ramsch {
		b.WriteString(fmt.Sprintf("声明者墩分 %d\n", over.DeclarerPoints))
	}
	if len(over.Skat) == 2 {
		b.WriteString(fmt.Sprintf("底牌：%s %s\n", renderCard(over.Skat[0]), renderCard(over.Skat[1])))
	}

	if len(m.standings) > 0 {
		b.WriteString("\n" + titleStyle.Render("积分榜") + "\n")
		for _, record := range m.standings {
			b.WriteString("  " + record + "\n")
		}
	}

	b.WriteString("\n" + hintStyle.Render("r 再来一局，q 回大厅"))
	return b.String()
}
