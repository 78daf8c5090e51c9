package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/skat/internal/network/protocol"
)

// handleServerMessage 把服务器消息落到界面状态上
func (m *Model) handleServerMessage(msg *protocol.Message) tea.Cmd {
	switch msg.Type {
	case protocol.MsgPong:
		m.latency = m.client.GetLatency()

	case protocol.MsgTableCreated:
		if payload, err := protocol.ParsePayload[protocol.TableCreatedPayload](msg); err == nil {
			m.tableCode = payload.TableCode
			m.players = []protocol.PlayerInfo{payload.Player}
			m.phase = PhaseWaiting
			m.ready = false
			m.status = "等待其他玩家加入..."
		}

	case protocol.MsgTableJoined:
		if payload, err := protocol.ParsePayload[protocol.TableJoinedPayload](msg); err == nil {
			m.tableCode = payload.TableCode
			m.players = payload.Players
			m.phase = PhaseWaiting
			m.ready = false
			m.status = "已入座，按 r 准备"
		}

	case protocol.MsgPlayerJoined:
		if payload, err := protocol.ParsePayload[protocol.PlayerJoinedPayload](msg); err == nil {
			m.players = append(m.players, payload.Player)
			m.status = fmt.Sprintf("%s 加入了牌桌", payload.Player.Name)
		}

	case protocol.MsgPlayerLeft:
		if payload, err := protocol.ParsePayload[protocol.PlayerLeftPayload](msg); err == nil {
			m.removePlayer(payload.PlayerID)
			m.status = fmt.Sprintf("%s 离开了牌桌", payload.PlayerName)
		}

	case protocol.MsgPlayerReady:
		if payload, err := protocol.ParsePayload[protocol.PlayerReadyPayload](msg); err == nil {
			m.setPlayerReady(payload.PlayerID, payload.Ready)
			if payload.PlayerID == m.playerID {
				m.ready = payload.Ready
			}
		}

	case protocol.MsgPlayerOffline:
		if payload, err := protocol.ParsePayload[protocol.PlayerOfflinePayload](msg); err == nil {
			m.status = fmt.Sprintf("%s 掉线了，等待重连...", payload.PlayerName)
		}

	case protocol.MsgPlayerOnline:
		if payload, err := protocol.ParsePayload[protocol.PlayerOnlinePayload](msg); err == nil {
			m.status = fmt.Sprintf("%s 回来了", payload.PlayerName)
		}

	case protocol.MsgGameStart:
		if payload, err := protocol.ParsePayload[protocol.GameStartPayload](msg); err == nil {
			m.resetGameState()
			m.players = payload.Players
			m.status = "新一局开始"
		}

	case protocol.MsgDealCards:
		if payload, err := protocol.ParsePayload[protocol.DealCardsPayload](msg); err == nil {
			m.hand = payload.Cards
			m.cursor = 0
			m.soundManager.Play("deal")
		}

	case protocol.MsgBidTurn:
		if payload, err := protocol.ParsePayload[protocol.BidTurnPayload](msg); err == nil {
			m.phase = PhaseBidding
			m.currentBid = payload.CurrentBid
			m.canHold = payload.CanHold
			m.myBidTurn = payload.PlayerID == m.playerID
			if m.myBidTurn {
				m.soundManager.Play("your_turn")
			}
		}

	case protocol.MsgBidMade:
		if payload, err := protocol.ParsePayload[protocol.BidMadePayload](msg); err == nil {
			m.currentBid = payload.Value
			m.status = fmt.Sprintf("%s 叫到 %d", payload.PlayerName, payload.Value)
		}

	case protocol.MsgBidHeld:
		if payload, err := protocol.ParsePayload[protocol.BidActionPayload](msg); err == nil {
			m.status = fmt.Sprintf("%s 应价", payload.PlayerName)
		}

	case protocol.MsgBidPassed:
		if payload, err := protocol.ParsePayload[protocol.BidActionPayload](msg); err == nil {
			m.status = fmt.Sprintf("%s 弃叫", payload.PlayerName)
		}

	case protocol.MsgDeclarer:
		if payload, err := protocol.ParsePayload[protocol.DeclarerPayload](msg); err == nil {
			m.declarerID = payload.PlayerID
			m.finalBid = payload.Bid
			m.myBidTurn = false
			if payload.PlayerID == m.playerID {
				m.phase = PhaseSkatDecision
				m.status = fmt.Sprintf("您以 %d 成为声明者", payload.Bid)
			} else {
				m.status = fmt.Sprintf("%s 以 %d 成为声明者", payload.PlayerName, payload.Bid)
			}
		}

	case protocol.MsgSkatTaken:
		if payload, err := protocol.ParsePayload[protocol.SkatTakenPayload](msg); err == nil {
			if len(payload.Skat) > 0 {
				// 底牌进手，去弃牌
				m.hand = append(m.hand, payload.Skat...)
				m.marked = make(map[int]bool)
				m.phase = PhaseDiscarding
				m.status = "选两张牌弃回底"
			} else if payload.PlayerID != m.playerID {
				m.status = "声明者拿底"
			}
		}

	case protocol.MsgRamschStart:
		m.ramsch = true
		m.announcement = "Ramsch"
		m.phase = PhasePlaying
		m.status = "三家全弃，打罗姆什局"

	case protocol.MsgGameAnnounced:
		if payload, err := protocol.ParsePayload[protocol.GameAnnouncedPayload](msg); err == nil {
			m.announcement = payload.Announcement
			m.phase = PhasePlaying
			m.status = fmt.Sprintf("%s 宣布 %s", payload.PlayerName, payload.Announcement)
		}

	case protocol.MsgPlayTurn:
		if payload, err := protocol.ParsePayload[protocol.PlayTurnPayload](msg); err == nil {
			m.myPlayTurn = payload.PlayerID == m.playerID
			m.legal = payload.Legal
			if m.myPlayTurn {
				m.soundManager.Play("your_turn")
			}
		}

	case protocol.MsgCardPlayed:
		if payload, err := protocol.ParsePayload[protocol.CardPlayedPayload](msg); err == nil {
			m.trickCards = append(m.trickCards, payload.Card)
			if payload.PlayerID == m.playerID {
				m.removeFromHand(payload.Card)
			}
			m.soundManager.Play("play_card")
		}

	case protocol.MsgTrickWon:
		if payload, err := protocol.ParsePayload[protocol.TrickWonPayload](msg); err == nil {
			m.trickCards = nil
			m.lastTrick = fmt.Sprintf("第 %d 墩 %s 收下（%s，%d 分）",
				payload.TrickNumber, payload.WinnerName,
				strings.Join(payload.Cards, " "), payload.Points)
		}

	case protocol.MsgGameOver:
		if payload, err := protocol.ParsePayload[protocol.GameOverPayload](msg); err == nil {
			m.gameOver = payload
			m.phase = PhaseGameOver
			m.ready = false
			if m.wonGame(payload) {
				m.soundManager.Play("win")
			} else {
				m.soundManager.Play("lose")
			}
		}

	case protocol.MsgStandings:
		if payload, err := protocol.ParsePayload[protocol.StandingsPayload](msg); err == nil {
			m.standings = payload.Records
		}

	case protocol.MsgError:
		if payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg); err == nil {
			m.err = payload.Message
			return clearErrorAfter(3 * time.Second)
		}
	}

	return nil
}

// wonGame 本方在这局里算不算赢
func (m *Model) wonGame(over *protocol.GameOverPayload) bool {
	if over.Ramsch {
		if over.Durchmarsch {
			return over.WinnerID == m.playerID
		}
		return over.LoserID != m.playerID
	}
	if over.DeclarerID == m.playerID {
		return over.Won
	}
	return !over.Won
}

func (m *Model) removePlayer(id string) {
	for i, p := range m.players {
		if p.ID == id {
			m.players = append(m.players[:i], m.players[i+1:]...)
			return
		}
	}
}

func (m *Model) setPlayerReady(id string, ready bool) {
	for i := range m.players {
		if m.players[i].ID == id {
			m.players[i].Ready = ready
			return
		}
	}
}

// removeFromHand 打出的牌从手里拿掉，光标跟着收缩
func (m *Model) removeFromHand(code string) {
	for i, c := range m.hand {
		if c == code {
			m.hand = append(m.hand[:i], m.hand[i+1:]...)
			break
		}
	}
	if m.cursor >= len(m.hand) && m.cursor > 0 {
		m.cursor = len(m.hand) - 1
	}
	for i := range m.marked {
		if i >= len(m.hand) {
			delete(m.marked, i)
		}
	}
}
