package server

import (
	"time"

	"github.com/palemoky/skat/internal/apperrors"
	"github.com/palemoky/skat/internal/network/protocol"
)

// handleMessage 分发客户端消息
func (s *Server) handleMessage(c *Client, msg *protocol.Message) {
	var err error

	switch msg.Type {
	case protocol.MsgPing:
		err = s.handlePing(c, msg)
	case protocol.MsgReconnect:
		err = s.handleReconnect(c, msg)

	case protocol.MsgCreateTable:
		err = s.handleCreateTable(c)
	case protocol.MsgJoinTable:
		err = s.handleJoinTable(c, msg)
	case protocol.MsgQuickMatch:
		err = s.handleQuickMatch(c)
	case protocol.MsgLeaveTable:
		err = s.handleLeaveTable(c)
	case protocol.MsgReady:
		err = s.tables.SetReady(c, c.GetTable(), true)
	case protocol.MsgCancelReady:
		err = s.tables.SetReady(c, c.GetTable(), false)

	case protocol.MsgBid:
		err = s.withSession(c, func(gs *GameSession) error {
			payload, perr := protocol.ParsePayload[protocol.BidPayload](msg)
			if perr != nil {
				return apperrors.ErrInvalidPayload
			}
			return gs.HandleBid(c.ID, payload.Value)
		})
	case protocol.MsgHold:
		err = s.withSession(c, func(gs *GameSession) error { return gs.HandleHold(c.ID) })
	case protocol.MsgPass:
		err = s.withSession(c, func(gs *GameSession) error { return gs.HandlePass(c.ID) })
	case protocol.MsgTakeSkat:
		err = s.withSession(c, func(gs *GameSession) error { return gs.HandleTakeSkat(c.ID) })
	case protocol.MsgPlayHand:
		err = s.withSession(c, func(gs *GameSession) error { return gs.HandlePlayHand(c.ID) })
	case protocol.MsgDiscard:
		err = s.withSession(c, func(gs *GameSession) error {
			payload, perr := protocol.ParsePayload[protocol.DiscardPayload](msg)
			if perr != nil {
				return apperrors.ErrInvalidPayload
			}
			return gs.HandleDiscard(c.ID, payload.Cards)
		})
	case protocol.MsgAnnounce:
		err = s.withSession(c, func(gs *GameSession) error {
			payload, perr := protocol.ParsePayload[protocol.AnnouncePayload](msg)
			if perr != nil {
				return apperrors.ErrInvalidPayload
			}
			return gs.HandleAnnounce(c.ID, payload.Announcement)
		})
	case protocol.MsgPlayCard:
		err = s.withSession(c, func(gs *GameSession) error {
			payload, perr := protocol.ParsePayload[protocol.PlayCardPayload](msg)
			if perr != nil {
				return apperrors.ErrInvalidPayload
			}
			return gs.HandlePlayCard(c.ID, payload.Card)
		})

	default:
		c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if err != nil {
		ge := apperrors.FromEngine(err)
		c.SendMessage(protocol.NewErrorMessageWithText(ge.Code, ge.Message))
	}
}

func (s *Server) handlePing(c *Client, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return apperrors.ErrInvalidPayload
	}
	c.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
	return nil
}

// handleReconnect 校验令牌后恢复玩家身份和牌桌状态
func (s *Server) handleReconnect(c *Client, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.ReconnectPayload](msg)
	if err != nil {
		return apperrors.ErrInvalidPayload
	}

	entry := s.takeOffline(payload.Token)
	if entry == nil || entry.ID != payload.PlayerID {
		return apperrors.ErrReconnectFailed
	}

	s.rebindClient(c, entry)

	reply := protocol.ReconnectedPayload{
		PlayerID:   c.ID,
		PlayerName: c.Name,
		TableCode:  entry.TableCode,
	}
	if entry.TableCode != "" {
		if table, ok := s.tables.GetTable(entry.TableCode); ok && table.ReplaceConn(c.ID, c) {
			if session := table.Session(); session != nil {
				reply.GameState = session.StateFor(c.ID)
			}
		} else {
			// 牌桌已散
			c.SetTable("")
			reply.TableCode = ""
		}
	}

	c.SendMessage(protocol.MustNewMessage(protocol.MsgReconnected, reply))
	return nil
}

func (s *Server) handleCreateTable(c *Client) error {
	table, err := s.tables.CreateTable(c)
	if err != nil {
		return err
	}
	c.SetTable(table.Code)

	infos := table.PlayerInfos()
	c.SendMessage(protocol.MustNewMessage(protocol.MsgTableCreated, protocol.TableCreatedPayload{
		TableCode: table.Code,
		Player:    infos[0],
	}))
	return nil
}

func (s *Server) handleJoinTable(c *Client, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.JoinTablePayload](msg)
	if err != nil {
		return apperrors.ErrInvalidPayload
	}

	table, err := s.tables.JoinTable(c, payload.TableCode)
	if err != nil {
		return err
	}
	c.SetTable(table.Code)

	var self protocol.PlayerInfo
	infos := table.PlayerInfos()
	for _, info := range infos {
		if info.ID == c.ID {
			self = info
			break
		}
	}
	c.SendMessage(protocol.MustNewMessage(protocol.MsgTableJoined, protocol.TableJoinedPayload{
		TableCode: table.Code,
		Player:    self,
		Players:   infos,
	}))
	return nil
}

func (s *Server) handleQuickMatch(c *Client) error {
	table, err := s.tables.QuickMatch(c)
	if err != nil {
		return err
	}
	c.SetTable(table.Code)

	var self protocol.PlayerInfo
	infos := table.PlayerInfos()
	for _, info := range infos {
		if info.ID == c.ID {
			self = info
			break
		}
	}
	c.SendMessage(protocol.MustNewMessage(protocol.MsgTableJoined, protocol.TableJoinedPayload{
		TableCode: table.Code,
		Player:    self,
		Players:   infos,
	}))
	return nil
}

func (s *Server) handleLeaveTable(c *Client) error {
	code := c.GetTable()
	if code == "" {
		return apperrors.ErrNotAtTable
	}
	if err := s.tables.LeaveTable(c, code); err != nil {
		return err
	}
	c.SetTable("")
	return nil
}

// withSession 找到客户端所在牌桌的会话后执行 fn
func (s *Server) withSession(c *Client, fn func(*GameSession) error) error {
	code := c.GetTable()
	if code == "" {
		return apperrors.ErrNotAtTable
	}
	table, ok := s.tables.GetTable(code)
	if !ok {
		return apperrors.ErrTableNotFound
	}
	session := table.Session()
	if session == nil {
		return apperrors.ErrGameNotStart
	}
	return fn(session)
}
