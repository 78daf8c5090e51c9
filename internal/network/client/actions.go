package client

import (
	"time"

	"github.com/palemoky/skat/internal/network/protocol"
)

// CreateTable 创建牌桌
func (c *Client) CreateTable() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgCreateTable, nil))
}

// JoinTable 加入牌桌
func (c *Client) JoinTable(tableCode string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgJoinTable, protocol.JoinTablePayload{
		TableCode: tableCode,
	}))
}

// QuickMatch 快速匹配一张牌桌
func (c *Client) QuickMatch() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgQuickMatch, nil))
}

// LeaveTable 离开牌桌
func (c *Client) LeaveTable() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgLeaveTable, nil))
}

// Ready 准备
func (c *Client) Ready() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgReady, nil))
}

// CancelReady 取消准备
func (c *Client) CancelReady() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgCancelReady, nil))
}

// Bid 报出叫牌值
func (c *Client) Bid(value int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgBid, protocol.BidPayload{
		Value: value,
	}))
}

// Hold 应价
func (c *Client) Hold() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgHold, nil))
}

// Pass 弃叫
func (c *Client) Pass() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPass, nil))
}

// TakeSkat 拿底
func (c *Client) TakeSkat() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgTakeSkat, nil))
}

// PlayHand 不拿底，打手牌局
func (c *Client) PlayHand() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPlayHand, nil))
}

// Discard 弃回两张牌，牌用两字符牌码表示
func (c *Client) Discard(cards [2]string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgDiscard, protocol.DiscardPayload{
		Cards: cards,
	}))
}

// Announce 宣布玩法，记谱格式见 notation 包
func (c *Client) Announce(announcement string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgAnnounce, protocol.AnnouncePayload{
		Announcement: announcement,
	}))
}

// PlayCard 出牌
func (c *Client) PlayCard(code string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPlayCard, protocol.PlayCardPayload{
		Card: code,
	}))
}

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}
