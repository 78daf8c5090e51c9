// Package testutil 提供网络层测试用的模拟对象
package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/palemoky/skat/internal/network/protocol"
)

// MockConn 模拟一个已连接的玩家，记录服务端发来的所有消息
type MockConn struct {
	mock.Mock
	ID   string
	Name string
}

// NewMockConn 创建模拟连接并放行全部 Send 调用
func NewMockConn(id, name string) *MockConn {
	mc := &MockConn{ID: id, Name: name}
	mc.On("Send", mock.Anything).Return()
	return mc
}

func (m *MockConn) PlayerID() string { return m.ID }

func (m *MockConn) PlayerName() string { return m.Name }

func (m *MockConn) Send(msg *protocol.Message) {
	m.Called(msg)
}

// Messages 返回收到的全部消息
func (m *MockConn) Messages() []*protocol.Message {
	var out []*protocol.Message
	for _, call := range m.Calls {
		if call.Method != "Send" {
			continue
		}
		if msg, ok := call.Arguments.Get(0).(*protocol.Message); ok {
			out = append(out, msg)
		}
	}
	return out
}

// MessagesOfType 返回收到的指定类型的消息
func (m *MockConn) MessagesOfType(t protocol.MessageType) []*protocol.Message {
	var out []*protocol.Message
	for _, msg := range m.Messages() {
		if msg.Type == t {
			out = append(out, msg)
		}
	}
	return out
}

// LastOfType 返回最后一条指定类型的消息，没有时返回 nil
func (m *MockConn) LastOfType(t protocol.MessageType) *protocol.Message {
	msgs := m.MessagesOfType(t)
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1]
}
