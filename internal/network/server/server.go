package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/skat/internal/config"
	"github.com/palemoky/skat/internal/network/protocol"
	"github.com/palemoky/skat/internal/network/server/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源，生产环境需要限制
	},
}

// 离线玩家的重连入口保留时间
const offlineGrace = 5 * time.Minute

// offlineEntry 掉线玩家的重连信息
type offlineEntry struct {
	ID        string
	Name      string
	TableCode string
	At        time.Time
}

// Server WebSocket 服务器
type Server struct {
	config *config.Config
	redis  *redis.Client
	store  *storage.RedisStore
	series *storage.SeriesManager
	tables *TableManager

	clients   map[string]*Client
	offline   map[string]*offlineEntry // 按重连令牌索引
	clientsMu sync.RWMutex
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config) (*Server, error) {
	// 初始化 Redis 客户端
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 测试 Redis 连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	s := &Server{
		config:  cfg,
		redis:   rdb,
		store:   storage.NewRedisStore(rdb),
		series:  storage.NewSeriesManager(rdb),
		clients: make(map[string]*Client),
		offline: make(map[string]*offlineEntry),
	}
	s.tables = NewTableManager(s)

	return s, nil
}

// Start 启动服务器
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	http.HandleFunc("/ws", s.handleWebSocket)
	http.HandleFunc("/health", s.handleHealth)

	log.Printf("🚀 服务器启动在 ws://%s/ws", addr)
	server := &http.Server{
		Addr:              addr,
		Handler:           nil,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return server.ListenAndServe()
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	client := NewClient(s, conn)
	client.IP = r.RemoteAddr
	s.registerClient(client)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID:       client.ID,
		PlayerName:     client.Name,
		ReconnectToken: client.ReconnectToken,
	}))

	log.Printf("✅ 玩家 %s (%s) 已连接", client.Name, client.ID)

	go client.ReadPump()
	go client.WritePump()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[client.ID]; ok {
		delete(s.clients, client.ID)
		log.Printf("❌ 玩家 %s (%s) 已断开", client.Name, client.ID)
	}
}

// rememberOffline 保留掉线玩家的重连入口
func (s *Server) rememberOffline(c *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	// 顺手清理过期入口
	for token, e := range s.offline {
		if time.Since(e.At) > offlineGrace {
			delete(s.offline, token)
		}
	}

	s.offline[c.ReconnectToken] = &offlineEntry{
		ID:        c.ID,
		Name:      c.Name,
		TableCode: c.GetTable(),
		At:        time.Now(),
	}
}

// takeOffline 取出并删除重连入口，过期或不存在时返回 nil
func (s *Server) takeOffline(token string) *offlineEntry {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	e, ok := s.offline[token]
	if !ok {
		return nil
	}
	delete(s.offline, token)
	if time.Since(e.At) > offlineGrace {
		return nil
	}
	return e
}

// rebindClient 重连后把客户端换回原来的身份
func (s *Server) rebindClient(c *Client, e *offlineEntry) {
	s.clientsMu.Lock()
	delete(s.clients, c.ID)
	c.ID = e.ID
	c.Name = e.Name
	s.clients[c.ID] = c
	s.clientsMu.Unlock()

	c.SetTable(e.TableCode)
}

// GetOnlineCount 获取在线人数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Broadcast 广播消息给所有客户端
func (s *Server) Broadcast(msg *protocol.Message) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	for _, client := range s.clients {
		client.SendMessage(msg)
	}
}

// Shutdown 关闭服务器
func (s *Server) Shutdown() {
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	_ = s.redis.Close()

	log.Println("服务器已关闭")
}
