package server

import (
	"context"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/palemoky/skat/internal/apperrors"
	"github.com/palemoky/skat/internal/network/protocol"
	"github.com/palemoky/skat/internal/network/server/storage"
)

const (
	// 牌桌号长度
	tableCodeLength = 6
	// 牌桌号字符集
	tableCodeChars = "0123456789"
	// 一张牌桌坐三个人
	tableSize = 3
)

// TablePlayer 牌桌上的玩家
type TablePlayer struct {
	Conn   PlayerConn
	Seat   int  // 座位号 0-2
	Ready  bool // 是否准备
	Online bool // 是否在线
}

// Table 游戏牌桌
type Table struct {
	Code      string                  // 牌桌号
	Players   map[string]*TablePlayer // 玩家列表
	Order     []string                // 玩家顺序（按座位）
	Dealer    int                     // 当前发牌人座位
	CreatedAt time.Time               // 创建时间

	session *GameSession
	server  *Server
	mu      sync.RWMutex
}

// TableManager 牌桌管理器
type TableManager struct {
	server *Server
	tables map[string]*Table
	mu     sync.RWMutex
}

// NewTableManager 创建牌桌管理器
func NewTableManager(s *Server) *TableManager {
	tm := &TableManager{
		server: s,
		tables: make(map[string]*Table),
	}

	go tm.cleanupLoop()

	return tm
}

// CreateTable 创建牌桌
func (tm *TableManager) CreateTable(conn PlayerConn) (*Table, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	code := tm.generateTableCode()

	table := &Table{
		Code:      code,
		Players:   make(map[string]*TablePlayer),
		Order:     make([]string, 0, tableSize),
		CreatedAt: time.Now(),
		server:    tm.server,
	}

	table.Players[conn.PlayerID()] = &TablePlayer{Conn: conn, Seat: 0, Online: true}
	table.Order = append(table.Order, conn.PlayerID())

	tm.tables[code] = table
	tm.saveSnapshot(table)

	log.Printf("🃏 牌桌 %s 已创建，玩家 %s", code, conn.PlayerName())

	return table, nil
}

// JoinTable 加入牌桌
func (tm *TableManager) JoinTable(conn PlayerConn, code string) (*Table, error) {
	tm.mu.RLock()
	table, exists := tm.tables[code]
	tm.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrTableNotFound
	}

	table.mu.Lock()
	if table.session != nil {
		table.mu.Unlock()
		return nil, apperrors.ErrGameStarted
	}
	if len(table.Players) >= tableSize {
		table.mu.Unlock()
		return nil, apperrors.ErrTableFull
	}

	seat := len(table.Players)
	table.Players[conn.PlayerID()] = &TablePlayer{Conn: conn, Seat: seat, Online: true}
	table.Order = append(table.Order, conn.PlayerID())
	info := table.playerInfoLocked(conn.PlayerID())
	table.mu.Unlock()

	log.Printf("👤 玩家 %s 加入牌桌 %s", conn.PlayerName(), code)

	table.broadcastExcept(conn.PlayerID(), protocol.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: info,
	}))
	tm.saveSnapshot(table)

	return table, nil
}

// QuickMatch 加入人最多的未开局牌桌，没有就新开一张
func (tm *TableManager) QuickMatch(conn PlayerConn) (*Table, error) {
	for {
		code := tm.pickOpenTable()
		if code == "" {
			return tm.CreateTable(conn)
		}

		table, err := tm.JoinTable(conn, code)
		if err == nil {
			return table, nil
		}
		// 刚好被别人坐满或开局了，换一张
		if err == apperrors.ErrTableFull || err == apperrors.ErrGameStarted {
			continue
		}
		return nil, err
	}
}

// pickOpenTable 找座位空缺最少的未开局牌桌
func (tm *TableManager) pickOpenTable() string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	best := ""
	bestCount := -1
	for code, table := range tm.tables {
		table.mu.RLock()
		open := table.session == nil && len(table.Players) < tableSize
		count := len(table.Players)
		table.mu.RUnlock()
		if open && count > bestCount {
			best = code
			bestCount = count
		}
	}
	return best
}

// LeaveTable 离开牌桌。牌局进行中离席的玩家由电脑代打到局终
func (tm *TableManager) LeaveTable(conn PlayerConn, code string) error {
	tm.mu.RLock()
	table, exists := tm.tables[code]
	tm.mu.RUnlock()
	if !exists {
		return apperrors.ErrTableNotFound
	}

	table.mu.Lock()
	tp, ok := table.Players[conn.PlayerID()]
	if !ok {
		table.mu.Unlock()
		return apperrors.ErrNotAtTable
	}

	if table.session != nil {
		// 局中只标记离线，座位保留
		tp.Online = false
		tp.Ready = false
		table.mu.Unlock()
	} else {
		delete(table.Players, conn.PlayerID())
		for i, id := range table.Order {
			if id == conn.PlayerID() {
				table.Order = append(table.Order[:i], table.Order[i+1:]...)
				break
			}
		}
		// 重新压实座位号
		for i, id := range table.Order {
			table.Players[id].Seat = i
		}
		empty := len(table.Players) == 0
		table.mu.Unlock()

		if empty {
			tm.removeTable(code)
		}
	}

	table.broadcast(protocol.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
		PlayerID:   conn.PlayerID(),
		PlayerName: conn.PlayerName(),
	}))

	return nil
}

// SetReady 设置准备状态，三人就绪时开局
func (tm *TableManager) SetReady(conn PlayerConn, code string, ready bool) error {
	tm.mu.RLock()
	table, exists := tm.tables[code]
	tm.mu.RUnlock()
	if !exists {
		return apperrors.ErrTableNotFound
	}

	table.mu.Lock()
	tp, ok := table.Players[conn.PlayerID()]
	if !ok {
		table.mu.Unlock()
		return apperrors.ErrNotAtTable
	}
	if table.session != nil {
		table.mu.Unlock()
		return apperrors.ErrGameStarted
	}
	tp.Ready = ready

	var session *GameSession
	if ready && len(table.Players) == tableSize && table.allReadyLocked() {
		session = NewGameSession(table, &tm.server.config.Game)
		table.session = session
	}
	table.mu.Unlock()

	table.broadcast(protocol.MustNewMessage(protocol.MsgPlayerReady, protocol.PlayerReadyPayload{
		PlayerID: conn.PlayerID(),
		Ready:    ready,
	}))

	// 开局必须在释放牌桌锁之后
	if session != nil {
		session.Start()
	}
	return nil
}

// GetTable 按牌桌号查找
func (tm *TableManager) GetTable(code string) (*Table, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	table, ok := tm.tables[code]
	return table, ok
}

// NotifyPlayerOffline 通知牌桌有玩家掉线
func (tm *TableManager) NotifyPlayerOffline(conn PlayerConn) {
	code := ""
	if c, ok := conn.(*Client); ok {
		code = c.GetTable()
	}
	if code == "" {
		return
	}

	table, ok := tm.GetTable(code)
	if !ok {
		return
	}

	table.mu.Lock()
	if tp, exists := table.Players[conn.PlayerID()]; exists {
		tp.Online = false
	}
	table.mu.Unlock()

	table.broadcastExcept(conn.PlayerID(), protocol.MustNewMessage(protocol.MsgPlayerOffline, protocol.PlayerOfflinePayload{
		PlayerID:   conn.PlayerID(),
		PlayerName: conn.PlayerName(),
		Timeout:    int(offlineGrace.Seconds()),
	}))
}

// removeTable 删除牌桌
func (tm *TableManager) removeTable(code string) {
	tm.mu.Lock()
	delete(tm.tables, code)
	tm.mu.Unlock()

	if tm.server != nil && tm.server.store != nil {
		go func() {
			_ = tm.server.store.DeleteTable(context.Background(), code)
		}()
	}
}

// generateTableCode 生成未占用的牌桌号，调用方需持有 tm.mu
func (tm *TableManager) generateTableCode() string {
	for {
		code := make([]byte, tableCodeLength)
		for i := range code {
			code[i] = tableCodeChars[rand.IntN(len(tableCodeChars))]
		}
		if _, exists := tm.tables[string(code)]; !exists {
			return string(code)
		}
	}
}

// saveSnapshot 异步保存牌桌快照
func (tm *TableManager) saveSnapshot(table *Table) {
	if tm.server == nil || tm.server.store == nil {
		return
	}

	table.mu.RLock()
	snap := &storage.TableSnapshot{
		Code:      table.Code,
		PlayerIDs: append([]string(nil), table.Order...),
		Dealer:    table.Dealer,
		CreatedAt: table.CreatedAt.Unix(),
	}
	for _, id := range table.Order {
		snap.Names = append(snap.Names, table.Players[id].Conn.PlayerName())
	}
	table.mu.RUnlock()

	go func() {
		_ = tm.server.store.SaveTable(context.Background(), snap)
	}()
}

// cleanupLoop 定期清理长时间无人的空牌桌
func (tm *TableManager) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		timeout := 10 * time.Minute
		if tm.server != nil && tm.server.config != nil {
			timeout = tm.server.config.Game.TableTimeoutDuration()
		}

		tm.mu.Lock()
		for code, table := range tm.tables {
			table.mu.RLock()
			stale := table.session == nil && len(table.Players) == 0 &&
				time.Since(table.CreatedAt) > timeout
			table.mu.RUnlock()
			if stale {
				delete(tm.tables, code)
			}
		}
		tm.mu.Unlock()
	}
}

// --- Table ---

// Session 当前进行中的会话，可能为 nil
func (t *Table) Session() *GameSession {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.session
}

// allReadyLocked 调用方需持有 t.mu
func (t *Table) allReadyLocked() bool {
	for _, tp := range t.Players {
		if !tp.Ready {
			return false
		}
	}
	return true
}

// player 按 ID 查找玩家
func (t *Table) player(id string) (*TablePlayer, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	tp, ok := t.Players[id]
	return tp, ok
}

// broadcast 广播给牌桌上所有玩家
func (t *Table) broadcast(msg *protocol.Message) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, tp := range t.Players {
		tp.Conn.Send(msg)
	}
}

// broadcastExcept 广播给除指定玩家外的所有玩家
func (t *Table) broadcastExcept(exceptID string, msg *protocol.Message) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for id, tp := range t.Players {
		if id != exceptID {
			tp.Conn.Send(msg)
		}
	}
}

// sendTo 发送给指定座位的玩家
func (t *Table) sendTo(seat int, msg *protocol.Message) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if seat < 0 || seat >= len(t.Order) {
		return
	}
	if tp, ok := t.Players[t.Order[seat]]; ok {
		tp.Conn.Send(msg)
	}
}

// playerIDAt 座位上玩家的 ID
func (t *Table) playerIDAt(seat int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if seat < 0 || seat >= len(t.Order) {
		return ""
	}
	return t.Order[seat]
}

// playerNameAt 座位上玩家的昵称
func (t *Table) playerNameAt(seat int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if seat < 0 || seat >= len(t.Order) {
		return ""
	}
	return t.Players[t.Order[seat]].Conn.PlayerName()
}

// playerInfoLocked 调用方需持有 t.mu
func (t *Table) playerInfoLocked(id string) protocol.PlayerInfo {
	tp := t.Players[id]
	return protocol.PlayerInfo{
		ID:     id,
		Name:   tp.Conn.PlayerName(),
		Seat:   tp.Seat,
		Ready:  tp.Ready,
		Online: tp.Online,
	}
}

// PlayerInfos 按座位顺序的玩家信息
func (t *Table) PlayerInfos() []protocol.PlayerInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()
	infos := make([]protocol.PlayerInfo, 0, len(t.Order))
	for _, id := range t.Order {
		infos = append(infos, t.playerInfoLocked(id))
	}
	return infos
}

// ReplaceConn 重连时换上新连接并标记在线
func (t *Table) ReplaceConn(id string, conn PlayerConn) bool {
	t.mu.Lock()
	tp, ok := t.Players[id]
	if !ok {
		t.mu.Unlock()
		return false
	}
	tp.Conn = conn
	tp.Online = true
	name := conn.PlayerName()
	t.mu.Unlock()

	t.broadcastExcept(id, protocol.MustNewMessage(protocol.MsgPlayerOnline, protocol.PlayerOnlinePayload{
		PlayerID:   id,
		PlayerName: name,
	}))
	return true
}

// endGame 一局结束后轮转发牌人并复位准备状态
func (t *Table) endGame() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Dealer = (t.Dealer + 1) % tableSize
	t.session = nil
	for _, tp := range t.Players {
		tp.Ready = false
	}
}
