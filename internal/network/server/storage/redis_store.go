package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tableKeyPrefix  = "table:"
	recordKeyPrefix = "records:"

	// 牌桌快照保留时间，覆盖断线重连窗口
	tableTTL = 24 * time.Hour

	// 每个玩家保留的对局记录条数
	maxRecordsPerPlayer = 100
)

// TableSnapshot 牌桌的持久化快照，用于服务重启和断线重连恢复
type TableSnapshot struct {
	Code      string   `json:"code"`
	PlayerIDs []string `json:"player_ids"` // 按座位顺序
	Names     []string `json:"names"`
	Dealer    int      `json:"dealer"`
	CreatedAt int64    `json:"created_at"`
}

// GameRecord 一局结束后的对局记录，牌用记谱字符串表示
type GameRecord struct {
	Deal         string `json:"deal"`         // 发牌记谱 f|m|r|skat
	Announcement string `json:"announcement"` // 玩法记谱，罗姆什局为空
	Declarer     int    `json:"declarer"`     // 声明者座位，罗姆什局为 -1
	Bid          int    `json:"bid"`
	Score        int    `json:"score"`
	Won          bool   `json:"won"`
	PlayedAt     int64  `json:"played_at"`
}

// RedisStore Redis 持久化层
type RedisStore struct {
	redis *redis.Client
}

// NewRedisStore 创建存储实例
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{redis: client}
}

// SaveTable 保存牌桌快照
func (rs *RedisStore) SaveTable(ctx context.Context, snap *TableSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return rs.redis.Set(ctx, tableKeyPrefix+snap.Code, data, tableTTL).Err()
}

// LoadTable 加载牌桌快照，不存在时返回 (nil, nil)
func (rs *RedisStore) LoadTable(ctx context.Context, code string) (*TableSnapshot, error) {
	data, err := rs.redis.Get(ctx, tableKeyPrefix+code).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var snap TableSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// DeleteTable 删除牌桌快照
func (rs *RedisStore) DeleteTable(ctx context.Context, code string) error {
	return rs.redis.Del(ctx, tableKeyPrefix+code).Err()
}

// AppendGameRecord 追加一条对局记录到玩家的历史列表
func (rs *RedisStore) AppendGameRecord(ctx context.Context, playerID string, rec *GameRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	key := recordKeyPrefix + playerID
	pipe := rs.redis.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, maxRecordsPerPlayer-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("保存对局记录失败: %w", err)
	}
	return nil
}

// GetGameRecords 读取玩家最近的对局记录，最新的在前
func (rs *RedisStore) GetGameRecords(ctx context.Context, playerID string, limit int) ([]*GameRecord, error) {
	items, err := rs.redis.LRange(ctx, recordKeyPrefix+playerID, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*GameRecord, 0, len(items))
	for _, item := range items {
		var rec GameRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			continue
		}
		records = append(records, &rec)
	}
	return records, nil
}
