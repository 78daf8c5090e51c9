package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/skat/internal/notation"
)

const (
	playerStatusKey = "player:status:"
	standingsKey    = "standings:points"
)

// SeriesManager 维护跨局的积分榜。每位玩家一条状态记录
// （格式见 notation.PlayerStatus），总分另存一个有序集合用于排名
type SeriesManager struct {
	redis *redis.Client
}

// NewSeriesManager 创建积分榜管理器
func NewSeriesManager(client *redis.Client) *SeriesManager {
	return &SeriesManager{redis: client}
}

// GetPlayerStatus 获取玩家状态记录，不存在时返回 (nil, nil)
func (sm *SeriesManager) GetPlayerStatus(ctx context.Context, playerID string) (*notation.PlayerStatus, error) {
	data, err := sm.redis.Get(ctx, playerStatusKey+playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	ps, ok := notation.ParsePlayerStatus(data)
	if !ok {
		return nil, errors.New("损坏的玩家状态记录")
	}
	return &ps, nil
}

// SavePlayerStatus 保存玩家状态记录
func (sm *SeriesManager) SavePlayerStatus(ctx context.Context, playerID string, ps *notation.PlayerStatus) error {
	return sm.redis.Set(ctx, playerStatusKey+playerID, ps.Record(), 0).Err()
}

// RecordGameResult 记录一局结果并更新积分榜。
// score 为该玩家本局的得分变化，声明者得正负局值，
// 罗姆什局输家得负的墩分
func (sm *SeriesManager) RecordGameResult(ctx context.Context, playerID, name, ip string, score int, won bool) error {
	ps, err := sm.GetPlayerStatus(ctx, playerID)
	if err != nil {
		return err
	}
	if ps == nil {
		ps = &notation.PlayerStatus{Name: name, IP: ip}
	}

	ps.Name = name
	ps.IP = ip
	ps.Games++
	if won {
		ps.Won++
	}
	ps.LastResult = score
	ps.Points += score

	if err := sm.SavePlayerStatus(ctx, playerID, ps); err != nil {
		return err
	}

	return sm.redis.ZAdd(ctx, standingsKey, redis.Z{
		Score:  float64(ps.Points),
		Member: playerID,
	}).Err()
}

// GetStandings 获取积分榜前 limit 名的状态记录，按总分从高到低
func (sm *SeriesManager) GetStandings(ctx context.Context, limit int) ([]notation.PlayerStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ids, err := sm.redis.ZRevRange(ctx, standingsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	standings := make([]notation.PlayerStatus, 0, len(ids))
	for _, id := range ids {
		ps, err := sm.GetPlayerStatus(ctx, id)
		if err != nil || ps == nil {
			continue
		}
		standings = append(standings, *ps)
	}
	return standings, nil
}

// GetPlayerRank 获取玩家排名（从 1 开始），未上榜返回 -1
func (sm *SeriesManager) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	rank, err := sm.redis.ZRevRank(ctx, standingsKey, playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil
}
