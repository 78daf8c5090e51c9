package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestTableSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	rs := NewRedisStore(newTestRedis(t))
	ctx := context.Background()

	snap := &TableSnapshot{
		Code:      "483920",
		PlayerIDs: []string{"p1", "p2", "p3"},
		Names:     []string{"anna", "bert", "carl"},
		Dealer:    1,
		CreatedAt: time.Now().Unix(),
	}
	require.NoError(t, rs.SaveTable(ctx, snap))

	loaded, err := rs.LoadTable(ctx, "483920")
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)

	require.NoError(t, rs.DeleteTable(ctx, "483920"))
	loaded, err = rs.LoadTable(ctx, "483920")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLoadTableMissing(t *testing.T) {
	t.Parallel()

	rs := NewRedisStore(newTestRedis(t))
	snap, err := rs.LoadTable(context.Background(), "000000")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestGameRecordsNewestFirst(t *testing.T) {
	t.Parallel()

	rs := NewRedisStore(newTestRedis(t))
	ctx := context.Background()

	first := &GameRecord{Announcement: "G", Declarer: 0, Bid: 24, Score: 48, Won: true}
	second := &GameRecord{Announcement: "N", Declarer: 2, Bid: 23, Score: -46}
	require.NoError(t, rs.AppendGameRecord(ctx, "p1", first))
	require.NoError(t, rs.AppendGameRecord(ctx, "p1", second))

	records, err := rs.GetGameRecords(ctx, "p1", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second, records[0])
	assert.Equal(t, first, records[1])
}

func TestSeriesRecordAndStandings(t *testing.T) {
	t.Parallel()

	sm := NewSeriesManager(newTestRedis(t))
	ctx := context.Background()

	require.NoError(t, sm.RecordGameResult(ctx, "p1", "anna", "10.0.0.7", 48, true))
	require.NoError(t, sm.RecordGameResult(ctx, "p1", "anna", "10.0.0.7", -46, false))
	require.NoError(t, sm.RecordGameResult(ctx, "p2", "bert", "10.0.0.8", 120, true))

	ps, err := sm.GetPlayerStatus(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, ps)
	assert.Equal(t, "anna", ps.Name)
	assert.Equal(t, 2, ps.Games)
	assert.Equal(t, 1, ps.Won)
	assert.Equal(t, -46, ps.LastResult)
	assert.Equal(t, 2, ps.Points)

	standings, err := sm.GetStandings(ctx, 10)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, "bert", standings[0].Name)
	assert.Equal(t, "anna", standings[1].Name)

	rank, err := sm.GetPlayerRank(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rank)

	rank, err = sm.GetPlayerRank(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), rank)
}

func TestGetPlayerStatusMissing(t *testing.T) {
	t.Parallel()

	sm := NewSeriesManager(newTestRedis(t))
	ps, err := sm.GetPlayerStatus(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, ps)
}
