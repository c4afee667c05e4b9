package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/application/reports"
	"github.com/jhoicas/petshop-api/internal/infrastructure/cache"
	"github.com/jhoicas/petshop-api/pkg/config"
)

func newCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisCache(client, nil), mr
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)

	var miss dto.DashboardStatsDTO
	found, err := c.Get(ctx, reports.DashboardStatsKey, &miss)
	require.NoError(t, err)
	assert.False(t, found)

	stats := dto.DashboardStatsDTO{SalesToday: decimal.RequireFromString("150.50"), SalesTodayCount: 3}
	require.NoError(t, c.Set(ctx, reports.DashboardStatsKey, stats, time.Minute))
	assert.True(t, mr.Exists("petshop:"+reports.DashboardStatsKey))

	var got dto.DashboardStatsDTO
	found, err = c.Get(ctx, reports.DashboardStatsKey, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, got.SalesToday.Equal(stats.SalesToday))
	assert.Equal(t, 3, got.SalesTodayCount)

	require.NoError(t, c.Delete(ctx, reports.DashboardStatsKey))
	found, err = c.Get(ctx, reports.DashboardStatsKey, &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_Expira(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	require.NoError(t, c.Set(ctx, "k", map[string]int{"a": 1}, 30*time.Second))
	mr.FastForward(31 * time.Second)

	var v map[string]int
	found, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_ServidorCaido(t *testing.T) {
	c, mr := newCache(t)
	mr.Close()

	var v map[string]int
	_, err := c.Get(context.Background(), "k", &v)
	assert.Error(t, err)
	assert.Error(t, c.Ping(context.Background()))
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := cache.NewClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = cache.NewClient(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
