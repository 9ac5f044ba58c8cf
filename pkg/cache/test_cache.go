package cache

import (
	"context"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/pkg/logger"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const testKeyPrefix = "edu_testing:test:"

// RedisTestCache 测验定义的读穿缓存；缓存失败只记日志，不影响主流程
type RedisTestCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisTestCache(client *redis.Client, ttl time.Duration) *RedisTestCache {
	return &RedisTestCache{Client: client, TTL: ttl}
}

func (c *RedisTestCache) Get(ctx context.Context, id string) (*model.Test, bool) {
	raw, err := c.Client.Get(ctx, testKeyPrefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("test cache get failed", zap.String("testId", id), zap.Error(err))
		}
		return nil, false
	}

	var test model.Test
	if err := json.Unmarshal(raw, &test); err != nil {
		logger.Log.Warn("test cache decode failed", zap.String("testId", id), zap.Error(err))
		return nil, false
	}
	return &test, true
}

func (c *RedisTestCache) Set(ctx context.Context, test *model.Test) {
	raw, err := json.Marshal(test)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, testKeyPrefix+test.ID, raw, c.TTL).Err(); err != nil {
		logger.Log.Warn("test cache set failed", zap.String("testId", test.ID), zap.Error(err))
	}
}

func (c *RedisTestCache) Invalidate(ctx context.Context, id string) {
	if err := c.Client.Del(ctx, testKeyPrefix+id).Err(); err != nil {
		logger.Log.Warn("test cache invalidate failed", zap.String("testId", id), zap.Error(err))
	}
}

// NoopTestCache 未启用 Redis 时使用
type NoopTestCache struct{}

func (NoopTestCache) Get(context.Context, string) (*model.Test, bool) { return nil, false }
func (NoopTestCache) Set(context.Context, *model.Test)                {}
func (NoopTestCache) Invalidate(context.Context, string)              {}
