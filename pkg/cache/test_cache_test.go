package cache

import (
	"context"
	"edu_testing_backend/internal/model"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestNoopTestCache(t *testing.T) {
	ctx := context.Background()
	var c NoopTestCache
	test := &model.Test{Title: "x"}
	test.ID = "t1"

	c.Set(ctx, test)
	_, ok := c.Get(ctx, "t1")
	assert.False(t, ok)
	c.Invalidate(ctx, "t1")
}

// Redis 不可用时缓存退化为未命中
func TestRedisTestCache_Unavailable(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisTestCache(client, time.Minute)
	test := &model.Test{Title: "x"}
	test.ID = "t1"

	assert.NotPanics(t, func() {
		c.Set(ctx, test)
		c.Invalidate(ctx, "t1")
	})
	_, ok := c.Get(ctx, "t1")
	assert.False(t, ok)
}
