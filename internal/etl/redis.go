package etl

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisQueue drains a Redis list from the head. Producers are expected to RPUSH.
type RedisQueue struct {
	client redis.Cmdable
	key    string
}

func NewRedisQueue(client redis.Cmdable, key string) *RedisQueue {
	return &RedisQueue{client: client, key: key}
}

func (q *RedisQueue) Empty(ctx context.Context) (bool, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to read length of %s: %w", q.key, err)
	}
	return n == 0, nil
}

func (q *RedisQueue) Get(ctx context.Context) ([]byte, error) {
	b, err := q.client.LPop(ctx, q.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrQueueEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pop from %s: %w", q.key, err)
	}
	return b, nil
}
