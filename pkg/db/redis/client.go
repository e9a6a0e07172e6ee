package redis

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Client returns the shared store, or nil when redis is not configured.
func Client() *Store {
	return rdb
}

func (r *Store) ZAdd(key string, member string, score float64) error {
	add := r.client.ZAdd(r.ctx, key, redis.Z{
		Score:  score,
		Member: member,
	})

	return add.Err()
}

func (r *Store) ZRem(key string, member string) error {
	remove := r.client.ZRem(r.ctx, key, member)

	return remove.Err()
}

func (r *Store) ZRangeByScoreWithScores(key string, min string, max string) ([]redis.Z, error) {
	entries, err := r.client.ZRangeByScoreWithScores(r.ctx, key, &redis.ZRangeBy{
		Min: min,
		Max: max,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("fetching entries from redis: %w", err)
	}

	return entries, nil
}
