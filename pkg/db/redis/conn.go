package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"projectvote/internal/config"
)

type Store struct {
	client *redis.Client
	ctx    context.Context
}

var rdb *Store

// InitRedis connects the reminder schedule store. Redis is optional: with
// no REDIS_HOST configured the store stays nil and reminders are disabled,
// everything else keeps working.
func InitRedis(ctx context.Context, cfg config.RedisConfig) error {
	if cfg.Host == "" {
		log.Info("redis not configured, vote reminders disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	rdb = &Store{client, ctx}

	log.Info("connected to redis")
	return nil
}
