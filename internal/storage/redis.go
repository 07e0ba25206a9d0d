package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultSessionTTL - сколько живут данные сессии без обращений.
const DefaultSessionTTL = 30 * 24 * time.Hour

// Redis хранит ключи одной браузерной сессии в хэше storysite:session:{id}.
// Каждое обращение продлевает TTL хэша.
type Redis struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedis создает хранилище сессии sessionID.
func NewRedis(client *redis.Client, sessionID string, ttl time.Duration, logger *zap.Logger) *Redis {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{
		client: client,
		key:    SessionKey(sessionID),
		ttl:    ttl,
		logger: logger.Named("RedisStorage"),
	}
}

// SessionKey - ключ хэша сессии в Redis.
func SessionKey(sessionID string) string {
	return fmt.Sprintf("storysite:session:%s", sessionID)
}

func (r *Redis) GetItem(ctx context.Context, key string) (string, bool, error) {
	pipe := r.client.TxPipeline()
	getCmd := pipe.HGet(ctx, r.key, key)
	pipe.Expire(ctx, r.key, r.ttl)
	_, err := pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		r.logger.Error("Failed to read session item", zap.String("item", key), zap.Error(err))
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	v, err := getCmd.Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *Redis) SetItem(ctx context.Context, key, value string) error {
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, r.key, key, value)
	pipe.Expire(ctx, r.key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to write session item", zap.String("item", key), zap.Error(err))
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) RemoveItem(ctx context.Context, key string) error {
	if err := r.client.HDel(ctx, r.key, key).Err(); err != nil {
		r.logger.Error("Failed to remove session item", zap.String("item", key), zap.Error(err))
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Destroy удаляет все данные сессии.
func (r *Redis) Destroy(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis destroy session: %w", err)
	}
	return nil
}
