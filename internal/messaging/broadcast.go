package messaging

import (
	"context"
	"time"

	"go.uber.org/zap"

	"storysite/internal/cache"
)

const publishTimeout = 5 * time.Second

// BroadcastInvalidator сбрасывает локальный кэш и рассылает сброс остальным экземплярам.
// Ошибка публикации только логируется: локальный сброс уже выполнен.
type BroadcastInvalidator struct {
	local     cache.Invalidator
	publisher Publisher
	origin    string
	logger    *zap.Logger
}

// NewBroadcastInvalidator оборачивает локальный кэш.
func NewBroadcastInvalidator(local cache.Invalidator, publisher Publisher, origin string, logger *zap.Logger) *BroadcastInvalidator {
	return &BroadcastInvalidator{
		local:     local,
		publisher: publisher,
		origin:    origin,
		logger:    logger.Named("BroadcastInvalidator"),
	}
}

func (b *BroadcastInvalidator) Invalidate(prefix string) {
	b.local.Invalidate(prefix)

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	payload := InvalidationPayload{Prefix: prefix, Origin: b.origin, IssuedAt: time.Now().UTC()}
	if err := b.publisher.Publish(ctx, payload); err != nil {
		b.logger.Warn("Failed to broadcast invalidation, other instances will catch up by TTL",
			zap.String("prefix", prefix), zap.Error(err))
	}
}
