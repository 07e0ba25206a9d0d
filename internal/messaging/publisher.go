package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher отправляет сообщения о сбросе кэша.
type Publisher interface {
	Publish(ctx context.Context, payload InvalidationPayload) error
}

// InvalidationPublisher публикует в fanout exchange storysite_cache_invalidation.
type InvalidationPublisher struct {
	mu     sync.Mutex
	ch     *amqp091.Channel
	logger *zap.Logger
}

// NewInvalidationPublisher открывает канал и объявляет exchange.
func NewInvalidationPublisher(conn *amqp091.Connection, logger *zap.Logger) (*InvalidationPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}
	log := logger.Named("InvalidationPublisher")

	ch, err := conn.Channel()
	if err != nil {
		log.Error("Failed to open a channel", zap.Error(err))
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	if err := declareExchange(ch); err != nil {
		_ = ch.Close()
		log.Error("Failed to declare invalidation exchange", zap.Error(err))
		return nil, err
	}
	log.Info("Invalidation exchange declared", zap.String("exchange", invalidationExchange))

	return &InvalidationPublisher{ch: ch, logger: log}, nil
}

// Publish публикует сообщение. Канал amqp не потокобезопасен для публикации, отсюда mu.
func (p *InvalidationPublisher) Publish(ctx context.Context, payload InvalidationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal invalidation payload: %w", err)
	}

	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx,
		invalidationExchange,
		"",
		false,
		false,
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	p.mu.Unlock()
	if err != nil {
		p.logger.Error("Failed to publish invalidation", zap.String("prefix", payload.Prefix), zap.Error(err))
		return fmt.Errorf("failed to publish invalidation: %w", err)
	}

	p.logger.Debug("Invalidation published", zap.String("prefix", payload.Prefix))
	return nil
}

// Close закрывает канал.
func (p *InvalidationPublisher) Close() error {
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}

func declareExchange(ch *amqp091.Channel) error {
	err := ch.ExchangeDeclare(
		invalidationExchange,
		invalidationExchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange '%s': %w", invalidationExchange, err)
	}
	return nil
}
