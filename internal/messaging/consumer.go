package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"storysite/internal/cache"
)

// InvalidationConsumer слушает exchange через временную эксклюзивную очередь
// и сбрасывает локальный кэш. Свои сообщения (Origin == origin) пропускаются.
type InvalidationConsumer struct {
	ch          *amqp091.Channel
	target      cache.Invalidator
	origin      string
	queueName   string
	consumerTag string
	logger      *zap.Logger
	done        chan struct{}
}

// NewInvalidationConsumer объявляет exchange, очередь и биндинг.
func NewInvalidationConsumer(conn *amqp091.Connection, target cache.Invalidator, origin string, logger *zap.Logger) (*InvalidationConsumer, error) {
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}
	if target == nil {
		return nil, fmt.Errorf("invalidation target is nil")
	}
	consumerTag := "storysite_invalidation_" + uuid.NewString()
	c := &InvalidationConsumer{
		target:      target,
		origin:      origin,
		consumerTag: consumerTag,
		logger:      logger.Named("InvalidationConsumer").With(zap.String("consumerTag", consumerTag)),
		done:        make(chan struct{}),
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	c.ch = ch
	if err := declareExchange(ch); err != nil {
		_ = ch.Close()
		return nil, err
	}

	q, err := ch.QueueDeclare(
		"",    // имя дает брокер
		false, // durable
		true,  // auto-delete
		true,  // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}
	c.queueName = q.Name

	if err := ch.QueueBind(c.queueName, "", invalidationExchange, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to bind queue '%s' to exchange '%s': %w", c.queueName, invalidationExchange, err)
	}

	c.logger.Info("Invalidation queue bound", zap.String("queue", c.queueName))
	return c, nil
}

// Start начинает прием сообщений в отдельной горутине.
func (c *InvalidationConsumer) Start() error {
	deliveries, err := c.ch.Consume(
		c.queueName,
		c.consumerTag,
		false, // auto-ack
		true,  // exclusive
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	go func() {
		defer close(c.done)
		for d := range deliveries {
			c.handle(d)
		}
		c.logger.Info("Deliveries channel closed")
	}()
	return nil
}

func (c *InvalidationConsumer) handle(d amqp091.Delivery) {
	var payload InvalidationPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		c.logger.Error("Failed to unmarshal invalidation message", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	if payload.Origin != c.origin {
		c.target.Invalidate(payload.Prefix)
		c.logger.Debug("Remote invalidation applied", zap.String("prefix", payload.Prefix), zap.String("origin", payload.Origin))
	}

	if err := d.Ack(false); err != nil {
		c.logger.Error("Failed to acknowledge message", zap.Error(err))
	}
}

// Stop отменяет подписку и ждет завершения обработчика.
func (c *InvalidationConsumer) Stop() error {
	c.logger.Info("Stopping invalidation consumer")
	if err := c.ch.Cancel(c.consumerTag, false); err != nil {
		_ = c.ch.Close()
		return fmt.Errorf("failed to cancel consumer: %w", err)
	}
	<-c.done
	return c.ch.Close()
}
