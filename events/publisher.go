package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fitgear/fitgear-api/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	OrderPlacedType = "order.placed"
	publishTimeout  = 5 * time.Second
)

// Publisher sends order events to the orders queue.
type Publisher struct {
	queueName string
	log       *zap.Logger
	send      func(ctx context.Context, msg amqp.Publishing) error
}

func NewPublisher(pool *ChannelPool, queueName string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Publisher{queueName: queueName, log: logger}
	p.send = func(ctx context.Context, msg amqp.Publishing) error {
		ch, err := pool.GetChannel(ctx)
		if err != nil {
			return fmt.Errorf("failed to get channel from pool: %w", err)
		}
		defer pool.ReturnChannel(ch)

		return ch.PublishWithContext(ctx,
			"",          // exchange
			p.queueName, // routing key (queue name)
			false,       // mandatory
			false,       // immediate
			msg,
		)
	}
	return p
}

// PublishOrderPlaced publishes event as a persistent JSON message.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         OrderPlacedType,
		MessageId:    event.OrderID,
		Timestamp:    event.PlacedAt,
		Body:         body,
	}
	if err := p.send(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish order %s: %w", event.OrderNumber, err)
	}

	p.log.Info("📤 order event published", zap.String("order", event.OrderNumber), zap.String("queue", p.queueName))
	return nil
}

// NoopPublisher drops events. Used when RabbitMQ is not configured.
type NoopPublisher struct {
	Logger *zap.Logger
}

func (n NoopPublisher) PublishOrderPlaced(_ context.Context, event models.OrderPlacedEvent) error {
	if n.Logger != nil {
		n.Logger.Debug("order event dropped, no broker configured", zap.String("order", event.OrderNumber))
	}
	return nil
}
