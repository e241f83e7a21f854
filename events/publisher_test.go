package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fitgear/fitgear-api/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishOrderPlaced(t *testing.T) {
	var got amqp.Publishing
	p := &Publisher{
		queueName: "orders.placed",
		log:       zap.NewNop(),
		send: func(ctx context.Context, msg amqp.Publishing) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			got = msg
			return nil
		},
	}

	event := models.OrderPlacedEvent{
		OrderID:     "0190b2a4-6f1e-7c3a-9d2e-1a2b3c4d5e6f",
		OrderNumber: "FG-20260501-ABCD",
		TotalAmount: 2500,
		Method:      "mobile-money",
		Source:      models.OrderSourceCheckout,
		ItemCount:   3,
		PlacedAt:    time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishOrderPlaced(context.Background(), event))

	assert.Equal(t, amqp.Persistent, got.DeliveryMode)
	assert.Equal(t, "application/json", got.ContentType)
	assert.Equal(t, OrderPlacedType, got.Type)
	assert.Equal(t, event.OrderID, got.MessageId)

	var decoded models.OrderPlacedEvent
	require.NoError(t, json.Unmarshal(got.Body, &decoded))
	assert.Equal(t, event.OrderNumber, decoded.OrderNumber)
	assert.Equal(t, int64(2500), decoded.TotalAmount)
	assert.Equal(t, 3, decoded.ItemCount)
}

func TestPublishOrderPlaced_WrapsSendError(t *testing.T) {
	boom := errors.New("broker unavailable")
	p := &Publisher{
		queueName: "orders.placed",
		log:       zap.NewNop(),
		send:      func(context.Context, amqp.Publishing) error { return boom },
	}

	err := p.PublishOrderPlaced(context.Background(), models.OrderPlacedEvent{OrderNumber: "FG-1"})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "FG-1")
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.PublishOrderPlaced(context.Background(), models.OrderPlacedEvent{}))
}
