package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	domorder "example.com/trendy-store/internal/domain/order"
)

const topic = "order-events"

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type orderCreatedEvent struct {
	OrderNumber string    `json:"order_number"`
	UserID      int64     `json:"user_id"`
	Total       float64   `json:"total"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type statusChangedEvent struct {
	OrderNumber string    `json:"order_number"`
	UserID      int64     `json:"user_id"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	ChangedAt   time.Time `json:"changed_at"`
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, o *domorder.Order) error {
	return p.publish(ctx, "order.created", o.OrderNumber, orderCreatedEvent{
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Total:       o.Total,
		ItemCount:   len(o.Items),
		CreatedAt:   o.CreatedAt,
	})
}

func (p *KafkaPublisher) OrderStatusChanged(ctx context.Context, o *domorder.Order, previous domorder.Status) error {
	return p.publish(ctx, "order.status_changed", o.OrderNumber, statusChangedEvent{
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		From:        string(previous),
		To:          string(o.Status),
		ChangedAt:   o.UpdatedAt,
	})
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
		},
	})
}
