package orders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/samstech/techstore/internal/domain"
)

// Topic carries confirmed order events for downstream fulfillment.
const Topic = "orders"

// KafkaPlacer publishes confirmed orders to Kafka. Publishing is the whole of
// order persistence here; no order row is written locally.
type KafkaPlacer struct {
	writer *kafka.Writer
}

func NewKafkaPlacer(brokers ...string) *KafkaPlacer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPlacer{writer: w}
}

func (p *KafkaPlacer) Place(ctx context.Context, order *domain.OrderConfirmation) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.OrderID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to publish order %v: %w", order.OrderID, err)
	}
	return nil
}

func (p *KafkaPlacer) Close() error {
	return p.writer.Close()
}
