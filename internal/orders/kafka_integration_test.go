package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/samstech/techstore/internal/domain"
)

func setupKafka(t *testing.T) (string, func()) {
	ctx := context.Background()

	kafkaContainer, err := kafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err)

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate kafka container: %v", err)
		}
	}

	return brokers[0], cleanup
}

func createTopic(t *testing.T, brokerAddr, topic string) {
	conn, err := kafkaGo.Dial("tcp", brokerAddr)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkaGo.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err)
	defer controllerConn.Close()

	topicConfigs := []kafkaGo.TopicConfig{{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}}

	err = controllerConn.CreateTopics(topicConfigs...)
	if err != nil {
		t.Logf("topic creation error (may already exist): %v", err)
	}
}

func TestKafkaPlacer_PublishesOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping kafka integration test in short mode")
	}

	brokerAddr, cleanupKafka := setupKafka(t)
	defer cleanupKafka()

	createTopic(t, brokerAddr, Topic)

	placer := NewKafkaPlacer(brokerAddr)
	defer placer.Close()

	order := &domain.OrderConfirmation{
		OrderID:   "order-kafka-test",
		SessionID: "session-kafka-test",
		Name:      "Test User",
		Email:     "test@example.com",
		Address:   "1 Test Street",
		Snapshot: domain.CartSnapshot{
			Items: []domain.CartSnapshotItem{
				{ProductID: 1, Title: "Wireless Bluetooth Headphones", Quantity: 2, UnitPrice: 99.99},
			},
			TotalAmount: 199.98,
			Currency:    "USD",
		},
		PlacedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := placer.Place(ctx, order)
	require.NoError(t, err)

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers: []string{brokerAddr},
		Topic:   Topic,
		GroupID: "kafka-placer-test",
	})
	defer reader.Close()

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)
	require.Equal(t, order.OrderID, string(msg.Key))

	var got domain.OrderConfirmation
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	require.Equal(t, order.OrderID, got.OrderID)
	require.Equal(t, order.SessionID, got.SessionID)
	require.InDelta(t, 199.98, got.Snapshot.TotalAmount, 1e-9)
	require.Len(t, got.Snapshot.Items, 1)
}
