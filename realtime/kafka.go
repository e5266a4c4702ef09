package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

// KafkaPublisher appends order lifecycle events to a durable log keyed by restaurant.
// Other event types are ignored.
type KafkaPublisher struct {
	Writer MessageWriter
}

func (p KafkaPublisher) Publish(ctx context.Context, e Event) error {
	if !IsOrderEvent(e.Type) {
		return nil
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", e.Type, err)
	}
	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(e.RestaurantID), 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(e.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("kafka write %s: %w", e.Type, err)
	}
	return nil
}

func IsOrderEvent(eventType string) bool {
	return strings.HasPrefix(eventType, "order:") || strings.HasPrefix(eventType, "kitchen:")
}
