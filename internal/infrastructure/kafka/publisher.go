package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

const NegotiationTopic = "negotiation-events"

type KafkaPublisher struct {
	writer *kafka.Writer
}

var _ domain.PublisherPort = (*KafkaPublisher)(nil)

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (k *KafkaPublisher) Publish(_ string, msgs ...domain.Message) error {
	km := make([]kafka.Message, 0, len(msgs))
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  time.Now(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return k.writer.WriteMessages(ctx, km...)
}

// PublishNegotiation emits one terminal-session event, keyed by user so
// one shopper's history lands in order on a single partition.
func (k *KafkaPublisher) PublishNegotiation(event NegotiationEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.Publish(NegotiationTopic, domain.Message{Key: []byte(event.UserID), Value: v})
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}
