package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// PushSink delivers a notification outside the process.
type PushSink interface {
	Push(ctx context.Context, n Notification) error
}

// LogSink writes push notifications to the log. Used when no broker is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Push(_ context.Context, n Notification) error {
	s.logger.Info("push notification", "title", n.Title, "message", n.Message, "kind", n.Kind, "tag", n.Tag)
	return nil
}

// KafkaSink publishes push notifications to a Kafka topic.
type KafkaSink struct {
	writer *kafkago.Writer
}

func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
		WriteTimeout: 5 * time.Second,
	}
	return &KafkaSink{writer: w}
}

func (s *KafkaSink) Push(ctx context.Context, n Notification) error {
	msg, err := toMessage(n)
	if err != nil {
		return err
	}
	return s.writer.WriteMessages(ctx, msg)
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

func toMessage(n Notification) (kafkago.Message, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize notification: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(n.Tag),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(n.Kind)},
			{Key: "created_at", Value: []byte(n.CreatedAt.Format(time.RFC3339))},
		},
	}, nil
}
