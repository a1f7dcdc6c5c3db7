package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/supermem613/noaacast/internal/config"
	"github.com/supermem613/noaacast/internal/domain"
)

// Writer publishes assembled forecasts to a Kafka topic.
// It implements pipeline.Broadcaster.
type Writer struct {
	writer *kafkago.Writer
	units  domain.UnitSystem
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured forecast topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaForecastTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, units: cfg.Units, logger: logger}
}

// Broadcast serializes the forecast and publishes it. Each refresh produces
// exactly one message; consumers only care about the latest, so the key is
// constant and compaction keeps the topic small.
func (w *Writer) Broadcast(ctx context.Context, f *domain.DisplayForecast) error {
	msg, err := serializeToMessage(f, w.units)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a forecast into a Kafka message.
func serializeToMessage(f *domain.DisplayForecast, units domain.UnitSystem) (kafkago.Message, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize forecast: %w", err)
	}
	return kafkago.Message{
		Key:   []byte("latest"),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "units", Value: []byte(units)},
			{Key: "generated_at", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}, nil
}
