//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	kafkatc "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/supermem613/noaacast/internal/adapter/kafka"
	"github.com/supermem613/noaacast/internal/config"
	"github.com/supermem613/noaacast/internal/domain"
)

const testForecastTopic = "test-forecasts"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-broker Kafka container and returns its
// bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := kafkatc.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestForecastBroadcast verifies that an assembled forecast published by the
// kafka adapter round-trips through a real broker intact.
func TestForecastBroadcast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testForecastTopic)

	cfg := &config.Config{
		Units:              domain.Imperial,
		KafkaBrokers:       []string{broker},
		KafkaForecastTopic: testForecastTopic,
	}

	writer := kafkaadapter.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	forecast := &domain.DisplayForecast{
		Summary: "Mostly Cloudy",
		Currently: domain.CurrentConditions{
			Temperature: "40°",
			FeelsLike:   "35.3°",
			Icon:        "cloudy",
			TempRange:   domain.TempRange{High: "44°", Low: "33°"},
			Precipitation: domain.PrecipDisplay{
				Pop: "null%",
			},
			Wind: domain.WindDisplay{WindSpeed: "8 mph "},
		},
		Hourly: []domain.DisplayItem{
			{Time: "12 PM", Icon: "cloudy", Temperature: "43°"},
		},
		Daily: []domain.DisplayItem{
			{Day: "Fri", Icon: "clear-day", TempRange: &domain.TempRange{High: "50°", Low: "35°"}},
		},
	}
	require.NoError(t, writer.Broadcast(ctx, forecast))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		Topic:   testForecastTopic,
		GroupID: fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from forecast topic")

	assert.Equal(t, "latest", string(msg.Key))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "imperial", headers["units"])
	assert.NotEmpty(t, headers["generated_at"])

	var decoded domain.DisplayForecast
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "Mostly Cloudy", decoded.Summary)
	assert.Equal(t, "40°", decoded.Currently.Temperature)
	require.Len(t, decoded.Daily, 1)
	require.NotNil(t, decoded.Daily[0].TempRange)
	assert.Equal(t, "50°", decoded.Daily[0].TempRange.High)
}
