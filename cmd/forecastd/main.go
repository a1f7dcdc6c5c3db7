package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/supermem613/noaacast/internal/adapter/httpapi"
	kafkaadapter "github.com/supermem613/noaacast/internal/adapter/kafka"
	"github.com/supermem613/noaacast/internal/adapter/nws"
	"github.com/supermem613/noaacast/internal/config"
	"github.com/supermem613/noaacast/internal/observability"
	"github.com/supermem613/noaacast/internal/pipeline"
	"github.com/supermem613/noaacast/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := nws.NewClient(cfg.NWSBaseURL, cfg.NWSUserAgent, cfg.Latitude, cfg.Longitude, cfg.NWSTimeout, logger, metrics)

	// Kafka broadcasting is feature-flagged via KAFKA_BROKERS.
	var broadcaster pipeline.Broadcaster
	var kafkaWriter *kafkaadapter.Writer
	if len(cfg.KafkaBrokers) > 0 {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		broadcaster = kafkaWriter
		logger.Info("forecast broadcasting enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaForecastTopic)
	} else {
		logger.Info("forecast broadcasting disabled")
	}

	store := pipeline.NewStore()
	svc := pipeline.New(client, broadcaster, store, logger, metrics, cfg.DisplayOptions())

	sched := scheduler.New(svc, cfg.UpdateInterval, cfg.RequestDelay, logger, metrics)
	srv := httpapi.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if err := sched.Start(); err != nil {
		logger.Error("failed to start refresh scheduler", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
