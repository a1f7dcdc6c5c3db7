package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/supermem613/noaacast/internal/observability"
	"github.com/supermem613/noaacast/internal/pipeline"
)

// Scheduler runs the refresh pipeline on the configured interval, starting
// with an immediate refresh so a forecast is available right after boot.
type Scheduler struct {
	scheduler    *gocron.Scheduler
	service      *pipeline.Service
	interval     time.Duration
	requestDelay time.Duration
	logger       *slog.Logger
	metrics      *observability.Metrics
}

// New creates a refresh Scheduler. requestDelay postpones the first refresh,
// useful to stagger instances sharing an upstream rate limit.
func New(service *pipeline.Service, interval, requestDelay time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	// A slow upstream must not pile refreshes on top of each other.
	s.SingletonModeAll()
	return &Scheduler{
		scheduler:    s,
		service:      service,
		interval:     interval,
		requestDelay: requestDelay,
		logger:       logger,
		metrics:      metrics,
	}
}

// Start schedules the periodic refresh and starts the underlying scheduler.
// The first run happens immediately, after the configured request delay.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).StartImmediately().Do(func() {
		if s.requestDelay > 0 {
			time.Sleep(s.requestDelay)
			s.requestDelay = 0
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.interval)
		defer cancel()

		if err := s.service.Refresh(ctx); err != nil {
			s.logger.Error("scheduled refresh failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.logger.Info("refresh scheduler starting", "interval", s.interval, "request_delay", s.requestDelay)
	s.scheduler.StartAsync()
	s.metrics.PipelineRunning.Set(1)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	s.metrics.PipelineRunning.Set(0)
	s.logger.Info("refresh scheduler stopped")
}
