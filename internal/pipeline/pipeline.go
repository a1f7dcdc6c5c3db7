package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/supermem613/noaacast/internal/domain"
	"github.com/supermem613/noaacast/internal/observability"
)

// Fetcher retrieves the three raw forecast documents from upstream.
type Fetcher interface {
	Fetch(ctx context.Context) (domain.RawForecastBundle, error)
}

// Broadcaster publishes an assembled forecast to downstream consumers.
type Broadcaster interface {
	Broadcast(ctx context.Context, f *domain.DisplayForecast) error
}

// Service orchestrates one fetch-parse-augment-assemble cycle per refresh
// and keeps the result available for the HTTP API.
type Service struct {
	fetcher     Fetcher
	broadcaster Broadcaster // nil when broadcasting is disabled
	store       *Store
	logger      *slog.Logger
	metrics     *observability.Metrics
	opts        domain.DisplayOptions
	ready       atomic.Bool
}

// New creates a refresh Service. broadcaster may be nil.
func New(f Fetcher, b Broadcaster, store *Store, logger *slog.Logger, metrics *observability.Metrics, opts domain.DisplayOptions) *Service {
	return &Service{
		fetcher:     f,
		broadcaster: b,
		store:       store,
		logger:      logger,
		metrics:     metrics,
		opts:        opts,
	}
}

// CheckReadiness returns nil once at least one refresh has completed, or an
// error describing why the service is not yet ready.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no forecast has been refreshed yet")
	}
	return nil
}

// Latest returns the most recent assembled forecast.
func (s *Service) Latest() (*domain.DisplayForecast, time.Time, bool) {
	return s.store.Latest()
}

// Refresh runs one complete refresh cycle: fetch the three documents, parse
// them into a snapshot, augment it, assemble the display forecast, and store
// it. A broadcast failure is logged and counted but does not fail the
// refresh; the stored forecast is already current.
func (s *Service) Refresh(ctx context.Context) error {
	start := time.Now()

	bundle, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.metrics.RefreshErrors.WithLabelValues("fetch").Inc()
		return fmt.Errorf("fetch forecast: %w", err)
	}

	snap, err := domain.ParseSnapshot(bundle)
	if err != nil {
		s.metrics.RefreshErrors.WithLabelValues("parse").Inc()
		return err
	}

	domain.Augment(snap, s.opts.Units)
	forecast := domain.BuildDisplayForecast(snap, s.opts)

	s.store.Set(forecast)
	s.ready.Store(true)

	s.metrics.RefreshesTotal.Inc()
	s.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	s.metrics.LastRefreshUnix.SetToCurrentTime()

	s.logger.Info("forecast refreshed",
		"hourly_periods", len(snap.Hourly),
		"daily_periods", len(snap.Daily),
		"grid_parameters", len(snap.Grid),
		"duration", time.Since(start))

	if s.broadcaster != nil {
		if err := s.broadcaster.Broadcast(ctx, forecast); err != nil {
			s.metrics.BroadcastErrors.Inc()
			s.logger.Error("forecast broadcast failed", "error", err)
		} else {
			s.metrics.ForecastsBroadcast.Inc()
		}
	}

	return nil
}
