package pipeline

import (
	"sync"
	"time"

	"github.com/supermem613/noaacast/internal/domain"
)

// Store holds the latest assembled forecast. Writes happen once per refresh
// cycle; reads come from HTTP handlers, so access is guarded for concurrency.
type Store struct {
	mu          sync.RWMutex
	forecast    *domain.DisplayForecast
	generatedAt time.Time
}

// NewStore creates an empty forecast store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the stored forecast wholesale.
func (s *Store) Set(f *domain.DisplayForecast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forecast = f
	s.generatedAt = time.Now()
}

// Latest returns the most recent forecast and when it was stored. ok is
// false before the first successful refresh.
func (s *Store) Latest() (f *domain.DisplayForecast, generatedAt time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forecast == nil {
		return nil, time.Time{}, false
	}
	return s.forecast, s.generatedAt, true
}
