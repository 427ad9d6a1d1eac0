package ports

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/crate-monitor/internal/domain"
	"github.com/quentinrf/crate-monitor/internal/metrics"
)

// Watcher polls the rack periodically, logs slot changes and publishes metrics
type Watcher struct {
	rack     Rack
	metrics  *metrics.Collector
	interval time.Duration

	last *domain.OccupancyGrid
}

// NewWatcher creates a new background watcher
func NewWatcher(rack Rack, m *metrics.Collector, interval time.Duration) *Watcher {
	return &Watcher{
		rack:     rack,
		metrics:  m,
		interval: interval,
	}
}

// Start begins periodic polling
// This runs in a goroutine until context is cancelled
func (w *Watcher) Start(ctx context.Context) {
	log.Info().
		Dur("interval", w.interval).
		Str("backend", w.rack.Kind().String()).
		Msg("starting rack watcher")

	w.metrics.ObserveBackend(w.rack.Kind())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Poll immediately on start
	w.pollOnce(ctx)

	for {
		select {
		case <-ticker.C:
			w.pollOnce(ctx)

		case <-ctx.Done():
			log.Info().Msg("stopping rack watcher")
			return
		}
	}
}

// pollOnce reads the rack and records what changed
func (w *Watcher) pollOnce(ctx context.Context) {
	if w.rack.HasOccupancy() {
		w.pollOccupancy(ctx)
	}
	if w.rack.HasTemperature() {
		w.pollTemperature(ctx)
	}
}

func (w *Watcher) pollOccupancy(ctx context.Context) {
	grid, err := w.rack.Occupancy(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrReleased) {
			return
		}
		w.metrics.ObserveError("occupancy")
		log.Error().Err(err).Msg("failed to read occupancy")
		return
	}

	w.metrics.ObserveOccupancy(w.rack.Kind(), grid)

	if w.last == nil {
		log.Info().
			Int("occupied", grid.Occupied()).
			Str("slots", grid.String()).
			Msg("initial rack state")
	} else if filled, emptied := grid.Diff(*w.last); len(filled)+len(emptied) > 0 {
		log.Info().
			Ints("filled", filled).
			Ints("emptied", emptied).
			Int("occupied", grid.Occupied()).
			Msg("rack state changed")
	}
	w.last = &grid
}

func (w *Watcher) pollTemperature(ctx context.Context) {
	temp, err := w.rack.Temperature(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrReleased) {
			return
		}
		w.metrics.ObserveError("temperature")
		log.Error().Err(err).Msg("failed to read temperature")
		return
	}

	w.metrics.ObserveTemperature(temp)
	log.Debug().Float64("celsius", temp.Celsius()).Msg("read temperature")
}
