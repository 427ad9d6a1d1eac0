package rack

import (
	"context"
	"sync"

	"github.com/quentinrf/crate-monitor/internal/domain"
	"github.com/quentinrf/crate-monitor/internal/ports"
)

// Serialized lets several goroutines share one Controller. Hardware reads
// run one at a time.
type Serialized struct {
	mu sync.Mutex
	c  *Controller
}

// NewSerialized wraps c
func NewSerialized(c *Controller) *Serialized {
	return &Serialized{c: c}
}

var _ ports.Rack = (*Serialized)(nil)

// HasTemperature reports whether a thermometer is attached
func (s *Serialized) HasTemperature() bool { return s.c.HasTemperature() }

// HasOccupancy is always true
func (s *Serialized) HasOccupancy() bool { return s.c.HasOccupancy() }

// Kind returns the occupancy backend kind
func (s *Serialized) Kind() domain.BackendKind { return s.c.Kind() }

// Temperature reads the thermometer under the lock
func (s *Serialized) Temperature(ctx context.Context) (domain.Temperature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.c.Temperature(ctx)
}

// Occupancy reads the slot states under the lock
func (s *Serialized) Occupancy(ctx context.Context) (domain.OccupancyGrid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.c.Occupancy(ctx)
}

// Release waits for any read in progress, then releases the controller
func (s *Serialized) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.c.Release()
}
