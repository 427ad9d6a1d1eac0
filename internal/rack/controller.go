// Package rack selects the hardware backend at startup and exposes it behind
// one capability-queryable handle.
package rack

import (
	"context"
	"sync"

	"github.com/quentinrf/crate-monitor/internal/domain"
	"github.com/quentinrf/crate-monitor/internal/ports"
)

// Controller owns the detected backend and the optional thermometer.
// It implements ports.Rack. It does no locking of its own; wrap it in
// Serialized when more than one goroutine reads it.
type Controller struct {
	backend     ports.OccupancyBackend
	thermometer ports.Thermometer

	once     sync.Once
	released bool
	err      error
}

// NewController takes ownership of backend. thermometer may be nil.
func NewController(backend ports.OccupancyBackend, thermometer ports.Thermometer) *Controller {
	return &Controller{
		backend:     backend,
		thermometer: thermometer,
	}
}

// HasTemperature reports whether a thermometer is attached
func (c *Controller) HasTemperature() bool {
	return c.thermometer != nil
}

// HasOccupancy reports whether slot data is available
func (c *Controller) HasOccupancy() bool {
	return c.backend != nil
}

// Temperature reads the thermometer
func (c *Controller) Temperature(ctx context.Context) (domain.Temperature, error) {
	if !c.HasTemperature() {
		return 0, domain.ErrCapabilityAbsent
	}
	if c.released {
		return 0, domain.ErrReleased
	}
	return c.thermometer.ReadTemperature(ctx)
}

// Occupancy reads all slots
func (c *Controller) Occupancy(ctx context.Context) (domain.OccupancyGrid, error) {
	if !c.HasOccupancy() {
		return domain.OccupancyGrid{}, domain.ErrCapabilityAbsent
	}
	if c.released {
		return domain.OccupancyGrid{}, domain.ErrReleased
	}
	return c.backend.ReadOccupancy(ctx)
}

// Kind identifies the active backend
func (c *Controller) Kind() domain.BackendKind {
	if c.backend == nil {
		return 0
	}
	return c.backend.Kind()
}

// Release frees every hardware handle. Only the first call does any work;
// later calls return its result.
func (c *Controller) Release() error {
	c.once.Do(func() {
		c.released = true
		if c.backend != nil {
			c.err = c.backend.Close()
		}
	})
	return c.err
}
