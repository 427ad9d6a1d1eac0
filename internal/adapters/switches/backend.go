// Package switches reads one GPIO switch per slot.
//
// Every switch connects its GPIO to ground, so an item standing on it pulls
// the line low. The internal pull-ups keep open switches high.
package switches

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/crate-monitor/internal/domain"
	"github.com/quentinrf/crate-monitor/internal/ports"
)

// Backend implements ports.OccupancyBackend with plain GPIO inputs
type Backend struct {
	pins []ports.Pin

	once     sync.Once
	closeErr error
}

// NewBackend claims every pin of pinMap as a pulled-up input. On failure the
// pins claimed so far are released again.
func NewBackend(pinMap domain.PinMap, open ports.PinOpener) (*Backend, error) {
	b := &Backend{pins: make([]ports.Pin, 0, domain.SlotCount)}

	for i, bcm := range pinMap {
		pin, err := open(bcm)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("open GPIO%d for slot %d: %w", bcm, i+1, err)
		}
		b.pins = append(b.pins, pin)

		if err := pin.ConfigureInputPullUp(); err != nil {
			b.Close()
			return nil, fmt.Errorf("configure GPIO%d for slot %d: %w", bcm, i+1, err)
		}
	}

	return b, nil
}

// ReadOccupancy samples slots 1..20 in order
func (b *Backend) ReadOccupancy(ctx context.Context) (domain.OccupancyGrid, error) {
	if err := ctx.Err(); err != nil {
		return domain.OccupancyGrid{}, err
	}

	var bits uint32
	for _, pin := range b.pins {
		bits <<= 1
		if !pin.Level() {
			bits |= 1
		}
	}
	return domain.GridFromBits(bits), nil
}

// Kind reports the switch variant
func (b *Backend) Kind() domain.BackendKind {
	return domain.BackendSwitch
}

// Close releases every claimed pin once; later calls return the first result.
func (b *Backend) Close() error {
	b.once.Do(func() {
		var errs []error
		for _, pin := range b.pins {
			if err := pin.Release(); err != nil {
				log.Warn().Err(err).Msg("failed to release pin")
				errs = append(errs, err)
			}
		}
		b.closeErr = errors.Join(errs...)
	})
	return b.closeErr
}
