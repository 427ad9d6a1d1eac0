package rack

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/quentinrf/crate-monitor/internal/adapters/expander"
	"github.com/quentinrf/crate-monitor/internal/adapters/switches"
	"github.com/quentinrf/crate-monitor/internal/adapters/w1"
	"github.com/quentinrf/crate-monitor/internal/domain"
	"github.com/quentinrf/crate-monitor/internal/ports"
)

// Detector probes the attached hardware and builds the matching Controller.
type Detector struct {
	openBus ports.BusOpener
	openPin ports.PinOpener
	fs      afero.Fs

	W1Root   string
	W1Prefix string
	PinMap   domain.PinMap
}

// NewDetector creates a detector using the default one-wire location and pin map
func NewDetector(openBus ports.BusOpener, openPin ports.PinOpener, fs afero.Fs) *Detector {
	return &Detector{
		openBus:  openBus,
		openPin:  openPin,
		fs:       fs,
		W1Root:   w1.DefaultRoot,
		W1Prefix: w1.DefaultFamilyPrefix,
		PinMap:   domain.DefaultPinMap,
	}
}

// Detect prefers the port expander rack and falls back to the switch rack
// when the bus or either chip is unavailable. The fallback never carries a
// thermometer. Detect only fails when the fallback pins cannot be claimed.
func (d *Detector) Detect(ctx context.Context) (*Controller, error) {
	c, err := d.detectExpander(ctx)
	if err == nil {
		return c, nil
	}
	log.Warn().Err(err).Msg("no port expander rack, falling back to switches")

	backend, err := switches.NewBackend(d.PinMap, d.openPin)
	if err != nil {
		return nil, fmt.Errorf("set up switch rack: %w", err)
	}
	log.Info().Str("backend", backend.Kind().String()).Msg("detected switch based rack")
	return NewController(backend, nil), nil
}

func (d *Detector) detectExpander(ctx context.Context) (*Controller, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bus, err := d.openBus()
	if err != nil {
		return nil, err
	}

	var thermometer ports.Thermometer
	therm, err := w1.Discover(d.fs, d.W1Root, d.W1Prefix)
	switch {
	case err == nil:
		if _, err := therm.ReadTemperature(ctx); err != nil {
			log.Warn().Err(err).Str("path", therm.Path()).Msg("thermometer unreadable, temperature disabled")
			break
		}
		log.Info().Str("path", therm.Path()).Msg("found thermometer")
		thermometer = therm
	case errors.Is(err, domain.ErrSensorNotFound):
		log.Info().Err(err).Msg("no thermometer attached")
	default:
		log.Warn().Err(err).Msg("thermometer discovery failed")
	}

	if err := expander.Probe(bus); err != nil {
		closeBus(bus)
		return nil, err
	}

	backend, err := expander.NewBackend(bus)
	if err != nil {
		closeBus(bus)
		return nil, err
	}

	log.Info().
		Str("backend", backend.Kind().String()).
		Bool("thermometer", thermometer != nil).
		Msg("detected port expander rack")
	return NewController(backend, thermometer), nil
}

func closeBus(bus ports.Bus) {
	if err := bus.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close i2c bus")
	}
}
