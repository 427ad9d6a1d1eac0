// Package periph drives the real I2C bus and GPIO header through periph.io.
package periph

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/quentinrf/crate-monitor/internal/domain"
	"github.com/quentinrf/crate-monitor/internal/ports"
)

// Init loads the host drivers. It must run before OpenBus or OpenPin.
func Init() error {
	state, err := host.Init()
	if err != nil {
		return fmt.Errorf("load host drivers: %w", err)
	}
	for _, d := range state.Loaded {
		log.Debug().Str("driver", d.String()).Msg("loaded host driver")
	}
	return nil
}

// Bus implements ports.Bus on a periph I2C bus
type Bus struct {
	bus i2c.BusCloser
}

// NewBus wraps an already opened bus
func NewBus(bus i2c.BusCloser) *Bus {
	return &Bus{bus: bus}
}

// OpenBus opens the named I2C bus ("1" on a Raspberry Pi)
func OpenBus(name string) (*Bus, error) {
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", domain.ErrBus, name, err)
	}
	return NewBus(bus), nil
}

// ReadRegister performs a write-then-read transaction for one register
func (b *Bus) ReadRegister(addr, reg uint8) (uint8, error) {
	dev := i2c.Dev{Bus: b.bus, Addr: uint16(addr)}

	var r [1]byte
	if err := dev.Tx([]byte{reg}, r[:]); err != nil {
		return 0, fmt.Errorf("%w: read 0x%02x/0x%02x: %v", domain.ErrBus, addr, reg, err)
	}
	return r[0], nil
}

// WriteRegister writes val to one register
func (b *Bus) WriteRegister(addr, reg, val uint8) error {
	dev := i2c.Dev{Bus: b.bus, Addr: uint16(addr)}

	if err := dev.Tx([]byte{reg, val}, nil); err != nil {
		return fmt.Errorf("%w: write 0x%02x/0x%02x: %v", domain.ErrBus, addr, reg, err)
	}
	return nil
}

// Close releases the bus
func (b *Bus) Close() error {
	return b.bus.Close()
}

// Pin implements ports.Pin on a periph GPIO
type Pin struct {
	pin gpio.PinIO
}

// NewPin wraps a periph pin
func NewPin(p gpio.PinIO) *Pin {
	return &Pin{pin: p}
}

// OpenPin looks a pin up by BCM number. It satisfies ports.PinOpener.
func OpenPin(bcm int) (ports.Pin, error) {
	p := gpioreg.ByName(fmt.Sprintf("GPIO%d", bcm))
	if p == nil {
		return nil, fmt.Errorf("%w: GPIO%d not found", domain.ErrPin, bcm)
	}
	return NewPin(p), nil
}

// ConfigureInputPullUp sets the pin as input with pull-up, without edge detection
func (p *Pin) ConfigureInputPullUp() error {
	if err := p.pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrPin, p.pin.Name(), err)
	}
	return nil
}

// Level returns true when the pin reads high
func (p *Pin) Level() bool {
	return p.pin.Read() == gpio.High
}

// Release returns the pin to a floating input and stops any ongoing operation
func (p *Pin) Release() error {
	if err := p.pin.In(gpio.Float, gpio.NoEdge); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrPin, p.pin.Name(), err)
	}
	return p.pin.Halt()
}
