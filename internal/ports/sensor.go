package ports

import (
	"context"

	"github.com/quentinrf/crate-monitor/internal/domain"
)

// Bus is a byte-oriented I2C register interface.
// This is a PORT - adapters (periph, mock) will implement it
type Bus interface {
	// ReadRegister reads one register of the chip at addr
	ReadRegister(addr, reg uint8) (uint8, error)

	// WriteRegister writes one register of the chip at addr
	WriteRegister(addr, reg, val uint8) error

	// Close releases the bus handle
	Close() error
}

// BusOpener opens the I2C bus the port expanders hang off
type BusOpener func() (Bus, error)

// Pin is a single digital input line
type Pin interface {
	// ConfigureInputPullUp makes the line an input with the internal pull-up enabled
	ConfigureInputPullUp() error

	// Level returns true when the line reads high
	Level() bool

	// Release returns the line to the system
	Release() error
}

// PinOpener resolves a BCM GPIO number to a Pin
type PinOpener func(bcm int) (Pin, error)

// OccupancyBackend produces normalized slot snapshots from raw hardware state.
type OccupancyBackend interface {
	// ReadOccupancy returns the current state of all 20 slots
	ReadOccupancy(ctx context.Context) (domain.OccupancyGrid, error)

	// Kind identifies the hardware variant
	Kind() domain.BackendKind

	// Close releases every hardware handle the backend claimed
	Close() error
}

// Thermometer reads the rack temperature
type Thermometer interface {
	ReadTemperature(ctx context.Context) (domain.Temperature, error)
}

// Rack is the capability-queryable handle the transports talk to.
type Rack interface {
	HasTemperature() bool
	HasOccupancy() bool

	// Temperature fails with domain.ErrCapabilityAbsent when HasTemperature is false
	Temperature(ctx context.Context) (domain.Temperature, error)

	// Occupancy fails with domain.ErrCapabilityAbsent when HasOccupancy is false
	Occupancy(ctx context.Context) (domain.OccupancyGrid, error)

	Kind() domain.BackendKind
}
