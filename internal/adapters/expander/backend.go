// Package expander reads slot switches wired to two MCP23017 port expanders.
package expander

import (
	"context"
	"fmt"

	"github.com/quentinrf/crate-monitor/internal/domain"
	"github.com/quentinrf/crate-monitor/internal/ports"
)

// MCP23017 register map with IOCON.BANK = 0.
const (
	RegIODIRA = 0x00
	RegIODIRB = 0x01
	RegGPPUA  = 0x0C
	RegGPPUB  = 0x0D
	RegGPIOA  = 0x12
	RegGPIOB  = 0x13
)

const (
	allInputs = 0xFF

	// Switches sit on GPA7..GPA3 and GPB4..GPB0.
	PullUpA = 0b11111000
	PullUpB = 0b00011111

	portAShift = 3
	slotMask   = 0x1F
	wordMask   = 1<<domain.SlotCount - 1
)

// Addresses of the two chips. The first one carries slots 1-10.
var Addresses = [2]uint8{0x20, 0x21}

// Backend implements ports.OccupancyBackend on top of an I2C bus
type Backend struct {
	bus ports.Bus
}

// Probe checks that both chips answer a read of IODIRA.
func Probe(bus ports.Bus) error {
	for _, addr := range Addresses {
		if _, err := bus.ReadRegister(addr, RegIODIRA); err != nil {
			return fmt.Errorf("probe chip 0x%02x: %w", addr, err)
		}
	}
	return nil
}

// NewBackend configures every line of both chips as an input and enables
// the pull-ups on the switch lines. The backend owns bus from here on.
func NewBackend(bus ports.Bus) (*Backend, error) {
	for _, addr := range Addresses {
		writes := []struct{ reg, val uint8 }{
			{RegIODIRA, allInputs},
			{RegIODIRB, allInputs},
		}
		for _, w := range writes {
			if err := bus.WriteRegister(addr, w.reg, w.val); err != nil {
				return nil, fmt.Errorf("configure chip 0x%02x: %w", addr, err)
			}
		}
	}
	for _, addr := range Addresses {
		if err := bus.WriteRegister(addr, RegGPPUA, PullUpA); err != nil {
			return nil, fmt.Errorf("enable pull-ups on chip 0x%02x: %w", addr, err)
		}
		if err := bus.WriteRegister(addr, RegGPPUB, PullUpB); err != nil {
			return nil, fmt.Errorf("enable pull-ups on chip 0x%02x: %w", addr, err)
		}
	}
	return &Backend{bus: bus}, nil
}

// ReadOccupancy reads the input registers of both chips and decodes them.
func (b *Backend) ReadOccupancy(ctx context.Context) (domain.OccupancyGrid, error) {
	if err := ctx.Err(); err != nil {
		return domain.OccupancyGrid{}, err
	}

	var regs [4]uint8
	for i, addr := range Addresses {
		a, err := b.bus.ReadRegister(addr, RegGPIOA)
		if err != nil {
			return domain.OccupancyGrid{}, fmt.Errorf("read GPIOA of chip 0x%02x: %w", addr, err)
		}
		bb, err := b.bus.ReadRegister(addr, RegGPIOB)
		if err != nil {
			return domain.OccupancyGrid{}, fmt.Errorf("read GPIOB of chip 0x%02x: %w", addr, err)
		}
		regs[2*i], regs[2*i+1] = a, bb
	}

	return domain.GridFromBits(Decode(regs)), nil
}

// Kind reports the port expander variant
func (b *Backend) Kind() domain.BackendKind {
	return domain.BackendPortExpander
}

// Close releases the bus
func (b *Backend) Close() error {
	return b.bus.Close()
}

// RawWord packs the switch lines of the four input registers (chip 0 GPIOA,
// chip 0 GPIOB, chip 1 GPIOA, chip 1 GPIOB) into a 20-bit active-low word.
// Each register contributes five bits, most significant first: GPA7..GPA3
// and GPB4..GPB0. Slot 1 lands in bit 19.
func RawWord(regs [4]uint8) uint32 {
	var raw uint32
	for i, r := range regs {
		var group uint8
		if i%2 == 0 {
			group = r >> portAShift & slotMask
		} else {
			group = r & slotMask
		}
		raw = raw<<5 | uint32(group)
	}
	return raw
}

// Decode turns the input registers into occupancy bits. A closed switch
// pulls its line low, so every bit is inverted.
func Decode(regs [4]uint8) uint32 {
	return ^RawWord(regs) & wordMask
}
