package mock

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/quentinrf/crate-monitor/internal/domain"
)

// Write records one register write seen by Bus
type Write struct {
	Addr, Reg, Val uint8
}

// Bus simulates MCP23017 chips on an I2C bus for development and tests
// This implements the ports.Bus interface
type Bus struct {
	mu     sync.Mutex
	chips  map[uint8]*[0x16]uint8
	writes []Write
	closed int
	fail   uint8
}

// NewBus creates a bus with one chip at each of addrs. Chip inputs idle
// high, which reads as an empty rack.
func NewBus(addrs ...uint8) *Bus {
	b := &Bus{chips: make(map[uint8]*[0x16]uint8)}
	for _, addr := range addrs {
		regs := new([0x16]uint8)
		regs[0x12], regs[0x13] = 0xFF, 0xFF
		b.chips[addr] = regs
	}
	return b
}

// ReadRegister returns the simulated register contents
func (b *Bus) ReadRegister(addr, reg uint8) (uint8, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs, err := b.chip(addr, reg)
	if err != nil {
		return 0, err
	}
	return regs[reg], nil
}

// WriteRegister stores val and records the write
func (b *Bus) WriteRegister(addr, reg, val uint8) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs, err := b.chip(addr, reg)
	if err != nil {
		return err
	}
	regs[reg] = val
	b.writes = append(b.writes, Write{Addr: addr, Reg: reg, Val: val})
	return nil
}

// Close marks the bus closed. Transactions fail afterwards.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed++
	return nil
}

// SetInputs sets the GPIOA and GPIOB input latches of the chip at addr
func (b *Bus) SetInputs(addr, gpioA, gpioB uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if regs, ok := b.chips[addr]; ok {
		regs[0x12], regs[0x13] = gpioA, gpioB
	}
}

// FailOn makes every later transaction to addr fail. Zero clears it.
func (b *Bus) FailOn(addr uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.fail = addr
}

// Writes returns every register write so far
func (b *Bus) Writes() []Write {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]Write(nil), b.writes...)
}

// CloseCount returns how many times Close was called
func (b *Bus) CloseCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.closed
}

// Shuffle drives every switch line to a random level.
// Simulates bottles being taken out and put back
func (b *Bus) Shuffle() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, regs := range b.chips {
		regs[0x12] = uint8(rand.Intn(256))
		regs[0x13] = uint8(rand.Intn(256))
	}
}

func (b *Bus) chip(addr, reg uint8) (*[0x16]uint8, error) {
	if b.closed > 0 {
		return nil, fmt.Errorf("%w: bus closed", domain.ErrBus)
	}
	if b.fail != 0 && addr == b.fail {
		return nil, fmt.Errorf("%w: no ack from 0x%02x", domain.ErrBus, addr)
	}
	regs, ok := b.chips[addr]
	if !ok {
		return nil, fmt.Errorf("%w: no device at 0x%02x", domain.ErrBus, addr)
	}
	if int(reg) >= len(regs) {
		return nil, fmt.Errorf("%w: register 0x%02x out of range", domain.ErrBus, reg)
	}
	return regs, nil
}
