package mock

import (
	"fmt"
	"sync"

	"github.com/quentinrf/crate-monitor/internal/domain"
	"github.com/quentinrf/crate-monitor/internal/ports"
)

// Pin is a simulated GPIO input
type Pin struct {
	mu       sync.Mutex
	high     bool
	pullUp   bool
	released int
}

// ConfigureInputPullUp enables the pull-up, which drives an open line high
func (p *Pin) ConfigureInputPullUp() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pullUp = true
	p.high = true
	return nil
}

// Level returns the current line level
func (p *Pin) Level() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.high
}

// Release counts the release
func (p *Pin) Release() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.released++
	return nil
}

// Set drives the line. false means a closed switch pulls it to ground
func (p *Pin) Set(high bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.high = high
}

// PullUp reports whether the pull-up was enabled
func (p *Pin) PullUp() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.pullUp
}

// Released returns how many times Release was called
func (p *Pin) Released() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.released
}

// Pins is a simulated GPIO header
type Pins struct {
	mu   sync.Mutex
	pins map[int]*Pin

	// Missing pins cannot be opened
	Missing map[int]bool
}

// NewPins creates an empty header; pins are created on first open
func NewPins() *Pins {
	return &Pins{
		pins:    make(map[int]*Pin),
		Missing: make(map[int]bool),
	}
}

// Open satisfies ports.PinOpener
func (h *Pins) Open(bcm int) (ports.Pin, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.Missing[bcm] {
		return nil, fmt.Errorf("%w: GPIO%d not available", domain.ErrPin, bcm)
	}
	return h.get(bcm), nil
}

// Pin returns the simulated pin for bcm, creating it if needed
func (h *Pins) Pin(bcm int) *Pin {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.get(bcm)
}

func (h *Pins) get(bcm int) *Pin {
	p, ok := h.pins[bcm]
	if !ok {
		p = &Pin{}
		h.pins[bcm] = p
	}
	return p
}
