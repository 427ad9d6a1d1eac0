package switches

import (
	"context"
	"errors"
	"testing"

	"github.com/quentinrf/crate-monitor/internal/adapters/mock"
	"github.com/quentinrf/crate-monitor/internal/domain"
)

func newTestBackend(t *testing.T) (*Backend, *mock.Pins) {
	t.Helper()

	header := mock.NewPins()
	backend, err := NewBackend(domain.DefaultPinMap, header.Open)
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	t.Cleanup(func() { backend.Close() })
	return backend, header
}

func TestNewBackend_ConfiguresPullUps(t *testing.T) {
	_, header := newTestBackend(t)

	for slot, bcm := range domain.DefaultPinMap {
		if !header.Pin(bcm).PullUp() {
			t.Errorf("slot %d: GPIO%d has no pull-up", slot+1, bcm)
		}
	}
}

func TestReadOccupancy_EmptyRack(t *testing.T) {
	backend, _ := newTestBackend(t)

	grid, err := backend.ReadOccupancy(context.Background())
	if err != nil {
		t.Fatalf("ReadOccupancy failed: %v", err)
	}
	if grid.Occupied() != 0 {
		t.Errorf("expected empty rack, got %s", grid)
	}
}

func TestReadOccupancy_FirstAndLastSlot(t *testing.T) {
	backend, header := newTestBackend(t)

	header.Pin(domain.DefaultPinMap[0]).Set(false)
	header.Pin(domain.DefaultPinMap[19]).Set(false)

	grid, err := backend.ReadOccupancy(context.Background())
	if err != nil {
		t.Fatalf("ReadOccupancy failed: %v", err)
	}
	if got := grid.String(); got != "10000000000000000001" {
		t.Errorf("got %q, want %q", got, "10000000000000000001")
	}
	if backend.Kind() != domain.BackendSwitch {
		t.Errorf("Kind() = %v", backend.Kind())
	}
}

func TestClose_ReleasesOnce(t *testing.T) {
	header := mock.NewPins()
	backend, err := NewBackend(domain.DefaultPinMap, header.Open)
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}

	backend.Close()
	backend.Close()

	for _, bcm := range domain.DefaultPinMap {
		if n := header.Pin(bcm).Released(); n != 1 {
			t.Errorf("GPIO%d released %d times, want 1", bcm, n)
		}
	}
}

func TestNewBackend_MissingPinReleasesClaimed(t *testing.T) {
	header := mock.NewPins()
	header.Missing[domain.DefaultPinMap[5]] = true

	_, err := NewBackend(domain.DefaultPinMap, header.Open)
	if !errors.Is(err, domain.ErrPin) {
		t.Fatalf("expected ErrPin, got %v", err)
	}

	for _, bcm := range domain.DefaultPinMap[:5] {
		if n := header.Pin(bcm).Released(); n != 1 {
			t.Errorf("GPIO%d released %d times, want 1", bcm, n)
		}
	}
	for _, bcm := range domain.DefaultPinMap[6:] {
		if n := header.Pin(bcm).Released(); n != 0 {
			t.Errorf("GPIO%d released %d times, want 0", bcm, n)
		}
	}
}
