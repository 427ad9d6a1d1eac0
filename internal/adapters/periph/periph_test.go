package periph

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/quentinrf/crate-monitor/internal/domain"
)

func TestBus_ReadRegister(t *testing.T) {
	playback := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x20, W: []byte{0x12}, R: []byte{0b00000111}},
		},
		DontPanic: true,
	}
	bus := NewBus(playback)

	got, err := bus.ReadRegister(0x20, 0x12)
	if err != nil {
		t.Fatalf("ReadRegister failed: %v", err)
	}
	if got != 0b00000111 {
		t.Errorf("got %08b, want 00000111", got)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("unexpected leftover transactions: %v", err)
	}
}

func TestBus_WriteRegister(t *testing.T) {
	playback := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x21, W: []byte{0x0C, 0b11111000}},
		},
		DontPanic: true,
	}
	bus := NewBus(playback)

	if err := bus.WriteRegister(0x21, 0x0C, 0b11111000); err != nil {
		t.Fatalf("WriteRegister failed: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("unexpected leftover transactions: %v", err)
	}
}

func TestBus_UnexpectedAddress(t *testing.T) {
	playback := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x20, W: []byte{0x00}, R: []byte{0xFF}},
		},
		DontPanic: true,
	}
	bus := NewBus(playback)

	_, err := bus.ReadRegister(0x27, 0x00)
	if !errors.Is(err, domain.ErrBus) {
		t.Errorf("expected ErrBus, got %v", err)
	}
}

func TestPin(t *testing.T) {
	raw := &gpiotest.Pin{N: "GPIO2", Num: 2}
	pin := NewPin(raw)

	if err := pin.ConfigureInputPullUp(); err != nil {
		t.Fatalf("ConfigureInputPullUp failed: %v", err)
	}
	if raw.P != gpio.PullUp {
		t.Errorf("pull = %v, want %v", raw.P, gpio.PullUp)
	}

	raw.L = gpio.Low
	if pin.Level() {
		t.Error("expected low level")
	}
	raw.L = gpio.High
	if !pin.Level() {
		t.Error("expected high level")
	}

	if err := pin.Release(); err != nil {
		t.Errorf("Release failed: %v", err)
	}
	if raw.P != gpio.Float {
		t.Errorf("pull after release = %v, want %v", raw.P, gpio.Float)
	}
}
