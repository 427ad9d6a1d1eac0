package w1

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/quentinrf/crate-monitor/internal/domain"
)

const sampleOutput = "2d 00 4b 46 ff ff 02 10 19 : crc=19 YES\n" +
	"2d 00 4b 46 ff ff 02 10 19 t=22500\n"

func TestParseLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    float64
		wantErr error
	}{
		{
			name:  "token followed by text",
			lines: []string{"", "23 ff t=23500 extra\n"},
			want:  23.5,
		},
		{
			name:  "plain driver output",
			lines: []string{"crc=19 YES", "2d 00 4b 46 ff ff 02 10 19 t=22500"},
			want:  22.5,
		},
		{
			name:  "negative",
			lines: []string{"", "ff t=-1250"},
			want:  -1.2,
		},
		{
			name:    "missing token",
			lines:   []string{"", "23 ff 23500"},
			wantErr: domain.ErrMalformedReading,
		},
		{
			name:    "single line",
			lines:   []string{"t=23500"},
			wantErr: domain.ErrMalformedReading,
		},
		{
			name:    "empty value",
			lines:   []string{"", "t="},
			wantErr: domain.ErrMalformedReading,
		},
		{
			name:    "value shorter than suffix",
			lines:   []string{"", "t=50"},
			wantErr: domain.ErrMalformedReading,
		},
		{
			name:    "not a number",
			lines:   []string{"", "t=abcde"},
			wantErr: domain.ErrMalformedReading,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLines(tt.lines)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Celsius() != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll("/sys/bus/w1/devices/w1_bus_master1", 0o755)
	_ = fs.MkdirAll("/sys/bus/w1/devices/28-000005e2fdc3", 0o755)
	_ = fs.MkdirAll("/sys/bus/w1/devices/10-000802b4c1a2", 0o755)
	_ = fs.MkdirAll("/sys/bus/w1/devices/10-000802b4ffff", 0o755)

	therm, err := Discover(fs, DefaultRoot, DefaultFamilyPrefix)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if want := "/sys/bus/w1/devices/10-000802b4c1a2/w1_slave"; therm.Path() != want {
		t.Errorf("Path() = %q, want %q", therm.Path(), want)
	}
}

func TestDiscover_NotFound(t *testing.T) {
	tests := []struct {
		name  string
		setup func(afero.Fs)
	}{
		{
			name:  "missing root",
			setup: func(afero.Fs) {},
		},
		{
			name: "no matching family",
			setup: func(fs afero.Fs) {
				_ = fs.MkdirAll("/sys/bus/w1/devices/28-000005e2fdc3", 0o755)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			tt.setup(fs)

			_, err := Discover(fs, DefaultRoot, DefaultFamilyPrefix)
			if !errors.Is(err, domain.ErrSensorNotFound) {
				t.Errorf("expected ErrSensorNotFound, got %v", err)
			}
		})
	}
}

func TestThermometer_ReadTemperature(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/sys/bus/w1/devices/10-000802b4c1a2"
	if err := afero.WriteFile(fs, dir+"/w1_slave", []byte(sampleOutput), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	therm := NewThermometer(fs, dir)
	got, err := therm.ReadTemperature(context.Background())
	if err != nil {
		t.Fatalf("ReadTemperature failed: %v", err)
	}
	if got.Celsius() != 22.5 {
		t.Errorf("got %v, want 22.5", got)
	}
}

func TestThermometer_Unreadable(t *testing.T) {
	therm := NewThermometer(afero.NewMemMapFs(), "/sys/bus/w1/devices/10-gone")

	_, err := therm.ReadTemperature(context.Background())
	if !errors.Is(err, domain.ErrSensorUnreadable) {
		t.Errorf("expected ErrSensorUnreadable, got %v", err)
	}
}
