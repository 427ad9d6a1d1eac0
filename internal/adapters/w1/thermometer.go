// Package w1 reads DS18x20 thermometers through the Linux one-wire sysfs tree.
package w1

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/quentinrf/crate-monitor/internal/domain"
)

const (
	// DefaultRoot is where the w1 bus master exposes slave devices
	DefaultRoot = "/sys/bus/w1/devices/"

	// DefaultFamilyPrefix selects DS18S20 devices
	DefaultFamilyPrefix = "10-"

	slaveFile = "w1_slave"
	tempToken = "t="
	// suffixLen characters are dropped from the end of the t= token before
	// the tenths value is parsed. Unverified against every sensor revision.
	suffixLen = 2
)

// Thermometer reads one device directory.
// This implements the ports.Thermometer interface
type Thermometer struct {
	fs   afero.Fs
	path string
}

// NewThermometer creates a reader for the device directory dir
func NewThermometer(fs afero.Fs, dir string) *Thermometer {
	return &Thermometer{
		fs:   fs,
		path: strings.TrimSuffix(dir, "/") + "/" + slaveFile,
	}
}

// Path returns the file the thermometer reads
func (t *Thermometer) Path() string {
	return t.path
}

// Discover returns the first device under root whose name starts with prefix.
func Discover(fs afero.Fs, root, prefix string) (*Thermometer, error) {
	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSensorNotFound, err)
	}

	// sysfs lists devices as symlinks, so directory-ness is not checked
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), prefix) {
			return NewThermometer(fs, strings.TrimSuffix(root, "/")+"/"+e.Name()), nil
		}
	}
	return nil, fmt.Errorf("%w: no %q device under %s", domain.ErrSensorNotFound, prefix, root)
}

// ReadTemperature opens the device file and parses the current reading
func (t *Thermometer) ReadTemperature(ctx context.Context) (domain.Temperature, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f, err := t.fs.Open(t.path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrSensorUnreadable, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrSensorUnreadable, err)
	}

	return ParseLines(lines)
}

// ParseLines extracts the temperature from the driver output. Line 2 must
// carry "t=<value>"; the value minus its last two characters is a count of
// tenths of a degree.
func ParseLines(lines []string) (domain.Temperature, error) {
	if len(lines) < 2 {
		return 0, fmt.Errorf("%w: expected 2 lines, got %d", domain.ErrMalformedReading, len(lines))
	}

	_, after, found := strings.Cut(lines[1], tempToken)
	if !found {
		return 0, fmt.Errorf("%w: no %q on line 2", domain.ErrMalformedReading, tempToken)
	}

	fields := strings.Fields(after)
	if len(fields) == 0 || len(fields[0]) <= suffixLen {
		return 0, fmt.Errorf("%w: value too short", domain.ErrMalformedReading)
	}
	body := fields[0][:len(fields[0])-suffixLen]

	raw, err := strconv.ParseInt(body, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrMalformedReading, err)
	}
	return domain.TemperatureFromTenths(raw), nil
}
