package domain

import "errors"

var (
	// ErrSlotOutOfRange indicates a slot number outside 1..20
	ErrSlotOutOfRange = errors.New("slot number out of range")

	// ErrInvalidOccupancy indicates a malformed occupancy string
	ErrInvalidOccupancy = errors.New("invalid occupancy string")

	// ErrPrivilege indicates the process lacks hardware access rights
	ErrPrivilege = errors.New("hardware access requires root")

	// ErrBus indicates an I2C open or transaction failure
	ErrBus = errors.New("i2c bus error")

	// ErrPin indicates a GPIO could not be claimed or configured
	ErrPin = errors.New("gpio error")

	// ErrSensorNotFound indicates no thermometer is attached
	ErrSensorNotFound = errors.New("thermometer not found")

	// ErrSensorUnreadable indicates the thermometer exposure cannot be read
	ErrSensorUnreadable = errors.New("thermometer unreadable")

	// ErrMalformedReading indicates the thermometer output has an unexpected format
	ErrMalformedReading = errors.New("malformed thermometer reading")

	// ErrCapabilityAbsent indicates the active rack cannot serve the request
	ErrCapabilityAbsent = errors.New("capability not supported by this rack")

	// ErrReleased indicates the hardware has already been released
	ErrReleased = errors.New("rack hardware released")
)
