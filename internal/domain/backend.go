package domain

// BackendKind identifies which hardware variant produces occupancy data.
type BackendKind uint8

const (
	// BackendPortExpander reads two MCP23017 chips over I2C.
	BackendPortExpander BackendKind = iota + 1
	// BackendSwitch reads one GPIO per slot.
	BackendSwitch
)

func (k BackendKind) String() string {
	switch k {
	case BackendPortExpander:
		return "port-expander"
	case BackendSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

// PinMap maps slot numbers (index 0 = slot 1) to BCM GPIO numbers.
type PinMap [SlotCount]int

// DefaultPinMap is the wiring of the switch based rack. GPIO 28-31 sit on
// the P5 header, so pins are addressed by BCM number.
var DefaultPinMap = PinMap{
	2, 29, 14, 4, 15,
	17, 18, 27, 22, 23,
	24, 10, 9, 25, 28,
	8, 11, 7, 30, 31,
}

// Pin returns the GPIO wired to slot n (1..20).
func (m PinMap) Pin(n int) (int, error) {
	if n < 1 || n > SlotCount {
		return 0, ErrSlotOutOfRange
	}
	return m[n-1], nil
}
