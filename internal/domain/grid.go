package domain

import (
	"fmt"
	"strings"
)

// Rack geometry. Slot 1 is the top-left slot; the bottom row sits nearest
// the controller board.
const (
	SlotCount = 20
	Rows      = 4
	Columns   = 5
)

// OccupancyGrid is a normalized snapshot of all 20 slots.
// true means the slot holds an item.
type OccupancyGrid struct {
	slots [SlotCount]bool
}

// ParseOccupancy builds a grid from a 20 character string of '0' and '1'.
// Character i-1 describes slot i.
func ParseOccupancy(s string) (OccupancyGrid, error) {
	var g OccupancyGrid
	if len(s) != SlotCount {
		return g, fmt.Errorf("%w: want %d characters, got %d", ErrInvalidOccupancy, SlotCount, len(s))
	}
	for i := 0; i < SlotCount; i++ {
		switch s[i] {
		case '1':
			g.slots[i] = true
		case '0':
		default:
			return OccupancyGrid{}, fmt.Errorf("%w: unexpected %q at slot %d", ErrInvalidOccupancy, s[i], i+1)
		}
	}
	return g, nil
}

// GridFromBits unpacks the low 20 bits of v. Slot 1 is the most significant
// of those bits, slot 20 the least.
func GridFromBits(v uint32) OccupancyGrid {
	var g OccupancyGrid
	for i := 0; i < SlotCount; i++ {
		g.slots[i] = v>>(SlotCount-1-i)&1 == 1
	}
	return g
}

// Bits is the inverse of GridFromBits.
func (g OccupancyGrid) Bits() uint32 {
	var v uint32
	for _, full := range g.slots {
		v <<= 1
		if full {
			v |= 1
		}
	}
	return v
}

// Slot reports whether slot n (1..20) is occupied.
func (g OccupancyGrid) Slot(n int) (bool, error) {
	if n < 1 || n > SlotCount {
		return false, fmt.Errorf("%w: %d", ErrSlotOutOfRange, n)
	}
	return g.slots[n-1], nil
}

// Occupied returns the number of occupied slots
func (g OccupancyGrid) Occupied() int {
	n := 0
	for _, full := range g.slots {
		if full {
			n++
		}
	}
	return n
}

// String returns the 20 character form accepted by ParseOccupancy.
func (g OccupancyGrid) String() string {
	var b strings.Builder
	b.Grow(SlotCount)
	for _, full := range g.slots {
		if full {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

const gridRule = "---------------------"

// Render draws the rack as a fixed-width 4x5 table for diagnostics.
func (g OccupancyGrid) Render() string {
	s := g.String()

	var b strings.Builder
	b.WriteString(gridRule)
	b.WriteByte('\n')
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			b.WriteString("| ")
			b.WriteByte(s[row*Columns+col])
			b.WriteByte(' ')
		}
		b.WriteString("|\n")
		b.WriteString(gridRule)
		b.WriteByte('\n')
	}
	return b.String()
}

// Diff returns the slots that became occupied and the slots that became
// empty between prev and g.
func (g OccupancyGrid) Diff(prev OccupancyGrid) (filled, emptied []int) {
	for i := 0; i < SlotCount; i++ {
		switch {
		case g.slots[i] && !prev.slots[i]:
			filled = append(filled, i+1)
		case !g.slots[i] && prev.slots[i]:
			emptied = append(emptied, i+1)
		}
	}
	return filled, emptied
}
