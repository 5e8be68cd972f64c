package cpu

import (
	"strings"
)

// Flag bit positions when packed by PUSHF.
const (
	FLAG_CARRY    = uint16(1 << 1)
	FLAG_ZERO     = uint16(1 << 2)
	FLAG_OVERFLOW = uint16(1 << 6)
	FLAG_NEGATIVE = uint16(1 << 7)
)

// Flags is the processor status.
type Flags struct {
	Carry    bool
	Zero     bool
	Overflow bool
	Negative bool
}

// Pack returns the flags in their PUSHF word layout.
func (fl Flags) Pack() (word uint16) {
	if fl.Carry {
		word |= FLAG_CARRY
	}
	if fl.Zero {
		word |= FLAG_ZERO
	}
	if fl.Overflow {
		word |= FLAG_OVERFLOW
	}
	if fl.Negative {
		word |= FLAG_NEGATIVE
	}
	return
}

// Unpack sets the flags from a PUSHF word. Other bits are ignored.
func (fl *Flags) Unpack(word uint16) {
	fl.Carry = (word & FLAG_CARRY) != 0
	fl.Zero = (word & FLAG_ZERO) != 0
	fl.Overflow = (word & FLAG_OVERFLOW) != 0
	fl.Negative = (word & FLAG_NEGATIVE) != 0
}

// String returns the flags as "CZON", with '-' for a clear flag.
func (fl Flags) String() string {
	var sb strings.Builder
	for _, fb := range []struct {
		set  bool
		name byte
	}{{fl.Carry, 'C'}, {fl.Zero, 'Z'}, {fl.Overflow, 'O'}, {fl.Negative, 'N'}} {
		if fb.set {
			sb.WriteByte(fb.name)
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}
