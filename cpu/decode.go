package cpu

// INSTRUCTION_SIZE is the number of bytes consumed by every fetch.
const INSTRUCTION_SIZE = 4

// Fields are the operand fields of one instruction word.
//
// Byte layout: OP YX LL HH.
type Fields struct {
	Opcode uint8  // byte 0
	X      uint8  // byte 1, low nibble
	Y      uint8  // byte 1, high nibble
	AD     uint8  // byte 1, raw (SNG attack/decay)
	N      uint8  // byte 2, low nibble (shift count, RZ, BGC index)
	LL     uint8  // byte 2
	HH     uint8  // byte 3
	HHLL   uint16 // bytes 2-3, little-endian immediate or address
	HFlip  bool   // byte 3, bit 1 and above (FLIP)
	VFlip  bool   // byte 3, bit 0 (FLIP)
}

// Z returns the register index selected by the third operand.
func (fld Fields) Z() uint8 {
	return fld.N
}

// VTSR returns the SNG volume/type/sustain/release word.
func (fld Fields) VTSR() uint16 {
	return fld.HHLL
}

// Decode extracts the fields of the instruction at addr.
func Decode(mem *Memory, addr uint16) (fld Fields) {
	op := mem.Read8(addr)
	yx := mem.Read8(addr + 1)
	ll := mem.Read8(addr + 2)
	hh := mem.Read8(addr + 3)

	fld = Fields{
		Opcode: op,
		X:      yx & 0xf,
		Y:      yx >> 4,
		AD:     yx,
		N:      ll & 0xf,
		LL:     ll,
		HH:     hh,
		HHLL:   uint16(hh)<<8 | uint16(ll),
		HFlip:  (hh >> 1) != 0,
		VFlip:  (hh & 1) != 0,
	}

	return
}

// Encode packs fields back into an instruction word. Only Opcode, X, Y, LL
// and HH are used; the other fields are views of those.
func (fld Fields) Encode() [INSTRUCTION_SIZE]uint8 {
	return [INSTRUCTION_SIZE]uint8{
		fld.Opcode,
		(fld.Y&0xf)<<4 | (fld.X & 0xf),
		fld.LL,
		fld.HH,
	}
}
