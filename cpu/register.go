package cpu

// REGISTER_COUNT is the number of general-purpose registers.
const REGISTER_COUNT = 16

// Registers is the general-purpose register file. Values are stored as
// raw bit patterns; see Signed.
type Registers [REGISTER_COUNT]uint16

// Get returns the raw value of register i.
func (rf *Registers) Get(i uint8) uint16 {
	return rf[i&0xf]
}

// Set stores a raw value into register i.
func (rf *Registers) Set(i uint8, value uint16) {
	rf[i&0xf] = value
}

// Signed returns register i read as two's-complement.
func (rf *Registers) Signed(i uint8) int16 {
	return Signed(rf.Get(i))
}

// Signed interprets a 16-bit pattern as two's-complement.
func Signed(value uint16) int16 {
	return int16(value)
}
