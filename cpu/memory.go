package cpu

// Memory is the flat 64KiB little-endian address space.
//
// Cells never written read as zero.
type Memory [MEMORY_SIZE]uint8

// Read8 returns the byte at addr.
func (mem *Memory) Read8(addr uint16) uint8 {
	return mem[addr]
}

// Write8 sets the byte at addr.
func (mem *Memory) Write8(addr uint16, value uint8) {
	mem[addr] = value
}

// Read16 returns the little-endian word at addr. The high byte is read
// from addr+1, wrapping at the top of memory.
func (mem *Memory) Read16(addr uint16) uint16 {
	return uint16(mem[addr+1])<<8 | uint16(mem[addr])
}

// Write16 stores value as a little-endian word at addr.
func (mem *Memory) Write16(addr uint16, value uint16) {
	mem[addr] = uint8(value & 0xff)
	mem[addr+1] = uint8((value >> 8) & 0xff)
}

// Load copies image into memory starting at addr, returning the number of
// bytes copied. Bytes past the top of memory are dropped.
func (mem *Memory) Load(addr uint16, image []uint8) int {
	return copy(mem[addr:], image)
}

// Reset clears all of memory.
func (mem *Memory) Reset() {
	clear(mem[:])
}
