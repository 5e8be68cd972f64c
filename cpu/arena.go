package cpu

// Memory map of the Chip16 address space.
const (
	ARENA_ROM   = 0x0000  // ROM image and RAM.
	ARENA_STACK = 0xfdf0  // Stack, grows upward.
	ARENA_IO    = 0xfff0  // I/O ports.
	MEMORY_SIZE = 0x10000 // Total addressable bytes.
)
