package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand/v2"
	"strings"
)

var _cpu_defines = map[string]string{
	"ARENA_ROM":      fmt.Sprintf("0x%04x", ARENA_ROM),
	"ARENA_STACK":    fmt.Sprintf("0x%04x", ARENA_STACK),
	"ARENA_IO":       fmt.Sprintf("0x%04x", ARENA_IO),
	"MEMORY_SIZE":    fmt.Sprintf("0x%x", MEMORY_SIZE),
	"FLAG_CARRY":     fmt.Sprintf("0x%02x", FLAG_CARRY),
	"FLAG_ZERO":      fmt.Sprintf("0x%02x", FLAG_ZERO),
	"FLAG_OVERFLOW":  fmt.Sprintf("0x%02x", FLAG_OVERFLOW),
	"FLAG_NEGATIVE":  fmt.Sprintf("0x%02x", FLAG_NEGATIVE),
	"PALETTE_SIZE":   fmt.Sprintf("%d", PALETTE_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
}

// Cpu is the simulation context for the Chip16 processor.
type Cpu struct {
	Verbose bool                         // Set to enable verbose logging.
	Trace   func(pc uint16, text string) // If set, called with each instruction before it executes.

	Conditions CondMode   // Interpretation of the Jx and Cx condition field.
	Rand       *rand.Rand // Source for RND.

	Video Video // Graphics peripheral.
	Audio Audio // Sound peripheral.

	Memory   Memory    // Address space.
	Register Registers // Register bank.
	Pc       uint16    // Program counter.
	Sp       uint16    // Stack pointer.
	Status   Flags     // Flag register.

	Cycles uint64 // Instructions executed since reset.
}

// NewCpu creates a new CPU, in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears memory and the registers.
// - Clears all flags.
// - Zeros the cycle counter.
// - Sets PC to ARENA_ROM, and SP to ARENA_STACK.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Reset()
	clear(cpu.Register[:])
	cpu.Status = Flags{}
	cpu.Pc = ARENA_ROM
	cpu.Sp = ARENA_STACK
	cpu.Cycles = 0
}

func (cpu *Cpu) random() *rand.Rand {
	if cpu.Rand == nil {
		cpu.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return cpu.Rand
}

// Step performs one fetch, decode and execute cycle.
// On error the machine state is unchanged.
func (cpu *Cpu) Step() (err error) {
	fld := Decode(&cpu.Memory, cpu.Pc)

	desc, ok := Lookup(fld.Opcode)
	if !ok {
		err = ErrOpcode{Pc: cpu.Pc, Opcode: fld.Opcode}
		return
	}

	if cpu.Verbose || cpu.Trace != nil {
		text := desc.Disassemble(fld)
		if cpu.Verbose {
			log.Printf("cpu: %04x: %v", cpu.Pc, text)
		}
		if cpu.Trace != nil {
			cpu.Trace(cpu.Pc, text)
		}
	}

	delta, err := desc.Execute(cpu, fld)
	if err != nil {
		return
	}

	cpu.Pc = uint16(int32(cpu.Pc) + delta)
	cpu.Cycles++

	return
}

// ReadRegisterSigned returns register i as two's-complement.
func (cpu *Cpu) ReadRegisterSigned(i uint8) int16 {
	return cpu.Register.Signed(i)
}

// WriteRegister sets register i.
func (cpu *Cpu) WriteRegister(i uint8, value uint16) {
	cpu.Register.Set(i, value)
}

// ReadMemory returns the byte at addr.
func (cpu *Cpu) ReadMemory(addr uint16) uint8 {
	return cpu.Memory.Read8(addr)
}

// WriteMemory stores a little-endian word at addr.
func (cpu *Cpu) WriteMemory(addr uint16, value uint16) {
	cpu.Memory.Write16(addr, value)
}

// ProgramCounter returns the address of the next instruction.
func (cpu *Cpu) ProgramCounter() uint16 {
	return cpu.Pc
}

// StackPointer returns the address of the next free stack slot.
func (cpu *Cpu) StackPointer() uint16 {
	return cpu.Sp
}

// Flags returns the flag register.
func (cpu *Cpu) Flags() Flags {
	return cpu.Status
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "   pc: %04X\n", cpu.Pc)
	fmt.Fprintf(&sb, "   sp: %04X\n", cpu.Sp)
	fmt.Fprintf(&sb, "flags: %v\n", cpu.Status)
	for n, val := range cpu.Register {
		fmt.Fprintf(&sb, "% 5s: %04X (%d)\n", fmt.Sprintf("r%d", n), val, Signed(val))
	}
	fmt.Fprintf(&sb, "cycle: %d\n", cpu.Cycles)

	text = sb.String()
	return
}
