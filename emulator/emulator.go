// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/chip16/cpu"
	"github.com/ezrec/chip16/device"
	"github.com/ezrec/chip16/internal"
	"github.com/ezrec/chip16/rom"
)

const (
	CYCLES_PER_SECOND = 1_000_000 // Nominal clock, one instruction per cycle.
	FRAMES_PER_SECOND = 60
	CYCLES_PER_FRAME  = CYCLES_PER_SECOND / FRAMES_PER_SECOND
)

var _emulator_defines = map[string]string{
	"CYCLES_PER_SECOND": fmt.Sprintf("%v", CYCLES_PER_SECOND),
	"FRAMES_PER_SECOND": fmt.Sprintf("%v", FRAMES_PER_SECOND),
	"SCREEN_WIDTH":      "320",
	"SCREEN_HEIGHT":     "240",
}

// Emulator state. CPU + Video + Audio.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Program listing, used when Rom is nil.
	Rom      *rom.Rom     // ROM to load on reset.

	Gpu device.Gpu // Video peripheral.
	Spu device.Spu // Audio peripheral.

	CyclesPerFrame uint64 // Cycles between vertical blanks.

	frameCycles uint64
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:            cpu.NewCpu(),
		Program:        &cpu.Program{},
		CyclesPerFrame: CYCLES_PER_FRAME,
	}

	emu.Cpu.Video = &emu.Gpu
	emu.Cpu.Audio = &emu.Spu
	emu.Gpu.Reset()

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset the emulator, and load the ROM or program image.
// A program also selects the condition mode it was assembled for; a ROM
// keeps the mode already set on the Cpu.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Gpu.Verbose = emu.Verbose
	emu.Spu.Verbose = emu.Verbose

	emu.Cpu.Reset()
	emu.Gpu.Reset()
	emu.Spu.Reset()
	emu.frameCycles = 0

	if emu.Rom != nil {
		emu.Cpu.Memory.Load(cpu.ARENA_ROM, emu.Rom.Image)
		emu.Cpu.Pc = emu.Rom.Start
		if emu.Verbose {
			log.Printf("emulator: loaded %v", emu.Rom)
		}
		return
	}

	image := emu.Program.Binary()
	if len(image) > cpu.MEMORY_SIZE {
		err = cpu.ErrProgramTooLarge
		return
	}
	emu.Cpu.Memory.Load(cpu.ARENA_ROM, image)
	emu.Cpu.Conditions = emu.Program.Conditions
	if emu.Verbose {
		log.Printf("emulator: loaded program, %d bytes, conditions %v", len(image), emu.Cpu.Conditions)
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() uint64 {
	return emu.Cpu.Cycles
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil || emu.Rom != nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction of the emulator. Done is set when
// the instruction jumped to itself.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	opcode := emu.Cpu.Memory.Read8(pc)

	err = emu.Cpu.Step()
	if err != nil {
		return
	}

	emu.frameCycles++
	if emu.CyclesPerFrame != 0 && emu.frameCycles >= emu.CyclesPerFrame {
		emu.frameCycles = 0
		emu.Gpu.Frame()
	}

	if emu.Cpu.Pc == pc && opcode != cpu.OPCODE_VBLNK {
		if emu.Verbose {
			log.Printf("emulator: halted at 0x%04x after %d cycles", pc, emu.Cpu.Cycles)
		}
		done = true
	}

	return
}

// Run ticks until done, an error, or limit ticks (if limit is non-zero).
// Reaching the limit returns ErrCycleLimit.
func (emu *Emulator) Run(limit uint64) (err error) {
	for n := uint64(0); limit == 0 || n < limit; n++ {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	err = ErrCycleLimit
	return
}
