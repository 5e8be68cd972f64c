package cpu

import (
	"iter"
)

// Link is a reference to a label, resolved once all labels are known.
// The label's address is stored as a little-endian word at Offset.
type Link struct {
	Offset int
	Label  string
}

// Opcode represents a line of assembled code with its source location and generated bytes.
type Opcode struct {
	LineNo int
	Addr   int
	Words  []string
	Bytes  []uint8
	Links  []Link
}

type Program struct {
	Opcodes    []Opcode
	Conditions CondMode // Condition mode the Jx and Cx opcodes were assembled for.
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the line that generated the byte at addr.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(addr) >= op.Addr && int(addr) < op.Addr+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(addr) - op.Addr,
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program, from address 0 to the
// last generated byte. Gaps are zero filled.
func (prog *Program) Binary() (bins []uint8) {
	for addr, data := range prog.Spans() {
		end := int(addr) + len(data)
		if end > len(bins) {
			bins = append(bins, make([]uint8, end-len(bins))...)
		}
		copy(bins[addr:], data)
	}

	return
}

// Spans iterates over the generated bytes of each line, by address.
func (prog *Program) Spans() iter.Seq2[uint16, []uint8] {
	return func(yield func(addr uint16, data []uint8) bool) {
		for _, op := range prog.Opcodes {
			if len(op.Bytes) == 0 {
				continue
			}
			if !yield(uint16(op.Addr), op.Bytes) {
				return
			}
		}
	}
}
