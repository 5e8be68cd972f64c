package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Handler executes one decoded instruction, returning the delta to add to
// the PC. A handler that fails must not have changed the machine.
type Handler func(cpu *Cpu, fld Fields) (delta int32, err error)

// Operand is the kind of one operand in a mnemonic template.
type Operand int

const (
	OPERAND_RX   = Operand(iota) // RX
	OPERAND_RY                   // RY
	OPERAND_RZ                   // RZ
	OPERAND_HHLL                 // HHLL
	OPERAND_N                    // N
	OPERAND_SP                   // SP
	OPERAND_AD                   // AD
	OPERAND_VTSR                 // VTSR
	OPERAND_H                    // H
	OPERAND_V                    // V
)

var operandByName = map[string]Operand{
	"RX":   OPERAND_RX,
	"RY":   OPERAND_RY,
	"RZ":   OPERAND_RZ,
	"HHLL": OPERAND_HHLL,
	"N":    OPERAND_N,
	"SP":   OPERAND_SP,
	"AD":   OPERAND_AD,
	"VTSR": OPERAND_VTSR,
	"H":    OPERAND_H,
	"V":    OPERAND_V,
}

// IsRegister is true for operands naming a general-purpose register.
func (op Operand) IsRegister() bool {
	return op == OPERAND_RX || op == OPERAND_RY || op == OPERAND_RZ
}

// Descriptor describes one opcode.
type Descriptor struct {
	Opcode      uint8     // Opcode byte.
	Mnemonic    string    // Mnemonic, "J" or "C" for conditionals.
	Template    string    // Mnemonic template, ie "ADD RX, RY, RZ".
	Size        int       // Size in bytes.
	Conditional bool      // Mnemonic takes a condition suffix from x.
	Operands    []Operand // Operands, in template order.
	Execute     Handler   // Semantic routine.
}

// newDescriptor parses a template into a descriptor.
func newDescriptor(opcode uint8, template string, execute Handler) *Descriptor {
	mnemonic, args, _ := strings.Cut(template, " ")
	desc := &Descriptor{
		Opcode:   opcode,
		Mnemonic: mnemonic,
		Template: template,
		Size:     INSTRUCTION_SIZE,
		Execute:  execute,
	}

	if strings.HasSuffix(mnemonic, "x") {
		desc.Conditional = true
		desc.Mnemonic = strings.TrimSuffix(mnemonic, "x")
	}

	for arg := range strings.SplitSeq(args, ",") {
		arg = strings.TrimSpace(arg)
		if len(arg) == 0 {
			continue
		}
		operand, ok := operandByName[arg]
		if !ok {
			panic(fmt.Sprintf("opcode 0x%02x: bad template operand %q", opcode, arg))
		}
		desc.Operands = append(desc.Operands, operand)
	}

	return desc
}

// Name returns the mnemonic for the decoded fields, including the
// condition suffix of conditional instructions.
func (desc *Descriptor) Name(fld Fields) string {
	if desc.Conditional {
		return desc.Mnemonic + Cond(fld.X).String()
	}
	return desc.Mnemonic
}

// Disassemble renders the decoded fields using the template.
func (desc *Descriptor) Disassemble(fld Fields) string {
	args := make([]string, 0, len(desc.Operands))
	for _, operand := range desc.Operands {
		var arg string
		switch operand {
		case OPERAND_RX:
			arg = fmt.Sprintf("r%d", fld.X)
		case OPERAND_RY:
			arg = fmt.Sprintf("r%d", fld.Y)
		case OPERAND_RZ:
			arg = fmt.Sprintf("r%d", fld.Z())
		case OPERAND_HHLL, OPERAND_VTSR:
			arg = fmt.Sprintf("0x%04x", fld.HHLL)
		case OPERAND_N:
			arg = fmt.Sprintf("%d", fld.N)
		case OPERAND_SP:
			arg = "sp"
		case OPERAND_AD:
			arg = fmt.Sprintf("0x%02x", fld.AD)
		case OPERAND_H:
			arg = fmt.Sprintf("%d", boolBit(fld.HFlip))
		case OPERAND_V:
			arg = fmt.Sprintf("%d", boolBit(fld.VFlip))
		}
		args = append(args, arg)
	}

	name := desc.Name(fld)
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, ", ")
}

// Encode places operand values into an instruction word. Each value is
// placed in the field its operand kind occupies.
func (desc *Descriptor) Encode(values []uint16, cond Cond) (word [INSTRUCTION_SIZE]uint8, err error) {
	if len(values) != len(desc.Operands) {
		err = ErrOpcodeValueMissing
		if len(values) > len(desc.Operands) {
			err = ErrOpcodeExtraArgs
		}
		return
	}

	fld := Fields{Opcode: desc.Opcode}
	if desc.Conditional {
		fld.X = uint8(cond)
	}

	for n, operand := range desc.Operands {
		value := values[n]
		switch operand {
		case OPERAND_RX, OPERAND_RY, OPERAND_RZ, OPERAND_N:
			if value > 0xf {
				err = ErrValueRange
				return
			}
		case OPERAND_AD:
			if value > 0xff {
				err = ErrValueRange
				return
			}
		case OPERAND_H, OPERAND_V:
			if value > 1 {
				err = ErrValueRange
				return
			}
		}
		switch operand {
		case OPERAND_RX:
			fld.X = uint8(value)
		case OPERAND_RY:
			fld.Y = uint8(value)
		case OPERAND_RZ, OPERAND_N:
			fld.LL = uint8(value)
		case OPERAND_HHLL, OPERAND_VTSR:
			fld.LL = uint8(value & 0xff)
			fld.HH = uint8(value >> 8)
		case OPERAND_AD:
			fld.X = uint8(value & 0xf)
			fld.Y = uint8(value >> 4)
		case OPERAND_H:
			fld.HH |= uint8(value << 1)
		case OPERAND_V:
			fld.HH |= uint8(value)
		}
	}

	word = fld.Encode()
	return
}

func boolBit(value bool) int {
	if value {
		return 1
	}
	return 0
}

// OPCODE_VBLNK waits for a vertical blank by returning a zero delta.
const OPCODE_VBLNK = uint8(0x02)

// opcodeTable is built once; it holds no machine state.
var opcodeTable = newOpcodeTable()

func newOpcodeTable() (table [256]*Descriptor) {
	for _, desc := range []*Descriptor{
		// Misc and peripherals
		newDescriptor(0x00, "NOP", opNop),
		newDescriptor(0x01, "CLS", opCls),
		newDescriptor(OPCODE_VBLNK, "VBLNK", opVblnk),
		newDescriptor(0x03, "BGC N", opBgc),
		newDescriptor(0x04, "SPR HHLL", opSpr),
		newDescriptor(0x05, "DRW RX, RY, HHLL", opDrw),
		newDescriptor(0x06, "DRW RX, RY, RZ", opDrwIndirect),
		newDescriptor(0x07, "RND RX, HHLL", opRnd),
		newDescriptor(0x08, "FLIP H, V", opFlip),
		newDescriptor(0x09, "SND0", opSnd0),
		newDescriptor(0x0a, "SND1 HHLL", opSndFixed(TONE_A)),
		newDescriptor(0x0b, "SND2 HHLL", opSndFixed(TONE_B)),
		newDescriptor(0x0c, "SND3 HHLL", opSndFixed(TONE_C)),
		newDescriptor(0x0d, "SNP RX, HHLL", opSnp),
		newDescriptor(0x0e, "SNG AD, VTSR", opSng),

		// Flow
		newDescriptor(0x10, "JMP HHLL", opJmp),
		newDescriptor(0x12, "Jx HHLL", opJx),
		newDescriptor(0x13, "JME RX, RY, HHLL", opJme),
		newDescriptor(0x14, "CALL HHLL", opCall),
		newDescriptor(0x15, "RET", opRet),
		newDescriptor(0x16, "JMP RX", opJmpIndirect),
		newDescriptor(0x17, "Cx HHLL", opCx),
		newDescriptor(0x18, "CALL RX", opCallIndirect),

		// Load and store
		newDescriptor(0x20, "LDI RX, HHLL", opLdi),
		newDescriptor(0x21, "LDI SP, HHLL", opLdiSp),
		newDescriptor(0x22, "LDM RX, HHLL", opLdm),
		newDescriptor(0x23, "LDM RX, RY", opLdmIndirect),
		newDescriptor(0x24, "MOV RX, RY", opMov),
		newDescriptor(0x30, "STM RX, HHLL", opStm),
		newDescriptor(0x31, "STM RX, RY", opStmIndirect),

		// Arithmetic
		newDescriptor(0x40, "ADDI RX, HHLL", aluImmediate(aluAdd, true)),
		newDescriptor(0x41, "ADD RX, RY", aluRegister(aluAdd, true)),
		newDescriptor(0x42, "ADD RX, RY, RZ", aluThree(aluAdd)),
		newDescriptor(0x50, "SUBI RX, HHLL", aluImmediate(aluSub, true)),
		newDescriptor(0x51, "SUB RX, RY", aluRegister(aluSub, true)),
		newDescriptor(0x52, "SUB RX, RY, RZ", aluThree(aluSub)),
		newDescriptor(0x53, "CMPI RX, HHLL", aluImmediate(aluSub, false)),
		newDescriptor(0x54, "CMP RX, RY", aluRegister(aluSub, false)),
		newDescriptor(0x60, "ANDI RX, HHLL", aluImmediate(aluAnd, true)),
		newDescriptor(0x61, "AND RX, RY", aluRegister(aluAnd, true)),
		newDescriptor(0x62, "AND RX, RY, RZ", aluThree(aluAnd)),
		newDescriptor(0x63, "TSTI RX, HHLL", aluImmediate(aluAnd, false)),
		newDescriptor(0x64, "TST RX, RY", aluRegister(aluAnd, false)),
		newDescriptor(0x70, "ORI RX, HHLL", aluImmediate(aluOr, true)),
		newDescriptor(0x71, "OR RX, RY", aluRegister(aluOr, true)),
		newDescriptor(0x72, "OR RX, RY, RZ", aluThree(aluOr)),
		newDescriptor(0x80, "XORI RX, HHLL", aluImmediate(aluXor, true)),
		newDescriptor(0x81, "XOR RX, RY", aluRegister(aluXor, true)),
		newDescriptor(0x82, "XOR RX, RY, RZ", aluThree(aluXor)),
		newDescriptor(0x90, "MULI RX, HHLL", aluImmediate(aluMul, true)),
		newDescriptor(0x91, "MUL RX, RY", aluRegister(aluMul, true)),
		newDescriptor(0x92, "MUL RX, RY, RZ", aluThree(aluMul)),
		newDescriptor(0xa0, "DIVI RX, HHLL", aluImmediate(aluDiv, true)),
		newDescriptor(0xa1, "DIV RX, RY", aluRegister(aluDiv, true)),
		newDescriptor(0xa2, "DIV RX, RY, RZ", aluThree(aluDiv)),
		newDescriptor(0xa3, "MODI RX, HHLL", aluImmediate(aluMod, true)),
		newDescriptor(0xa4, "MOD RX, RY", aluRegister(aluMod, true)),
		newDescriptor(0xa5, "MOD RX, RY, RZ", aluThree(aluMod)),
		newDescriptor(0xa6, "REMI RX, HHLL", aluImmediate(aluRem, true)),
		newDescriptor(0xa7, "REM RX, RY", aluRegister(aluRem, true)),
		newDescriptor(0xa8, "REM RX, RY, RZ", aluThree(aluRem)),

		// Shifts
		newDescriptor(0xb0, "SHL RX, N", aluCount(aluShl)),
		newDescriptor(0xb1, "SHR RX, N", aluCount(aluShr)),
		newDescriptor(0xb2, "SAR RX, N", aluCount(aluSar)),
		newDescriptor(0xb3, "SHL RX, RY", aluRegister(aluShl, true)),
		newDescriptor(0xb4, "SHR RX, RY", aluRegister(aluShr, true)),
		newDescriptor(0xb5, "SAR RX, RY", aluRegister(aluSar, true)),

		// Stack
		newDescriptor(0xc0, "PUSH RX", opPush),
		newDescriptor(0xc1, "POP RX", opPop),
		newDescriptor(0xc2, "PUSHALL", opPushAll),
		newDescriptor(0xc3, "POPALL", opPopAll),
		newDescriptor(0xc4, "PUSHF", opPushF),
		newDescriptor(0xc5, "POPF", opPopF),

		// Palette
		newDescriptor(0xd0, "PAL HHLL", opPal),
		newDescriptor(0xd1, "PAL RX", opPalIndirect),

		// Not and negate
		newDescriptor(0xe0, "NOTI RX, HHLL", aluImmediate(aluNot, true)),
		newDescriptor(0xe1, "NOT RX", aluSelf(aluNot)),
		newDescriptor(0xe2, "NOT RX, RY", aluRegister(aluNot, true)),
		newDescriptor(0xe3, "NEGI RX, HHLL", aluImmediate(aluNeg, true)),
		newDescriptor(0xe4, "NEG RX", aluSelf(aluNeg)),
		newDescriptor(0xe5, "NEG RX, RY", aluRegister(aluNeg, true)),
	} {
		if table[desc.Opcode] != nil {
			panic(fmt.Sprintf("opcode 0x%02x: duplicated", desc.Opcode))
		}
		table[desc.Opcode] = desc
	}

	return
}

// Lookup returns the descriptor for an opcode byte.
func Lookup(opcode uint8) (desc *Descriptor, ok bool) {
	desc = opcodeTable[opcode]
	ok = desc != nil
	return
}

// Descriptors iterates over all defined opcodes, in opcode order.
func Descriptors() iter.Seq[*Descriptor] {
	return func(yield func(*Descriptor) bool) {
		for _, desc := range opcodeTable {
			if desc == nil {
				continue
			}
			if !yield(desc) {
				return
			}
		}
	}
}

// Disassemble renders the instruction at addr.
func Disassemble(mem *Memory, addr uint16) (text string, err error) {
	fld := Decode(mem, addr)
	desc, ok := Lookup(fld.Opcode)
	if !ok {
		err = ErrOpcode{Pc: addr, Opcode: fld.Opcode}
		return
	}
	text = desc.Disassemble(fld)
	return
}
