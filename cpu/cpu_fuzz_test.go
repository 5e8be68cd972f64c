package cpu

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// immediateModel is the expected result of the storing immediate ALU forms.
var immediateModel = map[uint8]func(a, b uint16) uint16{
	0x40: func(a, b uint16) uint16 { return a + b },
	0x50: func(a, b uint16) uint16 { return a - b },
	0x60: func(a, b uint16) uint16 { return a & b },
	0x70: func(a, b uint16) uint16 { return a | b },
	0x80: func(a, b uint16) uint16 { return a ^ b },
	0x90: func(a, b uint16) uint16 { return a * b },
	0xe0: func(_, b uint16) uint16 { return ^b },
	0xe3: func(_, b uint16) uint16 { return -b },
}

func isFlow(opcode uint8) bool {
	return opcode == OPCODE_VBLNK || (opcode >= 0x10 && opcode <= 0x18)
}

func FuzzStep(f *testing.F) {
	for _, opcode := range []uint8{0x00, 0x02, 0x0f, 0x12, 0x15, 0x40, 0x42, 0xa1, 0xb2, 0xc3, 0xe5, 0xff} {
		f.Add(opcode, uint8(0x21), uint8(0x03), uint8(0x80), uint16(0x7fff), uint16(0))
		f.Add(opcode, uint8(0x10), uint8(0xff), uint8(0x00), uint16(0xffff), uint16(0x8000))
	}

	f.Fuzz(func(t *testing.T, opcode uint8, yx uint8, ll uint8, hh uint8, rx uint16, ry uint16) {
		assert := assert.New(t)

		cpu := NewCpu()
		cpu.Video = &fakeVideo{Blank: true}
		cpu.Audio = &fakeAudio{}
		cpu.Rand = rand.New(rand.NewPCG(3, 4))

		const start = uint16(0x0200)
		cpu.Pc = start
		cpu.Memory.Load(start, []uint8{opcode, yx, ll, hh})
		for n := range cpu.Register {
			cpu.Register[n] = uint16(n) * 0x0101
		}
		fld := Decode(&cpu.Memory, start)
		cpu.Register.Set(fld.X, rx)
		if fld.Y != fld.X {
			cpu.Register.Set(fld.Y, ry)
		}
		before := cpu.Register

		err := cpu.Step()

		desc, ok := Lookup(opcode)
		if !ok {
			assert.ErrorIs(err, ErrOpcode{})
		}
		if err != nil {
			if ok {
				assert.True(errors.Is(err, ErrDivideByZero), "%v: %v", desc.Template, err)
			}
			assert.Equal(start, cpu.Pc)
			assert.Equal(uint16(ARENA_STACK), cpu.Sp)
			assert.Equal(before, cpu.Register)
			assert.Equal(uint64(0), cpu.Cycles)
			return
		}

		assert.Equal(uint64(1), cpu.Cycles)

		if !isFlow(opcode) {
			assert.Equal(start+INSTRUCTION_SIZE, cpu.Pc, desc.Template)
		}

		model, ok := immediateModel[opcode]
		if ok {
			assert.Equal(model(rx, fld.HHLL), cpu.Register.Get(fld.X), desc.Template)
		}
	})
}
