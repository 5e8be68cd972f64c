package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters_Signed(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		raw    uint16
		signed int16
	}{
		{0x0000, 0},
		{0x0001, 1},
		{0x7fff, 32767},
		{0x8000, -32768},
		{0xffff, -1},
		{0xfffe, -2},
	}

	rf := &Registers{}
	for n, entry := range table {
		reg := uint8(n)
		rf.Set(reg, entry.raw)
		assert.Equal(entry.signed, rf.Signed(reg))
		// Signed readback does not modify the register.
		assert.Equal(entry.raw, rf.Get(reg))
		assert.Equal(entry.signed, Signed(entry.raw))
	}
}

func TestCpu_DriverSurface(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.Equal(uint16(ARENA_ROM), cpu.ProgramCounter())
	assert.Equal(uint16(ARENA_STACK), cpu.StackPointer())
	assert.Equal(Flags{}, cpu.Flags())

	cpu.WriteRegister(15, 0xffff)
	assert.Equal(int16(-1), cpu.ReadRegisterSigned(15))

	cpu.WriteMemory(0x1000, 0xbeef)
	assert.Equal(uint8(0xef), cpu.ReadMemory(0x1000))
	assert.Equal(uint8(0xbe), cpu.ReadMemory(0x1001))
}
