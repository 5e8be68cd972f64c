package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Load(0x0100, []uint8{0x40, 0x12, 0x01, 0x02})

	fld := Decode(mem, 0x0100)
	assert.Equal(uint8(0x40), fld.Opcode)
	assert.Equal(uint8(1), fld.Y)
	assert.Equal(uint8(2), fld.X)
	assert.Equal(uint8(0x12), fld.AD)
	assert.Equal(uint8(1), fld.LL)
	assert.Equal(uint8(1), fld.N)
	assert.Equal(uint8(2), fld.HH)
	assert.Equal(uint16(0x0201), fld.HHLL)
	assert.Equal(uint16(0x0201), fld.VTSR())
	assert.True(fld.HFlip)
	assert.False(fld.VFlip)
}

func TestDecode_Flip(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		hh    uint8
		hflip bool
		vflip bool
	}{
		{0, false, false},
		{1, false, true},
		{2, true, false},
		{3, true, true},
	}

	mem := &Memory{}
	for _, entry := range table {
		mem.Load(0, []uint8{0x08, 0x00, 0x00, entry.hh})
		fld := Decode(mem, 0)
		assert.Equal(entry.hflip, fld.HFlip, "hh=%d", entry.hh)
		assert.Equal(entry.vflip, fld.VFlip, "hh=%d", entry.hh)
	}
}

func TestDecode_ShiftCount(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Load(0, []uint8{0xb0, 0x03, 0xf7, 0x00})
	fld := Decode(mem, 0)
	assert.Equal(uint8(7), fld.N)
	assert.Equal(uint8(7), fld.Z())
	assert.Equal(uint8(0xf7), fld.LL)
}

func TestDecode_Wrap(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Load(0xfffe, []uint8{0x20, 0x05})
	mem.Load(0x0000, []uint8{0x34, 0x12})
	fld := Decode(mem, 0xfffe)
	assert.Equal(uint8(0x20), fld.Opcode)
	assert.Equal(uint8(5), fld.X)
	assert.Equal(uint16(0x1234), fld.HHLL)
}

func TestFields_Encode(t *testing.T) {
	assert := assert.New(t)

	word := [INSTRUCTION_SIZE]uint8{0x13, 0xa5, 0x34, 0x12}
	mem := &Memory{}
	mem.Load(0, word[:])
	assert.Equal(word, Decode(mem, 0).Encode())
}
